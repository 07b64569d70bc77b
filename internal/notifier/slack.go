package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/jobinsights/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts run summaries to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// NewSlackNotifier returns a notifier that posts summaries to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Notify sends the summary as a single Block Kit message. A 429 response is
// retried once after Retry-After.
func (s *SlackNotifier) Notify(summary model.Summary) error {
	body, err := json.Marshal(buildPayload(summary))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(body)
	if err != nil {
		return err
	}

	if status == http.StatusTooManyRequests {
		s.logger.Warn("slack rate limited, retrying", "retry_after_secs", retryAfter)
		s.sleep(time.Duration(retryAfter) * time.Second)

		status, _, err = s.post(body)
		if err != nil {
			return fmt.Errorf("retry: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", status)
		}
		s.logger.Info("slack summary sent", "run_id", summary.RunID, "retried", true)
		return nil
	}

	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}
	s.logger.Info("slack summary sent", "run_id", summary.RunID)
	return nil
}

// post sends body and reports the status and the Retry-After seconds (at least 1).
func (s *SlackNotifier) post(body []byte) (int, int, error) {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
	if secs <= 0 {
		secs = 1
	}
	return resp.StatusCode, secs, nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTestMessage sends a sample summary to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	return n.Notify(model.Summary{
		RunID:        "test-run",
		Query:        "data analyst",
		Location:     "South Africa",
		Records:      3,
		TopSkills:    []string{"sql (3)", "python (2)", "excel (1)"},
		TopLocations: []string{"Cape Town (2)", "Johannesburg (1)"},
		TopCompanies: []string{"Integration Check (3)"},
		GeneratedAt:  time.Now(),
	})
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	return "• " + strings.Join(items, "\n• ")
}

func buildPayload(s model.Summary) slackPayload {
	where := s.Location
	if where == "" {
		where = "anywhere"
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "📊 Job market insights: " + s.Query},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Location:*\n" + where},
				{Type: "mrkdwn", Text: "*Listings:*\n" + strconv.Itoa(s.Records)},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Top skills:*\n" + bulletList(s.TopSkills)},
				{Type: "mrkdwn", Text: "*Top locations:*\n" + bulletList(s.TopLocations)},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "*Top companies:*\n" + bulletList(s.TopCompanies)},
		},
	}

	if len(s.Artifacts) > 0 {
		blocks = append(blocks, slackBlock{
			Type:     "context",
			Elements: []slackText{{Type: "mrkdwn", Text: "Reports: `" + strings.Join(s.Artifacts, "`, `") + "`"}},
		})
	}

	blocks = append(blocks,
		slackBlock{
			Type: "context",
			Elements: []slackText{{
				Type: "mrkdwn",
				Text: fmt.Sprintf("Run `%s` at %s", s.RunID, s.GeneratedAt.UTC().Format(time.RFC1123)),
			}},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Blocks: blocks}
}
