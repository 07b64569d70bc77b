package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amishk599/jobinsights/internal/model"
)

// Config carries the credentials for the RapidAPI LinkedIn jobs endpoint.
type Config struct {
	Host    string // X-RapidAPI-Host, e.g. "linkedin-jobs-search.p.rapidapi.com"
	APIKey  string // X-RapidAPI-Key
	BaseURL string // defaults to https://<Host>
}

// searchResponse is the top-level search API response.
type searchResponse struct {
	Jobs []model.RawListing `json:"jobs"`
}

// RapidAPIAdapter fetches LinkedIn job listings through RapidAPI, one page
// per request.
type RapidAPIAdapter struct {
	cfg    Config
	client *http.Client
}

// NewRapidAPIAdapter creates an adapter for the given credentials.
func NewRapidAPIAdapter(cfg Config, client *http.Client) *RapidAPIAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &RapidAPIAdapter{
		cfg:    cfg,
		client: client,
	}
}

// FetchPage retrieves one page of search results. Descriptions are flattened
// from HTML to plain text; every other field is passed through as sent.
func (a *RapidAPIAdapter) FetchPage(ctx context.Context, params model.SearchParams, page int) ([]model.RawListing, error) {
	q := url.Values{}
	q.Set("query", params.Query)
	q.Set("location", params.Location)
	q.Set("page", strconv.Itoa(page))
	u := a.cfg.BaseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	req.Header.Set("X-RapidAPI-Key", a.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", a.cfg.Host)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("search page %d: unexpected status %d", page, resp.StatusCode),
		}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}

	for i := range sr.Jobs {
		if d := sr.Jobs[i].Description; d != nil {
			text := extractText(*d)
			sr.Jobs[i].Description = &text
		}
	}
	return sr.Jobs, nil
}
