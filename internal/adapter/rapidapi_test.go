package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobinsights/internal/model"
)

func TestFetchPage_Success(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"title": "Data Analyst",
				"companyName": "Acme",
				"location": "Remote in Cape Town",
				"locationType": "Remote",
				"employmentType": "Full-time",
				"description": "&lt;p&gt;SQL and &lt;b&gt;Python&lt;/b&gt;&lt;/p&gt;",
				"skills": ["sql", "python"],
				"jobUrl": "https://www.linkedin.com/jobs/view/1"
			},
			{
				"title": "Engineer",
				"companyName": null,
				"skills": "go, rust"
			}
		]
	}`
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := newTestAdapter(srv)
	listings, err := a.FetchPage(context.Background(), model.SearchParams{Query: "Data Scientist", Location: "Johannesburg"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.URL.Path != "/search" {
		t.Errorf("path = %q, want /search", gotReq.URL.Path)
	}
	q := gotReq.URL.Query()
	if q.Get("query") != "Data Scientist" || q.Get("location") != "Johannesburg" || q.Get("page") != "2" {
		t.Errorf("unexpected query: %v", q)
	}
	if gotReq.Header.Get("X-RapidAPI-Key") != "secret" {
		t.Errorf("X-RapidAPI-Key = %q", gotReq.Header.Get("X-RapidAPI-Key"))
	}
	if gotReq.Header.Get("X-RapidAPI-Host") != "jobs.example.com" {
		t.Errorf("X-RapidAPI-Host = %q", gotReq.Header.Get("X-RapidAPI-Host"))
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	l := listings[0]
	if model.Deref(l.Title) != "Data Analyst" || model.Deref(l.Company) != "Acme" {
		t.Errorf("unexpected listing: %+v", l)
	}
	if model.Deref(l.Location) != "Remote in Cape Town" {
		t.Errorf("location should be passed through, got %q", model.Deref(l.Location))
	}
	if model.Deref(l.Description) != "SQL and Python" {
		t.Errorf("description = %q, want %q", model.Deref(l.Description), "SQL and Python")
	}
	if model.Deref(l.Link) != "https://www.linkedin.com/jobs/view/1" {
		t.Errorf("link = %q", model.Deref(l.Link))
	}

	second := listings[1]
	if second.Company != nil || second.Location != nil || second.Description != nil {
		t.Errorf("absent fields should be nil: %+v", second)
	}
	if string(second.Skills) != `"go, rust"` {
		t.Errorf("skills raw = %s", second.Skills)
	}
}

func TestFetchPage_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	listings, err := newTestAdapter(srv).FetchPage(context.Background(), model.SearchParams{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected 0 listings, got %d", len(listings))
	}
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	if _, err := newTestAdapter(srv).FetchPage(context.Background(), model.SearchParams{}, 1); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestFetchPage_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv).FetchPage(context.Background(), model.SearchParams{}, 1)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", httpErr.RetryAfter)
	}
}

func TestNewRapidAPIAdapter_DefaultBaseURL(t *testing.T) {
	a := NewRapidAPIAdapter(Config{Host: "jobs.example.com"}, http.DefaultClient)
	if a.cfg.BaseURL != "https://jobs.example.com" {
		t.Errorf("BaseURL = %q", a.cfg.BaseURL)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double-encoded HTML",
			input: "This is the job description. &lt;p&gt;Any HTML included.&lt;/p&gt;",
			want:  "This is the job description. Any HTML included.",
		},
		{
			name:  "nested tags and whitespace",
			input: "<p>We are hiring.</p>\n<ul>\n  <li>Write code</li>\n  <li>Review PRs</li>\n</ul>",
			want:  "We are hiring. Write code Review PRs",
		},
		{
			name:  "plain text with no HTML",
			input: "No tags here.",
			want:  "No tags here.",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractText(tc.input)
			if got != tc.want {
				t.Errorf("extractText(%q)\n got  %q\n want %q", tc.input, got, tc.want)
			}
		})
	}
}

// --- helpers ---

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// newTestAdapter creates a RapidAPIAdapter whose requests are rewritten to hit srv.
func newTestAdapter(srv *httptest.Server) *RapidAPIAdapter {
	return NewRapidAPIAdapter(Config{Host: "jobs.example.com", APIKey: "secret"}, &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	})
}
