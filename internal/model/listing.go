package model

import (
	"context"
	"encoding/json"
	"time"
)

// RawListing is one job posting as returned by the search API. Every field is
// optional: nil means the upstream omitted it or sent null.
type RawListing struct {
	Title          *string         `json:"title"`
	Company        *string         `json:"companyName"`
	Location       *string         `json:"location"`
	LocationType   *string         `json:"locationType"`
	EmploymentType *string         `json:"employmentType"`
	Description    *string         `json:"description"`
	Skills         json.RawMessage `json:"skills"` // list or string, shape varies
	Link           *string         `json:"jobUrl"`
}

// Record is the canonical form of a listing after normalization.
type Record struct {
	Title          *string
	Company        *string
	Location       *string // "Remote in" prefix removed, trimmed
	LocationType   *string
	EmploymentType *string
	Description    *string
	Skills         []string // lowercase lexicon entries, no duplicates
	Link           *string
}

// Key identifies a record for deduplication.
type Key struct {
	Title, Company string
	HasTitle       bool
	HasCompany     bool
}

// Key returns the (title, company) identity of the record. Matching is
// case-sensitive and a nil field never equals an empty string.
func (r Record) Key() Key {
	var k Key
	if r.Title != nil {
		k.Title, k.HasTitle = *r.Title, true
	}
	if r.Company != nil {
		k.Company, k.HasCompany = *r.Company, true
	}
	return k
}

// SearchParams describes one search against the listing API.
type SearchParams struct {
	Query    string
	Location string
}

// ListingFetcher retrieves raw listings for a search, page by page.
// Implementations may return listings together with ErrPartialFetch.
type ListingFetcher interface {
	FetchListings(ctx context.Context, params SearchParams, pages int) ([]RawListing, error)
}

// PageFetcher retrieves a single page of raw listings. Pages are 1-based.
type PageFetcher interface {
	FetchPage(ctx context.Context, params SearchParams, page int) ([]RawListing, error)
}

// Notifier publishes the summary of a finished run.
type Notifier interface {
	Notify(summary Summary) error
}

// Summary is what a notifier receives at the end of a run.
type Summary struct {
	RunID        string
	Query        string
	Location     string
	Records      int
	TopSkills    []string // "label (count)" entries, ranked
	TopLocations []string
	TopCompanies []string
	Artifacts    []string
	GeneratedAt  time.Time
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
