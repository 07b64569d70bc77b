package filter

import (
	"strings"

	"github.com/amishk599/jobinsights/internal/model"
)

// FieldFilter narrows records by employment type and location type.
// Matching is case-insensitive equality. Empty criteria are ignored.
type FieldFilter struct {
	EmploymentType string
	LocationType   string
}

// NewFieldFilter returns a filter for the given criteria. Surrounding
// whitespace is ignored.
func NewFieldFilter(employmentType, locationType string) *FieldFilter {
	return &FieldFilter{
		EmploymentType: strings.TrimSpace(employmentType),
		LocationType:   strings.TrimSpace(locationType),
	}
}

// Active reports whether any criterion is set.
func (f *FieldFilter) Active() bool {
	return f.EmploymentType != "" || f.LocationType != ""
}

// Match returns true if the record satisfies every active criterion.
// A nil field never matches an active criterion.
func (f *FieldFilter) Match(r model.Record) bool {
	return fieldMatches(r.EmploymentType, f.EmploymentType) &&
		fieldMatches(r.LocationType, f.LocationType)
}

// Apply returns the matching records in order. With no active criteria the
// input is returned unchanged.
func (f *FieldFilter) Apply(records []model.Record) []model.Record {
	if !f.Active() {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func fieldMatches(value *string, want string) bool {
	if want == "" {
		return true
	}
	if value == nil {
		return false
	}
	return strings.EqualFold(*value, want)
}
