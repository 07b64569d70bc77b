// Package normalize converts raw listings into canonical records.
package normalize

import (
	"strings"

	"github.com/amishk599/jobinsights/internal/model"
	"github.com/amishk599/jobinsights/internal/skills"
)

// Normalizer tags records with skills from its lexicon.
type Normalizer struct {
	lexicon *skills.Lexicon
}

// New returns a Normalizer using lexicon, or the built-in lexicon when nil.
func New(lexicon *skills.Lexicon) *Normalizer {
	if lexicon == nil {
		lexicon = skills.Default()
	}
	return &Normalizer{lexicon: lexicon}
}

// Normalize converts one raw listing. Absent fields stay nil; it never fails.
func (n *Normalizer) Normalize(raw model.RawListing) model.Record {
	return model.Record{
		Title:          raw.Title,
		Company:        raw.Company,
		Location:       CleanLocation(raw.Location),
		LocationType:   raw.LocationType,
		EmploymentType: raw.EmploymentType,
		Description:    raw.Description,
		Skills:         n.extractSkills(raw.Title, raw.Description),
		Link:           raw.Link,
	}
}

// NormalizeAll normalizes raws in order.
func (n *Normalizer) NormalizeAll(raws []model.RawListing) []model.Record {
	out := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// extractSkills returns the union of lexicon matches in title and description,
// in lexicon order.
func (n *Normalizer) extractSkills(title, description *string) []string {
	found := make(map[string]struct{})
	for _, text := range []*string{title, description} {
		if text == nil {
			continue
		}
		for _, s := range n.lexicon.Matches(*text) {
			found[s] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for _, kw := range n.lexicon.Keywords() {
		if _, ok := found[kw]; ok {
			out = append(out, kw)
		}
	}
	return out
}

// CleanLocation strips the "Remote in" marker and surrounding whitespace.
// The marker is detected case-insensitively but only the exact "Remote in"
// spelling is removed. Nil and blank locations return nil.
func CleanLocation(loc *string) *string {
	if loc == nil || *loc == "" {
		return nil
	}
	s := *loc
	if strings.Contains(strings.ToLower(s), "remote in") {
		s = strings.ReplaceAll(s, "Remote in", "")
	}
	s = strings.TrimSpace(s)
	return &s
}
