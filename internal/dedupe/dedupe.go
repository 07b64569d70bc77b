// Package dedupe removes listings that share a (title, company) identity.
package dedupe

import "github.com/amishk599/jobinsights/internal/model"

// Dedupe returns the records whose identity key has not been seen earlier in
// the input. The first occurrence of each key wins and order is preserved.
func Dedupe(records []model.Record) []model.Record {
	seen := make(map[model.Key]struct{}, len(records))
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
