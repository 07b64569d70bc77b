// Package aggregate computes ranked frequency tables over normalized records.
package aggregate

import (
	"sort"

	"github.com/amishk599/jobinsights/internal/model"
)

// Table sizes.
const (
	TopSkillsLimit    = 20
	TopLocationsLimit = 10
	TopCompaniesLimit = 10
	TopTitlesLimit    = 10
)

// Table keys, used when reporting a missing table.
const (
	KeyTopSkills    = "top_skills"
	KeyTopLocations = "top_locations"
	KeyTopCompanies = "top_companies"
)

// Count is one row of a ranked table.
type Count struct {
	Label string
	N     int
}

// Table is a ranked mapping from a value to its occurrence count.
type Table []Count

// Labels returns the table's labels in rank order.
func (t Table) Labels() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.Label
	}
	return out
}

// Values returns the table's counts in rank order.
func (t Table) Values() []float64 {
	out := make([]float64, len(t))
	for i, c := range t {
		out[i] = float64(c.N)
	}
	return out
}

// Mean is an averaged value attached to a label.
type Mean struct {
	Label string
	Value float64
}

// Result holds the tables derived from one record collection. A nil table
// means it was never computed; the report rejects nil mandatory tables and
// skips a nil SkillSalary.
type Result struct {
	TopSkills    Table
	TopLocations Table
	TopCompanies Table
	SkillSalary  []Mean // optional
}

// Aggregate ranks skills, locations, and companies across records. Nil
// locations and companies are not counted. An empty input yields empty,
// non-nil tables.
func Aggregate(records []model.Record) Result {
	var skills, locations, companies []string
	for _, r := range records {
		skills = append(skills, r.Skills...)
		if r.Location != nil {
			locations = append(locations, *r.Location)
		}
		if r.Company != nil {
			companies = append(companies, *r.Company)
		}
	}
	return Result{
		TopSkills:    Rank(skills, TopSkillsLimit),
		TopLocations: Rank(locations, TopLocationsLimit),
		TopCompanies: Rank(companies, TopCompaniesLimit),
	}
}

// TopTitles ranks record titles. Nil titles are not counted.
func TopTitles(records []model.Record) Table {
	var titles []string
	for _, r := range records {
		if r.Title != nil {
			titles = append(titles, *r.Title)
		}
	}
	return Rank(titles, TopTitlesLimit)
}

// Rank counts values and orders them by descending count. Values with equal
// counts keep the order in which they were first seen. A limit <= 0 keeps
// every value. The result is never nil.
func Rank(values []string, limit int) Table {
	index := make(map[string]int)
	table := Table{}
	for _, v := range values {
		if i, ok := index[v]; ok {
			table[i].N++
			continue
		}
		index[v] = len(table)
		table = append(table, Count{Label: v, N: 1})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].N > table[j].N
	})
	if limit > 0 && len(table) > limit {
		table = table[:limit]
	}
	return table
}
