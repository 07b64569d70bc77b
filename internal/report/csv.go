package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/amishk599/jobinsights/internal/model"
)

// SkillSeparator joins a record's skills into one CSV cell.
const SkillSeparator = ", "

var csvHeader = []string{
	"title", "company", "location", "locationType",
	"employmentType", "description", "skills", "link",
}

// WriteCSV writes one row per record under a header row. Absent fields are
// written as empty cells.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		row := []string{
			model.Deref(r.Title),
			model.Deref(r.Company),
			model.Deref(r.Location),
			model.Deref(r.LocationType),
			model.Deref(r.EmploymentType),
			model.Deref(r.Description),
			strings.Join(r.Skills, SkillSeparator),
			model.Deref(r.Link),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
