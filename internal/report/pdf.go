package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"gonum.org/v1/plot/vg"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/model"
)

// Meta describes the run a report was generated for.
type Meta struct {
	RunID          string
	Query          string
	Location       string
	EmploymentType string
	LocationType   string
	GeneratedAt    time.Time
}

const summaryRows = 5

// RenderPDF writes a cover page followed by one page per available chart.
func RenderPDF(w io.Writer, records []model.Record, res aggregate.Result, meta Meta) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Job Market Insights", true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeCover(pdf, tr, records, res, meta)

	for i, spec := range chartSpecs(records, res) {
		img, err := renderPNG(spec, 10*vg.Inch, 6*vg.Inch)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("chart-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, tr(spec.Title), "", 1, "L", false, 0, "")
		pdf.ImageOptions(name, 15, 25, 267, 0, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeCover(pdf *fpdf.Fpdf, tr func(string) string, records []model.Record, res aggregate.Result, meta Meta) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Job Market Insights", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Search: " + orDash(meta.Query),
		"Location: " + orDash(meta.Location),
		"Employment type filter: " + orDash(meta.EmploymentType),
		"Location type filter: " + orDash(meta.LocationType),
		fmt.Sprintf("Listings analysed: %d", len(records)),
		"Generated: " + meta.GeneratedAt.Format("2006-01-02 15:04 MST"),
	}
	if meta.RunID != "" {
		lines = append(lines, "Run: "+meta.RunID)
	}
	for _, l := range lines {
		pdf.CellFormat(0, 7, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	sections := []struct {
		title string
		table aggregate.Table
	}{
		{"Top skills", res.TopSkills},
		{"Top locations", res.TopLocations},
		{"Top companies", res.TopCompanies},
	}
	colW := 85.0
	top := pdf.GetY()
	for i, s := range sections {
		x := 15 + float64(i)*(colW+5)
		pdf.SetXY(x, top)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(colW, 8, s.title, "B", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for j, c := range s.table {
			if j == summaryRows {
				break
			}
			pdf.CellFormat(colW-15, 6, tr(truncate(c.Label, 40)), "", 0, "L", false, 0, "")
			pdf.CellFormat(15, 6, fmt.Sprintf("%d", c.N), "", 2, "R", false, 0, "")
			pdf.SetX(x)
		}
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
