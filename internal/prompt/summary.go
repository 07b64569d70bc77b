package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/pipeline"
)

// summaryRows is how many entries of each ranking are shown.
const summaryRows = 5

// RenderSummary formats a finished run for the terminal.
func RenderSummary(o *pipeline.Outcome, artifacts []string) string {
	where := o.Params.Location
	if where == "" {
		where = "anywhere"
	}

	header := []string{
		sectionStyle.Render(fmt.Sprintf("%q in %s", o.Params.Query, where)),
		dimStyle.Render(fmt.Sprintf("%d listings fetched, %d duplicates, %d filtered out, %d kept",
			o.Fetched, o.Duplicates, o.Filtered, len(o.Records))),
	}
	if o.Partial {
		header = append(header, warnStyle.Render("paging stopped early; results are partial"))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		renderTable("Top skills", o.Result.TopSkills),
		renderTable("Top locations", o.Result.TopLocations),
		renderTable("Top companies", o.Result.TopCompanies),
	)

	parts := []string{strings.Join(header, "\n"), "", columns}
	if len(artifacts) > 0 {
		files := make([]string, len(artifacts))
		for i, a := range artifacts {
			files[i] = "  " + a
		}
		parts = append(parts, "", sectionStyle.Render("Reports"), dimStyle.Render(strings.Join(files, "\n")))
	}

	return boxStyle.Render(strings.Join(parts, "\n"))
}

func renderTable(title string, t aggregate.Table) string {
	lines := []string{sectionStyle.Render(title)}
	if len(t) == 0 {
		lines = append(lines, dimStyle.Render("none"))
	}
	for i, c := range t[:min(len(t), summaryRows)] {
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, c.Label, dimStyle.Render(fmt.Sprintf("(%d)", c.N))))
	}
	return lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(lines, "\n"))
}
