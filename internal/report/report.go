// Package report turns shaped records and their aggregation tables into the
// CSV, chart, and PDF artifacts of a run.
package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/model"
)

// Paths names the artifacts to write. An empty path skips that artifact.
type Paths struct {
	CSV   string
	Chart string
	PDF   string
}

// Assembler writes report artifacts.
type Assembler struct {
	paths  Paths
	logger *slog.Logger
}

// NewAssembler creates an assembler writing to paths.
func NewAssembler(paths Paths, logger *slog.Logger) *Assembler {
	return &Assembler{paths: paths, logger: logger}
}

// Validate returns a *model.MissingKeyError for the first mandatory table
// that is nil. SkillSalary is optional and never reported.
func Validate(res aggregate.Result) error {
	switch {
	case res.TopSkills == nil:
		return &model.MissingKeyError{Key: aggregate.KeyTopSkills}
	case res.TopLocations == nil:
		return &model.MissingKeyError{Key: aggregate.KeyTopLocations}
	case res.TopCompanies == nil:
		return &model.MissingKeyError{Key: aggregate.KeyTopCompanies}
	}
	return nil
}

// Assemble validates res and writes each configured artifact. It returns the
// paths written, in order. A failure stops assembly; artifacts already
// written are kept and a partially written file is never left behind. The
// chart is skipped when no table has data to plot.
func (a *Assembler) Assemble(records []model.Record, res aggregate.Result, meta Meta) ([]string, error) {
	if err := Validate(res); err != nil {
		return nil, fmt.Errorf("assemble report: %w", err)
	}

	steps := []struct {
		kind  string
		path  string
		write func(io.Writer) error
	}{
		{"csv", a.paths.CSV, func(w io.Writer) error { return WriteCSV(w, records) }},
		{"chart", a.paths.Chart, func(w io.Writer) error { return RenderChart(w, records, res) }},
		{"pdf", a.paths.PDF, func(w io.Writer) error { return RenderPDF(w, records, res, meta) }},
	}

	var written []string
	for _, s := range steps {
		if s.path == "" {
			continue
		}
		err := writeFile(s.path, s.write)
		if errors.Is(err, ErrNoChartData) {
			a.logger.Warn("skipping report artifact, no data to plot", "kind", s.kind, "path", s.path)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", s.kind, err)
		}
		a.logger.Info("report artifact written", "kind", s.kind, "path", s.path)
		written = append(written, s.path)
	}
	return written, nil
}

// writeFile renders into a temporary file beside path and renames it into
// place once write succeeds. The temporary file is removed on every failure.
func writeFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = write(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
