package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/model"
)

var (
	skyBlue    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	lightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 255}
	gold       = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	purple     = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	coral      = color.RGBA{R: 255, G: 127, B: 80, A: 255}
)

// chartSpec describes one bar chart. Horizontal charts list the first label
// at the top.
type chartSpec struct {
	Title      string
	XLabel     string
	YLabel     string
	Labels     []string
	Values     []float64
	Horizontal bool
	Color      color.Color
}

// chartSpecs lists the charts that have data to show, in report order.
// Empty tables and a nil SkillSalary are skipped.
func chartSpecs(records []model.Record, res aggregate.Result) []chartSpec {
	var specs []chartSpec
	add := func(s chartSpec) {
		if len(s.Values) > 0 {
			specs = append(specs, s)
		}
	}

	add(chartSpec{
		Title:      "Top 20 Most Demanded Skills",
		XLabel:     "Number of Job Postings",
		Labels:     res.TopSkills.Labels(),
		Values:     res.TopSkills.Values(),
		Horizontal: true,
		Color:      skyBlue,
	})
	add(chartSpec{
		Title:  "Top 10 Locations with Most Job Postings",
		XLabel: "Location",
		YLabel: "Number of Jobs",
		Labels: res.TopLocations.Labels(),
		Values: res.TopLocations.Values(),
		Color:  lightGreen,
	})
	add(chartSpec{
		Title:      "Top 10 Companies Hiring",
		XLabel:     "Number of Job Postings",
		Labels:     res.TopCompanies.Labels(),
		Values:     res.TopCompanies.Values(),
		Horizontal: true,
		Color:      gold,
	})
	titles := aggregate.TopTitles(records)
	add(chartSpec{
		Title:      "Top 10 Job Titles Distribution",
		XLabel:     "Number of Jobs",
		Labels:     titles.Labels(),
		Values:     titles.Values(),
		Horizontal: true,
		Color:      purple,
	})
	if res.SkillSalary != nil {
		means := make([]aggregate.Mean, len(res.SkillSalary))
		copy(means, res.SkillSalary)
		sort.SliceStable(means, func(i, j int) bool { return means[i].Value > means[j].Value })
		s := chartSpec{
			Title:      "Average Salary by Top Skills",
			XLabel:     "Average Yearly Salary",
			Horizontal: true,
			Color:      coral,
		}
		for _, m := range means {
			s.Labels = append(s.Labels, m.Label)
			s.Values = append(s.Values, m.Value)
		}
		add(s)
	}
	return specs
}

// newPlot builds a bar chart plot for spec.
func newPlot(spec chartSpec) (*plot.Plot, error) {
	labels, values := spec.Labels, spec.Values
	if spec.Horizontal {
		// Bars are drawn bottom-up; reverse so rank 1 sits on top.
		labels, values = reversed(labels), reversedFloats(values)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", spec.Title, err)
	}
	bars.Color = spec.Color
	bars.LineStyle.Width = 0
	bars.Horizontal = spec.Horizontal
	p.Add(bars)

	if spec.Horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
	return p, nil
}

// renderPNG draws a single chart as a PNG image of the given size.
func renderPNG(spec chartSpec, width, height vg.Length) ([]byte, error) {
	p, err := newPlot(spec)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

// ErrNoChartData is returned by RenderChart when every table is empty.
var ErrNoChartData = errors.New("render chart: no data to plot")

// RenderChart draws every available chart into one PNG grid, two charts per
// row.
func RenderChart(w io.Writer, records []model.Record, res aggregate.Result) error {
	specs := chartSpecs(records, res)
	if len(specs) == 0 {
		return ErrNoChartData
	}

	const cols = 2
	rows := (len(specs) + cols - 1) / cols
	tileW, tileH := 7.5*vg.Inch, 6.5*vg.Inch

	img := vgimg.New(cols*tileW, vg.Length(rows)*tileH)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	for i, spec := range specs {
		p, err := newPlot(spec)
		if err != nil {
			return err
		}
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode chart png: %w", err)
	}
	return nil
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func reversedFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
