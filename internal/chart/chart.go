// Package chart draws the six-panel analysis figure as a PNG image.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Figure geometry.
const (
	Rows = 2
	Cols = 3

	Width  = 18 * vg.Inch
	Height = 12 * vg.Inch

	// DefaultDPI is the resolution used when none is configured.
	DefaultDPI = 300

	// HistogramBins is the number of LoanAmount histogram bins.
	HistogramBins = 30
)

var (
	approvedColor = color.RGBA{G: 128, A: 255}
	rejectedColor = color.RGBA{R: 255, A: 255}
	histColor     = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// Options controls the rendered image.
type Options struct {
	DPI int
}

// WriteFile draws the figure for res and saves it as a PNG at path.
func WriteFile(path string, res *analysis.Result, opts Options) (err error) {
	out, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()

	return Render(out, res, opts)
}

// Render draws the figure for res and encodes it as PNG into w.
func Render(w io.Writer, res *analysis.Result, opts Options) error {
	plots, err := Panels(res)
	if err != nil {
		return err
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	img := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      Rows,
		Cols:      Cols,
		PadX:      vg.Centimeter,
		PadY:      vg.Centimeter,
		PadTop:    vg.Centimeter / 2,
		PadBottom: vg.Centimeter / 2,
		PadLeft:   vg.Centimeter / 2,
		PadRight:  vg.Centimeter / 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// Panels builds the six plots in row-major order: status distribution,
// approval by gender, approval by education, income distribution, loan
// amount distribution, approval by credit history.
func Panels(res *analysis.Result) ([][]*plot.Plot, error) {
	builders := []func(*analysis.Result) (*plot.Plot, error){
		statusDistribution,
		func(r *analysis.Result) (*plot.Plot, error) {
			return stacked(r.Demographic(core.ColGender), "Loan Approval by Gender", "Gender")
		},
		func(r *analysis.Result) (*plot.Plot, error) {
			return stacked(r.Demographic(core.ColEducation), "Loan Approval by Education", "Education")
		},
		incomeDistribution,
		loanAmountDistribution,
		func(r *analysis.Result) (*plot.Plot, error) {
			return stacked(r.CreditHistory, "Loan Approval by Credit History", "Credit History (1=Good, 0=Bad)")
		},
	}

	plots := make([][]*plot.Plot, Rows)
	for i, build := range builders {
		p, err := build(res)
		if err != nil {
			return nil, fmt.Errorf("failed to build chart panel %d: %w", i+1, err)
		}
		row := i / Cols
		plots[row] = append(plots[row], p)
	}
	return plots, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func barWidth() vg.Length {
	return vg.Points(40)
}

func statusDistribution(res *analysis.Result) (*plot.Plot, error) {
	p := newPlot("Loan Status Distribution", "Loan Status", "Count")

	names := make([]string, len(res.StatusCounts))
	for i, vc := range res.StatusCounts {
		bar, err := plotter.NewBarChart(plotter.Values{float64(vc.Count)}, barWidth())
		if err != nil {
			return nil, err
		}
		bar.XMin = float64(i)
		bar.Color = approvedColor
		if i%2 == 1 {
			bar.Color = rejectedColor
		}
		bar.LineStyle.Width = 0
		p.Add(bar)
		names[i] = vc.Value
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}
	return p, nil
}

// stacked draws one bar per cross-tab row with a segment per status.
func stacked(ct *analysis.CrossTab, title, xLabel string) (*plot.Plot, error) {
	p := newPlot(title, xLabel, "Count")
	if ct == nil || len(ct.Rows) == 0 {
		return p, nil
	}

	var below *plotter.BarChart
	for i, status := range ct.Statuses {
		values := make(plotter.Values, len(ct.Rows))
		for j, row := range ct.Rows {
			values[j] = float64(ct.Count(row, status))
		}
		bar, err := plotter.NewBarChart(values, barWidth())
		if err != nil {
			return nil, err
		}
		bar.Color = plotutil.Color(i)
		bar.LineStyle.Width = 0
		if below != nil {
			bar.StackOn(below)
		}
		below = bar
		p.Add(bar)
		p.Legend.Add(status, bar)
	}
	p.Legend.Top = true
	p.NominalX(ct.Rows...)
	return p, nil
}

func incomeDistribution(res *analysis.Result) (*plot.Plot, error) {
	p := newPlot("Income Distribution", "", "Income")
	columns := []string{core.ColApplicantIncome, core.ColCoapplicantIncome}
	for i, col := range columns {
		values, err := finiteValues(res, col)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(barWidth(), float64(i), plotter.Values(values))
		if err != nil {
			return nil, err
		}
		p.Add(box)
	}
	p.NominalX(columns...)
	return p, nil
}

func loanAmountDistribution(res *analysis.Result) (*plot.Plot, error) {
	p := newPlot("Loan Amount Distribution", "Loan Amount", "Frequency")
	values, err := finiteValues(res, core.ColLoanAmount)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return p, nil
	}
	hist, err := plotter.NewHist(plotter.Values(values), HistogramBins)
	if err != nil {
		return nil, err
	}
	hist.FillColor = histColor
	p.Add(hist)
	return p, nil
}

// finiteValues returns the plottable values of a numeric column.
func finiteValues(res *analysis.Result, column string) ([]float64, error) {
	values, err := analysis.Values(res.Observations, column)
	if err != nil {
		return nil, err
	}
	finite := values[:0]
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	return finite, nil
}
