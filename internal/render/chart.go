// Package render draws the aligned curve chart and the text diagnostics.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"yieldcurve/internal/domain"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	usColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	caColor = color.RGBA{R: 0xff, A: 0xff}
)

// ChartOptions controls the output image.
type ChartOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultChartOptions is a 10x5 inch image at 150 dpi.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "Yield Curve: US vs Canada",
		Width:  10 * vg.Inch,
		Height: 5 * vg.Inch,
		DPI:    150,
	}
}

// NewChart builds the two-line plot over the aligned tenors, which form a
// categorical x axis in catalog order.
func NewChart(curve domain.AlignedCurve, opts ChartOptions) (*plot.Plot, error) {
	if len(curve.Points) == 0 {
		return nil, domain.ErrNoOverlap
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Maturity"
	p.Y.Label.Text = "Yield (%)"

	grid := plotter.NewGrid()
	dotted := []vg.Length{vg.Points(1), vg.Points(3)}
	grid.Vertical.Dashes = dotted
	grid.Horizontal.Dashes = dotted
	grid.Vertical.Color = color.Gray{Y: 0xb0}
	grid.Horizontal.Color = color.Gray{Y: 0xb0}
	p.Add(grid)

	a := make(plotter.XYs, len(curve.Points))
	b := make(plotter.XYs, len(curve.Points))
	for i, pt := range curve.Points {
		a[i] = plotter.XY{X: float64(i), Y: pt.A}
		b[i] = plotter.XY{X: float64(i), Y: pt.B}
	}

	if err := addSeries(p, curve.A.Name(), a, usColor); err != nil {
		return nil, err
	}
	if err := addSeries(p, curve.B.Name(), b, caColor); err != nil {
		return nil, err
	}

	p.NominalX(curve.Labels()...)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func addSeries(p *plot.Plot, name string, xys plotter.XYs, c color.Color) error {
	line, err := seriesLine(xys, c)
	if err != nil {
		return fmt.Errorf("plot %s: %w", name, err)
	}
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

// seriesLine is a plain curve; points are not marked.
func seriesLine(xys plotter.XYs, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(2)
	return line, nil
}

// WritePNG renders the chart for curve as PNG into w.
func WritePNG(w io.Writer, curve domain.AlignedCurve, opts ChartOptions) error {
	p, err := NewChart(curve, opts)
	if err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderFile writes the chart to path.
func RenderFile(path string, curve domain.AlignedCurve, opts ChartOptions) error {
	if len(curve.Points) == 0 {
		return domain.ErrNoOverlap
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := WritePNG(f, curve, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
