// Package chart renders the rating distribution as a bar chart image.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/starchartio/starchart/internal/analysis"
	"github.com/starchartio/starchart/internal/config"
)

// Options controls where and how the chart is written.
type Options struct {
	// Path of the image file; the extension picks the format (.png or .svg).
	Path string
	// Title of the left panel. Empty uses the default.
	Title string
	// Scale maps rating values onto the color ramp.
	Scale config.Scale
}

const (
	panelWidth  = 14 * vg.Centimeter
	panelHeight = 10 * vg.Centimeter
	barWidth    = vg.Length(18)
)

// ramp is the red-to-green gradient shared by both panels: low ratings red,
// high ratings green, category colors spread across the same range.
var ramp = []color.Color{
	color.RGBA{R: 0xD7, G: 0x30, B: 0x27, A: 0xFF},
	color.RGBA{R: 0xFC, G: 0x8D, B: 0x59, A: 0xFF},
	color.RGBA{R: 0xFE, G: 0xE0, B: 0x8B, A: 0xFF},
	color.RGBA{R: 0xA6, G: 0xD9, B: 0x6A, A: 0xFF},
	color.RGBA{R: 0x1A, G: 0x98, B: 0x50, A: 0xFF},
}

// Render writes a two-panel bar chart for the report: rating values on the
// left, categories on the right. Deterministic for identical reports.
func Render(report *analysis.Report, opts Options) error {
	left, err := valuePanel(report, opts)
	if err != nil {
		return fmt.Errorf("building rating panel: %w", err)
	}

	right, err := categoryPanel(report)
	if err != nil {
		return fmt.Errorf("building category panel: %w", err)
	}

	return write(opts.Path, [][]*plot.Plot{{left, right}})
}

func valuePanel(report *analysis.Report, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Ratings"
	}
	p.X.Label.Text = "Rating"
	p.Y.Label.Text = "Reviews"

	names := make([]string, len(report.Values))
	counts := make([]int, len(report.Values))
	for i, vc := range report.Values {
		names[i] = strconv.Itoa(vc.Value)
		counts[i] = vc.Count

		bar, err := singleBar(i, len(report.Values), vc.Count)
		if err != nil {
			return nil, err
		}
		bar.Color = valueColor(vc.Value, opts.Scale)
		p.Add(bar)
	}
	p.NominalX(names...)

	if err := finishPanel(p, counts); err != nil {
		return nil, err
	}
	return p, nil
}

func categoryPanel(report *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Categories"
	p.X.Label.Text = "Category"
	p.Y.Label.Text = "Reviews"

	names := make([]string, len(report.Categories))
	counts := make([]int, len(report.Categories))
	for i, cc := range report.Categories {
		names[i] = cc.Name
		counts[i] = cc.Count

		bar, err := singleBar(i, len(report.Categories), cc.Count)
		if err != nil {
			return nil, err
		}
		bar.Color = categoryColor(i, len(report.Categories))
		p.Add(bar)
	}
	p.NominalX(names...)

	if err := finishPanel(p, counts); err != nil {
		return nil, err
	}
	return p, nil
}

// singleBar builds a bar chart holding one visible bar at position index.
// BarChart colors all its bars alike, so each bar gets its own chart and the
// zero-height siblings keep the positions aligned.
func singleBar(index, total, count int) (*plotter.BarChart, error) {
	values := make(plotter.Values, total)
	values[index] = float64(count)

	bar, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bar.LineStyle.Width = 0
	return bar, nil
}

// finishPanel adds the count label above each bar and pads the vertical axis
// so the labels stay inside the frame.
func finishPanel(p *plot.Plot, counts []int) error {
	labels := plotter.XYLabels{}
	maxCount := 0
	for i, count := range counts {
		labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: float64(count)})
		labels.Labels = append(labels.Labels, strconv.Itoa(count))
		maxCount = max(maxCount, count)
	}

	if len(labels.Labels) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = draw.XCenter
			l.TextStyle[i].YAlign = draw.YBottom
		}
		l.Offset = vg.Point{Y: vg.Length(2)}
		p.Add(l)
	}

	p.Y.Min = 0
	p.Y.Max = math.Max(float64(maxCount)*1.15, 1)
	return nil
}

func valueColor(value int, scale config.Scale) color.Color {
	span := scale.Max - scale.Min
	if span <= 0 {
		return ramp[0]
	}

	idx := int(math.Round((float64(value) - scale.Min) / span * float64(len(ramp)-1)))
	return ramp[clamp(idx, 0, len(ramp)-1)]
}

func categoryColor(index, total int) color.Color {
	if total <= 1 {
		return ramp[len(ramp)/2]
	}
	return ramp[clamp(index*(len(ramp)-1)/(total-1), 0, len(ramp)-1)]
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// write composes the panels side by side and writes the image, flushing and
// closing the file before returning.
func write(path string, plots [][]*plot.Plot) error {
	var (
		base vg.CanvasSizer
		out  io.WriterTo
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img := vgimg.New(2*panelWidth, panelHeight)
		base, out = img, vgimg.PngCanvas{Canvas: img}
	case ".svg":
		svg := vgsvg.New(2*panelWidth, panelHeight)
		base, out = svg, svg
	default:
		return fmt.Errorf("unsupported chart format %q", filepath.Ext(path))
	}

	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX: 6 * vg.Millimeter, PadY: 4 * vg.Millimeter,
		PadTop: 4 * vg.Millimeter, PadBottom: 4 * vg.Millimeter,
		PadLeft: 4 * vg.Millimeter, PadRight: 4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(base))
	for i, row := range plots {
		for j, p := range row {
			p.Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if _, err := out.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing chart %s: %w", path, err)
	}

	return f.Close()
}
