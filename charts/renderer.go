// Package charts renders report artifacts as PNG files.
package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"listings-eda/models"
)

var barColor = drawing.ColorFromHex("4c72b0")

// Renderer writes charts into one output directory.
type Renderer struct {
	dir    string
	width  int
	height int
}

// NewRenderer returns a Renderer writing width x height images into dir.
func NewRenderer(dir string, width, height int) *Renderer {
	return &Renderer{dir: dir, width: width, height: height}
}

// Dir returns the output directory.
func (r *Renderer) Dir() string { return r.dir }

// BarSpec describes a vertical bar chart.
type BarSpec struct {
	Title        string
	YLabel       string
	Labels       []string
	Values       []float64
	RotateLabels bool
}

// Bar renders a vertical bar chart, bars in the given order.
func (r *Renderer) Bar(file string, bar BarSpec) (string, error) {
	if len(bar.Values) == 0 {
		return "", fmt.Errorf("chart %s: no bars", file)
	}
	if len(bar.Labels) != len(bar.Values) {
		return "", fmt.Errorf("chart %s: %d labels for %d values", file, len(bar.Labels), len(bar.Values))
	}

	bars := make([]chart.Value, len(bar.Values))
	for i, v := range bar.Values {
		bars[i] = chart.Value{Label: bar.Labels[i], Value: v, Style: barStyle()}
	}

	xAxis := chart.Style{}
	bottom := 20
	if bar.RotateLabels {
		xAxis.TextRotationDegrees = 45
		bottom = 60
	}
	return r.renderBars(file, bar.Title, bar.YLabel, bars, 40, 20, xAxis, bottom)
}

// Histogram renders equal-width bins as adjacent bars. Only every tenth bin
// edge is labelled.
func (r *Renderer) Histogram(file, title, yLabel string, bins []models.HistogramBin) (string, error) {
	if len(bins) == 0 {
		return "", fmt.Errorf("chart %s: no bins", file)
	}

	step := len(bins) / 5
	if step < 1 {
		step = 1
	}
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		label := ""
		if i%step == 0 || i == len(bins)-1 {
			label = strconv.FormatFloat(b.Lower, 'f', 0, 64)
		}
		bars[i] = chart.Value{Label: label, Value: float64(b.Count), Style: barStyle()}
	}
	return r.renderBars(file, title, yLabel, bars, 10, 1, chart.Style{}, 20)
}

func (r *Renderer) renderBars(file, title, yLabel string, bars []chart.Value, barWidth, spacing int, xAxis chart.Style, bottom int) (string, error) {
	maxVal := 0.0
	for _, b := range bars {
		maxVal = math.Max(maxVal, b.Value)
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	width := r.width
	if need := 160 + len(bars)*(barWidth+spacing); need > width {
		width = need
	}

	graph := chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       r.height,
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: bottom}},
		XAxis:        xAxis,
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.05},
		},
		Bars: bars,
	}

	return r.write(file, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

func barStyle() chart.Style {
	return chart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1}
}

// write creates dir/file and hands it to render.
func (r *Renderer) write(file string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("chart: create output dir: %w", err)
	}

	path := filepath.Join(r.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("chart: create file %q: %w", path, err)
	}

	if err := render(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("chart: render %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("chart: close %q: %w", path, err)
	}
	return path, nil
}
