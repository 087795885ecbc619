package results

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"wolfsheep/internal/sims/wolfsheep"
)

// ErrTooFewSamples is returned when a series is too short to plot.
var ErrTooFewSamples = errors.New("need at least two samples to plot")

var (
	wolfStroke  = drawing.Color{R: 0xCC, G: 0x00, B: 0x00, A: 255}
	sheepStroke = drawing.Color{R: 0x48, G: 0x3D, B: 0x8B, A: 255}
)

// ChartOptions sizes the rendered chart. Zero values pick 800x400.
type ChartOptions struct {
	Width, Height int
	Title         string
}

// RenderChart draws the Sheep and Wolves populations against the step number
// as a PNG.
func RenderChart(w io.Writer, samples []wolfsheep.Sample, opts ChartOptions) error {
	if len(samples) < 2 {
		return ErrTooFewSamples
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	steps := make([]float64, len(samples))
	sheep := make([]float64, len(samples))
	wolves := make([]float64, len(samples))
	yMax := 1.0
	for i, s := range samples {
		steps[i] = float64(s.Step)
		sheep[i] = float64(s.Sheep)
		wolves[i] = float64(s.Wolves)
		yMax = max(yMax, sheep[i], wolves[i])
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Population",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Wolves",
				XValues: steps,
				YValues: wolves,
				Style:   chart.Style{StrokeColor: wolfStroke, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Sheep",
				XValues: steps,
				YValues: sheep,
				Style:   chart.Style{StrokeColor: sheepStroke, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
