// Package report summarizes sweep results as text and charts.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"window-frost/internal/sweep"
)

// Summary writes the top results as a ranked table.
func Summary(w io.Writer, results []sweep.Result, top int, dt float64, elapsed time.Duration) error {
	reached := 0
	for _, r := range results {
		if r.Reached() {
			reached++
		}
	}
	if _, err := fmt.Fprintf(w, "%s scenarios, %s froze the pane (elapsed %s)\n",
		humanize.Comma(int64(len(results))), humanize.Comma(int64(reached)), elapsed.Round(time.Millisecond)); err != nil {
		return err
	}
	for i := 0; i < len(results) && i < top; i++ {
		r := results[i]
		frozen := "never"
		if r.Reached() {
			frozen = fmt.Sprintf("step %s (%ss)", humanize.Comma(int64(r.FrozenStep)), humanize.Ftoa(round(float64(r.FrozenStep)*dt, 2)))
		}
		if _, err := fmt.Fprintf(w, "%2d) frozen %-20s final %5.1f%%  %s\n", i+1, frozen, r.FinalCoverage*100, r.Params); err != nil {
			return err
		}
	}
	return nil
}

func round(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}

var seriesColors = []drawing.Color{
	{R: 0, G: 205, B: 249, A: 255},
	{R: 255, G: 150, B: 60, A: 255},
	{R: 120, G: 200, B: 80, A: 255},
	{R: 200, G: 90, B: 200, A: 255},
	{R: 240, G: 90, B: 90, A: 255},
}

// CoverageChart plots frozen coverage over simulated time for the first top
// results.
func CoverageChart(results []sweep.Result, top int, dt float64) chart.Chart {
	var series []chart.Series
	for i := 0; i < len(results) && i < top; i++ {
		r := results[i]
		xs := make([]float64, len(r.Coverage))
		ys := make([]float64, len(r.Coverage))
		for j, c := range r.Coverage {
			xs[j] = float64(j+1) * dt
			ys[j] = c * 100
		}
		series = append(series, chart.ContinuousSeries{
			Name:    r.Params.String(),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[i%len(seriesColors)], StrokeWidth: 2.0},
		})
	}
	graph := chart.Chart{
		Width:  960,
		Height: 480,
		XAxis: chart.XAxis{
			Name:  "seconds",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name:  "frozen %",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

// WriteCoveragePNG renders CoverageChart as a PNG.
func WriteCoveragePNG(w io.Writer, results []sweep.Result, top int, dt float64) error {
	if top <= 0 || len(results) == 0 {
		return fmt.Errorf("no results to plot")
	}
	graph := CoverageChart(results, top, dt)
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render coverage chart: %w", err)
	}
	return nil
}
