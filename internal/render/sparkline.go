package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// ErrNoData is returned when a bucket has no finite daily value to plot.
var ErrNoData = errors.New("no data to plot")

// SparklineOptions sizes and colors a PNG sparkline.
type SparklineOptions struct {
	Width    int
	Height   int
	MaxColor string
	MinColor string
}

// DefaultSparklineOptions uses the same line colors as the SVG cells.
func DefaultSparklineOptions() SparklineOptions {
	style := DefaultStyle()
	return SparklineOptions{
		Width:    480,
		Height:   240,
		MaxColor: style.MaxLineColor,
		MinColor: style.MinLineColor,
	}
}

// Sparkline writes a PNG chart of b's daily max and min on the same fixed
// 0..31 day and 0..44 °C axes as the heatmap cells.
func Sparkline(w io.Writer, b domain.MonthBucket, opts SparklineOptions) error {
	var series []chart.Series
	if s, ok := dailySeries("max", b.DailyValues, func(r domain.DailyRecord) float64 { return r.MaxTemperature }, opts.MaxColor); ok {
		series = append(series, s)
	}
	if s, ok := dailySeries("min", b.DailyValues, func(r domain.DailyRecord) float64 { return r.MinTemperature }, opts.MinColor); ok {
		series = append(series, s)
	}
	if len(series) == 0 {
		return fmt.Errorf("sparkline %s: %w", b.Key(), ErrNoData)
	}

	graph := chart.Chart{
		Title:      b.Tooltip(),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "day", Range: &chart.ContinuousRange{Min: 0, Max: 31}},
		YAxis:      chart.YAxis{Name: "°C", Range: &chart.ContinuousRange{Min: 0, Max: 44}},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("sparkline %s: %w", b.Key(), err)
	}
	return nil
}

// dailySeries plots the finite values of one field against their index in the
// month. A lone point is doubled so the series still has an x extent.
func dailySeries(name string, values []domain.DailyRecord, field func(domain.DailyRecord) float64, color string) (chart.ContinuousSeries, bool) {
	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, r := range values {
		v := field(r)
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	switch len(xs) {
	case 0:
		return chart.ContinuousSeries{}, false
	case 1:
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(color, "#")),
			StrokeWidth: 2,
		},
	}, true
}
