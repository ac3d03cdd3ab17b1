// Package layout derives the heatmap's axes and coordinate scales from
// aggregated month buckets. Everything here is pure: a Layout is built once
// per dataset and only the color mapping is re-evaluated when the display
// mode changes.
package layout

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

const (
	// DefaultPadding is the band gap as a fraction of the step.
	DefaultPadding = 0.25

	// cellOverhang widens each cell rect past its band so adjacent years touch.
	cellOverhang = 10.0
	// sparkInset keeps sparklines off the cell border.
	sparkInset = 2.0

	sparkDayMax  = 31.0
	sparkTempMax = 44.0
)

// Dimensions describes the drawing canvas.
type Dimensions struct {
	Width        float64 `yaml:"width" validate:"gt=0"`
	Height       float64 `yaml:"height" validate:"gt=0"`
	MarginTop    float64 `yaml:"margin_top" validate:"gte=0"`
	MarginRight  float64 `yaml:"margin_right" validate:"gte=0"`
	MarginBottom float64 `yaml:"margin_bottom" validate:"gte=0"`
	MarginLeft   float64 `yaml:"margin_left" validate:"gte=0"`
	Padding      float64 `yaml:"padding" validate:"gte=0,lt=1"`
}

// DefaultDimensions is a 1000x1000 canvas with 100px margins.
var DefaultDimensions = Dimensions{
	Width:        1000,
	Height:       1000,
	MarginTop:    100,
	MarginRight:  100,
	MarginBottom: 100,
	MarginLeft:   100,
	Padding:      DefaultPadding,
}

// PlotWidth is the width inside the margins, never negative.
func (d Dimensions) PlotWidth() float64 {
	return math.Max(0, d.Width-d.MarginLeft-d.MarginRight)
}

// PlotHeight is the height inside the margins, never negative.
func (d Dimensions) PlotHeight() float64 {
	return math.Max(0, d.Height-d.MarginTop-d.MarginBottom)
}

// AxisModel holds the categorical domains of the two axes.
type AxisModel struct {
	Years  []int
	Months [12]string
}

// NewAxisModel pairs the given years with the 12 month names.
func NewAxisModel(years []int) AxisModel {
	ys := make([]int, len(years))
	copy(ys, years)
	return AxisModel{Years: ys, Months: MonthNames()}
}

// MonthNames returns the long month names, January first.
func MonthNames() [12]string {
	var names [12]string
	for i := range names {
		names[i] = time.Month(i + 1).String()
	}
	return names
}

// Field picks the daily temperature a sparkline traces.
type Field uint8

const (
	MaxField Field = iota
	MinField
)

func (f Field) value(r domain.DailyRecord) float64 {
	if f == MinField {
		return r.MinTemperature
	}
	return r.MaxTemperature
}

// Cell is the rectangle a bucket occupies, in plot coordinates.
type Cell struct {
	X, Y          float64
	Width, Height float64
}

// Layout is the full coordinate model of one heatmap.
type Layout struct {
	Axis       AxisModel
	Dimensions Dimensions
	X          *Band[int]
	Y          *Band[string]
	SparkX     Linear
	SparkY     Linear
	Color      ColorScale
}

// Build derives every scale from the axis model and canvas. It never fails;
// an empty year domain yields a single-band-wide degenerate x scale.
func Build(axis AxisModel, dims Dimensions) *Layout {
	x := NewBand(axis.Years, 0, dims.PlotWidth(), dims.Padding)
	y := NewBand(axis.Months[:], 0, dims.PlotHeight(), dims.Padding)

	return &Layout{
		Axis:       axis,
		Dimensions: dims,
		X:          x,
		Y:          y,
		SparkX:     NewLinear(0, sparkDayMax, sparkInset, x.Bandwidth()+cellOverhang-sparkInset),
		SparkY:     NewLinear(0, sparkTempMax, y.Bandwidth()-sparkInset, sparkInset),
		Color:      NewColorScale(),
	}
}

// Cell returns the rectangle for b, or false when b's year or month is not
// on the axes.
func (l *Layout) Cell(b domain.MonthBucket) (Cell, bool) {
	if b.Month < 0 || b.Month >= len(l.Axis.Months) {
		return Cell{}, false
	}
	x, ok := l.X.Position(b.Year)
	if !ok {
		return Cell{}, false
	}
	y, ok := l.Y.Position(l.Axis.Months[b.Month])
	if !ok {
		return Cell{}, false
	}
	return Cell{
		X:      x,
		Y:      y,
		Width:  l.X.Bandwidth() + cellOverhang,
		Height: l.Y.Bandwidth(),
	}, true
}

// CellColor returns b's fill under mode.
func (l *Layout) CellColor(b domain.MonthBucket, mode Mode) string {
	return l.Color.Color(mode.Value(b))
}

// Colors returns one fill per bucket under mode. Only the color scale is
// consulted; buckets are not modified.
func (l *Layout) Colors(buckets []domain.MonthBucket, mode Mode) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = l.CellColor(b, mode)
	}
	return out
}

// SparklinePath returns SVG path data tracing field across values, in
// cell-local coordinates. The x position is the index within values. NaN
// values break the line so the next valid point starts a new segment.
func (l *Layout) SparklinePath(values []domain.DailyRecord, field Field) string {
	var sb strings.Builder
	pen := false
	for i, r := range values {
		v := field.value(r)
		if math.IsNaN(v) {
			pen = false
			continue
		}
		if pen {
			sb.WriteByte('L')
		} else {
			sb.WriteByte('M')
			pen = true
		}
		sb.WriteString(FormatCoord(l.SparkX.Scale(float64(i))))
		sb.WriteByte(',')
		sb.WriteString(FormatCoord(l.SparkY.Scale(v)))
	}
	return sb.String()
}

// FormatCoord rounds to 1/100 px and drops trailing zeros.
func FormatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
