package layout

import (
	"math"
	"sort"
)

const (
	// ColdestLabel and WarmestLabel annotate the two ends of the legend.
	ColdestLabel = "0 Celsius"
	WarmestLabel = "40 Celsius"

	// NoDataColor fills cells whose displayed temperature is missing.
	NoDataColor = "#cccccc"

	binWidth = 4.0
	binCount = 11
)

// spectralReversed is the 11-class spectral scheme ordered cold to warm.
var spectralReversed = []string{
	"#5e4fa2", "#3288bd", "#66c2a5", "#abdda4", "#e6f598", "#ffffbf",
	"#fee08b", "#fdae61", "#f46d43", "#d53e4f", "#9e0142",
}

// ColorScale is a step function from Celsius to one of 11 colors. Bin i
// covers [4i, 4i+4); values below 0 fall in the first bin and values of 40
// or more in the last.
type ColorScale struct {
	thresholds []float64 // inner boundaries 4..40
	colors     []string
}

// NewColorScale returns the heatmap's temperature color scale.
func NewColorScale() ColorScale {
	thresholds := make([]float64, 0, binCount-1)
	for i := 1; i < binCount; i++ {
		thresholds = append(thresholds, float64(i)*binWidth)
	}
	colors := make([]string, len(spectralReversed))
	copy(colors, spectralReversed)
	return ColorScale{thresholds: thresholds, colors: colors}
}

// Bin returns the bin index for v, or -1 for NaN.
func (c ColorScale) Bin(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	// Count thresholds <= v so a value on a boundary opens the upper bin.
	return sort.Search(len(c.thresholds), func(i int) bool { return c.thresholds[i] > v })
}

// Color returns the fill for v, or NoDataColor for NaN.
func (c ColorScale) Color(v float64) string {
	bin := c.Bin(v)
	if bin < 0 {
		return NoDataColor
	}
	return c.colors[bin]
}

// Colors returns the 11 output colors, coldest first.
func (c ColorScale) Colors() []string {
	out := make([]string, len(c.colors))
	copy(out, c.colors)
	return out
}

// Boundaries returns the 12 bin edges 0, 4, ..., 44.
func (c ColorScale) Boundaries() []float64 {
	out := make([]float64, 0, binCount+1)
	for i := 0; i <= binCount; i++ {
		out = append(out, float64(i)*binWidth)
	}
	return out
}

// Thresholds returns the 10 inner boundaries 4, 8, ..., 40.
func (c ColorScale) Thresholds() []float64 {
	out := make([]float64, len(c.thresholds))
	copy(out, c.thresholds)
	return out
}
