package layout

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuckets() []domain.MonthBucket {
	records := []domain.DailyRecord{
		{Date: time.Date(2008, time.January, 5, 0, 0, 0, 0, time.UTC), MaxTemperature: 10, MinTemperature: 2},
		{Date: time.Date(2008, time.January, 20, 0, 0, 0, 0, time.UTC), MaxTemperature: 15, MinTemperature: -1},
		{Date: time.Date(2008, time.February, 1, 0, 0, 0, 0, time.UTC), MaxTemperature: 5, MinTemperature: -5},
		{Date: time.Date(2009, time.July, 1, 0, 0, 0, 0, time.UTC), MaxTemperature: 33, MinTemperature: 27},
	}
	return domain.Aggregate(records)
}

func TestMonthNames(t *testing.T) {
	names := MonthNames()
	assert.Len(t, names, 12)
	assert.Equal(t, "January", names[0])
	assert.Equal(t, "December", names[11])
}

func TestNewAxisModel(t *testing.T) {
	years := []int{2008, 2009}
	axis := NewAxisModel(years)
	years[0] = 1999

	assert.Equal(t, []int{2008, 2009}, axis.Years, "axis keeps its own copy")
	assert.Len(t, axis.Months, 12)

	empty := NewAxisModel(nil)
	assert.Empty(t, empty.Years)
	assert.Len(t, empty.Months, 12, "months never depend on data")
}

func TestBuild_SparklineScales(t *testing.T) {
	l := Build(NewAxisModel([]int{2008, 2009}), DefaultDimensions)

	x0, x1 := l.SparkX.Range()
	assert.InDelta(t, 2, x0, 1e-9)
	assert.InDelta(t, l.X.Bandwidth()+8, x1, 1e-9)

	y0, y1 := l.SparkY.Range()
	assert.InDelta(t, l.Y.Bandwidth()-2, y0, 1e-9)
	assert.InDelta(t, 2, y1, 1e-9)

	d0, d1 := l.SparkY.Domain()
	assert.Equal(t, 0.0, d0)
	assert.Equal(t, 44.0, d1)
}

func TestLayout_Cell(t *testing.T) {
	l := Build(NewAxisModel([]int{2008, 2009}), DefaultDimensions)

	jan := domain.MonthBucket{Year: 2008, Month: 0}
	cell, ok := l.Cell(jan)
	require.True(t, ok)
	x, _ := l.X.Position(2008)
	y, _ := l.Y.Position("January")
	assert.InDelta(t, x, cell.X, 1e-9)
	assert.InDelta(t, y, cell.Y, 1e-9)
	assert.InDelta(t, l.X.Bandwidth()+10, cell.Width, 1e-9)
	assert.InDelta(t, l.Y.Bandwidth(), cell.Height, 1e-9)

	_, ok = l.Cell(domain.MonthBucket{Year: 2030, Month: 0})
	assert.False(t, ok)
	_, ok = l.Cell(domain.MonthBucket{Year: 2008, Month: 12})
	assert.False(t, ok)
}

func TestLayout_ColorsTogglesWithoutMutation(t *testing.T) {
	buckets := sampleBuckets()
	before := make([]domain.MonthBucket, len(buckets))
	copy(before, buckets)

	l := Build(NewAxisModel([]int{2008, 2009}), DefaultDimensions)

	maxColors := l.Colors(buckets, ShowMax)
	minColors := l.Colors(buckets, ShowMin)

	c := NewColorScale()
	assert.Equal(t, []string{c.Color(15), c.Color(5), c.Color(33)}, maxColors)
	assert.Equal(t, []string{c.Color(-1), c.Color(-5), c.Color(27)}, minColors)
	assert.NotEqual(t, maxColors[2], minColors[2])

	if diff := cmp.Diff(before, buckets); diff != "" {
		t.Errorf("buckets changed by recoloring (-before +after):\n%s", diff)
	}
}

func TestLayout_SparklinePath(t *testing.T) {
	l := Build(NewAxisModel([]int{2008}), DefaultDimensions)
	values := []domain.DailyRecord{
		{MaxTemperature: 0, MinTemperature: 0},
		{MaxTemperature: 44, MinTemperature: math.NaN()},
		{MaxTemperature: 22, MinTemperature: 11},
	}

	maxPath := l.SparklinePath(values, MaxField)
	assert.True(t, strings.HasPrefix(maxPath, "M2,"), maxPath)
	assert.Equal(t, 2, strings.Count(maxPath, "L"))
	assert.Contains(t, maxPath, ",2L", "44C maps to the top inset")

	minPath := l.SparklinePath(values, MinField)
	assert.Equal(t, 2, strings.Count(minPath, "M"), "NaN starts a new segment: %s", minPath)
	assert.Zero(t, strings.Count(minPath, "L"))
	assert.NotContains(t, minPath, "NaN")

	assert.Empty(t, l.SparklinePath(nil, MaxField))
}

func TestBuild_EmptyAxis(t *testing.T) {
	l := Build(NewAxisModel(nil), DefaultDimensions)

	assert.Empty(t, l.X.Domain())
	assert.Greater(t, l.X.Bandwidth(), 0.0)
	assert.Len(t, l.Y.Domain(), 12)
	assert.Empty(t, l.Colors(nil, ShowMin))
}

func TestDimensions_Plot(t *testing.T) {
	assert.Equal(t, 800.0, DefaultDimensions.PlotWidth())
	assert.Equal(t, 800.0, DefaultDimensions.PlotHeight())

	tiny := Dimensions{Width: 50, Height: 50, MarginLeft: 40, MarginRight: 40}
	assert.Equal(t, 0.0, tiny.PlotWidth())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ShowMax, "max": ShowMax, "MIN": ShowMin, "showMin": ShowMin, "showMax": ShowMax} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("avg")
	require.Error(t, err)

	assert.Equal(t, ShowMin, ShowMax.Toggle())
	assert.Equal(t, ShowMax, ShowMin.Toggle())
	assert.Equal(t, "min", ShowMin.String())
	b := domain.MonthBucket{MaxTemperature: 30, MinTemperature: 20}
	assert.Equal(t, 30.0, ShowMax.Value(b))
	assert.Equal(t, 20.0, ShowMin.Value(b))
}
