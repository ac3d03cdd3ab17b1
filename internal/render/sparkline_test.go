package render

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestSparkline_PNG(t *testing.T) {
	hm := sampleHeatmap()
	jan, ok := hm.Bucket(2008, 0)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, Sparkline(&buf, jan, DefaultSparklineOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSparkline_SinglePoint(t *testing.T) {
	b := domain.Aggregate([]domain.DailyRecord{day(2010, time.May, 1, 25, math.NaN())})[0]

	var buf bytes.Buffer
	require.NoError(t, Sparkline(&buf, b, DefaultSparklineOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSparkline_NoData(t *testing.T) {
	hm := sampleHeatmap()
	feb, ok := hm.Bucket(2008, 1)
	require.True(t, ok)

	var buf bytes.Buffer
	err := Sparkline(&buf, feb, DefaultSparklineOptions())
	require.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "2008-02")
	assert.Zero(t, buf.Len())
}

func TestDailySeries_SkipsNaN(t *testing.T) {
	values := []domain.DailyRecord{
		{MaxTemperature: 20},
		{MaxTemperature: math.NaN()},
		{MaxTemperature: 22},
	}
	s, ok := dailySeries("max", values, func(r domain.DailyRecord) float64 { return r.MaxTemperature }, "#b2182b")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 2}, s.XValues)
	assert.Equal(t, []float64{20, 22}, s.YValues)
}
