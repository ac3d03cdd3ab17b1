package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_TwoMonths(t *testing.T) {
	records := []DailyRecord{
		day(2008, time.January, 5, 10, 2),
		day(2008, time.January, 20, 15, -1),
		day(2008, time.February, 1, 5, -5),
	}

	got := Aggregate(records)

	want := []MonthBucket{
		{Year: 2008, Month: 0, MaxTemperature: 15, MinTemperature: -1, DailyValues: records[:2]},
		{Year: 2008, Month: 1, MaxTemperature: 5, MinTemperature: -5, DailyValues: records[2:]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2008}, Years(records))
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Years(nil))
}

func TestAggregate_UniqueKeysAndBounds(t *testing.T) {
	var records []DailyRecord
	start := time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		maxT := 15 + 10*math.Sin(float64(i)/58)
		records = append(records, DailyRecord{Date: d, MaxTemperature: maxT, MinTemperature: maxT - 6 - float64(i%4)})
	}

	buckets := Aggregate(records)

	seen := make(map[string]bool)
	total := 0
	for _, b := range buckets {
		require.False(t, seen[b.Key()], "duplicate bucket %s", b.Key())
		seen[b.Key()] = true
		require.NotEmpty(t, b.DailyValues)
		total += len(b.DailyValues)
		for _, r := range b.DailyValues {
			assert.Equal(t, b.Year, r.Year())
			assert.Equal(t, b.Month, r.Month())
			assert.GreaterOrEqual(t, b.MaxTemperature, r.MaxTemperature)
			assert.LessOrEqual(t, b.MinTemperature, r.MinTemperature)
		}
	}
	assert.Equal(t, len(records), total)
	assert.Len(t, buckets, 27, "Jan 2008 through Mar 2010")
	assert.Equal(t, []int{2008, 2009, 2010}, Years(records))
}

func TestAggregate_PreservesInputOrder(t *testing.T) {
	records := []DailyRecord{
		day(2009, time.March, 3, 20, 15),
		day(2008, time.July, 1, 31, 27),
		day(2009, time.March, 1, 22, 16),
	}

	buckets := Aggregate(records)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2009-03", buckets[0].Key(), "first-seen key comes first")
	assert.Equal(t, "2008-07", buckets[1].Key())
	assert.Equal(t, 3, buckets[0].DailyValues[0].Date.Day())
	assert.Equal(t, 1, buckets[0].DailyValues[1].Date.Day())
	assert.Equal(t, []int{2008, 2009}, Years(records), "years are sorted")
}

func TestAggregate_NaNSkippedInExtremes(t *testing.T) {
	records := []DailyRecord{
		day(2008, time.March, 1, math.NaN(), 14),
		day(2008, time.March, 2, 21, math.NaN()),
		day(2008, time.March, 3, 19, 12),
	}

	buckets := Aggregate(records)

	require.Len(t, buckets, 1)
	b := buckets[0]
	assert.Equal(t, 21.0, b.MaxTemperature)
	assert.Equal(t, 12.0, b.MinTemperature)
	assert.Len(t, b.DailyValues, 3, "NaN records stay in the sparkline data")
}

func TestAggregate_AllNaNField(t *testing.T) {
	records := []DailyRecord{
		day(2011, time.August, 1, math.NaN(), 27),
		day(2011, time.August, 2, math.NaN(), 26.5),
	}

	b := Aggregate(records)[0]

	assert.True(t, math.IsNaN(b.MaxTemperature))
	assert.Equal(t, 26.5, b.MinTemperature)
	assert.Equal(t, "Date: 2011-08, max: NaN, min: 26.5", b.Tooltip())
}

func TestMonthBucket_Tooltip(t *testing.T) {
	b := MonthBucket{Year: 2015, Month: 8, MaxTemperature: 33.4, MinTemperature: 24}
	assert.Equal(t, "2015-09", b.Key())
	assert.Equal(t, "Date: 2015-09, max: 33.4, min: 24", b.Tooltip())
}

func TestMonthBucket_JSON(t *testing.T) {
	b := Aggregate([]DailyRecord{
		day(2012, time.May, 1, 28, math.NaN()),
		day(2012, time.May, 2, 29.5, 24.1),
	})[0]

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"year": 2012, "month": 4, "max_temperature": 29.5, "min_temperature": 24.1,
		"daily_values": [
			{"date": "2012-05-01", "max_temperature": 28, "min_temperature": null},
			{"date": "2012-05-02", "max_temperature": 29.5, "min_temperature": 24.1}
		]
	}`, string(data))

	var back MonthBucket
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(b, back, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
