package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DefaultMinYear is the first calendar year kept after loading.
const DefaultMinYear = 2008

// RawDailyRow is one unparsed row of the daily temperature file.
type RawDailyRow struct {
	Date           string `json:"date"`
	MaxTemperature string `json:"max_temperature"`
	MinTemperature string `json:"min_temperature"`
}

// DailyRecord is a parsed daily observation. Temperatures are NaN when the
// source value was missing or not numeric.
type DailyRecord struct {
	Date           time.Time
	MaxTemperature float64
	MinTemperature float64
}

// Year returns the UTC calendar year of the record.
func (r DailyRecord) Year() int { return r.Date.UTC().Year() }

// Month returns the 0-based UTC month index of the record (January = 0).
func (r DailyRecord) Month() int { return int(r.Date.UTC().Month()) - 1 }

// MonthBucket is the aggregate of all daily records sharing a (year, month).
type MonthBucket struct {
	Year           int
	Month          int // 0-based
	MaxTemperature float64
	MinTemperature float64
	DailyValues    []DailyRecord
}

// Key returns the bucket's "YYYY-MM" label with a 1-based month.
func (b MonthBucket) Key() string {
	return fmt.Sprintf("%d-%02d", b.Year, b.Month+1)
}

// Tooltip returns the hover text shown for the bucket's cell.
func (b MonthBucket) Tooltip() string {
	return fmt.Sprintf("Date: %s, max: %s, min: %s",
		b.Key(), FormatTemperature(b.MaxTemperature), FormatTemperature(b.MinTemperature))
}

// FormatTemperature renders a temperature with the shortest exact decimal
// representation ("15", "15.5", "-0.3") and "NaN" for missing values.
func FormatTemperature(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
