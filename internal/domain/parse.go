package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts lists the accepted date formats, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDailyRow converts a raw row into a DailyRecord. An unparseable date is
// an error; malformed temperatures become NaN.
func ParseDailyRow(row RawDailyRow) (DailyRecord, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return DailyRecord{}, err
	}
	return DailyRecord{
		Date:           date,
		MaxTemperature: ParseTemperature(row.MaxTemperature),
		MinTemperature: ParseTemperature(row.MinTemperature),
	}, nil
}

// ParseTemperature parses a Celsius value, returning NaN for empty or
// non-numeric input.
func ParseTemperature(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

// FilterMinYear returns the records whose UTC year is at least minYear,
// preserving input order.
func FilterMinYear(records []DailyRecord, minYear int) []DailyRecord {
	out := make([]DailyRecord, 0, len(records))
	for _, r := range records {
		if r.Year() >= minYear {
			out = append(out, r)
		}
	}
	return out
}
