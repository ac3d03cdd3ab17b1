package domain

import (
	"math"
	"slices"
)

type monthKey struct {
	year  int
	month int
}

// Aggregate groups records into one MonthBucket per distinct (year, month),
// in first-seen order. NaN temperatures are skipped when computing extremes.
// An empty input yields an empty, non-nil slice.
func Aggregate(records []DailyRecord) []MonthBucket {
	index := make(map[monthKey]int)
	buckets := make([]MonthBucket, 0)

	for _, r := range records {
		k := monthKey{year: r.Year(), month: r.Month()}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, MonthBucket{
				Year:           k.year,
				Month:          k.month,
				MaxTemperature: math.NaN(),
				MinTemperature: math.NaN(),
			})
		}
		b := &buckets[i]
		b.DailyValues = append(b.DailyValues, r)
		b.MaxTemperature = nanMax(b.MaxTemperature, r.MaxTemperature)
		b.MinTemperature = nanMin(b.MinTemperature, r.MinTemperature)
	}
	return buckets
}

// Years returns the distinct UTC years present in records, ascending.
func Years(records []DailyRecord) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range records {
		y := r.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// nanMax returns the larger of acc and v, ignoring NaN on either side.
func nanMax(acc, v float64) float64 {
	switch {
	case math.IsNaN(v):
		return acc
	case math.IsNaN(acc), v > acc:
		return v
	default:
		return acc
	}
}

func nanMin(acc, v float64) float64 {
	switch {
	case math.IsNaN(v):
		return acc
	case math.IsNaN(acc), v < acc:
		return v
	default:
		return acc
	}
}
