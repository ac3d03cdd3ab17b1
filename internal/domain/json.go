package domain

import (
	"encoding/json"
	"math"
)

// encoding/json rejects NaN, so missing temperatures are written as null.

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func fromNullable(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

type dailyRecordJSON struct {
	Date           string   `json:"date"`
	MaxTemperature *float64 `json:"max_temperature"`
	MinTemperature *float64 `json:"min_temperature"`
}

// MarshalJSON writes the date as YYYY-MM-DD and NaN temperatures as null.
func (r DailyRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyRecordJSON{
		Date:           r.Date.UTC().Format("2006-01-02"),
		MaxTemperature: nullable(r.MaxTemperature),
		MinTemperature: nullable(r.MinTemperature),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *DailyRecord) UnmarshalJSON(data []byte) error {
	var aux dailyRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	date, err := parseDate(aux.Date)
	if err != nil {
		return err
	}
	r.Date = date
	r.MaxTemperature = fromNullable(aux.MaxTemperature)
	r.MinTemperature = fromNullable(aux.MinTemperature)
	return nil
}

type monthBucketJSON struct {
	Year           int           `json:"year"`
	Month          int           `json:"month"`
	MaxTemperature *float64      `json:"max_temperature"`
	MinTemperature *float64      `json:"min_temperature"`
	DailyValues    []DailyRecord `json:"daily_values"`
}

// MarshalJSON writes NaN extremes as null.
func (b MonthBucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(monthBucketJSON{
		Year:           b.Year,
		Month:          b.Month,
		MaxTemperature: nullable(b.MaxTemperature),
		MinTemperature: nullable(b.MinTemperature),
		DailyValues:    b.DailyValues,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (b *MonthBucket) UnmarshalJSON(data []byte) error {
	var aux monthBucketJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Year = aux.Year
	b.Month = aux.Month
	b.MaxTemperature = fromNullable(aux.MaxTemperature)
	b.MinTemperature = fromNullable(aux.MinTemperature)
	b.DailyValues = aux.DailyValues
	return nil
}
