// Command genmock writes a synthetic daily temperature CSV and the month
// buckets the heatmap derives from it. The buckets come from the real domain
// package, so the fixture always matches pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv-out data/mock/temperature_daily.csv \
//	  -buckets-out data/mock/temperature_buckets.json \
//	  -from 2007-01-01 -to 2017-12-31 -seed 42
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// climate is a crude subtropical model: a sinusoidal annual cycle peaking in
// late July plus uniform day-to-day noise.
type climate struct {
	meanMax   float64
	amplitude float64
	spread    float64 // mean gap between daily max and min
	noise     float64
	missing   float64 // probability a reading is blank
}

var hongKong = climate{meanMax: 25.5, amplitude: 6.5, spread: 4.5, noise: 2.5, missing: 0.01}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the daily CSV")
	bucketsOut := flag.String("buckets-out", "", "output path for the expected buckets JSON (optional)")
	from := flag.String("from", "2007-01-01", "first day (YYYY-MM-DD)")
	to := flag.String("to", "2017-12-31", "last day (YYYY-MM-DD)")
	seed := flag.Uint64("seed", 42, "random seed")
	minYear := flag.Int("min-year", domain.DefaultMinYear, "minimum year applied to the expected buckets")
	flag.Parse()

	if *csvOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv-out")
	}
	start, err := time.Parse(time.DateOnly, *from)
	if err != nil {
		return fmt.Errorf("parse -from: %w", err)
	}
	end, err := time.Parse(time.DateOnly, *to)
	if err != nil {
		return fmt.Errorf("parse -to: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("-to %s is before -from %s", *to, *from)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	records := generate(rng, hongKong, start, end)
	log.Printf("generated %d days", len(records))

	if err := writeCSV(*csvOut, records); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	log.Printf("wrote CSV: %s", *csvOut)

	if *bucketsOut == "" {
		return nil
	}
	buckets := domain.Aggregate(domain.FilterMinYear(records, *minYear))
	if err := writeJSON(*bucketsOut, buckets); err != nil {
		return fmt.Errorf("writing buckets fixture: %w", err)
	}
	log.Printf("wrote buckets fixture: %s (%d buckets)", *bucketsOut, len(buckets))
	return nil
}

func generate(rng *rand.Rand, c climate, start, end time.Time) []domain.DailyRecord {
	days := int(end.Sub(start).Hours()/24) + 1
	records := make([]domain.DailyRecord, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		phase := 2 * math.Pi * float64(d.YearDay()-120) / 365.25
		maxT := c.meanMax + c.amplitude*math.Sin(phase) + c.noise*(rng.Float64()*2-1)
		minT := maxT - c.spread - c.noise*rng.Float64()

		rec := domain.DailyRecord{Date: d, MaxTemperature: round1(maxT), MinTemperature: round1(minT)}
		if rng.Float64() < c.missing {
			rec.MaxTemperature = math.NaN()
		}
		if rng.Float64() < c.missing {
			rec.MinTemperature = math.NaN()
		}
		records = append(records, rec)
	}
	return records
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func writeCSV(path string, records []domain.DailyRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "max_temperature", "min_temperature"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Date.Format(time.DateOnly), formatCell(r.MaxTemperature), formatCell(r.MinTemperature)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// formatCell leaves missing readings blank, which the loader reads back as NaN.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) //nolint:gosec // fixture file
}
