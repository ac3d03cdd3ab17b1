// Package loader reads the daily temperature file into domain records.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

var (
	// ErrEmptyInput is returned when the source has no header row.
	ErrEmptyInput = errors.New("empty input")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
)

// Columns names the three required CSV headers.
type Columns struct {
	Date string
	Max  string
	Min  string
}

// DefaultColumns matches the reference daily temperature export.
var DefaultColumns = Columns{
	Date: "date",
	Max:  "max_temperature",
	Min:  "min_temperature",
}

// Options controls parsing and filtering.
type Options struct {
	Columns Columns
	MinYear int
}

// DefaultOptions uses DefaultColumns and domain.DefaultMinYear.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns, MinYear: domain.DefaultMinYear}
}

// RowError describes a data row that could not be parsed.
type RowError struct {
	Line  int
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result is the outcome of one read.
type Result struct {
	// Records are the parsed rows at or after MinYear, in file order.
	Records []domain.DailyRecord
	// Rejected lists rows dropped for an unparseable date.
	Rejected []*RowError
	// Read counts data rows seen, excluding the header.
	Read int
	// Filtered counts parsed rows dropped by the year filter.
	Filtered int
}

// Read parses CSV from r. Structural problems (no header, missing column,
// malformed CSV) fail the whole read; a bad date only rejects its row.
func Read(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, ErrEmptyInput
	}
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}

	idx, err := columnIndex(header, opts.Columns)
	if err != nil {
		return Result{}, err
	}

	res := Result{Records: make([]domain.DailyRecord, 0)}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read csv: %w", err)
		}
		res.Read++

		raw := domain.RawDailyRow{
			Date:           field(row, idx.date),
			MaxTemperature: field(row, idx.max),
			MinTemperature: field(row, idx.min),
		}
		rec, err := domain.ParseDailyRow(raw)
		if err != nil {
			line, _ := reader.FieldPos(0)
			res.Rejected = append(res.Rejected, &RowError{Line: line, Value: raw.Date, Err: err})
			continue
		}
		if rec.Year() < opts.MinYear {
			res.Filtered++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// Load opens src and reads it. The source is closed before returning.
func Load(ctx context.Context, src Source, opts Options) (Result, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	res, err := Read(ctx, rc, opts)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	return res, nil
}

type indexes struct {
	date, max, min int
}

func columnIndex(header []string, cols Columns) (indexes, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}

	var idx indexes
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{cols.Date, &idx.date},
		{cols.Max, &idx.max},
		{cols.Min, &idx.min},
	} {
		i, ok := pos[c.name]
		if !ok {
			return indexes{}, fmt.Errorf("%w: %q", ErrMissingColumn, c.name)
		}
		*c.dst = i
	}
	return idx, nil
}

// field returns row[i], or "" for short rows so the value coerces like any
// other missing field.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
