package layout

import (
	"fmt"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Heatmap is everything a renderer needs: the buckets, their axes and the
// coordinate model. It is read-only once built.
type Heatmap struct {
	Title       string
	Buckets     []domain.MonthBucket
	Layout      *Layout
	GeneratedAt time.Time
}

// NewHeatmap lays out buckets over the given years on a dims canvas.
func NewHeatmap(title string, buckets []domain.MonthBucket, years []int, dims Dimensions, generatedAt time.Time) *Heatmap {
	return &Heatmap{
		Title:       title,
		Buckets:     buckets,
		Layout:      Build(NewAxisModel(years), dims),
		GeneratedAt: generatedAt,
	}
}

// Resize returns a copy laid out on dims. Buckets are shared, not copied.
func (h *Heatmap) Resize(dims Dimensions) *Heatmap {
	return &Heatmap{
		Title:       h.Title,
		Buckets:     h.Buckets,
		Layout:      Build(h.Layout.Axis, dims),
		GeneratedAt: h.GeneratedAt,
	}
}

// Bucket looks up a cell by year and 0-based month.
func (h *Heatmap) Bucket(year, month int) (domain.MonthBucket, bool) {
	for _, b := range h.Buckets {
		if b.Year == year && b.Month == month {
			return b, true
		}
	}
	return domain.MonthBucket{}, false
}

// DefaultTitle names the chart after the city and its year span.
func DefaultTitle(city string, years []int) string {
	if len(years) == 0 {
		return fmt.Sprintf("%s Monthly Temperature Data", city)
	}
	return fmt.Sprintf("%s Monthly Temperature Data (%d-%d)", city, years[0], years[len(years)-1])
}
