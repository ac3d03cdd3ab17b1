package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/layout"
	"github.com/couchcryptid/temperature-heatmap/internal/loader"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// ErrNotLoaded is returned by Heatmap before the first successful Run.
var ErrNotLoaded = errors.New("dataset not loaded")

// BucketPublisher receives the month buckets once they are built.
type BucketPublisher interface {
	PublishBuckets(ctx context.Context, buckets []domain.MonthBucket, generatedAt time.Time) error
}

// Dataset is the result of the load stage.
type Dataset struct {
	Source   string
	Records  []domain.DailyRecord
	Rejected []*loader.RowError
	LoadedAt time.Time
}

// Options configures a Pipeline.
type Options struct {
	Loader      loader.Options
	LoadTimeout time.Duration
	Dimensions  layout.Dimensions
	City        string
	// Publisher is optional; nil disables publishing.
	Publisher BucketPublisher
}

// Pipeline loads the daily file once and builds the heatmap from it.
type Pipeline struct {
	source  loader.Source
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
	heatmap atomic.Pointer[layout.Heatmap]
	ready   atomic.Bool
}

// New creates a Pipeline reading from src.
func New(src loader.Source, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  src,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the heatmap has been built, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return ErrNotLoaded
	}
	return nil
}

// Heatmap returns the built heatmap or ErrNotLoaded.
func (p *Pipeline) Heatmap() (*layout.Heatmap, error) {
	hm := p.heatmap.Load()
	if hm == nil {
		return nil, ErrNotLoaded
	}
	return hm, nil
}

// Run loads the source, builds the heatmap and publishes its buckets. A load
// failure is returned and nothing is built. A publish failure is logged only.
func (p *Pipeline) Run(ctx context.Context) error {
	ds, err := p.Load(ctx)
	if err != nil {
		return err
	}

	hm := Build(ds, p.opts.Dimensions, p.opts.City)
	p.heatmap.Store(hm)
	p.ready.Store(true)
	p.metrics.Buckets.Set(float64(len(hm.Buckets)))
	p.metrics.DatasetLoaded.Set(1)
	p.logger.Info("heatmap built",
		"buckets", len(hm.Buckets),
		"years", len(hm.Layout.Axis.Years),
		"title", hm.Title,
	)

	if p.opts.Publisher != nil && len(hm.Buckets) > 0 {
		if err := p.opts.Publisher.PublishBuckets(ctx, hm.Buckets, hm.GeneratedAt); err != nil {
			p.logger.Error("publish buckets failed", "error", err, "buckets", len(hm.Buckets))
		} else {
			p.metrics.BucketsPublished.Add(float64(len(hm.Buckets)))
			p.logger.Info("buckets published", "buckets", len(hm.Buckets))
		}
	}
	return nil
}

// Load is the fallible stage: it reads and parses the source within the
// configured timeout.
func (p *Pipeline) Load(ctx context.Context) (*Dataset, error) {
	if p.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.LoadTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := loader.Load(ctx, p.source, p.opts.Loader)
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("load failed", "source", p.source.Name(), "error", err)
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	p.metrics.RowsRead.Add(float64(res.Read))
	p.metrics.RowsRejected.Add(float64(len(res.Rejected)))
	p.metrics.RowsFiltered.Add(float64(res.Filtered))
	for _, rej := range res.Rejected {
		p.logger.Warn("row rejected", "source", p.source.Name(), "line", rej.Line, "value", rej.Value, "error", rej.Err)
	}
	p.logger.Info("dataset loaded",
		"source", p.source.Name(),
		"rows", res.Read,
		"records", len(res.Records),
		"rejected", len(res.Rejected),
		"filtered", res.Filtered,
		"min_year", p.opts.Loader.MinYear,
	)

	return &Dataset{
		Source:   p.source.Name(),
		Records:  res.Records,
		Rejected: res.Rejected,
		LoadedAt: domain.Now(),
	}, nil
}

// Build is the total stage: aggregation then layout. It never fails, and an
// empty dataset yields a heatmap with no buckets and no years.
func Build(ds *Dataset, dims layout.Dimensions, city string) *layout.Heatmap {
	buckets := domain.Aggregate(ds.Records)
	years := domain.Years(ds.Records)
	return layout.NewHeatmap(layout.DefaultTitle(city, years), buckets, years, dims, domain.Now())
}
