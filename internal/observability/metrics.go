package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for loading
// and rendering the heatmap.
type Metrics struct {
	// Load metrics.
	RowsRead      prometheus.Counter
	RowsRejected  prometheus.Counter
	RowsFiltered  prometheus.Counter
	LoadDuration  prometheus.Histogram
	DatasetLoaded prometheus.Gauge
	Buckets       prometheus.Gauge

	// Render metrics.
	RenderRequests *prometheus.CounterVec // labels: format={svg,html,json,png}, mode={max,min}
	RenderCache    *prometheus.CounterVec // labels: result={hit,miss}
	RenderDuration *prometheus.HistogramVec

	BucketsPublished prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsRejected,
		m.RowsFiltered,
		m.LoadDuration,
		m.DatasetLoaded,
		m.Buckets,
		m.RenderRequests,
		m.RenderCache,
		m.RenderDuration,
		m.BucketsPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewUnregisteredMetrics creates Metrics outside the default registry for
// one-shot commands that never serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "rows_read_total",
			Help:      "Data rows read from the daily temperature source.",
		}),
		RowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "rows_rejected_total",
			Help:      "Rows dropped because their date could not be parsed.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "rows_filtered_total",
			Help:      "Rows dropped for falling before the minimum year.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "temp_heatmap",
			Name:      "load_duration_seconds",
			Help:      "Duration of loading and parsing the source file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "temp_heatmap",
			Name:      "dataset_loaded",
			Help:      "1 once the dataset is loaded and the heatmap built, 0 otherwise.",
		}),
		Buckets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "temp_heatmap",
			Name:      "month_buckets",
			Help:      "Number of (year, month) cells in the current heatmap.",
		}),
		RenderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "render_requests_total",
			Help:      "Render requests by output format and display mode.",
		}, []string{"format", "mode"}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "render_cache_total",
			Help:      "Rendered SVG cache lookups by result.",
		}, []string{"result"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "temp_heatmap",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one output.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"format"}),
		BucketsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_heatmap",
			Name:      "buckets_published_total",
			Help:      "Month buckets written to the Kafka sink.",
		}),
	}
}
