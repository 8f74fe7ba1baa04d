package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the cyclone tracker.
type Metrics struct {
	Polls           *prometheus.CounterVec // labels: outcome={success,error}
	PollerRunning   prometheus.Gauge
	CyclonesTracked prometheus.Gauge

	// Bulletin retrieval metrics.
	BulletinFetches       *prometheus.CounterVec // labels: outcome={success,error}
	BulletinFetchDuration prometheus.Histogram
	BulletinCache         *prometheus.CounterVec // labels: result={hit,miss}

	// Extraction metrics.
	ParseFailures         prometheus.Counter
	ObservationsExtracted prometheus.Counter

	RecordsPublished prometheus.Counter
}

// NewMetrics creates and registers all tracker metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Polls,
		m.PollerRunning,
		m.CyclonesTracked,
		m.BulletinFetches,
		m.BulletinFetchDuration,
		m.BulletinCache,
		m.ParseFailures,
		m.ObservationsExtracted,
		m.RecordsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "polls_total",
			Help:      "Feed polls by outcome.",
		}, []string{"outcome"}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cyclone_tracker",
			Name:      "poller_running",
			Help:      "1 when the poller is active, 0 when shut down.",
		}),
		CyclonesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cyclone_tracker",
			Name:      "cyclones_tracked",
			Help:      "Active cyclones found by the last successful poll.",
		}),
		BulletinFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "bulletin_fetch_total",
			Help:      "Bulletin downloads by outcome.",
		}, []string{"outcome"}),
		BulletinFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cyclone_tracker",
			Name:      "bulletin_fetch_duration_seconds",
			Help:      "Bulletin download duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BulletinCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "bulletin_cache_total",
			Help:      "Bulletin cache lookups by result.",
		}, []string{"result"}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "bulletin_parse_failures_total",
			Help:      "Bulletins that could not be parsed into a track.",
		}),
		ObservationsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "observations_extracted_total",
			Help:      "Track observations extracted from bulletins.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cyclone_tracker",
			Name:      "records_published_total",
			Help:      "Cyclone records written to the sink topic.",
		}),
	}
}
