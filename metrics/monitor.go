package metrics

import (
	"time"

	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/search"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric exported by this package.
const Namespace = "iconfinder"

// Monitor implements search.Monitor on top of Prometheus collectors.
type Monitor struct {
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	fallbacks      *prometheus.CounterVec
	vectorDuration prometheus.Histogram
	tier           prometheus.Gauge
}

var _ search.Monitor = (*Monitor)(nil)

// NewMonitor creates a monitor and registers its collectors with reg.
// A nil reg leaves the collectors unregistered.
func NewMonitor(reg prometheus.Registerer) (*Monitor, error) {
	m := &Monitor{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "searches_total",
				Help:      "Total number of icon searches by the tier that served them",
			},
			[]string{"tier"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "search_duration_seconds",
				Help:      "Icon search duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"tier"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "vector_fallbacks_total",
				Help:      "Vector queries abandoned for keyword matching, by reason",
			},
			[]string{"reason"},
		),
		vectorDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "vector_query_duration_seconds",
				Help:      "Vector index query duration in seconds, including abandoned queries",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		tier: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "search_tier",
				Help:      "Tier selected at startup: 0 default, 1 keyword, 2 vector",
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.searches, m.searchDuration, m.fallbacks, m.vectorDuration, m.tier} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// TierSelected records the tier chosen at construction.
func (m *Monitor) TierSelected(tier core.Tier) {
	m.tier.Set(float64(tier))
}

// Served counts a search and its duration under the tier that answered it.
func (m *Monitor) Served(tier core.Tier, elapsed time.Duration) {
	m.searches.WithLabelValues(tier.String()).Inc()
	m.searchDuration.WithLabelValues(tier.String()).Observe(elapsed.Seconds())
}

// VectorFallback counts an abandoned vector query.
func (m *Monitor) VectorFallback(reason search.FallbackReason) {
	m.fallbacks.WithLabelValues(string(reason)).Inc()
}

// VectorQueryDuration observes a finished vector query.
func (m *Monitor) VectorQueryDuration(elapsed time.Duration) {
	m.vectorDuration.Observe(elapsed.Seconds())
}
