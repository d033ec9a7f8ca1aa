package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics handles application metrics and monitoring
type Metrics struct {
	mutations         *prometheus.CounterVec
	recomputeDuration prometheus.Histogram
	eventsPublished   *prometheus.CounterVec
}

// NewMetrics creates a metrics instance registered against the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowcanvas",
			Name:      "graph_mutations_total",
			Help:      "Graph mutations applied, by operation.",
		}, []string{"operation"}),
		recomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flowcanvas",
			Name:      "order_recompute_duration_seconds",
			Help:      "Time spent recomputing the linear playback order.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowcanvas",
			Name:      "events_published_total",
			Help:      "Bus events published toward the preview, by event name.",
		}, []string{"event"}),
	}
}

// RecordMutation counts one applied graph mutation
func (m *Metrics) RecordMutation(operation string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation).Inc()
}

// ObserveRecompute records the duration of one order recomputation
func (m *Metrics) ObserveRecompute(d time.Duration) {
	if m == nil {
		return
	}
	m.recomputeDuration.Observe(d.Seconds())
}

// RecordEventPublished counts one published bus event
func (m *Metrics) RecordEventPublished(event string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event).Inc()
}
