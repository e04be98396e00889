package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the registries.
type Metrics struct {
	RecordsCreated     *prometheus.CounterVec
	TransitionsApplied *prometheus.CounterVec
	EventsEmitted      prometheus.Counter
	EventsDropped      prometheus.Counter
	MirrorFailures     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgnet_records_created_total",
			Help: "Records created, labeled by registry",
		}, []string{"registry"}),
		TransitionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgnet_transitions_applied_total",
			Help: "Accepted status transitions, labeled by registry",
		}, []string{"registry"}),
		EventsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgnet_events_emitted_total",
			Help: "Events appended to the trail",
		}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgnet_events_dropped_total",
			Help: "Events dropped from lagging subscriber channels",
		}),
		MirrorFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgnet_event_mirror_failures_total",
			Help: "Mirror sink write failures, labeled by sink",
		}, []string{"sink"}),
	}
}

// IncRecordCreated increments the creation counter for a registry.
func (m *Metrics) IncRecordCreated(registry string) {
	m.RecordsCreated.WithLabelValues(registry).Inc()
}

// IncTransitionApplied increments the transition counter for a registry.
func (m *Metrics) IncTransitionApplied(registry string) {
	m.TransitionsApplied.WithLabelValues(registry).Inc()
}

// IncEventEmitted increments the emitted-events counter.
func (m *Metrics) IncEventEmitted() {
	m.EventsEmitted.Inc()
}

// IncEventDropped increments the dropped-events counter.
func (m *Metrics) IncEventDropped() {
	m.EventsDropped.Inc()
}

// IncMirrorFailure increments the failure counter for a mirror sink.
func (m *Metrics) IncMirrorFailure(sink string) {
	m.MirrorFailures.WithLabelValues(sink).Inc()
}
