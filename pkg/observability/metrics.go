package observability

import (
	"time"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/restore"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nodegraph"

// Metrics holds the collectors of one project.
type Metrics struct {
	registry prometheus.Registerer
	gatherer prometheus.Gatherer

	NodesAdded      *prometheus.CounterVec
	NodesRemoved    *prometheus.CounterVec
	TerminalEvents  *prometheus.CounterVec
	Clears          *prometheus.CounterVec
	Anomalies       *prometheus.CounterVec
	Restores        *prometheus.CounterVec
	RestoreDuration prometheus.Histogram
}

// Option configures Metrics.
type Option func(*options)

type options struct {
	registry *prometheus.Registry
}

// WithRegistry registers the collectors on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...Option) *Metrics {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: o.registry,
		gatherer: o.registry,
		NodesAdded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_added_total",
				Help:      "Total number of nodes added to a collection",
			},
			[]string{"plugin_id"},
		),
		NodesRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_removed_total",
				Help:      "Total number of nodes removed from a collection",
			},
			[]string{"plugin_id"},
		),
		TerminalEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "group_terminal_events_total",
				Help:      "Group terminal activations and removals",
			},
			[]string{"event"},
		),
		Clears: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collection_clears_total",
				Help:      "Total number of collection teardowns",
			},
			[]string{"collection"},
		),
		Anomalies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restore_anomalies_total",
				Help:      "Problems met while restoring graphs",
			},
			[]string{"kind"},
		),
		Restores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restores_total",
				Help:      "Graph restorations by outcome",
			},
			[]string{"outcome"},
		),
		RestoreDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "restore_duration_seconds",
				Help:      "Duration of graph restorations",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	m.registry.MustRegister(
		m.NodesAdded,
		m.NodesRemoved,
		m.TerminalEvents,
		m.Clears,
		m.Anomalies,
		m.Restores,
		m.RestoreDuration,
	)
	return m
}

// Gatherer returns the registry the collectors live in, for promhttp.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// Hooks returns structural hooks feeding the counters.
func (m *Metrics) Hooks() domain.GraphHooks {
	return domain.GraphHooks{
		OnNodeAdded: func(e *domain.NodeEvent) {
			m.NodesAdded.WithLabelValues(e.PluginID).Inc()
		},
		OnNodeRemoved: func(e *domain.NodeEvent) {
			m.NodesRemoved.WithLabelValues(e.PluginID).Inc()
		},
		OnTerminalActivated: func(e *domain.NodeEvent) {
			m.TerminalEvents.WithLabelValues(string(e.Type)).Inc()
		},
		OnTerminalRemoved: func(e *domain.NodeEvent) {
			m.TerminalEvents.WithLabelValues(string(e.Type)).Inc()
		},
		OnNodesCleared: func(collection string) {
			m.Clears.WithLabelValues(collection).Inc()
		},
	}
}

// ObserveAnomaly counts one restoration anomaly.
// It has the signature of restore.WithAnomalyObserver.
func (m *Metrics) ObserveAnomaly(a restore.Anomaly) {
	m.Anomalies.WithLabelValues(string(a.Kind)).Inc()
}

// ObserveRestore records the outcome of a restoration started at start.
func (m *Metrics) ObserveRestore(res *restore.Result, err error, start time.Time) {
	m.RestoreDuration.Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case res != nil && !res.OK():
		outcome = "degraded"
	}
	m.Restores.WithLabelValues(outcome).Inc()
}
