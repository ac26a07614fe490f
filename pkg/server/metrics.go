package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/sortable/pkg/protocol"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "sortable").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Namespace: "sortable"}
}

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	eventsTotal     *prometheus.CounterVec
	gesturesStarted prometheus.Counter
	reordersTotal   prometheus.Counter
	gesturesAborted *prometheus.CounterVec
	decodeErrors    *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	patchesSent     prometheus.Counter
}

// NewMetrics registers the collectors with reg.
//
// Metrics collected:
//   - sortable_events_total: events received by type
//   - sortable_gestures_started_total: drag gestures started
//   - sortable_reorders_total: reorders committed
//   - sortable_gestures_aborted_total: gestures ended without a move, by reason
//   - sortable_decode_errors_total: undecodable frames by frame kind
//   - sortable_active_sessions: open WebSocket sessions
//   - sortable_patches_sent_total: patches written to clients
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(reg)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events received",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		gesturesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "gestures_started_total",
			Help:        "Total number of drag gestures started",
			ConstLabels: config.ConstLabels,
		}),

		reordersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reorders_total",
			Help:        "Total number of committed reorders",
			ConstLabels: config.ConstLabels,
		}),

		gesturesAborted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "gestures_aborted_total",
			Help:        "Total number of drag gestures that ended without a move",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_errors_total",
			Help:        "Total number of frames that failed to decode",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) event(t protocol.EventType) {
	m.eventsTotal.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) decodeError(kind string) {
	m.decodeErrors.WithLabelValues(kind).Inc()
}
