package muxhandlers

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitalvas/navmux/mux"
)

// MetricsConfig configures the Prometheus metrics collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navmux").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for handler duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics collects dispatch counters and handler durations per template.
type Metrics struct {
	navigations *prometheus.CounterVec
	misses      prometheus.Counter
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the navigation metrics. Registering twice on the same
// registry panics, as with any promauto collector.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "navmux",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of dispatched navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"template"}),

		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_misses_total",
			Help:        "Total number of locations no route matched",
			ConstLabels: config.ConstLabels,
		}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"template"}),
	}
}

// Middleware returns a middleware that counts dispatches and observes the
// handler duration, labelled by the matched template.
func (m *Metrics) Middleware() mux.MiddlewareFunc {
	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(ctx context.Context, match *mux.Match) {
			start := time.Now()
			defer func() {
				template := match.Template()
				m.navigations.WithLabelValues(template).Inc()
				m.duration.WithLabelValues(template).Observe(time.Since(start).Seconds())
			}()

			next.Navigate(ctx, match)
		})
	}
}

// ObserveMiss counts a location no route matched. Its signature fits
// mux.WithMissHandler.
func (m *Metrics) ObserveMiss(_ context.Context, _ mux.Location) {
	m.misses.Inc()
}
