package muxhandlers

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/navmux/history"
	"github.com/vitalvas/navmux/mux"
)

func TestMetrics(t *testing.T) {
	t.Run("counts dispatches per template", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := NewMetrics(WithRegistry(reg))
		handler := m.Middleware()(mux.HandlerFunc(func(context.Context, *mux.Match) {}))

		handler.Navigate(context.Background(), matchFor(t, "/users/:id", "/users/1"))
		handler.Navigate(context.Background(), matchFor(t, "/users/:id", "/users/2"))
		handler.Navigate(context.Background(), matchFor(t, "/active", "/active"))

		assert.Equal(t, 2.0, testutil.ToFloat64(m.navigations.WithLabelValues("/users/:id")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("/active")))
		assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
	})

	t.Run("counts a panicking dispatch", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := NewMetrics(WithRegistry(reg))
		handler := m.Middleware()(mux.HandlerFunc(func(context.Context, *mux.Match) { panic("boom") }))

		assert.Panics(t, func() {
			handler.Navigate(context.Background(), matchFor(t, "/x", "/x"))
		})
		assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("/x")))
	})

	t.Run("observes misses through the navigator", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := NewMetrics(WithRegistry(reg), WithNamespace("app"), WithSubsystem("nav"))

		nav := mux.NewNavigator(history.NewMemory("", nil),
			mux.WithMiddleware(m.Middleware()),
			mux.WithMissHandler(m.ObserveMiss),
		)
		sw := nav.Switch(mux.NewRoute("/active", nil))
		defer sw.Close()

		nav.Push("/active", nil)
		nav.Push("/missing", nil)
		nav.Push("/also/missing", nil)

		expected := `
# HELP app_nav_navigation_misses_total Total number of locations no route matched
# TYPE app_nav_navigation_misses_total counter
app_nav_navigation_misses_total 2
`
		require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
			"app_nav_navigation_misses_total"))
	})

	t.Run("const labels and buckets", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := NewMetrics(
			WithRegistry(reg),
			WithConstLabels(prometheus.Labels{"app": "todo"}),
			WithBuckets([]float64{0.1, 1}),
		)
		m.Middleware()(mux.HandlerFunc(func(context.Context, *mux.Match) {})).
			Navigate(context.Background(), matchFor(t, "/x", "/x"))

		families, err := reg.Gather()
		require.NoError(t, err)

		var found bool
		for _, mf := range families {
			if mf.GetName() != "navmux_navigation_duration_seconds" {
				continue
			}
			found = true
			metric := mf.GetMetric()[0]
			assert.Len(t, metric.GetHistogram().GetBucket(), 2)

			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			assert.Equal(t, map[string]string{"app": "todo", "template": "/x"}, labels)
		}
		assert.True(t, found)
	})

	t.Run("registering twice on one registry panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		NewMetrics(WithRegistry(reg))
		assert.Panics(t, func() { NewMetrics(WithRegistry(reg)) })
	})
}
