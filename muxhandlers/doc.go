// Package muxhandlers provides dispatch middleware for the mux navigator.
//
// Every constructor returns a mux.MiddlewareFunc, so the results plug into
// mux.WithMiddleware or Navigator.Use. Middleware registered first runs
// outermost.
//
// # Recovery Middleware
//
// RecoveryMiddleware stops a panicking handler from unwinding into the
// history implementation that delivered the notification. The optional
// LogFunc receives the match and the recovered value.
//
//	nav.Use(muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{
//	    LogFunc: func(m *mux.Match, err any) {
//	        logger.Error("handler panic", "template", m.Template(), "error", err)
//	    },
//	}))
//
// # Navigation ID Middleware
//
// NavigationIDMiddleware tags each dispatch with an ID, a UUID v4 unless
// GenerateFunc says otherwise. Handlers and later middleware read it with
// NavigationIDFromContext.
//
// # Logging Middleware
//
// LoggingMiddleware writes one slog record per dispatch:
//
//	nav.Use(muxhandlers.LoggingMiddleware(muxhandlers.LoggingConfig{
//	    Logger: logger,
//	    Level:  slog.LevelDebug,
//	}))
//
// # Metrics
//
// NewMetrics registers Prometheus collectors and exposes a middleware plus
// a miss observer that fits mux.WithMissHandler:
//
//	metrics := muxhandlers.NewMetrics(muxhandlers.WithRegistry(reg))
//	nav := mux.NewNavigator(h,
//	    mux.WithMiddleware(metrics.Middleware()),
//	    mux.WithMissHandler(metrics.ObserveMiss),
//	)
//
// # Tracing Middleware
//
// TracingMiddleware starts an OpenTelemetry span per dispatch, named after
// the matched template. The span is in the handler's context.
package muxhandlers
