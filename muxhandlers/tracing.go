package muxhandlers

import (
	"context"
	"fmt"

	"github.com/vitalvas/navmux/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/vitalvas/navmux"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// IncludeParams adds one navmux.param.<name> attribute per variable.
	// Enabled by default.
	IncludeParams bool
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeParams enables/disables param attributes.
func WithIncludeParams(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeParams = include
	}
}

// TracingMiddleware returns a middleware that wraps every dispatch in a
// span named after the matched template. A handler panic is recorded on the
// span and re-raised.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// given with WithTracerProvider.
func TracingMiddleware(opts ...TracingOption) mux.MiddlewareFunc {
	config := TracingConfig{
		TracerName:    defaultTracerName,
		IncludeParams: true,
	}
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	tracer := provider.Tracer(config.TracerName)

	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(ctx context.Context, m *mux.Match) {
			attrs := []attribute.KeyValue{
				attribute.String("navmux.template", m.Template()),
				attribute.String("navmux.path", m.Path),
			}

			if config.IncludeParams {
				for name, value := range m.Params {
					attrs = append(attrs, attribute.String("navmux.param."+name, value))
				}
			}

			ctx, span := tracer.Start(ctx, "navigate "+m.Template(),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			defer func() {
				if r := recover(); r != nil {
					span.RecordError(fmt.Errorf("panic: %v", r))
					span.SetStatus(codes.Error, "handler panic")
					panic(r)
				}
			}()

			next.Navigate(ctx, m)
			span.SetStatus(codes.Ok, "")
		})
	}
}
