// Package otel wires OpenTelemetry tracing for go-folio binaries.
package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the trace exporter. It is filled from internal/config.
type Config struct {
	// Service is reported as service.name on every span.
	Service string

	// Endpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	Endpoint string

	// Disabled turns tracing off even with an endpoint.
	Disabled bool
}

// Enabled reports whether Setup would install an exporter.
func (c Config) Enabled() bool {
	return !c.Disabled && c.Endpoint != ""
}

// Setup installs a batching OTLP tracer provider as the global provider.
// When tracing is not enabled the global no-op provider stays in place.
// The returned shutdown flushes pending spans and is never nil.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled() {
		return noop, nil
	}
	if cfg.Service == "" {
		return noop, errors.New("otel: service name is required")
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.Service)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
