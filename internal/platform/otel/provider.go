// Package otel configures OpenTelemetry tracing for btoflow services.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// tracingEndpoint reports the configured OTLP endpoint, or "" when tracing
// should stay off. Tracing is opt-in: BTOFLOW_OTEL_ENDPOINT must be set and
// BTOFLOW_OTEL_ENABLED must not be "false".
func tracingEndpoint() string {
	if strings.EqualFold(os.Getenv("BTOFLOW_OTEL_ENABLED"), "false") {
		return ""
	}
	return os.Getenv("BTOFLOW_OTEL_ENDPOINT")
}

// Setup initialises OpenTelemetry tracing for the given service. When tracing
// is not configured it returns a no-op shutdown function and registers no
// global provider. The returned shutdown function flushes pending spans and
// should be deferred by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	endpoint := tracingEndpoint()
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
