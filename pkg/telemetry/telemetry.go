// Package telemetry wires optional OpenTelemetry tracing. Without an OTLP
// endpoint configured the setup is a no-op and the global tracer provider
// stays untouched, so instrumented paths cost nothing.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// EndpointEnv names the environment variable holding the OTLP/HTTP endpoint.
const EndpointEnv = "SPECFLOW_OTLP_ENDPOINT"

const tracerName = "github.com/specflow-ai/specflow"

// Setup installs an OTLP/HTTP trace exporter when an endpoint is configured.
// The returned shutdown function flushes pending spans; it is non-nil even
// when tracing stays disabled.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	endpoint := strings.TrimSpace(os.Getenv(EndpointEnv))
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)
	log.Printf("telemetry: exporting traces to %s", endpoint)

	return provider.Shutdown, nil
}

// Tracer returns the package tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
