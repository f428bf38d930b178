// Package tracing configures the process-wide OpenTelemetry tracer provider.
//
// Environment:
//
//	TRACING_ENABLED               "true" exports spans over OTLP gRPC
//	OTEL_EXPORTER_OTLP_ENDPOINT   collector address (default localhost:4317)
//	OTEL_EXPORTER_OTLP_INSECURE   "false" enables TLS (default plaintext)
//	OTEL_TRACES_SAMPLER_ARG       sampling ratio in [0,1] (default 1)
package tracing

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceVersion  = "1.0.0"
	defaultEndpoint = "localhost:4317"
)

type exportSettings struct {
	enabled     bool
	endpoint    string
	insecure    bool
	sampleRatio float64
}

func settingsFromEnv() (exportSettings, error) {
	s := exportSettings{
		enabled:     envBool("TRACING_ENABLED", false),
		endpoint:    strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		sampleRatio: 1,
	}
	if s.endpoint == "" {
		s.endpoint = defaultEndpoint
	}
	if raw := strings.TrimSpace(os.Getenv("OTEL_TRACES_SAMPLER_ARG")); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return s, fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be a ratio in [0,1], got %q", raw)
		}
		s.sampleRatio = ratio
	}
	return s, nil
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

var newTraceExporter = func(ctx context.Context, s exportSettings) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(s.endpoint)}
	if s.insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}

// InitTracer installs a tracer provider for serviceName and returns a tracer
// from it. Without TRACING_ENABLED=true spans are sampled but never exported.
func InitTracer(ctx context.Context, serviceName string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	s, err := settingsFromEnv()
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("tracing resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.sampleRatio))),
	}
	if s.enabled {
		exporter, err := newTraceExporter(ctx, s)
		if err != nil {
			return nil, nil, fmt.Errorf("otlp exporter %s: %w", s.endpoint, err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, tp.Tracer(serviceName), nil
}
