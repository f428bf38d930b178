package tracing

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type stubExporter struct{}

func (stubExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (stubExporter) Shutdown(context.Context) error { return nil }

func captureExporter(t *testing.T) *[]exportSettings {
	t.Helper()
	var seen []exportSettings
	orig := newTraceExporter
	t.Cleanup(func() { newTraceExporter = orig })
	newTraceExporter = func(_ context.Context, s exportSettings) (sdktrace.SpanExporter, error) {
		seen = append(seen, s)
		return stubExporter{}, nil
	}
	return &seen
}

func TestInitTracerWithoutExport(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "")
	seen := captureExporter(t)

	tp, tracer, err := InitTracer(context.Background(), "yieldcurve-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tp.Shutdown(context.Background())
	if tracer == nil {
		t.Fatal("expected tracer")
	}
	if len(*seen) != 0 {
		t.Fatalf("exporter built while tracing disabled: %+v", *seen)
	}
}

func TestInitTracerExportSettings(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "TRUE")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
	seen := captureExporter(t)

	tp, _, err := InitTracer(context.Background(), "yieldcurve-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tp.Shutdown(context.Background())

	if len(*seen) != 1 {
		t.Fatalf("expected one exporter, got %d", len(*seen))
	}
	got := (*seen)[0]
	want := exportSettings{enabled: true, endpoint: "collector:4317", insecure: false, sampleRatio: 0.25}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestInitTracerRejectsBadRatio(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "2")
	if _, _, err := InitTracer(context.Background(), "yieldcurve-test"); err == nil {
		t.Fatal("expected error for ratio outside [0,1]")
	}
}

func TestInitTracerExporterFailure(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "true")
	orig := newTraceExporter
	t.Cleanup(func() { newTraceExporter = orig })
	newTraceExporter = func(context.Context, exportSettings) (sdktrace.SpanExporter, error) {
		return nil, errors.New("dial failed")
	}

	if _, _, err := InitTracer(context.Background(), "yieldcurve-test"); err == nil {
		t.Fatal("expected exporter error")
	}
}
