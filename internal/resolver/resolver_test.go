package resolver

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/provider"
	"yieldcurve/internal/sources"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

type stubAdapter struct {
	name   string
	kind   domain.SourceKind
	asOf   string
	values map[domain.Tenor]float64
	calls  int
}

func (s *stubAdapter) Name() string            { return s.name }
func (s *stubAdapter) Kind() domain.SourceKind { return s.kind }

func (s *stubAdapter) FetchLatest(_ context.Context, tenors []domain.Tenor) domain.SourceResult {
	s.calls++
	res := domain.NewSourceResult(s.name, s.kind, tenors)
	res.AsOf = s.asOf
	for _, t := range tenors {
		if v, ok := s.values[t]; ok {
			res.Observations[t] = domain.Observation{Tenor: t, Yield: domain.SomeYield(v), AsOf: s.asOf}
		}
	}
	return res
}

func newTestResolver(adapters ...Adapter) *Resolver {
	return New(trace.NewNoopTracerProvider().Tracer("test"), log.New(io.Discard), domain.JurisdictionUS, adapters...)
}

var testTenors = []domain.Tenor{domain.Tenor1M, domain.Tenor10Y, domain.Tenor30Y}

func TestResolvePrimaryWins(t *testing.T) {
	primary := &stubAdapter{name: "primary", kind: domain.SourceKeylessAggregate, asOf: "2024-05-31",
		values: map[domain.Tenor]float64{domain.Tenor10Y: 4.5}}
	secondary := &stubAdapter{name: "secondary", kind: domain.SourceKeylessSeries,
		values: map[domain.Tenor]float64{domain.Tenor1M: 5.4, domain.Tenor10Y: 4.4}}

	curve := newTestResolver(primary, secondary).Resolve(context.Background(), testTenors)

	if curve.Source != "primary" || curve.AsOf != "2024-05-31" {
		t.Fatalf("unexpected winner: %s %s", curve.Source, curve.AsOf)
	}
	if secondary.calls != 0 {
		t.Fatal("partial primary coverage must not trigger the fallback")
	}
	if curve.Yield(domain.Tenor1M).Present() {
		t.Fatal("values must not be merged across sources")
	}
	if len(curve.Attempts) != 1 || curve.Attempts[0].Covered != 1 {
		t.Fatalf("unexpected attempts: %+v", curve.Attempts)
	}
}

func TestResolveFallbackReplacesEntirely(t *testing.T) {
	primary := &stubAdapter{name: "primary", kind: domain.SourceKeylessAggregate}
	secondary := &stubAdapter{name: "secondary", kind: domain.SourceKeylessSeries, asOf: "2024-05-30",
		values: map[domain.Tenor]float64{domain.Tenor1M: 5.4, domain.Tenor30Y: 4.6}}

	curve := newTestResolver(primary, secondary).Resolve(context.Background(), testTenors)

	want := secondary.FetchLatest(context.Background(), testTenors).Observations
	if !reflect.DeepEqual(curve.Observations, want) {
		t.Fatalf("expected secondary map exactly, got %+v", curve.Observations)
	}
	if curve.Source != "secondary" || curve.AsOf != "2024-05-30" {
		t.Fatalf("unexpected winner: %s %s", curve.Source, curve.AsOf)
	}
	if len(curve.Attempts) != 2 || curve.Attempts[0].Source != "primary" {
		t.Fatalf("unexpected attempts: %+v", curve.Attempts)
	}
}

func TestResolveAllEmpty(t *testing.T) {
	primary := &stubAdapter{name: "primary"}
	secondary := &stubAdapter{name: "secondary"}

	curve := newTestResolver(primary, secondary).Resolve(context.Background(), testTenors)
	if curve.Source != "secondary" {
		t.Fatalf("expected last attempted source, got %q", curve.Source)
	}
	if len(curve.Observations) != len(testTenors) {
		t.Fatalf("expected one entry per tenor, got %d", len(curve.Observations))
	}
	for _, tenor := range testTenors {
		if curve.Yield(tenor).Present() {
			t.Fatalf("expected %s absent", tenor)
		}
	}
}

func TestResolveSingleAdapterPassThrough(t *testing.T) {
	only := &stubAdapter{name: "valet", kind: domain.SourceGroupedSeries, asOf: "2024-05-31",
		values: map[domain.Tenor]float64{domain.Tenor10Y: 3.6}}

	curve := newTestResolver(only).Resolve(context.Background(), testTenors)
	if curve.Source != "valet" || curve.Yield(domain.Tenor10Y).String() != "3.6" {
		t.Fatalf("unexpected curve: %+v", curve)
	}
}

func TestResolveNoAdapters(t *testing.T) {
	curve := newTestResolver().Resolve(context.Background(), testTenors)
	if curve.Source != "" || len(curve.Observations) != len(testTenors) {
		t.Fatalf("unexpected curve: %+v", curve)
	}
}

func TestResolveCancelledContextLogsCancellation(t *testing.T) {
	primary := &stubAdapter{name: "fred", values: map[domain.Tenor]float64{domain.Tenor10Y: 4.5}}
	var buf bytes.Buffer
	r := New(trace.NewNoopTracerProvider().Tracer("test"), log.New(&buf), domain.JurisdictionUS, primary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	curve := r.Resolve(ctx, testTenors)

	if primary.calls != 0 {
		t.Fatalf("adapter called %d times after cancellation", primary.calls)
	}
	if curve.Source != "" || curve.Yield(domain.Tenor10Y).Present() {
		t.Fatalf("unexpected curve: %+v", curve)
	}
	out := buf.String()
	if strings.Contains(out, "no source configured") || !strings.Contains(out, "cancelled") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestUSAdaptersDependOnKey(t *testing.T) {
	cat, err := sources.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	tracer := trace.NewNoopTracerProvider().Tracer("test")

	keyed := USAdapters(tracer, cat, "key", providerSettings())
	if len(keyed) != 1 || keyed[0].Kind() != domain.SourceKeyedSeries {
		t.Fatalf("unexpected keyed chain: %v", keyed)
	}

	keyless := USAdapters(tracer, cat, "  ", providerSettings())
	if len(keyless) != 2 || keyless[0].Kind() != domain.SourceKeylessAggregate || keyless[1].Kind() != domain.SourceKeylessSeries {
		t.Fatalf("unexpected keyless chain: %v", keyless)
	}

	ca := NewCA(tracer, nil, cat, providerSettings())
	if got := ca.Sources(); len(got) != 1 || got[0] != "boc-valet" {
		t.Fatalf("unexpected CA chain: %v", got)
	}
	if ca.Jurisdiction() != domain.JurisdictionCA {
		t.Fatalf("unexpected jurisdiction: %s", ca.Jurisdiction())
	}
}

func providerSettings() provider.Settings {
	return provider.Settings{}
}
