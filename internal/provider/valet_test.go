package provider

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/sources"
)

func testValetConfig() sources.ValetConfig {
	return sources.ValetConfig{
		BaseURL: "http://valet.test/valet",
		Groups: []sources.ValetGroup{
			{
				Name:   "TBILL_ALL",
				Recent: 30,
				Series: sources.SeriesMap{
					domain.Tenor1M: {"V1", "V1ALT"},
					domain.Tenor3M: {"V3"},
				},
			},
			{
				Name:   "bond_yields_benchmark",
				Recent: 60,
				Series: sources.SeriesMap{
					domain.Tenor10Y: {"BD.CDN.10YR.DQ.YLD"},
					domain.Tenor20Y: {},
					domain.Tenor30Y: {"BD.CDN.LONG.DQ.YLD"},
				},
				Substitutes: map[domain.Tenor]string{domain.Tenor30Y: "long-term benchmark"},
			},
		},
	}
}

func TestValetFetchLatest(t *testing.T) {
	p := NewValetProvider(testTracer(), testValetConfig(), Settings{})

	var mu sync.Mutex
	recent := map[string]string{}
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		recent[req.URL.Path] = req.URL.Query().Get("recent")
		mu.Unlock()
		switch req.URL.Path {
		case "/valet/observations/group/TBILL_ALL/json":
			// Oldest first; V1 has no value on the newest day.
			return textResponse(http.StatusOK, `{"observations":[
				{"d":"2024-05-29","V1":{"v":"4.70"},"V1ALT":{"v":"4.60"},"V3":{"v":"4.80"}},
				{"d":"2024-05-30","V1":{"v":"4.72"},"V1ALT":{"v":"4.61"},"V3":{"v":"4.79"}},
				{"d":"2024-05-31","V1":{"v":""},"V3":{"v":"4.78"}}]}`), nil
		case "/valet/observations/group/bond_yields_benchmark/json":
			return textResponse(http.StatusOK, `{"observations":[
				{"d":"2024-05-30","BD.CDN.10YR.DQ.YLD":{"v":"3.60"},"BD.CDN.LONG.DQ.YLD":{"v":"3.50"}},
				{"d":"2024-05-29","BD.CDN.10YR.DQ.YLD":{"v":"3.55"},"BD.CDN.LONG.DQ.YLD":{"v":"3.45"}}]}`), nil
		}
		return textResponse(http.StatusNotFound, ""), nil
	})}

	tenors := []domain.Tenor{domain.Tenor1M, domain.Tenor3M, domain.Tenor10Y, domain.Tenor20Y, domain.Tenor30Y}
	res := p.FetchLatest(context.Background(), tenors)

	if got := res.Observations[domain.Tenor1M]; got.Yield.String() != "4.72" || got.SeriesID != "V1" || got.AsOf != "2024-05-30" {
		t.Fatalf("unexpected 1M observation: %+v (%s)", got, got.Yield)
	}
	if got := res.Observations[domain.Tenor3M].Yield.String(); got != "4.78" {
		t.Fatalf("expected newest 3M value, got %s", got)
	}
	if got := res.Observations[domain.Tenor10Y].Yield.String(); got != "3.6" {
		t.Fatalf("unexpected 10Y: %s", got)
	}
	if res.Observations[domain.Tenor20Y].Yield.Present() {
		t.Fatal("20Y is unsupported and must be absent")
	}
	if got := res.Observations[domain.Tenor30Y]; got.Substitute == "" || got.Yield.String() != "3.5" {
		t.Fatalf("expected substituted 30Y, got %+v", got)
	}
	if res.AsOf != "2024-05-31" {
		t.Fatalf("expected T-bill group date, got %q", res.AsOf)
	}
	if recent["/valet/observations/group/TBILL_ALL/json"] != "30" || recent["/valet/observations/group/bond_yields_benchmark/json"] != "60" {
		t.Fatalf("unexpected recent params: %v", recent)
	}
}

func TestValetUsesAlternateSeries(t *testing.T) {
	p := NewValetProvider(testTracer(), testValetConfig(), Settings{})
	calls := 0
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return textResponse(http.StatusOK, `{"observations":[{"d":"2024-05-31","V1ALT":{"v":"4.61"}}]}`), nil
	})}

	res := p.FetchLatest(context.Background(), []domain.Tenor{domain.Tenor1M})
	if got := res.Observations[domain.Tenor1M]; got.SeriesID != "V1ALT" || got.Yield.String() != "4.61" {
		t.Fatalf("expected alternate series, got %+v", got)
	}
	if calls != 1 {
		t.Fatalf("expected only the T-bill group to be fetched, got %d calls", calls)
	}
}

func TestValetGroupFailureFallsBackToBenchmarkDate(t *testing.T) {
	p := NewValetProvider(testTracer(), testValetConfig(), Settings{})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/valet/observations/group/TBILL_ALL/json" {
			return textResponse(http.StatusBadGateway, ""), nil
		}
		return textResponse(http.StatusOK, `{"observations":[{"d":"2024-05-30","BD.CDN.10YR.DQ.YLD":{"v":"3.60"}}]}`), nil
	})}

	tenors := []domain.Tenor{domain.Tenor1M, domain.Tenor10Y}
	res := p.FetchLatest(context.Background(), tenors)
	if res.Observations[domain.Tenor1M].Yield.Present() {
		t.Fatal("failed group should leave its tenors absent")
	}
	if res.AsOf != "2024-05-30" {
		t.Fatalf("expected benchmark date, got %q", res.AsOf)
	}
}
