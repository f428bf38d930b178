package provider

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/sources"
)

func testTreasuryConfig() sources.TreasuryConfig {
	return sources.TreasuryConfig{
		BaseURL:   "http://treasury.test/fiscal_service",
		Endpoints: []string{"/v2/first", "/v2/second"},
		DateField: "record_date",
		Fields: map[domain.Tenor]string{
			domain.Tenor1M:  "bc_1month",
			domain.Tenor10Y: "bc_10year",
			domain.Tenor30Y: "bc_30year",
		},
	}
}

func TestTreasuryFallsBackToNextEndpoint(t *testing.T) {
	p := NewTreasuryProvider(testTracer(), testTreasuryConfig(), Settings{})

	var paths []string
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		q := req.URL.Query()
		if q.Get("sort") != "-record_date" || q.Get("page[size]") != "1" || q.Get("format") != "json" {
			return textResponse(http.StatusBadRequest, "bad query"), nil
		}
		if !strings.HasPrefix(q.Get("fields"), "record_date,bc_1month") {
			return textResponse(http.StatusBadRequest, "bad fields"), nil
		}
		switch req.URL.Path {
		case "/fiscal_service/v2/first":
			return textResponse(http.StatusOK, `{"data":[]}`), nil
		case "/fiscal_service/v2/second":
			return textResponse(http.StatusOK, `{"Data":[{"record_date":"2024-05-31","bc_1month":"5.46","bc_10year":4.51,"bc_30year":"null"}]}`), nil
		}
		return textResponse(http.StatusNotFound, ""), nil
	})}

	tenors := []domain.Tenor{domain.Tenor1M, domain.Tenor10Y, domain.Tenor20Y, domain.Tenor30Y}
	res := p.FetchLatest(context.Background(), tenors)

	if len(paths) != 2 {
		t.Fatalf("expected two endpoint attempts, got %v", paths)
	}
	if res.AsOf != "2024-05-31" {
		t.Fatalf("unexpected as of: %q", res.AsOf)
	}
	if got := res.Observations[domain.Tenor1M].Yield.String(); got != "5.46" {
		t.Fatalf("unexpected 1M: %s", got)
	}
	if got := res.Observations[domain.Tenor10Y].Yield.String(); got != "4.51" {
		t.Fatalf("unexpected 10Y: %s", got)
	}
	if res.Observations[domain.Tenor20Y].Yield.Present() || res.Observations[domain.Tenor30Y].Yield.Present() {
		t.Fatal("unmapped and null fields should be absent")
	}
}

func TestTreasuryAllEndpointsFail(t *testing.T) {
	p := NewTreasuryProvider(testTracer(), testTreasuryConfig(), Settings{})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "first") {
			return textResponse(http.StatusServiceUnavailable, "down"), nil
		}
		return textResponse(http.StatusOK, "<html>"), nil
	})}

	tenors := []domain.Tenor{domain.Tenor1M, domain.Tenor10Y}
	res := p.FetchLatest(context.Background(), tenors)
	if !res.AllAbsent(tenors) {
		t.Fatalf("expected all absent, got %+v", res.Observations)
	}
	if res.AsOf != "" {
		t.Fatalf("expected empty as of, got %q", res.AsOf)
	}
}

func TestTreasuryReadsDataWhenLowercaseKeyEmpty(t *testing.T) {
	for _, body := range []string{
		`{"data":null,"Data":[{"record_date":"2024-05-31","bc_1month":"5.46"}]}`,
		`{"data":[],"Data":[{"record_date":"2024-05-31","bc_1month":"5.46"}]}`,
	} {
		cfg := testTreasuryConfig()
		cfg.Endpoints = cfg.Endpoints[:1]
		p := NewTreasuryProvider(testTracer(), cfg, Settings{})
		p.client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return textResponse(http.StatusOK, body), nil
		})}

		res := p.FetchLatest(context.Background(), []domain.Tenor{domain.Tenor1M})
		if got := res.Observations[domain.Tenor1M].Yield.String(); got != "5.46" || res.AsOf != "2024-05-31" {
			t.Fatalf("%s: got 1M=%s as of %q", body, got, res.AsOf)
		}
	}
}
