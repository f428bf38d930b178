// Package provider contains one adapter per public yield data source.
//
// # Providers
//
// ## FRED (keyed series)
//
// API: https://api.stlouisfed.org/fred/series/observations
// Requires FRED_API_KEY. One windowed query per series, scanned newest first.
//
// ## Treasury FiscalData (keyless aggregate)
//
// API: https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v2/accounting/od/...
// One request for the most recent par yield curve row, over an ordered list of endpoints.
//
// ## FRED graph CSV (keyless series)
//
// URL: https://fred.stlouisfed.org/graph/fredgraph.csv?id=<series>
// Two-column text export per series, scanned from the last line up.
//
// ## Bank of Canada Valet (grouped series)
//
// API: https://www.bankofcanada.ca/valet/observations/group/<group>/json?recent=<n>
// One batched request per group; each series keeps its most recent numeric value.
//
// Every adapter reports missing data as absent values. Transport, status and
// decoding failures are recorded on the trace span and never returned.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultLookbackDays = 120
	defaultConcurrency  = 4
	maxBodyBytes        = 8 << 20
	userAgent           = "yieldcurve/1.0"
)

// Settings tunes the network behaviour shared by all adapters.
type Settings struct {
	Timeout       time.Duration
	LookbackDays  int
	Concurrency   int
	RatePerMinute int
}

func (s Settings) withDefaults() Settings {
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	if s.LookbackDays <= 0 {
		s.LookbackDays = defaultLookbackDays
	}
	if s.Concurrency <= 0 {
		s.Concurrency = defaultConcurrency
	}
	return s
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// getBody issues a GET and returns the body of a 200 response.
// Errors never carry the request URL, which may hold an API key.
func getBody(ctx context.Context, client *http.Client, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, stripURL(err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, stripURL(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// recordFailure marks a recovered per-call failure on the span.
func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
