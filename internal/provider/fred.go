package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/sources"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	fredBaseURL = "https://api.stlouisfed.org/fred"
	// FRED allows 120 requests per minute per key.
	fredRatePerMinute = 120
)

// FREDProvider fetches the latest observation per series from the FRED API.
type FREDProvider struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	series       sources.SeriesMap
	tracer       trace.Tracer
	pacer        *Pacer
	lookbackDays int
	concurrency  int
	now          func() time.Time
}

// NewFREDProvider creates the keyed FRED adapter.
func NewFREDProvider(tracer trace.Tracer, apiKey string, cfg sources.FREDConfig, settings Settings) *FREDProvider {
	settings = settings.withDefaults()
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = fredBaseURL
	}
	perMinute := settings.RatePerMinute
	if perMinute <= 0 {
		perMinute = fredRatePerMinute
	}
	return &FREDProvider{
		client:       newHTTPClient(settings.Timeout),
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(apiKey),
		series:       cfg.Series,
		tracer:       tracer,
		pacer:        NewPacer(perMinute),
		lookbackDays: settings.LookbackDays,
		concurrency:  settings.Concurrency,
		now:          time.Now,
	}
}

func (p *FREDProvider) Name() string { return "fred" }

func (p *FREDProvider) Kind() domain.SourceKind { return domain.SourceKeyedSeries }

// FetchLatest returns the most recent numeric value per requested tenor.
func (p *FREDProvider) FetchLatest(ctx context.Context, tenors []domain.Tenor) domain.SourceResult {
	ctx, span := p.tracer.Start(ctx, "fred.fetch-latest")
	defer span.End()

	result := domain.NewSourceResult(p.Name(), p.Kind(), tenors)
	collect(&result, fetchSeriesTenors(ctx, tenors, p.series, p.concurrency, p.latestValue))

	span.SetAttributes(attribute.Int("tenors.covered", result.Covered(tenors)))
	return result
}

// latestValue queries one series over the lookback window and walks it
// newest first, skipping the "." placeholders FRED publishes for holidays.
func (p *FREDProvider) latestValue(ctx context.Context, seriesID string) (domain.Yield, string, bool) {
	ctx, span := p.tracer.Start(ctx, "fred.series-observations",
		trace.WithAttributes(attribute.String("series_id", seriesID)))
	defer span.End()

	if err := p.pacer.Wait(ctx); err != nil {
		recordFailure(span, fmt.Errorf("rate limit wait: %w", err))
		return domain.AbsentYield(), "", false
	}

	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", p.apiKey)
	q.Set("file_type", "json")
	q.Set("observation_start", p.now().AddDate(0, 0, -p.lookbackDays).Format("2006-01-02"))

	body, err := getBody(ctx, p.client, p.baseURL+"/series/observations?"+q.Encode(), "application/json")
	if err != nil {
		recordFailure(span, fmt.Errorf("fetch %s: %w", seriesID, err))
		return domain.AbsentYield(), "", false
	}

	var payload struct {
		Observations []struct {
			Date  string `json:"date"`
			Value string `json:"value"`
		} `json:"observations"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		recordFailure(span, fmt.Errorf("decode %s: %w", seriesID, err))
		return domain.AbsentYield(), "", false
	}

	rows := payload.Observations
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	for _, row := range rows {
		if y, ok := parseYield(row.Value); ok {
			return y, row.Date, true
		}
	}
	return domain.AbsentYield(), "", false
}
