package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/sources"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const fredGraphURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// FREDGraphProvider reads the keyless FRED graph CSV export, one file per series.
type FREDGraphProvider struct {
	client      *http.Client
	baseURL     string
	series      sources.SeriesMap
	tracer      trace.Tracer
	concurrency int
}

func NewFREDGraphProvider(tracer trace.Tracer, cfg sources.FREDConfig, settings Settings) *FREDGraphProvider {
	settings = settings.withDefaults()
	baseURL := strings.TrimSpace(cfg.GraphURL)
	if baseURL == "" {
		baseURL = fredGraphURL
	}
	return &FREDGraphProvider{
		client:      newHTTPClient(settings.Timeout),
		baseURL:     baseURL,
		series:      cfg.Series,
		tracer:      tracer,
		concurrency: settings.Concurrency,
	}
}

func (p *FREDGraphProvider) Name() string { return "fred-graph" }

func (p *FREDGraphProvider) Kind() domain.SourceKind { return domain.SourceKeylessSeries }

func (p *FREDGraphProvider) FetchLatest(ctx context.Context, tenors []domain.Tenor) domain.SourceResult {
	ctx, span := p.tracer.Start(ctx, "fred-graph.fetch-latest")
	defer span.End()

	result := domain.NewSourceResult(p.Name(), p.Kind(), tenors)
	collect(&result, fetchSeriesTenors(ctx, tenors, p.series, p.concurrency, p.latestValue))

	span.SetAttributes(attribute.Int("tenors.covered", result.Covered(tenors)))
	return result
}

func (p *FREDGraphProvider) latestValue(ctx context.Context, seriesID string) (domain.Yield, string, bool) {
	ctx, span := p.tracer.Start(ctx, "fred-graph.series-csv",
		trace.WithAttributes(attribute.String("series_id", seriesID)))
	defer span.End()

	body, err := getBody(ctx, p.client, p.baseURL+"?id="+url.QueryEscape(seriesID), "text/csv")
	if err != nil {
		recordFailure(span, fmt.Errorf("fetch %s: %w", seriesID, err))
		return domain.AbsentYield(), "", false
	}

	y, date, ok := lastCSVValue(body)
	if !ok {
		span.SetAttributes(attribute.Bool("value.found", false))
	}
	return y, date, ok
}

// lastCSVValue scans a date,value export from the last line up and returns
// the first numeric value. The header line is skipped, as is any line that
// does not parse.
func lastCSVValue(body []byte) (domain.Yield, string, bool) {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	for i := len(lines) - 1; i >= 1; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rec, err := r.Read()
		if err != nil || len(rec) < 2 {
			continue
		}
		if y, ok := parseYield(rec[1]); ok {
			return y, strings.TrimSpace(rec[0]), true
		}
	}
	return domain.AbsentYield(), "", false
}
