package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/fallback"
	"yieldcurve/internal/sources"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TreasuryProvider reads the most recent par yield curve row from FiscalData.
// Endpoints are tried in order until one returns a row.
type TreasuryProvider struct {
	client    *http.Client
	endpoints []string
	dateField string
	fields    map[domain.Tenor]string
	tracer    trace.Tracer
}

func NewTreasuryProvider(tracer trace.Tracer, cfg sources.TreasuryConfig, settings Settings) *TreasuryProvider {
	settings = settings.withDefaults()
	dateField := cfg.DateField
	if dateField == "" {
		dateField = "record_date"
	}
	return &TreasuryProvider{
		client:    newHTTPClient(settings.Timeout),
		endpoints: cfg.EndpointURLs(),
		dateField: dateField,
		fields:    cfg.Fields,
		tracer:    tracer,
	}
}

func (p *TreasuryProvider) Name() string { return "treasury-fiscaldata" }

func (p *TreasuryProvider) Kind() domain.SourceKind { return domain.SourceKeylessAggregate }

// FetchLatest returns the newest row's value for each requested tenor.
// When every endpoint fails all tenors are absent and AsOf is empty.
func (p *TreasuryProvider) FetchLatest(ctx context.Context, tenors []domain.Tenor) domain.SourceResult {
	ctx, span := p.tracer.Start(ctx, "treasury.fetch-latest")
	defer span.End()

	result := domain.NewSourceResult(p.Name(), p.Kind(), tenors)
	query := p.query(tenors)

	out := fallback.FirstSuccessful(ctx, p.endpoints, func(ctx context.Context, endpoint string) (gjson.Result, bool) {
		return p.latestRow(ctx, endpoint, query)
	})
	span.SetAttributes(attribute.Int("endpoints.tried", out.Tried))
	if !out.OK {
		return result
	}

	row := out.Result
	result.AsOf = strings.TrimSpace(row.Get(p.dateField).String())
	for _, t := range tenors {
		field, ok := p.fields[t]
		if !ok || field == "" {
			continue
		}
		y, ok := yieldFromJSON(row.Get(field))
		if !ok {
			continue
		}
		result.Observations[t] = domain.Observation{Tenor: t, Yield: y, AsOf: result.AsOf, SeriesID: field}
	}

	span.SetAttributes(
		attribute.String("record_date", result.AsOf),
		attribute.Int("tenors.covered", result.Covered(tenors)),
	)
	return result
}

// query selects the date field plus the requested tenors' fields.
func (p *TreasuryProvider) query(tenors []domain.Tenor) string {
	fields := []string{p.dateField}
	for _, t := range domain.TenorCatalog {
		if !slices.Contains(tenors, t) {
			continue
		}
		if f := p.fields[t]; f != "" {
			fields = append(fields, f)
		}
	}
	q := url.Values{}
	q.Set("sort", "-"+p.dateField)
	q.Set("page[number]", "1")
	q.Set("page[size]", "1")
	q.Set("format", "json")
	q.Set("fields", strings.Join(fields, ","))
	return q.Encode()
}

// latestRow fetches one endpoint and returns the first row of "data", or of
// "Data" when "data" is missing, null or empty. A response without rows
// counts as a failure so the next endpoint is tried.
func (p *TreasuryProvider) latestRow(ctx context.Context, endpoint, query string) (gjson.Result, bool) {
	ctx, span := p.tracer.Start(ctx, "treasury.endpoint",
		trace.WithAttributes(attribute.String("endpoint", endpoint)))
	defer span.End()

	body, err := getBody(ctx, p.client, endpoint+"?"+query, "application/json")
	if err != nil {
		recordFailure(span, fmt.Errorf("fetch %s: %w", endpoint, err))
		return gjson.Result{}, false
	}
	if !gjson.ValidBytes(body) {
		recordFailure(span, fmt.Errorf("decode %s: invalid json", endpoint))
		return gjson.Result{}, false
	}

	doc := gjson.ParseBytes(body)
	for _, key := range []string{"data", "Data"} {
		rows := doc.Get(key)
		if rows.IsArray() && len(rows.Array()) > 0 {
			return rows.Array()[0], true
		}
	}
	span.SetAttributes(attribute.Int("rows", 0))
	return gjson.Result{}, false
}
