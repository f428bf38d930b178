package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/fallback"
	"yieldcurve/internal/sources"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const valetBaseURL = "https://www.bankofcanada.ca/valet"

// ValetProvider reads Bank of Canada observation groups, one request per group.
type ValetProvider struct {
	client      *http.Client
	baseURL     string
	groups      []sources.ValetGroup
	tracer      trace.Tracer
	concurrency int
}

func NewValetProvider(tracer trace.Tracer, cfg sources.ValetConfig, settings Settings) *ValetProvider {
	settings = settings.withDefaults()
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = valetBaseURL
	}
	return &ValetProvider{
		client:      newHTTPClient(settings.Timeout),
		baseURL:     baseURL,
		groups:      cfg.Groups,
		tracer:      tracer,
		concurrency: settings.Concurrency,
	}
}

func (p *ValetProvider) Name() string { return "boc-valet" }

func (p *ValetProvider) Kind() domain.SourceKind { return domain.SourceGroupedSeries }

// seriesPoint is the most recent numeric value of one series in a group.
type seriesPoint struct {
	yield domain.Yield
	date  string
}

// groupSnapshot is the latest value per series of one group, plus the
// newest observation date the group returned.
type groupSnapshot struct {
	asOf   string
	latest map[string]seriesPoint
}

// FetchLatest resolves each requested tenor through its group's candidate
// series. AsOf is taken from the first configured group that returned a date.
func (p *ValetProvider) FetchLatest(ctx context.Context, tenors []domain.Tenor) domain.SourceResult {
	ctx, span := p.tracer.Start(ctx, "valet.fetch-latest")
	defer span.End()

	result := domain.NewSourceResult(p.Name(), p.Kind(), tenors)

	snapshots := make([]groupSnapshot, len(p.groups))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, group := range p.groups {
		if !groupNeeded(group, tenors) {
			continue
		}
		g.Go(func() error {
			snapshots[i] = p.fetchGroup(ctx, group)
			return nil
		})
	}
	_ = g.Wait()

	for i, group := range p.groups {
		snap := snapshots[i]
		if result.AsOf == "" && snap.asOf != "" {
			result.AsOf = snap.asOf
		}
		for _, t := range tenors {
			candidates, ok := group.Series[t]
			if !ok {
				continue
			}
			out := fallback.FirstSuccessful(ctx, candidates, func(_ context.Context, id string) (seriesPoint, bool) {
				pt, ok := snap.latest[id]
				return pt, ok
			})
			if !out.OK {
				continue
			}
			result.Observations[t] = domain.Observation{
				Tenor:      t,
				Yield:      out.Result.yield,
				AsOf:       out.Result.date,
				SeriesID:   out.Candidate,
				Substitute: group.Substitutes[t],
			}
		}
	}

	span.SetAttributes(
		attribute.String("as_of", result.AsOf),
		attribute.Int("tenors.covered", result.Covered(tenors)),
	)
	return result
}

func groupNeeded(group sources.ValetGroup, tenors []domain.Tenor) bool {
	for _, t := range tenors {
		if len(group.Series[t]) > 0 {
			return true
		}
	}
	return false
}

func (p *ValetProvider) fetchGroup(ctx context.Context, group sources.ValetGroup) groupSnapshot {
	ctx, span := p.tracer.Start(ctx, "valet.group",
		trace.WithAttributes(attribute.String("group", group.Name)))
	defer span.End()

	endpoint := fmt.Sprintf("%s/observations/group/%s/json?recent=%s",
		p.baseURL, url.PathEscape(group.Name), strconv.Itoa(group.Recent))
	body, err := getBody(ctx, p.client, endpoint, "application/json")
	if err != nil {
		recordFailure(span, fmt.Errorf("fetch group %s: %w", group.Name, err))
		return groupSnapshot{}
	}
	if !gjson.ValidBytes(body) {
		recordFailure(span, fmt.Errorf("decode group %s: invalid json", group.Name))
		return groupSnapshot{}
	}

	snap := latestPerSeries(gjson.GetBytes(body, "observations").Array())
	span.SetAttributes(attribute.Int("series", len(snap.latest)))
	return snap
}

// latestPerSeries walks observations newest first and keeps the first
// numeric value of every series key.
func latestPerSeries(rows []gjson.Result) groupSnapshot {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Get("d").String() > rows[j].Get("d").String()
	})

	snap := groupSnapshot{latest: map[string]seriesPoint{}}
	for _, row := range rows {
		date := strings.TrimSpace(row.Get("d").String())
		if date == "" {
			continue
		}
		if snap.asOf == "" {
			snap.asOf = date
		}
		row.ForEach(func(key, value gjson.Result) bool {
			id := key.String()
			if id == "d" {
				return true
			}
			if _, seen := snap.latest[id]; seen {
				return true
			}
			if y, ok := yieldFromJSON(value.Get("v")); ok {
				snap.latest[id] = seriesPoint{yield: y, date: date}
			}
			return true
		})
	}
	return snap
}
