package provider

import (
	"context"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/fallback"
	"yieldcurve/internal/sources"

	"golang.org/x/sync/errgroup"
)

// seriesFetcher returns the latest usable value of one series and its date.
type seriesFetcher func(ctx context.Context, seriesID string) (domain.Yield, string, bool)

// fetchSeriesTenors resolves each tenor through its candidate series, up to
// limit tenors at a time. The result is index-aligned with tenors.
func fetchSeriesTenors(ctx context.Context, tenors []domain.Tenor, series sources.SeriesMap, limit int, fetch seriesFetcher) []domain.Observation {
	obs := make([]domain.Observation, len(tenors))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, t := range tenors {
		g.Go(func() error {
			obs[i] = latestForTenor(ctx, t, series.Candidates(t), fetch)
			return nil
		})
	}
	_ = g.Wait()

	return obs
}

func latestForTenor(ctx context.Context, t domain.Tenor, candidates []string, fetch seriesFetcher) domain.Observation {
	out := fallback.FirstSuccessful(ctx, candidates, func(ctx context.Context, id string) (domain.Observation, bool) {
		y, date, ok := fetch(ctx, id)
		return domain.Observation{Tenor: t, Yield: y, AsOf: date, SeriesID: id}, ok
	})
	if !out.OK {
		return domain.Observation{Tenor: t}
	}
	return out.Result
}

// collect stores obs into res and keeps the newest observation date as AsOf.
func collect(res *domain.SourceResult, obs []domain.Observation) {
	for _, o := range obs {
		res.Observations[o.Tenor] = o
		if o.AsOf > res.AsOf {
			res.AsOf = o.AsOf
		}
	}
}
