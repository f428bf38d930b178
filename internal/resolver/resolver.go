// Package resolver turns a jurisdiction's ordered adapter chain into one curve.
package resolver

import (
	"context"
	"time"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/fallback"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Adapter is the capability every provider variant implements.
type Adapter interface {
	Name() string
	Kind() domain.SourceKind
	FetchLatest(ctx context.Context, tenors []domain.Tenor) domain.SourceResult
}

// Resolver tries its adapters in priority order. The next adapter runs only
// when the previous one returned no present value for any requested tenor,
// and its result then replaces the previous one entirely.
type Resolver struct {
	jurisdiction domain.Jurisdiction
	adapters     []Adapter
	tracer       trace.Tracer
	logger       *log.Logger
	now          func() time.Time
}

func New(tracer trace.Tracer, logger *log.Logger, j domain.Jurisdiction, adapters ...Adapter) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		jurisdiction: j,
		adapters:     adapters,
		tracer:       tracer,
		logger:       logger.With("jurisdiction", string(j)),
		now:          time.Now,
	}
}

func (r *Resolver) Jurisdiction() domain.Jurisdiction { return r.jurisdiction }

// Sources lists the adapter names in priority order.
func (r *Resolver) Sources() []string {
	out := make([]string, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a.Name())
	}
	return out
}

// Resolve returns the curve for tenors. With no adapter, or when every
// adapter comes back empty, all tenors are absent.
func (r *Resolver) Resolve(ctx context.Context, tenors []domain.Tenor) domain.Curve {
	ctx, span := r.tracer.Start(ctx, "resolver.resolve",
		trace.WithAttributes(attribute.String("jurisdiction", string(r.jurisdiction))))
	defer span.End()

	curve := domain.Curve{
		Jurisdiction: r.jurisdiction,
		Tenors:       append([]domain.Tenor(nil), tenors...),
		FetchedAt:    r.now().UTC(),
	}

	out := fallback.FirstSuccessful(ctx, r.adapters, func(ctx context.Context, a Adapter) (domain.SourceResult, bool) {
		res := a.FetchLatest(ctx, tenors)
		curve.Attempts = append(curve.Attempts, domain.SourceAttempt{
			Source:  a.Name(),
			Kind:    a.Kind(),
			Covered: res.Covered(tenors),
			AsOf:    res.AsOf,
		})
		if res.AllAbsent(tenors) {
			r.logger.Warn("source returned no values", "source", a.Name(), "kind", a.Kind())
			return res, false
		}
		return res, true
	})

	if out.Index < 0 {
		curve.Observations = domain.NewSourceResult("", "", tenors).Observations
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			r.logger.Warn("resolve cancelled before any source was tried", "err", err)
		} else {
			r.logger.Error("no source configured")
		}
		return curve
	}

	if out.OK && out.Index > 0 {
		r.logger.Info("fell back to secondary source", "source", out.Candidate.Name(), "position", out.Index+1)
	}

	res := out.Result
	curve.Source = out.Candidate.Name()
	curve.AsOf = res.AsOf
	curve.Observations = res.Observations
	if curve.Observations == nil {
		curve.Observations = domain.NewSourceResult("", "", tenors).Observations
	}

	span.SetAttributes(
		attribute.String("source", curve.Source),
		attribute.String("as_of", curve.AsOf),
		attribute.Int("attempts", len(curve.Attempts)),
	)
	r.logger.Debug("curve resolved", "source", curve.Source, "as_of", curve.AsOf, "covered", res.Covered(tenors))
	return curve
}
