package service

import (
	"context"
	"errors"
	"fmt"

	"yieldcurve/internal/domain"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// CurveResolver produces one jurisdiction's curve.
type CurveResolver interface {
	Jurisdiction() domain.Jurisdiction
	Resolve(ctx context.Context, tenors []domain.Tenor) domain.Curve
}

// Comparison is the outcome of one compare run.
type Comparison struct {
	Tenors  []domain.Tenor
	US      domain.Curve
	CA      domain.Curve
	Aligned domain.AlignedCurve
	// Have lists tenors usable on both sides, Missing the rest.
	Have    []domain.Tenor
	Missing []domain.Tenor
}

// CompareService orchestrates tenor selection, both resolvers and alignment.
type CompareService struct {
	tracer trace.Tracer
	logger *log.Logger
	us     CurveResolver
	ca     CurveResolver
}

func NewCompareService(tracer trace.Tracer, logger *log.Logger, us, ca CurveResolver) *CompareService {
	if logger == nil {
		logger = log.Default()
	}
	return &CompareService{tracer: tracer, logger: logger, us: us, ca: ca}
}

// Compare resolves both curves for rawTenors (nil selects the full catalog)
// and aligns them. On domain.ErrNoOverlap the returned comparison is still
// populated so callers can report what each side had.
func (s *CompareService) Compare(ctx context.Context, rawTenors []string) (*Comparison, error) {
	ctx, span := s.tracer.Start(ctx, "compare-service.compare")
	defer span.End()

	tenors, err := domain.LoadRequestedTenors(rawTenors)
	if err != nil {
		return nil, fmt.Errorf("load tenors: %w", err)
	}
	span.SetAttributes(attribute.StringSlice("tenors", domain.TenorStrings(tenors)))

	cmp := &Comparison{Tenors: tenors}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cmp.US = s.us.Resolve(gctx, tenors)
		return nil
	})
	g.Go(func() error {
		cmp.CA = s.ca.Resolve(gctx, tenors)
		return nil
	})
	_ = g.Wait()

	s.logger.Info("curves resolved",
		"us_source", cmp.US.Source, "us_as_of", cmp.US.AsOf,
		"ca_source", cmp.CA.Source, "ca_as_of", cmp.CA.AsOf)

	cmp.Have, cmp.Missing = domain.Coverage(tenors, cmp.US, cmp.CA)
	cmp.Aligned, err = domain.Align(tenors, cmp.US, cmp.CA)
	if err != nil {
		if errors.Is(err, domain.ErrNoOverlap) {
			s.logger.Warn("no overlapping tenors", "requested", domain.TenorStrings(tenors))
		}
		span.RecordError(err)
		return cmp, err
	}

	span.SetAttributes(attribute.Int("aligned", len(cmp.Aligned.Points)))
	return cmp, nil
}
