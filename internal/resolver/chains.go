package resolver

import (
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/provider"
	"yieldcurve/internal/sources"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

// USAdapters prefers the keyed FRED API when a key is configured, else
// FiscalData backed by the FRED graph export.
func USAdapters(tracer trace.Tracer, cat *sources.Catalog, fredKey string, settings provider.Settings) []Adapter {
	if strings.TrimSpace(fredKey) != "" {
		return []Adapter{provider.NewFREDProvider(tracer, fredKey, cat.FRED, settings)}
	}
	return []Adapter{
		provider.NewTreasuryProvider(tracer, cat.Treasury, settings),
		provider.NewFREDGraphProvider(tracer, cat.FRED, settings),
	}
}

// CAAdapters is the single Valet source.
func CAAdapters(tracer trace.Tracer, cat *sources.Catalog, settings provider.Settings) []Adapter {
	return []Adapter{provider.NewValetProvider(tracer, cat.Valet, settings)}
}

// NewUS builds the US resolver.
func NewUS(tracer trace.Tracer, logger *log.Logger, cat *sources.Catalog, fredKey string, settings provider.Settings) *Resolver {
	return New(tracer, logger, domain.JurisdictionUS, USAdapters(tracer, cat, fredKey, settings)...)
}

// NewCA builds the Canada resolver.
func NewCA(tracer trace.Tracer, logger *log.Logger, cat *sources.Catalog, settings provider.Settings) *Resolver {
	return New(tracer, logger, domain.JurisdictionCA, CAAdapters(tracer, cat, settings)...)
}
