package handler

import (
	"context"

	"yieldcurve/internal/render"
	"yieldcurve/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Comparer runs one US vs Canada comparison.
type Comparer interface {
	Compare(ctx context.Context, rawTenors []string) (*service.Comparison, error)
}

type Handler struct {
	tracer   trace.Tracer
	comparer Comparer
	chart    render.ChartOptions
}

func New(tracer trace.Tracer, comparer Comparer) *Handler {
	return &Handler{
		tracer:   tracer,
		comparer: comparer,
		chart:    render.DefaultChartOptions(),
	}
}

// RegisterRoutes mounts the public routes; everything under /api is guarded
// by APIKeyAuth(apiKey).
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/tenors", h.GetTenors)
	api.GET("/curve", h.GetCurve)
	api.GET("/curve/chart", h.GetCurveChart)
}
