package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/render"
	"yieldcurve/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AlignedPointResponse is one tenor present on both curves.
type AlignedPointResponse struct {
	Tenor string  `json:"tenor"`
	US    float64 `json:"us"`
	CA    float64 `json:"ca"`
}

// CurveSideResponse describes one jurisdiction's resolved curve.
type CurveSideResponse struct {
	Name          string                 `json:"name"`
	Source        string                 `json:"source"`
	AsOf          string                 `json:"as_of,omitempty"`
	Values        map[string]*float64    `json:"values"`
	Substitutions map[string]string      `json:"substitutions,omitempty"`
	Attempts      []domain.SourceAttempt `json:"attempts"`
}

// CurveResponse is the JSON form of a comparison.
type CurveResponse struct {
	Tenors  []string               `json:"tenors"`
	Aligned []AlignedPointResponse `json:"aligned"`
	Have    []string               `json:"have"`
	Missing []string               `json:"missing"`
	US      CurveSideResponse      `json:"us"`
	CA      CurveSideResponse      `json:"ca"`
	Error   string                 `json:"error,omitempty"`
}

// GetTenors godoc
// @Summary      List supported tenors
// @Description  Returns the tenor catalog in display order
// @Tags         curve
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/tenors [get]
func (h *Handler) GetTenors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tenors": domain.TenorStrings(domain.CatalogTenors())})
}

// GetCurve godoc
// @Summary      Compare the US and Canada yield curves
// @Description  Fetches the latest yields for both jurisdictions and aligns them on common tenors
// @Tags         curve
// @Produce      json
// @Param        tenors  query  string  false  "Comma-separated tenors (e.g., 1M,10Y); defaults to all"
// @Success      200  {object}  CurveResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/curve [get]
func (h *Handler) GetCurve(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-curve")
	defer span.End()

	raw := tenorsParam(c)
	span.SetAttributes(attribute.StringSlice("tenors.raw", raw))

	cmp, err := h.comparer.Compare(ctx, raw)
	if cmp == nil || (err != nil && !errors.Is(err, domain.ErrNoOverlap)) {
		h.writeCompareError(c, err)
		return
	}

	resp := newCurveResponse(cmp)
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurveChart godoc
// @Summary      Render the yield curve chart
// @Description  Returns a PNG chart of both curves over their common tenors
// @Tags         curve
// @Produce      png
// @Param        tenors  query  string  false  "Comma-separated tenors (e.g., 1M,10Y); defaults to all"
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/curve/chart [get]
func (h *Handler) GetCurveChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-curve-chart")
	defer span.End()

	cmp, err := h.comparer.Compare(ctx, tenorsParam(c))
	if errors.Is(err, domain.ErrNoOverlap) && cmp != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   err.Error(),
			"missing": domain.TenorStrings(cmp.Missing),
		})
		return
	}
	if err != nil || cmp == nil {
		h.writeCompareError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, cmp.Aligned, h.chart); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) writeCompareError(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("comparison unavailable")
	}
	if errors.Is(err, domain.ErrUnsupportedTenor) || errors.Is(err, domain.ErrNoSupportedTenors) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            err.Error(),
			"supported_tenors": domain.TenorStrings(domain.CatalogTenors()),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// tenorsParam accepts both tenors=1M,10Y and repeated tenors parameters.
// Nil means the parameter was not supplied.
func tenorsParam(c *gin.Context) []string {
	values, ok := c.GetQueryArray("tenors")
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func newCurveResponse(cmp *service.Comparison) CurveResponse {
	resp := CurveResponse{
		Tenors:  domain.TenorStrings(cmp.Tenors),
		Aligned: make([]AlignedPointResponse, 0, len(cmp.Aligned.Points)),
		Have:    domain.TenorStrings(cmp.Have),
		Missing: domain.TenorStrings(cmp.Missing),
		US:      newCurveSide(cmp.US),
		CA:      newCurveSide(cmp.CA),
	}
	for _, p := range cmp.Aligned.Points {
		resp.Aligned = append(resp.Aligned, AlignedPointResponse{Tenor: string(p.Tenor), US: p.A, CA: p.B})
	}
	return resp
}

func newCurveSide(c domain.Curve) CurveSideResponse {
	side := CurveSideResponse{
		Name:     c.Jurisdiction.Name(),
		Source:   c.Source,
		AsOf:     c.AsOf,
		Values:   c.Values(),
		Attempts: c.Attempts,
	}
	if side.Attempts == nil {
		side.Attempts = []domain.SourceAttempt{}
	}
	if subs := c.Substitutions(); len(subs) > 0 {
		side.Substitutions = make(map[string]string, len(subs))
		for t, note := range subs {
			side.Substitutions[string(t)] = note
		}
	}
	return side
}
