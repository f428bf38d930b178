package handler

import (
	"net/http"

	"yieldcurve/internal/domain"

	"github.com/gin-gonic/gin"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Tenors  int    `json:"tenors"`
}

// Health godoc
// @Summary      Health check
// @Description  Reports that the service is up and the size of its tenor catalog; upstream sources are not contacted
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "yieldcurve",
		Tenors:  len(domain.TenorCatalog),
	})
}
