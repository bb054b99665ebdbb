package handler

import (
	"net/http"

	"explore-islands/internal/county"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service health
type HealthHandler struct {
	countyService *county.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(countyService *county.Service) *HealthHandler {
	return &HealthHandler{
		countyService: countyService,
	}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"counties": h.countyService.Len(),
	})
}
