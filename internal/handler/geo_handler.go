package handler

import (
	"net/http"

	"explore-islands/internal/geo"

	"github.com/gin-gonic/gin"
)

// GeoHandler handles request location lookups
type GeoHandler struct {
	locator *geo.Locator
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(locator *geo.Locator) *GeoHandler {
	return &GeoHandler{
		locator: locator,
	}
}

// Me handles GET /api/geo/me
func (h *GeoHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, h.locator.Guess(c.ClientIP()))
}
