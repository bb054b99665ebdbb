package handler

import (
	"net/http"

	"explore-islands/internal/county"

	"github.com/gin-gonic/gin"
)

// CountyHandler handles county related HTTP requests
type CountyHandler struct {
	countyService *county.Service
}

// NewCountyHandler creates a new county handler
func NewCountyHandler(countyService *county.Service) *CountyHandler {
	return &CountyHandler{
		countyService: countyService,
	}
}

// List handles GET /api/counties/
func (h *CountyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.countyService.List())
}

// Get handles GET /api/counties/:slug
func (h *CountyHandler) Get(c *gin.Context) {
	record, err := h.countyService.Get(c.Param("slug"))
	if err != nil {
		if county.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "County not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch county"})
		return
	}

	c.JSON(http.StatusOK, record)
}
