package handler

import (
	"net/http"
	"slices"

	"explore-islands/internal/county"
	"explore-islands/pkg/model"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	countyService *county.Service
}

// NewPageHandler creates a new page handler
func NewPageHandler(countyService *county.Service) *PageHandler {
	return &PageHandler{
		countyService: countyService,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	counties := h.countyService.List()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Counties of Ireland",
		"Counties":  counties,
		"Provinces": provinces(counties),
	})
}

// provinces returns the distinct non-empty provinces, sorted
func provinces(counties []model.County) []string {
	var names []string
	for _, c := range counties {
		if c.Province != "" && !slices.Contains(names, c.Province) {
			names = append(names, c.Province)
		}
	}
	slices.Sort(names)
	return names
}

// County handles GET /county/:slug
func (h *PageHandler) County(c *gin.Context) {
	slug := c.Param("slug")

	record, err := h.countyService.Get(slug)
	if err != nil {
		status := http.StatusInternalServerError
		if county.IsNotFound(err) {
			status = http.StatusNotFound
		} else {
			c.Error(err)
		}
		c.HTML(status, "county.html", gin.H{
			"Title":  "County not found",
			"Slug":   slug,
			"County": (*model.County)(nil),
		})
		return
	}

	c.HTML(http.StatusOK, "county.html", gin.H{
		"Title":  record.DisplayName(),
		"Slug":   slug,
		"County": &record,
	})
}
