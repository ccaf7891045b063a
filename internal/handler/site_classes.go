package handler

import (
	"context"
	"net/http"

	"seismic-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SiteClassHandler lists the site classes with dedicated reference columns
type SiteClassHandler struct {
	service SiteClassService
}

// Service interface for dependency injection
type SiteClassService interface {
	SiteClasses(context.Context) (map[models.Prefix][]string, error)
}

// NewSiteClassHandler creates a new site class handler
func NewSiteClassHandler(svc SiteClassService) *SiteClassHandler {
	return &SiteClassHandler{service: svc}
}

// SiteClasses handles GET /site-classes requests
//
//	@Summary	List site classes
//	@Description	Site classes with a dedicated column per coefficient. Any other site class falls back to the Default column.
//	@Tags		seismic
//	@Produce	json
//	@Success	200	{object}	map[string][]string
//	@Failure	500	{object}	map[string]string
//	@Router		/site-classes [get]
func (h *SiteClassHandler) SiteClasses(c *gin.Context) {
	classes, err := h.service.SiteClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, classes)
}
