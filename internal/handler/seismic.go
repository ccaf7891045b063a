package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"seismic-api/internal/interpolation"
	"seismic-api/internal/models"
	"seismic-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SeismicHandler handles seismic design coefficient lookups
type SeismicHandler struct {
	service SeismicService
}

// Service interface for dependency injection
type SeismicService interface {
	Lookup(context.Context, float64, float64, string) (*models.InterpolationResult, error)
}

// NewSeismicHandler creates a new seismic handler
func NewSeismicHandler(svc SeismicService) *SeismicHandler {
	return &SeismicHandler{service: svc}
}

// Search handles GET /search_csv requests
//
//	@Summary		Interpolate seismic design coefficients
//	@Description	Interpolates SDS and SD1 at a point from the 12 nearest reference stations (inverse distance weighting). A null coefficient means it could not be computed for this point.
//	@Tags			seismic
//	@Produce		json
//	@Param			latitude	query		number	true	"Latitude in degrees"
//	@Param			longitude	query		number	true	"Longitude in degrees"
//	@Param			siteClass	query		string	true	"Site class, e.g. B or C; classes without a dedicated column use Default"
//	@Success		200			{object}	models.InterpolationResult
//	@Failure		400			{object}	map[string]string
//	@Failure		422			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/search_csv [get]
func (h *SeismicHandler) Search(c *gin.Context) {
	latStr := strings.TrimSpace(c.Query("latitude"))
	lonStr := strings.TrimSpace(c.Query("longitude"))
	siteClass := strings.TrimSpace(c.Query("siteClass"))

	if latStr == "" || lonStr == "" || siteClass == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'latitude', 'longitude' and 'siteClass'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	result, err := h.service.Lookup(c.Request.Context(), lat, lon, siteClass)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCoordinates), errors.Is(err, interpolation.ErrUnknownColumn):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, interpolation.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Str("site_class", siteClass).Msg("seismic lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
