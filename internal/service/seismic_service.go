package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"seismic-api/internal/interpolation"
	"seismic-api/internal/models"
)

// ErrInvalidCoordinates is returned for latitudes or longitudes that are not finite or out of range.
var ErrInvalidCoordinates = errors.New("service: invalid coordinates")

// SeismicService contains the business logic for seismic design coefficient lookups
type SeismicService struct {
	engine Interpolator
}

// Interpolator interface for dependency injection
type Interpolator interface {
	Interpolate(lat, lon float64, prefix models.Prefix, siteClass string) (interpolation.Estimate, error)
}

// NewSeismicService creates a new seismic service
func NewSeismicService(engine Interpolator) *SeismicService {
	return &SeismicService{engine: engine}
}

// Lookup interpolates SDS and SD1 for a site class at the given coordinates, rounded to 2 decimal places
func (s *SeismicService) Lookup(ctx context.Context, lat, lon float64, siteClass string) (*models.InterpolationResult, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %f", ErrInvalidCoordinates, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %f", ErrInvalidCoordinates, lon)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sds, err := s.engine.Interpolate(lat, lon, models.SDS, siteClass)
	if err != nil {
		return nil, fmt.Errorf("service: failed to interpolate SDS: %w", err)
	}

	sd1, err := s.engine.Interpolate(lat, lon, models.SD1, siteClass)
	if err != nil {
		return nil, fmt.Errorf("service: failed to interpolate SD1: %w", err)
	}

	return &models.InterpolationResult{
		Latitude:  lat,
		Longitude: lon,
		SDS:       rounded(sds),
		SD1:       rounded(sd1),
		SiteClass: siteClass,
	}, nil
}

// rounded returns the estimate rounded to 2 decimal places, or nil when it is missing
func rounded(est interpolation.Estimate) *float64 {
	if !est.Valid || math.IsNaN(est.Value) || math.IsInf(est.Value, 0) {
		return nil
	}
	v := math.Round(est.Value*100) / 100
	return &v
}
