package service

import (
	"context"

	"seismic-api/internal/models"
)

// SiteClassService lists the site classes that have dedicated reference columns
type SiteClassService struct {
	catalog SiteClassCatalog
}

// SiteClassCatalog interface for dependency injection
type SiteClassCatalog interface {
	SiteClasses(prefix models.Prefix) []string
}

// NewSiteClassService creates a new site class service
func NewSiteClassService(catalog SiteClassCatalog) *SiteClassService {
	return &SiteClassService{catalog: catalog}
}

// SiteClasses returns the dedicated site classes per coefficient prefix. Any other class falls back to Default.
func (s *SiteClassService) SiteClasses(ctx context.Context) (map[models.Prefix][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[models.Prefix][]string, len(models.Prefixes))
	for _, p := range models.Prefixes {
		out[p] = s.catalog.SiteClasses(p)
	}
	return out, nil
}
