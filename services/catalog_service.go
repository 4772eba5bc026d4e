package services

import (
	"trendmindAPI/internal/catalog"
	cattypes "trendmindAPI/internal/types/catalog"
)

// CatalogService serves the static product content. It is read-only after
// construction and safe for concurrent use.
type CatalogService struct {
	catalog *cattypes.Catalog
}

func NewCatalogService() (*CatalogService, error) {
	c, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return &CatalogService{catalog: c}, nil
}

func (s *CatalogService) Catalog() *cattypes.Catalog {
	return s.catalog
}

func (s *CatalogService) Pricing() *cattypes.PricingResponse {
	return &cattypes.PricingResponse{
		TrialDays: catalog.TrialDays,
		Plans:     s.catalog.Plans,
		FAQ:       s.catalog.FAQ,
	}
}

func (s *CatalogService) Tools() []cattypes.Tool {
	return s.catalog.Tools
}

func (s *CatalogService) Pages() []cattypes.Page {
	return s.catalog.Pages
}

func (s *CatalogService) IsPublicPath(path string) bool {
	return catalog.IsPublicPath(s.catalog.Pages, path)
}
