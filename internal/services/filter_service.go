package services

import (
	"context"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

type FilterService struct {
	filtersFile string
	documents   *DocumentLoader
}

func NewFilterService(filtersFile string, documents *DocumentLoader) *FilterService {
	return &FilterService{
		filtersFile: filtersFile,
		documents:   documents,
	}
}

// LoadFilters returns the filter buttons to show. A document without a
// filters field yields no buttons; an unreadable one yields the defaults.
func (s *FilterService) LoadFilters(ctx context.Context) []models.FilterEntry {
	fallback := models.FilterCatalog{Filters: models.DefaultFilters()}

	catalog, err := loadDocument(ctx, s.documents, s.filtersFile, fallback)
	if err != nil {
		logger.Component("filters").WithError(err).Warn("Could not load filters, using defaults")
	}

	if catalog.Filters == nil {
		return []models.FilterEntry{}
	}
	return catalog.Filters
}
