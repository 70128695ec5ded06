package services

import (
	"context"
	"sync"

	"github.com/gurkanindibay/portfolio/internal/models"
)

// SiteService runs the startup sequence and holds the resulting site.
type SiteService struct {
	username  string
	portfolio *PortfolioService
	filters   *FilterService

	// loadMu serializes loads so the stored site always matches the
	// portfolio's lists.
	loadMu sync.Mutex

	mu   sync.RWMutex
	site *models.Site
}

func NewSiteService(username string, portfolio *PortfolioService, filters *FilterService) *SiteService {
	return &SiteService{
		username:  username,
		portfolio: portfolio,
		filters:   filters,
	}
}

// Load reads the inclusion list, then the filter catalog, then fetches the
// repositories, in that order. A fetch failure is kept in the returned
// site for the page to display; it never aborts the load.
func (s *SiteService) Load(ctx context.Context) *models.Site {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	return s.load(ctx)
}

func (s *SiteService) load(ctx context.Context) *models.Site {
	s.portfolio.LoadInclusionList(ctx)
	filters := s.filters.LoadFilters(ctx)
	projects, err := s.portfolio.FetchProjects(ctx)

	site := &models.Site{
		Username:  s.username,
		Filters:   filters,
		Projects:  projects,
		Error:     err,
		FetchedAt: s.portfolio.FetchedAt(),
	}

	s.mu.Lock()
	s.site = site
	s.mu.Unlock()

	return site
}

// Current returns the last loaded site, loading it on first use.
func (s *SiteService) Current(ctx context.Context) *models.Site {
	s.mu.RLock()
	site := s.site
	s.mu.RUnlock()

	if site != nil {
		return site
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// another request may have finished the first load meanwhile
	s.mu.RLock()
	site = s.site
	s.mu.RUnlock()
	if site != nil {
		return site
	}
	return s.load(ctx)
}
