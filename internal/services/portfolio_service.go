package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/pkg/config"
	"github.com/gurkanindibay/portfolio/pkg/logger"
	"github.com/sirupsen/logrus"
)

// PortfolioService fetches the account's repositories and keeps the
// displayed list. It is safe for concurrent use.
type PortfolioService struct {
	username  string
	cfg       config.PortfolioConfig
	github    RepositoryLister
	documents *DocumentLoader
	names     *NameSimilarityService
	log       *logrus.Entry

	mu          sync.RWMutex
	projects    []*models.Project
	filtered    []*models.Project
	includeOnly []models.InclusionEntry
	lastErr     error
	fetchedAt   time.Time
}

func NewPortfolioService(
	username string,
	cfg config.PortfolioConfig,
	github RepositoryLister,
	documents *DocumentLoader,
) *PortfolioService {
	return &PortfolioService{
		username:  username,
		cfg:       cfg,
		github:    github,
		documents: documents,
		names:     NewNameSimilarityService(),
		log:       logger.Component("portfolio"),
	}
}

// LoadInclusionList reads the projects document. Any failure leaves the
// list empty, which shows every repository; it is logged, never returned.
func (s *PortfolioService) LoadInclusionList(ctx context.Context) {
	list, err := loadDocument(ctx, s.documents, s.cfg.ProjectsFile, models.InclusionList{})
	if err != nil {
		s.log.WithError(err).Warn("Could not load projects list, showing all repositories")
	}

	s.mu.Lock()
	s.includeOnly = list.Projects
	s.mu.Unlock()
}

// InclusionList returns the repository names currently allowed; empty
// means no restriction.
func (s *PortfolioService) InclusionList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.InclusionList{Projects: s.includeOnly}.Names()
}

// FetchProjects lists the account's repositories and rebuilds the full
// and filtered lists. A failed fetch clears both and returns the error.
func (s *PortfolioService) FetchProjects(ctx context.Context) ([]*models.Project, error) {
	repos, err := s.github.ListUserRepositories(ctx, s.username)
	if err != nil {
		s.log.WithError(err).WithField("username", s.username).Error("Error fetching GitHub projects")

		s.mu.Lock()
		s.projects = nil
		s.filtered = nil
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}

	s.mu.RLock()
	include := s.includeOnly
	s.mu.RUnlock()

	projects := s.buildProjects(repos, include)
	s.reportUnknownNames(repos, include)

	s.mu.Lock()
	s.projects = projects
	s.filtered = cloneProjects(projects)
	s.lastErr = nil
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"fetched":   len(repos),
		"displayed": len(projects),
	}).Info("Fetched GitHub projects")

	return cloneProjects(projects), nil
}

// buildProjects filters, maps, sorts and caps the fetched repositories.
func (s *PortfolioService) buildProjects(repos []*models.GitHubRepository, include []models.InclusionEntry) []*models.Project {
	excluded := toSet(s.cfg.ExcludeRepos)
	featured := toSet(s.cfg.FeaturedRepos)

	allowed := make(map[string]models.InclusionEntry, len(include))
	for _, entry := range include {
		allowed[entry.Name] = entry
	}

	projects := make([]*models.Project, 0, len(repos))
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if _, ok := excluded[repo.Name]; ok {
			continue
		}

		entry, ok := allowed[repo.Name]
		if len(allowed) > 0 && !ok {
			continue
		}

		_, isFeatured := featured[repo.Name]
		project := models.NewProject(repo, isFeatured)
		project.Technologies = entry.Technologies
		projects = append(projects, project)
	}

	sortProjects(projects)

	if limit := s.cfg.MaxProjects; limit != nil && *limit > 0 && len(projects) > *limit {
		projects = projects[:*limit]
	}

	return projects
}

// reportUnknownNames warns about configured names that match no fetched
// repository, suggesting the closest one.
func (s *PortfolioService) reportUnknownNames(repos []*models.GitHubRepository, include []models.InclusionEntry) {
	existing := make([]string, 0, len(repos))
	for _, repo := range repos {
		existing = append(existing, repo.Name)
	}

	configured := map[string][]string{
		"exclude":  s.cfg.ExcludeRepos,
		"featured": s.cfg.FeaturedRepos,
		"projects": models.InclusionList{Projects: include}.Names(),
	}
	for source, names := range configured {
		for _, unknown := range s.names.FindUnknown(names, existing) {
			entry := s.log.WithFields(logrus.Fields{"source": source, "name": unknown.Name})
			if unknown.Suggestion != "" {
				entry = entry.WithField("suggestion", unknown.Suggestion)
			}
			entry.Warn("Configured repository not found")
		}
	}
}

// sortProjects orders featured projects first, then by stars and then by
// the most recent update. Remaining ties keep their fetch order.
func sortProjects(projects []*models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if a.Stars != b.Stars {
			return a.Stars > b.Stars
		}
		return a.Updated.After(b.Updated)
	})
}

// FilterProjects selects among the already fetched projects without
// touching the network. Unknown filters are rejected and leave the
// current selection as it was.
func (s *PortfolioService) FilterProjects(filter models.Filter) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch filter {
	case models.FilterAll:
		s.filtered = cloneProjects(s.projects)
	case models.FilterFeatured:
		featured := make([]*models.Project, 0, len(s.projects))
		for _, project := range s.projects {
			if project.IsFeatured {
				featured = append(featured, project)
			}
		}
		s.filtered = featured
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedFilter, filter)
	}

	return cloneProjects(s.filtered), nil
}

// Projects returns the full list from the last fetch.
func (s *PortfolioService) Projects() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

// FilteredProjects returns the current selection.
func (s *PortfolioService) FilteredProjects() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.filtered)
}

// LastError returns the error of the last fetch, nil if it succeeded.
func (s *PortfolioService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// FetchedAt returns when projects were last fetched successfully.
func (s *PortfolioService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func cloneProjects(projects []*models.Project) []*models.Project {
	out := make([]*models.Project, len(projects))
	copy(out, projects)
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
