package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/pkg/config"
	"github.com/gurkanindibay/portfolio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	repos []*models.GitHubRepository
	err   error
	calls int
}

func (f *fakeLister) ListUserRepositories(ctx context.Context, username string) ([]*models.GitHubRepository, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

func repo(name string, stars int, updatedAt string) *models.GitHubRepository {
	return &models.GitHubRepository{
		Name:            name,
		FullName:        "octocat/" + name,
		HTMLURL:         "https://github.com/octocat/" + name,
		StargazersCount: stars,
		UpdatedAt:       updatedAt,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newPortfolio(cfg config.PortfolioConfig, lister RepositoryLister) *PortfolioService {
	if cfg.ProjectsFile == "" {
		cfg.ProjectsFile = "does-not-exist.json"
	}
	return NewPortfolioService("octocat", cfg, lister, NewDocumentLoader(nil))
}

func names(projects []*models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name)
	}
	return out
}

func TestFetchProjectsFiltering(t *testing.T) {
	fork := repo("forked-lib", 50, "2024-03-01T00:00:00Z")
	fork.Fork = true

	t.Run("Forks and excluded repositories are dropped", func(t *testing.T) {
		lister := &fakeLister{repos: []*models.GitHubRepository{
			fork,
			repo("dotfiles", 5, "2024-02-01T00:00:00Z"),
			repo("my-app", 10, "2024-01-01T00:00:00Z"),
		}}
		portfolio := newPortfolio(config.PortfolioConfig{ExcludeRepos: []string{"dotfiles"}}, lister)

		projects, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"my-app"}, names(projects))
	})

	t.Run("Inclusion list intersects with other filters", func(t *testing.T) {
		projectsFile := writeFile(t, "projects.json", `{"projects": ["my-app", "forked-lib", "dotfiles"]}`)
		lister := &fakeLister{repos: []*models.GitHubRepository{
			fork,
			repo("dotfiles", 5, "2024-02-01T00:00:00Z"),
			repo("my-app", 10, "2024-01-01T00:00:00Z"),
			repo("other", 99, "2024-01-01T00:00:00Z"),
		}}
		portfolio := newPortfolio(config.PortfolioConfig{
			ExcludeRepos: []string{"dotfiles"},
			ProjectsFile: projectsFile,
		}, lister)

		portfolio.LoadInclusionList(context.Background())
		projects, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"my-app"}, names(projects))
	})

	t.Run("Inclusion list applies without exclusions", func(t *testing.T) {
		projectsFile := writeFile(t, "projects.json", `{"projects": [{"name": "b", "technologies": ["Go", "SQLite"]}]}`)
		lister := &fakeLister{repos: []*models.GitHubRepository{
			repo("a", 1, "2024-01-01T00:00:00Z"),
			repo("b", 1, "2024-01-01T00:00:00Z"),
		}}
		portfolio := newPortfolio(config.PortfolioConfig{ProjectsFile: projectsFile}, lister)

		portfolio.LoadInclusionList(context.Background())
		projects, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "b", projects[0].Name)
		assert.Equal(t, []string{"Go", "SQLite"}, projects[0].Tags())
	})

	t.Run("Result cap applies after sorting", func(t *testing.T) {
		limit := 2
		lister := &fakeLister{repos: []*models.GitHubRepository{
			repo("low", 1, "2024-01-01T00:00:00Z"),
			repo("high", 30, "2024-01-01T00:00:00Z"),
			repo("mid", 20, "2024-01-01T00:00:00Z"),
		}}
		portfolio := newPortfolio(config.PortfolioConfig{MaxProjects: &limit}, lister)

		projects, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"high", "mid"}, names(projects))
	})
}

func TestFetchProjectsSorting(t *testing.T) {
	lister := &fakeLister{repos: []*models.GitHubRepository{
		repo("old-popular", 10, "2023-01-01T00:00:00Z"),
		repo("new-popular", 10, "2024-01-01T00:00:00Z"),
		repo("starless", 0, "2024-06-01T00:00:00Z"),
		repo("featured-small", 1, "2022-01-01T00:00:00Z"),
		repo("tie-first", 3, "2024-01-01T00:00:00Z"),
		repo("tie-second", 3, "2024-01-01T00:00:00Z"),
		repo("bad-date", 3, "yesterday"),
	}}
	portfolio := newPortfolio(config.PortfolioConfig{FeaturedRepos: []string{"featured-small"}}, lister)

	projects, err := portfolio.FetchProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"featured-small",
		"new-popular",
		"old-popular",
		"tie-first",
		"tie-second",
		"bad-date",
		"starless",
	}, names(projects))

	assert.True(t, projects[0].IsFeatured)
	for _, p := range projects[1:] {
		assert.False(t, p.IsFeatured, p.Name)
	}
}

func TestFetchProjectsMapping(t *testing.T) {
	empty := ""
	language := "Go"
	homepage := "https://example.com"
	r := repo("mapped", 4, "2024-05-06T07:08:09Z")
	r.Description = &empty
	r.Language = &language
	r.Homepage = &homepage
	r.ForksCount = 2
	r.Topics = []string{"cli", "go"}

	portfolio := newPortfolio(config.PortfolioConfig{}, &fakeLister{repos: []*models.GitHubRepository{r}})
	projects, err := portfolio.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, models.DefaultDescription, p.Description)
	assert.Equal(t, "https://github.com/octocat/mapped", p.URL)
	assert.Equal(t, 4, p.Stars)
	assert.Equal(t, 2, p.Forks)
	assert.Equal(t, "Go", *p.Language)
	assert.True(t, p.HasHomepage())
	assert.Equal(t, []string{"cli", "go"}, p.Topics)
	assert.Equal(t, 2024, p.Updated.Year())
}

func TestFetchProjectsFailure(t *testing.T) {
	lister := &fakeLister{repos: []*models.GitHubRepository{repo("a", 1, "2024-01-01T00:00:00Z")}}
	portfolio := newPortfolio(config.PortfolioConfig{}, lister)

	_, err := portfolio.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, portfolio.Projects(), 1)

	lister.err = &RemoteFetchError{StatusCode: http.StatusForbidden}
	projects, err := portfolio.FetchProjects(context.Background())

	var fetchErr *RemoteFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Nil(t, projects)
	assert.Empty(t, portfolio.Projects(), "no stale projects after a failed fetch")
	assert.Empty(t, portfolio.FilteredProjects())
	assert.Equal(t, err, portfolio.LastError())
}

func TestFilterProjects(t *testing.T) {
	lister := &fakeLister{repos: []*models.GitHubRepository{
		repo("a", 3, "2024-01-01T00:00:00Z"),
		repo("b", 2, "2024-01-01T00:00:00Z"),
		repo("c", 1, "2024-01-01T00:00:00Z"),
	}}

	t.Run("Featured then all", func(t *testing.T) {
		portfolio := newPortfolio(config.PortfolioConfig{FeaturedRepos: []string{"c"}}, lister)
		all, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)

		featured, err := portfolio.FilterProjects(models.FilterFeatured)
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, names(featured))
		assert.Equal(t, []string{"c"}, names(portfolio.FilteredProjects()))

		reset, err := portfolio.FilterProjects(models.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, names(all), names(reset))
		assert.Equal(t, 1, lister.calls, "filtering never refetches")
	})

	t.Run("No featured projects", func(t *testing.T) {
		portfolio := newPortfolio(config.PortfolioConfig{}, lister)
		_, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)

		featured, err := portfolio.FilterProjects(models.FilterFeatured)
		require.NoError(t, err)
		assert.Empty(t, featured)
	})

	t.Run("Unsupported filter keeps selection", func(t *testing.T) {
		portfolio := newPortfolio(config.PortfolioConfig{FeaturedRepos: []string{"a"}}, lister)
		_, err := portfolio.FetchProjects(context.Background())
		require.NoError(t, err)
		_, err = portfolio.FilterProjects(models.FilterFeatured)
		require.NoError(t, err)

		_, err = portfolio.FilterProjects(models.Filter("archived"))
		assert.ErrorIs(t, err, models.ErrUnsupportedFilter)
		assert.Equal(t, []string{"a"}, names(portfolio.FilteredProjects()))
	})
}

func TestLoadInclusionListFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects.json":
			w.Write([]byte(`{"projects": ["kept"]}`))
		case "/broken.json":
			w.Write([]byte(`{"projects": [`))
		case "/empty.json":
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	testCases := []struct {
		name     string
		path     string
		expected []string
	}{
		{name: "Remote document", path: "/projects.json", expected: []string{"kept"}},
		{name: "HTTP 404", path: "/missing.json", expected: []string{}},
		{name: "Malformed JSON", path: "/broken.json", expected: []string{}},
		{name: "Missing projects field", path: "/empty.json", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lister := &fakeLister{repos: []*models.GitHubRepository{
				repo("kept", 1, "2024-01-01T00:00:00Z"),
				repo("other", 1, "2024-01-01T00:00:00Z"),
			}}
			portfolio := newPortfolio(config.PortfolioConfig{ProjectsFile: server.URL + tc.path}, lister)

			portfolio.LoadInclusionList(context.Background())
			assert.Equal(t, tc.expected, portfolio.InclusionList())

			projects, err := portfolio.FetchProjects(context.Background())
			require.NoError(t, err)
			if len(tc.expected) == 0 {
				assert.Len(t, projects, 2)
			} else {
				assert.Equal(t, tc.expected, names(projects))
			}
		})
	}
}

func TestLoadInclusionListResetsOnFailure(t *testing.T) {
	projectsFile := writeFile(t, "projects.json", `{"projects": ["a"]}`)
	portfolio := newPortfolio(config.PortfolioConfig{ProjectsFile: projectsFile}, &fakeLister{})

	portfolio.LoadInclusionList(context.Background())
	require.Equal(t, []string{"a"}, portfolio.InclusionList())

	require.NoError(t, os.Remove(projectsFile))
	portfolio.LoadInclusionList(context.Background())
	assert.Empty(t, portfolio.InclusionList())
}

func TestFetchProjectsWarnsAboutUnknownNames(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	lister := &fakeLister{repos: []*models.GitHubRepository{
		repo("portfolio", 3, "2024-01-01T00:00:00Z"),
		repo("dotfiles", 1, "2024-01-01T00:00:00Z"),
	}}
	portfolio := newPortfolio(config.PortfolioConfig{
		ExcludeRepos:  []string{"dotfiles"},
		FeaturedRepos: []string{"portfolo"},
	}, lister)

	projects, err := portfolio.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio"}, names(projects))

	output := buf.String()
	assert.Contains(t, output, "Configured repository not found")
	assert.Contains(t, output, `"name":"portfolo"`)
	assert.Contains(t, output, `"suggestion":"portfolio"`)
	assert.NotContains(t, output, `"name":"dotfiles"`)
}
