package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/pkg/config"
	"golang.org/x/oauth2"
)

// reposPerPage is the single page size requested from the API.
const reposPerPage = 100

// RepositoryLister lists the public repositories of a GitHub account.
type RepositoryLister interface {
	ListUserRepositories(ctx context.Context, username string) ([]*models.GitHubRepository, error)
}

// RemoteFetchError reports a failed repository listing. StatusCode is zero
// when no HTTP response was received.
type RemoteFetchError struct {
	StatusCode int
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API request failed: %v", e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

type GitHubService struct {
	client *github.Client
}

// NewGitHubService creates a client for the configured API. The token is
// optional; without it requests are anonymous.
func NewGitHubService(cfg config.GitHubConfig) (*GitHubService, error) {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)

	if cfg.APIURL != "" {
		apiURL := cfg.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIURL, err)
		}
		client.BaseURL = baseURL
	}

	return &GitHubService{
		client: client,
	}, nil
}

// ListUserRepositories fetches the most recently updated repositories of
// username, one page only.
func (s *GitHubService) ListUserRepositories(ctx context.Context, username string) ([]*models.GitHubRepository, error) {
	opt := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	repos, resp, err := s.client.Repositories.List(ctx, username, opt)
	if err != nil {
		fetchErr := &RemoteFetchError{Err: err}
		var ghErr *github.ErrorResponse
		switch {
		case errors.As(err, &ghErr) && ghErr.Response != nil:
			fetchErr.StatusCode = ghErr.Response.StatusCode
		case resp != nil && resp.Response != nil && !isSuccessStatus(resp.StatusCode):
			fetchErr.StatusCode = resp.StatusCode
		}
		return nil, fetchErr
	}

	result := make([]*models.GitHubRepository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, githubRepositoryFromAPI(repo))
	}
	return result, nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// githubRepositoryFromAPI copies the fields the portfolio needs
func githubRepositoryFromAPI(repo *github.Repository) *models.GitHubRepository {
	githubRepo := &models.GitHubRepository{
		ID:              repo.GetID(),
		Name:            repo.GetName(),
		FullName:        repo.GetFullName(),
		Description:     repo.Description,
		HTMLURL:         repo.GetHTMLURL(),
		Homepage:        repo.Homepage,
		StargazersCount: repo.GetStargazersCount(),
		ForksCount:      repo.GetForksCount(),
		Language:        repo.Language,
		Topics:          repo.Topics,
		Fork:            repo.GetFork(),
	}

	if repo.UpdatedAt != nil {
		githubRepo.UpdatedAt = repo.UpdatedAt.Time.Format(time.RFC3339)
	}

	return githubRepo
}
