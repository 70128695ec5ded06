package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestFormatRepoName(t *testing.T) {
	testCases := map[string]string{
		"my-cool-app": "My Cool App",
		"x":           "X",
		"":            "",
		"already-Up":  "Already Up",
		"a--b":        "A  B",
		"émoji-tool":  "Émoji Tool",
	}

	for input, expected := range testCases {
		assert.Equal(t, expected, FormatRepoName(input), input)
	}
}

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, "#00ADD8", LanguageColor("Go"))
	assert.Equal(t, "#3572A5", LanguageColor("Python"))
	assert.Equal(t, FallbackLanguageColor, LanguageColor("Brainfuck"))
	assert.Equal(t, FallbackLanguageColor, LanguageColor(""))
}

func TestProjectGridEmpty(t *testing.T) {
	grid, err := newRenderer(t).ProjectGrid(nil)
	require.NoError(t, err)
	assert.Contains(t, string(grid), "No projects found")
	assert.NotContains(t, string(grid), "project-card")
}

func TestProjectGridCards(t *testing.T) {
	projects := []*models.Project{
		{
			Name:        "my-cool-app",
			Description: "Builds things",
			URL:         "https://github.com/octocat/my-cool-app",
			Homepage:    strPtr("https://cool.example.com"),
			Stars:       10,
			Forks:       3,
			Language:    strPtr("Go"),
			Topics:      []string{"one", "two", "three", "four", "five", "six"},
			IsFeatured:  true,
		},
		{
			Name:        "plain",
			Description: models.DefaultDescription,
			URL:         "https://github.com/octocat/plain",
			Homepage:    strPtr(""),
		},
	}

	grid, err := newRenderer(t).ProjectGrid(projects)
	require.NoError(t, err)
	out := string(grid)

	assert.Equal(t, 2, strings.Count(out, `class="project-card"`))
	assert.Less(t, strings.Index(out, "My Cool App"), strings.Index(out, "Plain"), "cards keep list order")
	assert.Contains(t, out, `data-featured="true"`)
	assert.Contains(t, out, "fa-folder fa-star")
	assert.Contains(t, out, "color: #00ADD8")

	assert.Contains(t, out, "five")
	assert.NotContains(t, out, "six", "only the first five topics are shown")

	assert.Equal(t, 1, strings.Count(out, "project-stats"), "stats only when a language is set")
	assert.Equal(t, 1, strings.Count(out, "Live Demo"), "empty homepage is not linked")
	assert.Equal(t, 2, strings.Count(out, "View Code"))
	assert.Equal(t, 3, strings.Count(out, `rel="noopener noreferrer"`))
	assert.Equal(t, 3, strings.Count(out, `target="_blank"`))
}

func TestProjectGridEscaping(t *testing.T) {
	projects := []*models.Project{
		{
			Name:        "xss",
			Description: `<script>alert("owned")</script>`,
			URL:         "javascript:alert(1)",
			Language:    strPtr(`<img src=x onerror=alert(1)>`),
			Topics:      []string{`<b>bold</b>`},
		},
	}

	grid, err := newRenderer(t).ProjectGrid(projects)
	require.NoError(t, err)
	out := string(grid)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.NotContains(t, out, `href="javascript:`)
	assert.Contains(t, out, "color: "+FallbackLanguageColor)
}

func TestErrorPlaceholder(t *testing.T) {
	out, err := newRenderer(t).ErrorPlaceholder(errors.New("GitHub API error: 403"))
	require.NoError(t, err)

	assert.Contains(t, string(out), "Error loading projects")
	assert.Contains(t, string(out), "Error: GitHub API error: 403")
	assert.NotContains(t, string(out), "project-card")
}

func TestPage(t *testing.T) {
	r := newRenderer(t)
	grid, err := r.ProjectGrid(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Page(&buf, PageData{
		Title:        "octocat | Portfolio",
		Username:     "octocat",
		Theme:        models.ThemeDark,
		ThemeIcon:    models.ThemeDark.Icon(),
		Filters:      models.DefaultFilters(),
		ActiveFilter: "all",
		Grid:         grid,
		Year:         2026,
		AssetBase:    "/",
		Mode:         ModeServer,
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `data-theme="dark"`)
	assert.Contains(t, out, `<i class="fas fa-sun"></i>`)
	assert.Contains(t, out, `id="themeToggle"`)
	assert.Contains(t, out, `class="filter-btn active" data-filter="all"`)
	assert.Contains(t, out, `class="filter-btn" data-filter="featured"`)
	assert.Contains(t, out, `id="projectsGrid"`)
	assert.Contains(t, out, "No projects found")
	assert.Contains(t, out, `<span id="currentYear">2026</span>`)
	assert.Contains(t, out, `src="/static/app.js"`)
}
