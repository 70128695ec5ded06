package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/internal/render"
	"github.com/gurkanindibay/portfolio/pkg/logger"
	"github.com/gurkanindibay/portfolio/web"
)

// ProjectFilter selects among fetched projects.
type ProjectFilter interface {
	FilterProjects(filter models.Filter) ([]*models.Project, error)
}

// Generator writes the portfolio as a static site: index.html plus the
// assets under static/.
type Generator struct {
	renderer *render.Renderer
	projects ProjectFilter
	now      func() time.Time
}

func New(renderer *render.Renderer, projects ProjectFilter) *Generator {
	return &Generator{
		renderer: renderer,
		projects: projects,
		now:      time.Now,
	}
}

// Generate renders site into outDir. A site whose fetch failed is still
// written, showing the error placeholder.
func (g *Generator) Generate(site *models.Site, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := g.pageData(site)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := g.renderer.Page(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(indexPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", indexPath, err)
	}

	if err := copyAssets(filepath.Join(outDir, "static")); err != nil {
		return err
	}

	logger.WithField("out", outDir).Infof("Generated portfolio with %d projects", len(site.Projects))
	return nil
}

// pageData pre-renders one grid per supported filter so the browser can
// switch between them without a server.
func (g *Generator) pageData(site *models.Site) (render.PageData, error) {
	data := render.PageData{
		Title:        fmt.Sprintf("%s | Portfolio", site.Username),
		Username:     site.Username,
		Theme:        models.ThemeLight,
		ThemeIcon:    models.ThemeLight.Icon(),
		Filters:      site.Filters,
		ActiveFilter: string(models.FilterAll),
		Year:         g.now().Year(),
		AssetBase:    "",
		Mode:         render.ModeStatic,
	}

	if site.Error != nil {
		grid, err := g.renderer.ErrorPlaceholder(site.Error)
		if err != nil {
			return data, err
		}
		data.Grid = grid
		return data, nil
	}

	grid, err := g.renderer.ProjectGrid(site.Projects)
	if err != nil {
		return data, err
	}
	data.Grid = grid

	data.Grids = make(map[string]template.HTML, len(site.Filters))
	for _, entry := range site.Filters {
		filter, err := models.ParseFilter(entry.Value)
		if err != nil {
			logger.WithField("filter", entry.Value).Warn("Skipping unsupported filter")
			continue
		}
		selected, err := g.projects.FilterProjects(filter)
		if err != nil {
			return data, err
		}
		filtered, err := g.renderer.ProjectGrid(selected)
		if err != nil {
			return data, err
		}
		data.Grids[string(filter)] = filtered
	}

	return data, nil
}

func copyAssets(dst string) error {
	return fs.WalkDir(web.Static(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		content, err := fs.ReadFile(web.Static(), path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
}
