package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/middleware"
	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/internal/render"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

const htmlContentType = "text/html; charset=utf-8"

type PortfolioHandler struct {
	siteService      *services.SiteService
	portfolioService *services.PortfolioService
	themeService     *services.ThemeService
	exportService    *services.ExportService
	renderer         *render.Renderer
}

func NewPortfolioHandler(siteService *services.SiteService, portfolioService *services.PortfolioService,
	themeService *services.ThemeService, exportService *services.ExportService, renderer *render.Renderer) *PortfolioHandler {
	return &PortfolioHandler{
		siteService:      siteService,
		portfolioService: portfolioService,
		themeService:     themeService,
		exportService:    exportService,
		renderer:         renderer,
	}
}

// Index renders the portfolio page with every fetched project
func (h *PortfolioHandler) Index(c *gin.Context) {
	site := h.siteService.Current(c.Request.Context())

	grid, err := h.siteGrid(site, site.Projects)
	if err != nil {
		logger.WithError(err).Error("Failed to render projects grid")
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}

	theme := h.themeService.Current(middleware.GetVisitorID(c))

	c.HTML(http.StatusOK, "page", render.PageData{
		Title:        fmt.Sprintf("%s | Portfolio", site.Username),
		Username:     site.Username,
		Theme:        theme,
		ThemeIcon:    theme.Icon(),
		Filters:      site.Filters,
		ActiveFilter: string(models.FilterAll),
		Grid:         grid,
		Year:         time.Now().Year(),
		AssetBase:    "/",
		Mode:         render.ModeServer,
	})
}

// Projects returns the grid fragment for the requested filter without
// fetching again
func (h *PortfolioHandler) Projects(c *gin.Context) {
	filter, err := models.ParseFilter(c.DefaultQuery("filter", string(models.FilterAll)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site := h.siteService.Current(c.Request.Context())

	var projects []*models.Project
	if site.Error == nil {
		projects, err = h.portfolioService.FilterProjects(filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	grid, err := h.siteGrid(site, projects)
	if err != nil {
		logger.WithError(err).Error("Failed to render projects grid")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render projects"})
		return
	}

	c.Data(http.StatusOK, htmlContentType, []byte(grid))
}

// Refresh runs the load sequence again on demand
func (h *PortfolioHandler) Refresh(c *gin.Context) {
	site := h.siteService.Load(c.Request.Context())
	if site.Error != nil {
		status := http.StatusBadGateway
		var fetchErr *services.RemoteFetchError
		if errors.As(site.Error, &fetchErr) && fetchErr.StatusCode == 0 {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": site.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   len(site.Projects),
		"fetched_at": site.FetchedAt,
	})
}

// Export downloads the selected projects as a spreadsheet
func (h *PortfolioHandler) Export(c *gin.Context) {
	filter, err := models.ParseFilter(c.DefaultQuery("filter", string(models.FilterAll)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site := h.siteService.Current(c.Request.Context())
	if site.Error != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": site.Error.Error()})
		return
	}

	projects, err := h.portfolioService.FilterProjects(filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-projects.xlsx"`, site.Username))
	if err := h.exportService.WriteProjects(c.Writer, projects); err != nil {
		logger.WithError(err).Error("Failed to export projects")
		c.Status(http.StatusInternalServerError)
	}
}

// siteGrid renders the error placeholder when the last load failed so no
// stale cards are ever shown.
func (h *PortfolioHandler) siteGrid(site *models.Site, projects []*models.Project) (template.HTML, error) {
	if site.Error != nil {
		return h.renderer.ErrorPlaceholder(site.Error)
	}
	return h.renderer.ProjectGrid(projects)
}
