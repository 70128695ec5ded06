package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/middleware"
	"github.com/gurkanindibay/portfolio/internal/render"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/web"
)

// Dependencies groups what the HTTP layer needs.
type Dependencies struct {
	SiteService      *services.SiteService
	PortfolioService *services.PortfolioService
	ThemeService     *services.ThemeService
	ExportService    *services.ExportService
	Renderer         *render.Renderer
	SessionSecret    string
}

// SetupRoutes registers middleware, templates and routes on router
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.SetHTMLTemplate(deps.Renderer.Templates())
	router.Use(middleware.VisitorMiddleware(deps.SessionSecret))

	router.StaticFS("/static", http.FS(web.Static()))

	portfolioHandler := NewPortfolioHandler(deps.SiteService, deps.PortfolioService, deps.ThemeService, deps.ExportService, deps.Renderer)
	themeHandler := NewThemeHandler(deps.ThemeService)
	healthHandler := NewHealthHandler(deps.PortfolioService)
	notFoundHandler := NewNotFoundHandler(deps.ThemeService)

	router.GET("/", portfolioHandler.Index)

	projects := router.Group("/projects")
	{
		projects.GET("", portfolioHandler.Projects)
		projects.POST("/refresh", portfolioHandler.Refresh)
		projects.GET("/export.xlsx", portfolioHandler.Export)
	}

	router.POST("/theme/toggle", themeHandler.Toggle)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)
}
