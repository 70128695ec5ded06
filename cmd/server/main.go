package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/handlers"
	"github.com/gurkanindibay/portfolio/internal/render"
	"github.com/gurkanindibay/portfolio/internal/repositories"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/pkg/config"
	"github.com/gurkanindibay/portfolio/pkg/database"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	githubService, err := services.NewGitHubService(cfg.GitHub)
	if err != nil {
		logger.Fatalf("Failed to create GitHub client: %v", err)
	}
	documents := services.NewDocumentLoader(&http.Client{Timeout: 10 * time.Second})
	portfolioService := services.NewPortfolioService(cfg.GitHub.Username, cfg.Portfolio, githubService, documents)
	filterService := services.NewFilterService(cfg.Portfolio.FiltersFile, documents)
	siteService := services.NewSiteService(cfg.GitHub.Username, portfolioService, filterService)
	themeService := services.NewThemeService(repositories.NewPreferenceRepository(database.DB))

	renderer, err := render.New()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}

	// Load projects once at startup; failures are shown on the page
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	site := siteService.Load(ctx)
	cancel()
	if site.Error != nil {
		logger.WithError(site.Error).Warn("Starting without projects")
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.SetupRoutes(router, handlers.Dependencies{
		SiteService:      siteService,
		PortfolioService: portfolioService,
		ThemeService:     themeService,
		ExportService:    services.NewExportService(),
		Renderer:         renderer,
		SessionSecret:    cfg.Session.Secret,
	})

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Infof("Server stopped")
}
