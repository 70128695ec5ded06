package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gurkanindibay/portfolio/internal/generator"
	"github.com/gurkanindibay/portfolio/internal/render"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/pkg/config"
	"github.com/gurkanindibay/portfolio/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	outDir    string
	username  string
	strict    bool
	fetchWait time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the GitHub portfolio as a static site",
	Long: `Generate fetches the configured account's public repositories and writes
index.html plus its assets, ready to be served by any static host.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "GitHub account (overrides GITHUB_USERNAME)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail instead of writing the error page when the fetch fails")
	rootCmd.Flags().DurationVar(&fetchWait, "timeout", 30*time.Second, "timeout for fetching repositories")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if username != "" {
		cfg.GitHub.Username = username
	}

	githubService, err := services.NewGitHubService(cfg.GitHub)
	if err != nil {
		return err
	}
	documents := services.NewDocumentLoader(&http.Client{Timeout: 10 * time.Second})
	portfolioService := services.NewPortfolioService(cfg.GitHub.Username, cfg.Portfolio, githubService, documents)
	filterService := services.NewFilterService(cfg.Portfolio.FiltersFile, documents)
	siteService := services.NewSiteService(cfg.GitHub.Username, portfolioService, filterService)

	renderer, err := render.New()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchWait)
	defer cancel()

	site := siteService.Load(ctx)
	if site.Error != nil && strict {
		return fmt.Errorf("failed to fetch projects: %w", site.Error)
	}

	return generator.New(renderer, portfolioService).Generate(site, outDir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
