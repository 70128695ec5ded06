package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultGitHubAPIURL = "https://api.github.com/"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	GitHub    GitHubConfig
	Portfolio PortfolioConfig
	Session   SessionConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Username string
	// Token is optional and only raises the API rate limit.
	Token  string
	APIURL string
}

// PortfolioConfig drives which repositories end up on the page.
type PortfolioConfig struct {
	// MaxProjects caps the list after sorting; nil or 0 means unbounded.
	MaxProjects   *int
	ExcludeRepos  []string
	FeaturedRepos []string
	ProjectsFile  string
	FiltersFile   string
}

type SessionConfig struct {
	Secret string
}

type LogConfig struct {
	Level  string
	Format string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	defaults := Default()
	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", defaults.Server.Port),
			Mode:         getEnv("GIN_MODE", defaults.Server.Mode),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", defaults.Server.ReadTimeout),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", defaults.Server.WriteTimeout),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", defaults.Database.Path),
		},
		GitHub: GitHubConfig{
			Username: getEnv("GITHUB_USERNAME", defaults.GitHub.Username),
			Token:    getEnv("GITHUB_TOKEN", ""),
			APIURL:   getEnv("GITHUB_API_URL", defaults.GitHub.APIURL),
		},
		Portfolio: PortfolioConfig{
			MaxProjects:   getEnvAsOptionalInt("MAX_PROJECTS"),
			ExcludeRepos:  getEnvAsList("EXCLUDE_REPOS"),
			FeaturedRepos: getEnvAsList("FEATURED_REPOS"),
			ProjectsFile:  getEnv("PROJECTS_FILE", defaults.Portfolio.ProjectsFile),
			FiltersFile:   getEnv("FILTERS_FILE", defaults.Portfolio.FiltersFile),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", defaults.Session.Secret),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", defaults.Log.Level),
			Format: getEnv("LOG_FORMAT", defaults.Log.Format),
		},
	}

	return nil
}

// Default returns a configuration with every field at its default value,
// ignoring the environment.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "release", ReadTimeout: 15, WriteTimeout: 15},
		Database: DatabaseConfig{Path: "./portfolio.db"},
		GitHub:   GitHubConfig{Username: "gurkanindibay", APIURL: defaultGitHubAPIURL},
		Portfolio: PortfolioConfig{
			ProjectsFile: "projects.json",
			FiltersFile:  "filters.json",
		},
		Session: SessionConfig{Secret: "default-secret-key"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsOptionalInt returns nil unless the variable holds a positive integer.
func getEnvAsOptionalInt(key string) *int {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		return nil
	}
	return &intValue
}

// getEnvAsList splits a comma separated variable, dropping blank items.
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return []string{}
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
