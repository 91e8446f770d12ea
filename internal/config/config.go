// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/pbctl.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// League registry — the competition this service aggregates
// --------------------------------------------------------------------------

const (
	// DefaultLeagueID is the API-Football id for the Brasileirão Feminino A1.
	DefaultLeagueID = 74
	// DefaultSeason is the season queried on the provider.
	DefaultSeason = 2024
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream sports provider (API-Football)
	FootballAPIKey     string
	FootballAPIBaseURL string
	FootballLeagueID   int
	FootballSeason     int
	// Outbound requests-per-minute budget against the provider.
	FootballRPM int

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
// An empty API_FOOTBALL_KEY is not an error: the service runs in free mode
// and serves synthetic data.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"https://passa-a-bola.onrender.com",
			"http://localhost:3000",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		FootballAPIKey:     envOr("API_FOOTBALL_KEY", ""),
		FootballAPIBaseURL: envOr("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io"),
		FootballLeagueID:   envInt("API_FOOTBALL_LEAGUE", DefaultLeagueID),
		FootballSeason:     envInt("API_FOOTBALL_SEASON", DefaultSeason),
		FootballRPM:        envInt("API_FOOTBALL_RPM", 30),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
