// Command api is the Passa a Bola data API server.
//
// Usage:
//
//	passabola-api
//	API_PORT=8080 passabola-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/passabola/passabola-data/internal/api"
	"github.com/passabola/passabola-data/internal/cache"
	"github.com/passabola/passabola-data/internal/config"
	"github.com/passabola/passabola-data/internal/external"
	"github.com/passabola/passabola-data/internal/match"
	"github.com/passabola/passabola-data/internal/provider/apifootball"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Provider client and one-time entitlement probe. The flag is fixed for
	// the process lifetime; a failed probe only means free mode.
	football := apifootball.NewClient(apifootball.Config{
		BaseURL:           cfg.FootballAPIBaseURL,
		APIKey:            cfg.FootballAPIKey,
		LeagueID:          cfg.FootballLeagueID,
		Season:            cfg.FootballSeason,
		RequestsPerMinute: cfg.FootballRPM,
	}, logger)

	hasPremiumAccess := false
	if cfg.FootballAPIKey != "" {
		hasPremiumAccess = football.Probe(ctx)
	} else {
		logger.Info("no API_FOOTBALL_KEY configured, using free mode")
	}
	logger.Info("entitlement resolved", "premium", hasPremiumAccess)

	// Aggregation services
	matches := match.NewService(football, hasPremiumAccess, logger)
	news := external.NewNewsService(nil, logger)

	// Response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(matches, news, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Passa a Bola Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"mode", matches.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
