// Command pbctl is the Passa a Bola diagnostics CLI. It runs the same
// aggregation pipeline as the API server and prints results as JSON, which
// makes it easy to check entitlement and fallback behavior from a terminal.
//
// Usage:
//
//	pbctl status
//	pbctl matches live
//	pbctl matches upcoming
//	pbctl matches details 1234
//	pbctl news --limit 6
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/passabola/passabola-data/internal/config"
	"github.com/passabola/passabola-data/internal/external"
	"github.com/passabola/passabola-data/internal/match"
	"github.com/passabola/passabola-data/internal/provider/apifootball"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "pbctl",
		Short: "Passa a Bola data diagnostics CLI",
	}

	root.AddCommand(statusCmd())
	root.AddCommand(matchesCmd())
	root.AddCommand(newsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// status command
// --------------------------------------------------------------------------

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Run the entitlement probe and report the resulting mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, _ := buildServices(cmd.Context())
			message := "Usando dados simulados (API Free)"
			if matches.HasPremiumAccess() {
				message = "API Premium detectada"
			}
			return printJSON(map[string]interface{}{
				"hasPremiumAccess": matches.HasPremiumAccess(),
				"mode":             matches.Mode(),
				"message":          message,
			})
		},
	}
}

// --------------------------------------------------------------------------
// matches command
// --------------------------------------------------------------------------

func matchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Query the hybrid match aggregator",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "live",
		Short: "Print current live fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, _ := buildServices(cmd.Context())
			return printJSON(matches.LiveMatches(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upcoming",
		Short: "Print fixtures scheduled in the next week",
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, _ := buildServices(cmd.Context())
			return printJSON(matches.UpcomingMatches(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "details <fixtureID>",
		Short: "Print a single fixture by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("fixtureID must be an integer: %q", args[0])
			}
			matches, _ := buildServices(cmd.Context())
			return printJSON(matches.MatchDetails(cmd.Context(), id))
		},
	})

	return cmd
}

// --------------------------------------------------------------------------
// news command
// --------------------------------------------------------------------------

func newsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Print merged women's football news",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, news := buildServices(cmd.Context())
			return printJSON(news.GetNews(cmd.Context(), limit))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 6, "maximum number of items")
	return cmd
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

// buildServices wires the same composition as cmd/api, probe included.
func buildServices(ctx context.Context) (*match.Service, *external.NewsService) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

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
	}

	return match.NewService(football, hasPremiumAccess, logger),
		external.NewNewsService(nil, logger)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
