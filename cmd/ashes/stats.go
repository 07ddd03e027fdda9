package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ashes-predictions/ashes-leaderboard/internal/config"
	"github.com/ashes-predictions/ashes-leaderboard/internal/store"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate the series document into top run scorers and wicket takers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runStats(cfg, now())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cfg *config.Config, at time.Time) error {
	doc, err := store.ReadSeries(cfg.Path(config.SeriesFile))
	if err != nil {
		return fmt.Errorf("error generating stats: %w", err)
	}

	roster, err := store.ReadRoster(cfg.Path(config.PlayersFile))
	if err != nil {
		return fmt.Errorf("error generating stats: %w", err)
	}

	agg := stats.Generate(doc, roster, cfg.Aliases, cfg.Tiebreaker, at)

	path := cfg.Path(config.StatsFile)
	if err := store.WriteJSON(path, agg); err != nil {
		return fmt.Errorf("error generating stats: %w", err)
	}

	log.Info("Series stats generated", "path", path)
	return nil
}
