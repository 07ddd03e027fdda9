package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ashes-predictions/ashes-leaderboard/internal/config"
	"github.com/ashes-predictions/ashes-leaderboard/internal/store"
	"github.com/ashes-predictions/ashes-leaderboard/internal/utils"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/scoring"
)

const (
	viewLeaderboard = "leaderboard"
	viewStats       = "stats"
	viewRules       = "rules"
)

var (
	view       string
	remoteURL  string
	watch      bool
	jsonOutput bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Score and rank participants against the current series stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("remote") {
			cfg.RemoteURL = remoteURL
		}

		out := cmd.OutOrStdout()
		if !watch {
			return renderLeaderboard(cmd.Context(), cfg, out)
		}
		if cfg.RemoteURL != "" {
			return fmt.Errorf("--watch needs local documents, but a remote URL is set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := renderLeaderboard(ctx, cfg, out); err != nil {
			log.Error("Render failed", "error", err)
		}
		return store.Watch(ctx, cfg.DataDir, []string{config.SeriesFile, config.StatsFile, config.ParticipantsFile}, func(string) {
			if err := renderLeaderboard(ctx, cfg, out); err != nil {
				log.Error("Render failed", "error", err)
			}
		})
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&view, "view", viewLeaderboard, "View to render: leaderboard, stats or rules")
	leaderboardCmd.Flags().StringVar(&remoteURL, "remote", "", "Base URL to read series-data.json and series-stats.json from (overrides $"+config.EnvRemoteURL+")")
	leaderboardCmd.Flags().BoolVar(&watch, "watch", false, "Re-render when the local documents change")
	leaderboardCmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the ranked participants as JSON")
	rootCmd.AddCommand(leaderboardCmd)
}

func renderLeaderboard(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if view == viewRules {
		utils.DisplayRules(out, cfg.TotalMatches)
		return nil
	}
	if view != viewLeaderboard && view != viewStats {
		return fmt.Errorf("unknown view %q", view)
	}

	src := store.Source{Dir: cfg.DataDir, RemoteURL: cfg.RemoteURL}
	docs, err := store.FetchDocuments(ctx, src, config.SeriesFile, config.StatsFile)
	if err != nil {
		return fmt.Errorf("error loading documents: %w", err)
	}

	if view == viewStats {
		utils.DisplayStats(out, docs.Stats)
		return nil
	}

	participants, err := store.ReadParticipants(cfg.Path(config.ParticipantsFile))
	if err != nil {
		return fmt.Errorf("error loading participants: %w", err)
	}

	ranked := scoring.Rank(participants, docs.Series.SeriesScore, docs.Stats, cfg.TotalMatches)

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	utils.DisplayLeaderboard(out, ranked, docs.Series.SeriesScore, docs.Stats.ActualTiebreaker)
	return nil
}
