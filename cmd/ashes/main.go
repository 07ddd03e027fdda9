// Package main is the entry point for the ashes prediction leaderboard
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ashes-predictions/ashes-leaderboard/internal/config"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

var (
	configPath string
	debug      bool

	// now is replaced in tests
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "ashes",
	Short: "Scrape Ashes scorecards and rank prediction entries",
	Long: `ashes maintains the data behind the Ashes prediction competition.

  scrape       fetch a scorecard and merge it into series-data.json
  stats        aggregate series-data.json into series-stats.json
  leaderboard  score and rank participants.json against the stats`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default ashes.yaml or $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
