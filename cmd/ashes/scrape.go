package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ashes-predictions/ashes-leaderboard/internal/config"
	"github.com/ashes-predictions/ashes-leaderboard/internal/store"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/parser"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/scraper"
)

var saveHTML string

var scrapeCmd = &cobra.Command{
	Use:   "scrape [URL]",
	Short: "Fetch a scorecard and merge it into the series document",
	Long: `Fetch one match scorecard and replace that match's record in series-data.json.

The URL is taken from the argument, then $` + config.EnvMatchURL + `, then the
match scheduled for today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runScrape(cfg, args, now())
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&saveHTML, "save-html", "", "Also write the fetched scorecard HTML to this file")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cfg *config.Config, args []string, at time.Time) error {
	url, err := resolveMatchURL(cfg, args, models.DateString(at))
	if err != nil {
		return err
	}

	parser.FetchURL = func(u string) (string, error) {
		body, err := scraper.FetchURL(u)
		if err == nil && saveHTML != "" {
			if err := scraper.SaveContentToFile(saveHTML, body); err != nil {
				log.Warn("Could not save scorecard HTML", "path", saveHTML, "error", err)
			}
		}
		return body, err
	}

	// Fetch and parse before touching the document so a failure leaves it as it was.
	record, err := parser.ProcessScorecard(url, models.DateString(at))
	if err != nil {
		return fmt.Errorf("error scraping scorecard: %w", err)
	}

	path := cfg.Path(config.SeriesFile)
	doc := store.LoadSeries(path, at)
	doc.Upsert(*record, at)

	if err := store.WriteJSON(path, doc); err != nil {
		return fmt.Errorf("error updating scores: %w", err)
	}

	log.Info("Series data updated", "matchId", record.MatchID, "path", path)
	return nil
}

func resolveMatchURL(cfg *config.Config, args []string, date string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.MatchURL != "" {
		log.Info("Using match URL from environment", "var", config.EnvMatchURL)
		return cfg.MatchURL, nil
	}

	log.Info("No URL provided, attempting to auto-detect current match", "date", date)
	window, err := parser.FindMatch(schedule(cfg), date)
	if err != nil {
		return "", fmt.Errorf("no URL provided and could not auto-detect current match: %w", err)
	}
	log.Info("Auto-detected match", "name", window.Name, "start", window.Start, "end", window.End)
	return window.URL, nil
}

// schedule returns the configured match windows, updated from the schedule
// PDF when one is configured and readable.
func schedule(cfg *config.Config) []models.MatchWindow {
	if cfg.SchedulePDF == "" {
		return cfg.Schedule
	}

	pdfPath := cfg.SchedulePDF
	if strings.HasPrefix(pdfPath, "http://") || strings.HasPrefix(pdfPath, "https://") {
		local := filepath.Join(os.TempDir(), "ashes-schedule.pdf")
		if err := scraper.DownloadFile(pdfPath, local); err != nil {
			log.Warn("Error downloading schedule PDF, using configured schedule", "error", err)
			return cfg.Schedule
		}
		pdfPath = local
	}

	text, err := parser.ReadPDFText(pdfPath)
	if err != nil {
		log.Warn("Error reading schedule PDF, using configured schedule", "error", err)
		return cfg.Schedule
	}

	windows := parser.ExtractScheduleFromText(text)
	if len(windows) == 0 {
		log.Warn("No matches found in schedule PDF, using configured schedule", "path", pdfPath)
		return cfg.Schedule
	}

	log.Info("Loaded schedule from PDF", "matches", len(windows))
	return parser.MergeSchedule(cfg.Schedule, windows)
}
