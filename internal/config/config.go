// Package config loads settings for the ashes commands.
//
// Values come from, in increasing precedence: built-in defaults for the
// 2025-26 series, an optional YAML file, and environment variables (a .env
// file in the working directory is loaded first).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// Environment variables read by Load
const (
	EnvConfigPath = "ASHES_CONFIG"
	EnvDataDir    = "ASHES_DATA_DIR"
	EnvRemoteURL  = "ASHES_REMOTE_URL"
	EnvMatchURL   = "MATCH_URL"
)

// File names inside the data directory
const (
	SeriesFile       = "series-data.json"
	StatsFile        = "series-stats.json"
	PlayersFile      = "players.json"
	ParticipantsFile = "participants.json"
)

// Config holds all settings for the pipeline
type Config struct {
	// DataDir holds the JSON documents.
	DataDir string `yaml:"data_dir"`

	// RemoteURL, when set, is the base URL the leaderboard reads the
	// series and stats documents from instead of DataDir.
	RemoteURL string `yaml:"remote_url"`

	// MatchURL overrides schedule lookup for the scraper.
	MatchURL string `yaml:"-"`

	// TotalMatches is the number of scheduled matches in the series.
	TotalMatches int `yaml:"total_matches"`

	// Tiebreaker is the actual value participants' tiebreaker predictions
	// are measured against.
	Tiebreaker int `yaml:"tiebreaker"`

	Schedule    []models.MatchWindow `yaml:"schedule"`
	SchedulePDF string               `yaml:"schedule_pdf"`

	// Aliases maps scraped short names to roster names.
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:      "data",
		TotalMatches: 5,
		Tiebreaker:   172,
		Schedule: []models.MatchWindow{
			{Name: "1st Test", Start: "2025-11-21", End: "2025-11-25", URL: "https://www.cricbuzz.com/live-cricket-scorecard/108787/aus-vs-eng-1st-test-the-ashes-2025-26"},
			{Name: "2nd Test", Start: "2025-12-04", End: "2025-12-08", URL: "https://www.cricbuzz.com/live-cricket-scorecard/108788/aus-vs-eng-2nd-test-the-ashes-2025-26"},
			{Name: "3rd Test", Start: "2025-12-17", End: "2025-12-21", URL: "https://www.cricbuzz.com/live-cricket-scorecard/108789/aus-vs-eng-3rd-test-the-ashes-2025-26"},
			{Name: "4th Test", Start: "2025-12-26", End: "2025-12-30", URL: "https://www.cricbuzz.com/live-cricket-scorecard/108790/aus-vs-eng-4th-test-the-ashes-2025-26"},
			{Name: "5th Test", Start: "2026-01-04", End: "2026-01-08", URL: "https://www.cricbuzz.com/live-cricket-scorecard/108791/aus-vs-eng-5th-test-the-ashes-2025-26"},
		},
		Aliases: map[string]string{
			"Steven Smith": "Steve Smith",
			"Marnus":       "Marnus Labuschagne",
			"Pat":          "Pat Cummins",
			"Head":         "Travis Head",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// ASHES_CONFIG is consulted; a missing file is only an error when a path
// was given explicitly.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = "ashes.yaml"
	}

	if err := cfg.loadFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			log.Debug("No config file found, using defaults", "path", path)
		} else {
			return nil, err
		}
	}

	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvRemoteURL); ok {
		cfg.RemoteURL = v
	}
	if v, ok := os.LookupEnv(EnvMatchURL); ok {
		cfg.MatchURL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	log.Debug("Loaded config file", "path", path)
	return nil
}

// Validate checks the configuration for values the pipeline cannot use
func (c *Config) Validate() error {
	if c.TotalMatches <= 0 {
		return fmt.Errorf("config: total_matches must be positive, got %d", c.TotalMatches)
	}
	if c.DataDir == "" {
		return errors.New("config: data_dir must not be empty")
	}
	for _, w := range c.Schedule {
		if w.URL == "" {
			return fmt.Errorf("config: schedule entry %q has no url", w.Name)
		}
		if w.End < w.Start {
			return fmt.Errorf("config: schedule entry %q ends (%s) before it starts (%s)", w.Name, w.End, w.Start)
		}
	}
	return nil
}

// Path returns the location of a document in the data directory
func (c *Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}
