// Package store reads and writes the pipeline's JSON documents.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// ReadJSON decodes the JSON document at path into v
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// WriteJSON encodes v with two-space indentation and replaces path with it.
// The document is written to a temporary file first so readers never see a
// partial write.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// LoadSeries reads the series document for an update. A missing or
// unreadable document is replaced by an empty one.
func LoadSeries(path string, now time.Time) *models.SeriesDocument {
	var doc models.SeriesDocument
	if err := ReadJSON(path, &doc); err != nil {
		log.Warn("Starting a fresh series document", "path", path, "reason", err)
		return models.NewSeriesDocument(now)
	}
	if doc.Matches == nil {
		doc.Matches = make(map[string]models.MatchRecord)
	}
	return &doc
}

// ReadSeries reads the series document, failing if it is missing or invalid
func ReadSeries(path string) (*models.SeriesDocument, error) {
	var doc models.SeriesDocument
	if err := ReadJSON(path, &doc); err != nil {
		return nil, err
	}
	if doc.Matches == nil {
		doc.Matches = make(map[string]models.MatchRecord)
	}
	return &doc, nil
}

// ReadStats reads the aggregated stats document
func ReadStats(path string) (*models.AggregatedStats, error) {
	var agg models.AggregatedStats
	if err := ReadJSON(path, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// ReadRoster reads the official squads
func ReadRoster(path string) (models.Roster, error) {
	var roster models.Roster
	if err := ReadJSON(path, &roster); err != nil {
		return models.Roster{}, err
	}
	return roster, nil
}

// ReadParticipants reads the entrants' predictions
func ReadParticipants(path string) ([]models.Participant, error) {
	var participants []models.Participant
	if err := ReadJSON(path, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}
