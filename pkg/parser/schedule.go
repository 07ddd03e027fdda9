package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// ErrNoMatchScheduled is returned when no match window covers a date
var ErrNoMatchScheduled = errors.New("no match is scheduled for this date")

// ReadPDFText reads a PDF file and returns its text content
func ReadPDFText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}

	return string(bytes), nil
}

// Matches "1st Test ... 2025-11-21 to 2025-11-25 [url]". PDF text extraction
// drops line breaks, so the pattern is applied to the whole text.
var scheduleEntry = regexp.MustCompile(`(?i)(\d+(?:st|nd|rd|th)\s+Test)\D*?(\d{4}-\d{2}-\d{2})\s*(?:-|–|to)\s*(\d{4}-\d{2}-\d{2})(?:\s+(https?://\S+))?`)

// ExtractScheduleFromText parses schedule text into match windows
func ExtractScheduleFromText(text string) []models.MatchWindow {
	var windows []models.MatchWindow

	for _, m := range scheduleEntry.FindAllStringSubmatch(text, -1) {
		w := models.MatchWindow{
			Name:  normalizeTestName(m[1]),
			Start: m[2],
			End:   m[3],
			URL:   m[4],
		}
		windows = append(windows, w)
		log.Debug("Found scheduled match", "name", w.Name, "start", w.Start, "end", w.End)
	}

	return windows
}

func normalizeTestName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 2 {
		return strings.ToLower(fields[0]) + " Test"
	}
	return name
}

// MergeSchedule overlays windows read from a schedule document onto the
// configured table. Windows are matched by name; a window without a URL only
// updates dates, and an unknown window is added only when it has a URL.
func MergeSchedule(base, extra []models.MatchWindow) []models.MatchWindow {
	merged := append([]models.MatchWindow(nil), base...)

	for _, w := range extra {
		found := false
		for i := range merged {
			if !strings.EqualFold(merged[i].Name, w.Name) {
				continue
			}
			found = true
			merged[i].Start, merged[i].End = w.Start, w.End
			if w.URL != "" {
				merged[i].URL = w.URL
			}
		}
		if !found && w.URL != "" {
			merged = append(merged, w)
		}
	}

	return merged
}

// FindMatch returns the window whose dates include date (YYYY-MM-DD)
func FindMatch(windows []models.MatchWindow, date string) (models.MatchWindow, error) {
	for _, w := range windows {
		if w.Contains(date) {
			return w, nil
		}
	}
	return models.MatchWindow{}, fmt.Errorf("%w: %s", ErrNoMatchScheduled, date)
}
