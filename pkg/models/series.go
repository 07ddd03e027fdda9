package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TeamScores holds the innings score strings for each side, e.g. "172 & 164"
type TeamScores struct {
	Eng string `json:"eng"`
	Aus string `json:"aus"`
}

// MatchPlayerStats holds both teams' figures for a match
type MatchPlayerStats struct {
	Eng TeamStats `json:"eng"`
	Aus TeamStats `json:"aus"`
}

// Team returns the figures for one side
func (m *MatchPlayerStats) Team(t Team) *TeamStats {
	if t == Australia {
		return &m.Aus
	}
	return &m.Eng
}

// MatchRecord is one scraped match. A re-scrape replaces the whole record.
type MatchRecord struct {
	MatchID     string           `json:"matchId"`
	Date        string           `json:"date"`
	Status      string           `json:"status"`
	Result      string           `json:"result"`
	Scores      TeamScores       `json:"scores"`
	PlayerStats MatchPlayerStats `json:"playerStats"`
}

// SeriesScore counts decided and drawn matches
type SeriesScore struct {
	England   int `json:"england"`
	Australia int `json:"australia"`
	Draw      int `json:"draw"`
}

// Played returns the number of matches with a result
func (s SeriesScore) Played() int {
	return s.England + s.Australia + s.Draw
}

// Completed reports whether every scheduled match has a result
func (s SeriesScore) Completed(totalMatches int) bool {
	return s.Played() >= totalMatches
}

// Winner returns "England", "Australia" or "Draw"
func (s SeriesScore) Winner() string {
	switch {
	case s.England > s.Australia:
		return "England"
	case s.Australia > s.England:
		return "Australia"
	default:
		return "Draw"
	}
}

// ScoreLine returns the series result with the higher tally first, e.g. "3-1"
func (s SeriesScore) ScoreLine() string {
	hi, lo := s.England, s.Australia
	if lo > hi {
		hi, lo = lo, hi
	}
	return fmt.Sprintf("%d-%d", hi, lo)
}

// SeriesDocument is the contents of series-data.json
type SeriesDocument struct {
	LastUpdated string                 `json:"lastUpdated"`
	SeriesScore SeriesScore            `json:"seriesScore"`
	Matches     map[string]MatchRecord `json:"matches"`
}

// NewSeriesDocument returns an empty document
func NewSeriesDocument(now time.Time) *SeriesDocument {
	return &SeriesDocument{
		LastUpdated: Timestamp(now),
		Matches:     make(map[string]MatchRecord),
	}
}

// Upsert replaces the record with the same match ID and refreshes LastUpdated
func (d *SeriesDocument) Upsert(record MatchRecord, now time.Time) {
	if d.Matches == nil {
		d.Matches = make(map[string]MatchRecord)
	}
	d.Matches[record.MatchID] = record
	d.LastUpdated = Timestamp(now)
}

// MatchIDs returns match IDs in ascending numeric order. Scorecard IDs are
// numeric strings, so shorter IDs sort first.
func (d *SeriesDocument) MatchIDs() []string {
	ids := make([]string, 0, len(d.Matches))
	for id := range d.Matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}

// RunScorer is an entry in a top run-scorers list
type RunScorer struct {
	Name string `json:"name"`
	Runs int    `json:"runs"`
}

// WicketTaker is an entry in a top wicket-takers list
type WicketTaker struct {
	Name    string `json:"name"`
	Wickets int    `json:"wickets"`
}

// TopRunScorers holds each side's leading run scorers
type TopRunScorers struct {
	Eng []RunScorer `json:"eng"`
	Aus []RunScorer `json:"aus"`
}

// TopWicketTakers holds each side's leading wicket takers
type TopWicketTakers struct {
	Eng []WicketTaker `json:"eng"`
	Aus []WicketTaker `json:"aus"`
}

// AggregatedStats is the contents of series-stats.json
type AggregatedStats struct {
	LastUpdated      string          `json:"lastUpdated"`
	ActualTiebreaker int             `json:"actualTiebreaker"`
	TopRunScorers    TopRunScorers   `json:"topRunScorers"`
	TopWicketTakers  TopWicketTakers `json:"topWicketTakers"`
}

// LeadRunScorer returns the current leading run scorer for a side
func (a *AggregatedStats) LeadRunScorer(t Team) (string, bool) {
	list := a.TopRunScorers.Eng
	if t == Australia {
		list = a.TopRunScorers.Aus
	}
	if len(list) == 0 {
		return "", false
	}
	return list[0].Name, true
}

// LeadWicketTaker returns the current leading wicket taker for a side
func (a *AggregatedStats) LeadWicketTaker(t Team) (string, bool) {
	list := a.TopWicketTakers.Eng
	if t == Australia {
		list = a.TopWicketTakers.Aus
	}
	if len(list) == 0 {
		return "", false
	}
	return list[0].Name, true
}

// Roster is the official squad list from players.json
type Roster struct {
	Eng []string `json:"eng"`
	Aus []string `json:"aus"`
}

// Team returns the squad for one side
func (r Roster) Team(t Team) []string {
	if t == Australia {
		return r.Aus
	}
	return r.Eng
}

// Timestamp formats a time the way the documents store it
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// DateString formats a date as YYYY-MM-DD
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TeamFromHeading resolves a heading such as "ENG 1st Innings" to a side
func TeamFromHeading(heading string) (Team, bool) {
	upper := strings.ToUpper(heading)
	switch {
	case strings.Contains(upper, "ENG"):
		return England, true
	case strings.Contains(upper, "AUS"):
		return Australia, true
	}
	return "", false
}
