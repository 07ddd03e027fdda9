package stats

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// TopN is the length of each top list
const TopN = 5

// Entry is a player and a single figure
type Entry struct {
	Name  string
	Value int
}

// Totals holds a team's series figures keyed by normalized name in the order
// players were first seen.
type Totals struct {
	models.PlayerTable
}

// Runs returns run totals in first-seen order
func (t Totals) Runs() []Entry {
	var out []Entry
	t.Each(func(name string, s models.PlayerStats) {
		out = append(out, Entry{Name: name, Value: s.Runs})
	})
	return out
}

// Wickets returns wicket totals in first-seen order
func (t Totals) Wickets() []Entry {
	var out []Entry
	t.Each(func(name string, s models.PlayerStats) {
		out = append(out, Entry{Name: name, Value: s.Wickets})
	})
	return out
}

// Aggregate sums each player's runs and wickets over every recorded innings.
// Matches are visited in match-ID order, innings in ascending order and
// players in the order they were scraped.
func Aggregate(doc *models.SeriesDocument, roster models.Roster, aliases map[string]string) map[models.Team]*Totals {
	totals := map[models.Team]*Totals{
		models.England:   {},
		models.Australia: {},
	}

	for _, id := range doc.MatchIDs() {
		match := doc.Matches[id]
		for _, team := range models.Teams {
			squad := roster.Team(team)
			acc := totals[team]
			for _, inn := range match.PlayerStats.Team(team).Innings {
				inn.Players.Each(func(raw string, s models.PlayerStats) {
					name := NormalizeName(raw, squad, aliases)
					if name != raw {
						log.Debug("Normalized player name", "raw", raw, "name", name)
					}
					acc.Add(name, s.Runs, s.Wickets)
				})
			}
		}
	}

	return totals
}

// Top sorts entries by value, highest first, and keeps the first n. Equal
// values keep their original order.
func Top(entries []Entry, n int) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func runScorers(entries []Entry) []models.RunScorer {
	out := make([]models.RunScorer, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.RunScorer{Name: e.Name, Runs: e.Value})
	}
	return out
}

func wicketTakers(entries []Entry) []models.WicketTaker {
	out := make([]models.WicketTaker, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.WicketTaker{Name: e.Name, Wickets: e.Value})
	}
	return out
}

// Generate builds the series stats document. The tiebreaker is a fixed value
// supplied by configuration once the relevant innings is complete.
func Generate(doc *models.SeriesDocument, roster models.Roster, aliases map[string]string, tiebreaker int, now time.Time) *models.AggregatedStats {
	totals := Aggregate(doc, roster, aliases)

	eng, aus := totals[models.England], totals[models.Australia]
	log.Info("Aggregated series stats",
		"matches", len(doc.Matches),
		"engPlayers", eng.Len(),
		"ausPlayers", aus.Len())

	return &models.AggregatedStats{
		LastUpdated:      models.Timestamp(now),
		ActualTiebreaker: tiebreaker,
		TopRunScorers: models.TopRunScorers{
			Eng: runScorers(Top(eng.Runs(), TopN)),
			Aus: runScorers(Top(aus.Runs(), TopN)),
		},
		TopWicketTakers: models.TopWicketTakers{
			Eng: wicketTakers(Top(eng.Wickets(), TopN)),
			Aus: wicketTakers(Top(aus.Wickets(), TopN)),
		},
	}
}
