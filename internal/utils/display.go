// Package utils provides terminal rendering for the leaderboard views
package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/scoring"
)

func mark(ok bool) string {
	if ok {
		return "*"
	}
	return " "
}

// DisplayLeaderboard prints the ranked participants. Predictions that are
// currently scoring are marked with an asterisk.
func DisplayLeaderboard(w io.Writer, ranked []models.RankedParticipant, series models.SeriesScore, actualTiebreaker int) {
	fmt.Fprintf(w, "\n=========== LEADERBOARD ===========\n")
	fmt.Fprintf(w, "Series: England %d  Australia %d  Drawn %d   Tiebreaker: %d\n\n",
		series.England, series.Australia, series.Draw, actualTiebreaker)

	fmt.Fprintf(w, "%-4s | %-20s | %-3s | %-12s | %-20s | %-20s | %-20s | %-20s | %-6s\n",
		"Rank", "Name", "Pts", "Series", "Runs ENG", "Runs AUS", "Wkts ENG", "Wkts AUS", "TB +/-")
	fmt.Fprintf(w, "%-4s | %-20s | %-3s | %-12s | %-20s | %-20s | %-20s | %-20s | %-6s\n",
		strings.Repeat("-", 4), strings.Repeat("-", 20), strings.Repeat("-", 3),
		strings.Repeat("-", 12), strings.Repeat("-", 20), strings.Repeat("-", 20),
		strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 6))

	for _, p := range ranked {
		seriesPick := fmt.Sprintf("%s %s%s", p.SeriesScore, abbreviate(p.SeriesWinner), mark(p.Correct.SeriesWinner || p.Correct.SeriesScore))
		fmt.Fprintf(w, "%4d | %-20s | %3d | %-12s | %-20s | %-20s | %-20s | %-20s | %6d\n",
			p.Rank, truncate(p.Name, 20), p.TotalPoints, seriesPick,
			truncate(p.LeadRunScorerEng, 19)+mark(p.Correct.LeadRunScorerEng),
			truncate(p.LeadRunScorerAus, 19)+mark(p.Correct.LeadRunScorerAus),
			truncate(p.LeadWktTakerEng, 19)+mark(p.Correct.LeadWktTakerEng),
			truncate(p.LeadWktTakerAus, 19)+mark(p.Correct.LeadWktTakerAus),
			p.TiebreakerDiff)
	}

	fmt.Fprintln(w, strings.Repeat("=", 78))
}

// DisplayStats prints the top run scorers and wicket takers for each side
func DisplayStats(w io.Writer, agg *models.AggregatedStats) {
	fmt.Fprintf(w, "\n=========== SERIES STATS ===========\n")
	if agg.LastUpdated != "" {
		fmt.Fprintf(w, "Last updated: %s\n", agg.LastUpdated)
	}

	sides := []struct {
		label   string
		runs    []models.RunScorer
		wickets []models.WicketTaker
	}{
		{"ENGLAND", agg.TopRunScorers.Eng, agg.TopWicketTakers.Eng},
		{"AUSTRALIA", agg.TopRunScorers.Aus, agg.TopWicketTakers.Aus},
	}

	for _, side := range sides {
		fmt.Fprintf(w, "\n%s\n", side.label)
		fmt.Fprintf(w, "%-3s | %-24s | %5s   %-24s | %4s\n", "#", "Top Run Scorers", "Runs", "Top Wicket Takers", "Wkts")
		fmt.Fprintf(w, "%-3s | %-24s | %5s   %-24s | %4s\n",
			strings.Repeat("-", 3), strings.Repeat("-", 24), strings.Repeat("-", 5),
			strings.Repeat("-", 24), strings.Repeat("-", 4))

		rows := len(side.runs)
		if len(side.wickets) > rows {
			rows = len(side.wickets)
		}
		for i := 0; i < rows; i++ {
			runName, runs, wktName, wkts := "", "", "", ""
			if i < len(side.runs) {
				runName, runs = side.runs[i].Name, fmt.Sprint(side.runs[i].Runs)
			}
			if i < len(side.wickets) {
				wktName, wkts = side.wickets[i].Name, fmt.Sprint(side.wickets[i].Wickets)
			}
			fmt.Fprintf(w, "%-3d | %-24s | %5s   %-24s | %4s\n", i+1, truncate(runName, 24), runs, truncate(wktName, 24), wkts)
		}
		if rows == 0 {
			fmt.Fprintln(w, "    no figures recorded yet")
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 78))
}

// DisplayRules prints the scoring rules
func DisplayRules(w io.Writer, totalMatches int) {
	fmt.Fprintf(w, "\n=========== COMPETITION RULES ===========\n")
	fmt.Fprintf(w, "1 point  correct series winner (scored once all %d Tests are complete)\n", totalMatches)
	fmt.Fprintf(w, "1 point  correct series score, e.g. 3-1 (scored once all %d Tests are complete)\n", totalMatches)
	fmt.Fprintln(w, "1 point  leading run scorer, each team (scored as soon as a leader exists)")
	fmt.Fprintln(w, "1 point  leading wicket taker, each team (scored as soon as a leader exists)")
	fmt.Fprintf(w, "Maximum: %d points\n\n", scoring.MaxPoints)
	fmt.Fprintln(w, "Tiebreaker: total runs in the 1st innings of the 1st Test. Closest prediction ranks higher;")
	fmt.Fprintln(w, "participants level on points and tiebreaker share a rank.")
	fmt.Fprintln(w, strings.Repeat("=", 78))
}

func abbreviate(team string) string {
	switch strings.ToLower(strings.TrimSpace(team)) {
	case "england":
		return "ENG"
	case "australia":
		return "AUS"
	case "draw":
		return "DRAW"
	}
	return team
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
