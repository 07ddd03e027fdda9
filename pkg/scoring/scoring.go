// Package scoring awards points for participants' predictions and ranks them.
//
// Points (maximum 6):
//   - 1 for the series winner, once every scheduled match has a result
//   - 1 for the exact series score, under the same condition
//   - 1 for each side's leading run scorer and leading wicket taker; these
//     count as soon as a leader exists
//
// Participants are ranked by points, then by how close their tiebreaker
// prediction was. Participants level on both share a rank.
package scoring

import (
	"sort"
	"strings"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// Placeholder is the name used for a leader that has not been decided
const Placeholder = "TBD"

// MaxPoints is the most a participant can score
const MaxPoints = 6

func samePlayer(predicted, leader string) bool {
	leader = strings.TrimSpace(leader)
	if leader == "" || strings.EqualFold(leader, Placeholder) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(predicted), leader)
}

var dashes = strings.NewReplacer("–", "-", "—", "-", " ", "")

func sameScoreLine(predicted, actual string) bool {
	return dashes.Replace(predicted) == actual
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Score computes a participant's points against the current series state
func Score(p models.Participant, series models.SeriesScore, agg *models.AggregatedStats, totalMatches int) models.RankedParticipant {
	r := models.RankedParticipant{
		Participant:    p,
		TiebreakerDiff: abs(p.Tiebreaker - agg.ActualTiebreaker),
	}

	if series.Completed(totalMatches) {
		r.Correct.SeriesWinner = strings.EqualFold(strings.TrimSpace(p.SeriesWinner), series.Winner())
		r.Correct.SeriesScore = sameScoreLine(p.SeriesScore, series.ScoreLine())
	}

	if leader, ok := agg.LeadRunScorer(models.England); ok {
		r.Correct.LeadRunScorerEng = samePlayer(p.LeadRunScorerEng, leader)
	}
	if leader, ok := agg.LeadRunScorer(models.Australia); ok {
		r.Correct.LeadRunScorerAus = samePlayer(p.LeadRunScorerAus, leader)
	}
	if leader, ok := agg.LeadWicketTaker(models.England); ok {
		r.Correct.LeadWktTakerEng = samePlayer(p.LeadWktTakerEng, leader)
	}
	if leader, ok := agg.LeadWicketTaker(models.Australia); ok {
		r.Correct.LeadWktTakerAus = samePlayer(p.LeadWktTakerAus, leader)
	}

	for _, hit := range []bool{
		r.Correct.SeriesWinner,
		r.Correct.SeriesScore,
		r.Correct.LeadRunScorerEng,
		r.Correct.LeadRunScorerAus,
		r.Correct.LeadWktTakerEng,
		r.Correct.LeadWktTakerAus,
	} {
		if hit {
			r.TotalPoints++
		}
	}

	return r
}

// Rank scores every participant and orders them. A participant level with the
// one above on points and tiebreaker difference takes the same rank; anyone
// else is ranked by position.
func Rank(participants []models.Participant, series models.SeriesScore, agg *models.AggregatedStats, totalMatches int) []models.RankedParticipant {
	ranked := make([]models.RankedParticipant, 0, len(participants))
	for _, p := range participants {
		ranked = append(ranked, Score(p, series, agg, totalMatches))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		}
		return ranked[i].TiebreakerDiff < ranked[j].TiebreakerDiff
	})

	for i := range ranked {
		if i > 0 &&
			ranked[i].TotalPoints == ranked[i-1].TotalPoints &&
			ranked[i].TiebreakerDiff == ranked[i-1].TiebreakerDiff {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}

	return ranked
}
