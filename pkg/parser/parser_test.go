package parser

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

const scorecardURL = "https://www.cricbuzz.com/live-cricket-scorecard/108787/aus-vs-eng-1st-test-the-ashes-2025-26"

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/scorecard.html")
	require.NoError(t, err)
	return string(data)
}

func stats(t *testing.T, ts *models.TeamStats, innings int, name string) models.PlayerStats {
	t.Helper()
	table := ts.Inning(innings)
	s, ok := table.Get(name)
	require.True(t, ok, "%s missing from innings %d", name, innings)
	return s
}

func TestMatchIDFromURL(t *testing.T) {
	id, err := MatchIDFromURL(scorecardURL)
	require.NoError(t, err)
	assert.Equal(t, "108787", id)

	_, err = MatchIDFromURL("https://www.cricbuzz.com/cricket-match/live")
	assert.True(t, errors.Is(err, ErrNoMatchID))
}

func TestExtractScorecard(t *testing.T) {
	record, err := ExtractScorecard(loadFixture(t), "108787", "2025-11-22")
	require.NoError(t, err)

	assert.Equal(t, "108787", record.MatchID)
	assert.Equal(t, "2025-11-22", record.Date)
	assert.Equal(t, "Australia won by 8 wkts", record.Status)
	assert.Equal(t, record.Status, record.Result)
	assert.Equal(t, "172-10 & 164-10", record.Scores.Eng)
	assert.Equal(t, "132-10", record.Scores.Aus)

	eng := &record.PlayerStats.Eng
	aus := &record.PlayerStats.Aus

	assert.Equal(t, models.PlayerStats{Runs: 52}, stats(t, eng, 1, "Harry Brook"))
	assert.Equal(t, models.PlayerStats{Runs: 6, Wickets: 5}, stats(t, eng, 1, "Ben Stokes (c)"))
	assert.Equal(t, models.PlayerStats{}, stats(t, eng, 1, "Jofra Archer"), "unparsable wickets cell counts as 0")
	assert.Equal(t, models.PlayerStats{Runs: 37}, stats(t, eng, 2, "Gus Atkinson"))

	assert.Equal(t, models.PlayerStats{Wickets: 7}, stats(t, aus, 1, "Mitchell Starc"))
	assert.Equal(t, models.PlayerStats{Runs: 26}, stats(t, aus, 1, "Alex Carey (wk)"))
	assert.Equal(t, models.PlayerStats{Wickets: 4}, stats(t, aus, 2, "Scott Boland"))

	assert.Len(t, aus.Innings, 2)
	assert.Equal(t, []string{"Zak Crawley", "Joe Root", "Harry Brook", "Ben Stokes (c)", "Jofra Archer"}, eng.Inning(1).Names(),
		"header rows without an anchor are skipped")
}

func TestExtractScorecardSkipsDuplicateInnings(t *testing.T) {
	record, err := ExtractScorecard(loadFixture(t), "108787", "2025-11-22")
	require.NoError(t, err)

	head := stats(t, &record.PlayerStats.Aus, 1, "Travis Head")
	assert.Equal(t, 21, head.Runs)
	assert.Equal(t, "132-10", record.Scores.Aus)
}

func TestExtractScorecardEmptyPage(t *testing.T) {
	record, err := ExtractScorecard("<html><body></body></html>", "1", "2025-11-22")
	require.NoError(t, err)
	assert.Equal(t, "0/0", record.Scores.Eng)
	assert.Equal(t, "0/0", record.Scores.Aus)
	assert.Empty(t, record.PlayerStats.Eng.Innings)
}

func TestLeadingNumber(t *testing.T) {
	assert.Equal(t, 26, leadingNumber("26*"))
	assert.Equal(t, 0, leadingNumber("-"))
	assert.Equal(t, 0, leadingNumber(""))
	assert.Equal(t, 7, leadingNumber(" 7 "))
}

func TestProcessScorecard(t *testing.T) {
	html := loadFixture(t)
	original := FetchURL
	defer func() { FetchURL = original }()

	var fetched string
	FetchURL = func(url string) (string, error) {
		fetched = url
		return html, nil
	}

	record, err := ProcessScorecard(scorecardURL, "2025-11-23")
	require.NoError(t, err)
	assert.Equal(t, scorecardURL, fetched)
	assert.Equal(t, "108787", record.MatchID)
}

func TestProcessScorecardFetchError(t *testing.T) {
	original := FetchURL
	defer func() { FetchURL = original }()
	FetchURL = func(string) (string, error) { return "", errors.New("failed to fetch page: 503") }

	_, err := ProcessScorecard(scorecardURL, "2025-11-23")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func inningsBlock(id, heading, score, batter, batterRuns, bowler, bowlerWickets string) string {
	return `<div id="` + id + `"><div class="font-bold">` + heading + `</div><span class="font-bold">` + score + `</span></div>
<div id="scard-` + id + `">
  <div class="scorecard-bat-grid"><div><a href="#">` + batter + `</a></div><div>` + batterRuns + `</div></div>
  <div class="scorecard-bowl-grid"><div><a href="#">` + bowler + `</a></div><div>10</div><div>2</div><div>30</div><div>` + bowlerWickets + `</div></div>
</div>`
}

func TestExtractScorecardFollowOn(t *testing.T) {
	page := `<html><body><div class="text-cbLive">England won by an innings</div>` +
		inningsBlock("team-2-innings-1", "ENG 1st Innings", "410-10", "Joe Root", "160", "Pat Cummins", "3") +
		inningsBlock("team-1-innings-1", "AUS 1st Innings", "150-10", "Travis Head", "40", "Mark Wood", "4") +
		inningsBlock("team-1-innings-2", "AUS 2nd Innings (f/o)", "200-10", "Steve Smith", "90", "Gus Atkinson", "5") +
		`</body></html>`

	record, err := ExtractScorecard(page, "1", "2025-12-04")
	require.NoError(t, err)

	eng := &record.PlayerStats.Eng
	aus := &record.PlayerStats.Aus

	assert.Equal(t, "410-10", record.Scores.Eng)
	assert.Equal(t, "150-10 & 200-10", record.Scores.Aus)

	require.Len(t, eng.Innings, 2, "England batted once and bowled twice")
	assert.Equal(t, models.PlayerStats{Runs: 160}, stats(t, eng, 1, "Joe Root"))
	assert.Equal(t, models.PlayerStats{Wickets: 4}, stats(t, eng, 1, "Mark Wood"))
	assert.Equal(t, models.PlayerStats{Wickets: 5}, stats(t, eng, 2, "Gus Atkinson"))

	require.Len(t, aus.Innings, 2)
	assert.Equal(t, models.PlayerStats{Runs: 40}, stats(t, aus, 1, "Travis Head"))
	assert.Equal(t, models.PlayerStats{Wickets: 3}, stats(t, aus, 1, "Pat Cummins"))
	assert.Equal(t, models.PlayerStats{Runs: 90}, stats(t, aus, 2, "Steve Smith"))
}
