package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashes-predictions/ashes-leaderboard/internal/config"
	"github.com/ashes-predictions/ashes-leaderboard/internal/store"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

var matchDay = time.Date(2025, 11, 22, 8, 0, 0, 0, time.UTC)

func scorecardServer(t *testing.T) *httptest.Server {
	t.Helper()
	html, err := os.ReadFile("../../pkg/parser/testdata/scorecard.html")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/live-cricket-scorecard/500/broken" {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write(html)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolveMatchURL(t *testing.T) {
	cfg := testConfig(t)

	url, err := resolveMatchURL(cfg, []string{"https://example.com/live-cricket-scorecard/1/x"}, "2025-11-22")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/live-cricket-scorecard/1/x", url)

	cfg.MatchURL = "https://example.com/live-cricket-scorecard/2/x"
	url, err = resolveMatchURL(cfg, nil, "2025-11-22")
	require.NoError(t, err)
	assert.Equal(t, cfg.MatchURL, url)

	cfg.MatchURL = ""
	url, err = resolveMatchURL(cfg, nil, "2025-12-27")
	require.NoError(t, err)
	assert.Contains(t, url, "108790")

	_, err = resolveMatchURL(cfg, nil, "2025-12-01")
	assert.Error(t, err)
}

func TestScheduleFallsBackWhenPDFUnreadable(t *testing.T) {
	cfg := testConfig(t)
	cfg.SchedulePDF = filepath.Join(t.TempDir(), "missing.pdf")
	assert.Equal(t, cfg.Schedule, schedule(cfg))
}

func TestRunScrapeMergesRecord(t *testing.T) {
	server := scorecardServer(t)
	cfg := testConfig(t)
	path := cfg.Path(config.SeriesFile)

	existing := models.NewSeriesDocument(matchDay.Add(-48 * time.Hour))
	existing.SeriesScore.Australia = 1
	existing.Upsert(models.MatchRecord{MatchID: "108786", Status: "old match"}, matchDay.Add(-48*time.Hour))
	existing.Upsert(models.MatchRecord{MatchID: "108787", Status: "Day 1: Stumps"}, matchDay.Add(-24*time.Hour))
	require.NoError(t, store.WriteJSON(path, existing))

	require.NoError(t, runScrape(cfg, []string{server.URL + "/live-cricket-scorecard/108787/aus-vs-eng-1st-test"}, matchDay))

	doc, err := store.ReadSeries(path)
	require.NoError(t, err)
	require.Len(t, doc.Matches, 2)
	assert.Equal(t, "old match", doc.Matches["108786"].Status)
	assert.Equal(t, "Australia won by 8 wkts", doc.Matches["108787"].Status)
	assert.Equal(t, "2025-11-22", doc.Matches["108787"].Date)
	assert.Equal(t, 1, doc.SeriesScore.Australia)
	assert.Equal(t, models.Timestamp(matchDay), doc.LastUpdated)
}

func TestRunScrapeFailureLeavesDocumentUntouched(t *testing.T) {
	server := scorecardServer(t)
	cfg := testConfig(t)
	path := cfg.Path(config.SeriesFile)
	writeFile(t, path, `{"lastUpdated":"before","seriesScore":{"england":0,"australia":0,"draw":0},"matches":{}}`)

	err := runScrape(cfg, []string{server.URL + "/live-cricket-scorecard/500/broken"}, matchDay)
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), `"lastUpdated":"before"`)
}

func TestRunScrapeStartsFreshDocument(t *testing.T) {
	server := scorecardServer(t)
	cfg := testConfig(t)
	writeFile(t, cfg.Path(config.SeriesFile), "corrupt")

	require.NoError(t, runScrape(cfg, []string{server.URL + "/live-cricket-scorecard/108787/x"}, matchDay))

	doc, err := store.ReadSeries(cfg.Path(config.SeriesFile))
	require.NoError(t, err)
	assert.Len(t, doc.Matches, 1)
}

func TestRunStatsRequiresInputs(t *testing.T) {
	cfg := testConfig(t)
	assert.Error(t, runStats(cfg, matchDay), "missing series document")

	require.NoError(t, store.WriteJSON(cfg.Path(config.SeriesFile), models.NewSeriesDocument(matchDay)))
	assert.Error(t, runStats(cfg, matchDay), "missing roster")
}

func TestPipeline(t *testing.T) {
	server := scorecardServer(t)
	cfg := testConfig(t)

	writeFile(t, cfg.Path(config.PlayersFile), `{
		"eng": ["Zak Crawley", "Joe Root", "Harry Brook", "Ben Stokes", "Jofra Archer", "Gus Atkinson"],
		"aus": ["Travis Head", "Alex Carey", "Mitchell Starc", "Scott Boland", "Brendan Doggett"]
	}`)
	writeFile(t, cfg.Path(config.ParticipantsFile), `[
		{"id":"1","name":"Alice","seriesScore":"4-0","seriesWinner":"Australia","leadRunScorerEng":"Harry Brook","leadRunScorerAus":"Alex Carey","leadWktTakerEng":"Ben Stokes","leadWktTakerAus":"Mitchell Starc","tiebreaker":180},
		{"id":"2","name":"Bob","seriesScore":"3-2","seriesWinner":"England","leadRunScorerEng":"Joe Root","leadRunScorerAus":"Steve Smith","leadWktTakerEng":"Ben Stokes","leadWktTakerAus":"Pat Cummins","tiebreaker":172},
		{"id":"3","name":"Cara","seriesScore":"2-1","seriesWinner":"Australia","leadRunScorerEng":"Joe Root","leadRunScorerAus":"Travis Head","leadWktTakerEng":"Ben Stokes","leadWktTakerAus":"Mitchell Starc","tiebreaker":164}
	]`)

	require.NoError(t, runScrape(cfg, []string{server.URL + "/live-cricket-scorecard/108787/aus-vs-eng-1st-test"}, matchDay))
	require.NoError(t, runStats(cfg, matchDay))

	agg, err := store.ReadStats(cfg.Path(config.StatsFile))
	require.NoError(t, err)
	assert.Equal(t, 172, agg.ActualTiebreaker)
	assert.Equal(t, models.RunScorer{Name: "Harry Brook", Runs: 52}, agg.TopRunScorers.Eng[0])
	assert.Equal(t, models.RunScorer{Name: "Alex Carey", Runs: 26}, agg.TopRunScorers.Aus[0])
	assert.Equal(t, models.WicketTaker{Name: "Mitchell Starc", Wickets: 7}, agg.TopWicketTakers.Aus[0])
	assert.Equal(t, models.WicketTaker{Name: "Ben Stokes", Wickets: 5}, agg.TopWicketTakers.Eng[0])
	assert.LessOrEqual(t, len(agg.TopRunScorers.Eng), 5)

	view, jsonOutput = viewLeaderboard, true
	defer func() { view, jsonOutput = viewLeaderboard, false }()

	var out bytes.Buffer
	require.NoError(t, renderLeaderboard(context.Background(), cfg, &out))

	var ranked []models.RankedParticipant
	require.NoError(t, json.Unmarshal(out.Bytes(), &ranked))
	require.Len(t, ranked, 3)

	assert.Equal(t, "Alice", ranked[0].Name)
	assert.Equal(t, 4, ranked[0].TotalPoints)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Cara", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].TotalPoints)
	assert.Equal(t, "Bob", ranked[2].Name)
	assert.Equal(t, 1, ranked[2].TotalPoints)
	assert.Equal(t, 0, ranked[2].TiebreakerDiff)
}

func TestRenderViews(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, store.WriteJSON(cfg.Path(config.SeriesFile), models.NewSeriesDocument(matchDay)))
	require.NoError(t, store.WriteJSON(cfg.Path(config.StatsFile), &models.AggregatedStats{
		ActualTiebreaker: 172,
		TopRunScorers:    models.TopRunScorers{Eng: []models.RunScorer{{Name: "Joe Root", Runs: 138}}},
	}))

	defer func() { view = viewLeaderboard }()

	view = viewStats
	var out bytes.Buffer
	require.NoError(t, renderLeaderboard(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Joe Root")

	view = viewRules
	out.Reset()
	require.NoError(t, renderLeaderboard(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "COMPETITION RULES")

	view = "podium"
	assert.Error(t, renderLeaderboard(context.Background(), cfg, &out))
}
