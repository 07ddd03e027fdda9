// Package parser extracts match data from scorecard pages and schedule documents
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
)

// ErrNoMatchID is returned when a URL does not carry a scorecard ID
var ErrNoMatchID = errors.New("could not extract match ID from URL")

var matchIDPattern = regexp.MustCompile(`live-cricket-scorecard/(\d+)/`)

// MatchIDFromURL extracts the numeric match ID from a scorecard URL
func MatchIDFromURL(url string) (string, error) {
	m := matchIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", fmt.Errorf("%w: %s", ErrNoMatchID, url)
	}
	return m[1], nil
}

var leadingDigits = regexp.MustCompile(`^\s*(\d+)`)

// leadingNumber reads the integer at the start of a cell, "12*" -> 12.
// Cells without a leading number count as 0.
func leadingNumber(s string) int {
	m := leadingDigits.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

const (
	battingRunsColumn    = 1
	bowlingWicketsColumn = 4
)

// ExtractScorecard parses a scorecard page into a match record
func ExtractScorecard(htmlContent, matchID, date string) (*models.MatchRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing scorecard HTML: %w", err)
	}

	title := strings.TrimSpace(strings.Split(strings.TrimSpace(doc.Find("h1").First().Text()), "-")[0])
	status := strings.TrimSpace(doc.Find(".text-cbLive").Text())
	log.Info("Parsing scorecard", "title", title, "status", status)

	record := &models.MatchRecord{
		MatchID: matchID,
		Date:    date,
		Status:  status,
		Result:  status,
	}

	scores := map[models.Team][]string{}
	battingInnings := map[models.Team]int{}
	bowlingInnings := map[models.Team]int{}
	seen := map[string]bool{}

	doc.Find(`div[id^="team-"]`).Each(func(_ int, inning *goquery.Selection) {
		inningID, _ := inning.Attr("id")
		if inningID == "" || seen[inningID] || !strings.Contains(inningID, "innings") {
			return
		}
		seen[inningID] = true

		heading := strings.TrimSpace(inning.Find(".font-bold").First().Text())
		batting, ok := models.TeamFromHeading(heading)
		if !ok {
			log.Debug("Skipping innings with unknown team", "id", inningID, "heading", heading)
			return
		}
		bowling := batting.Opponent()

		scores[batting] = append(scores[batting], strings.TrimSpace(inning.Find("span.font-bold").First().Text()))

		// Figures are keyed by the innings count of the side they belong to.
		battingInnings[batting]++
		bowlingInnings[bowling]++
		batIdx, bowlIdx := battingInnings[batting], bowlingInnings[bowling]

		card := doc.Find("#scard-" + inningID).First()

		card.Find(".scorecard-bat-grid").Each(func(_ int, row *goquery.Selection) {
			anchor := row.Find("a")
			if anchor.Length() == 0 {
				return
			}
			name := strings.TrimSpace(anchor.Text())
			runs := leadingNumber(row.Children().Eq(battingRunsColumn).Text())
			record.PlayerStats.Team(batting).Inning(batIdx).Add(name, runs, 0)
		})

		card.Find(".scorecard-bowl-grid").Each(func(_ int, row *goquery.Selection) {
			anchor := row.Find("a")
			if anchor.Length() == 0 {
				return
			}
			name := strings.TrimSpace(anchor.Text())
			wickets := leadingNumber(row.Children().Eq(bowlingWicketsColumn).Text())
			record.PlayerStats.Team(bowling).Inning(bowlIdx).Add(name, 0, wickets)
		})

		log.Debug("Parsed innings", "id", inningID, "team", batting, "innings", batIdx)
	})

	record.Scores = models.TeamScores{
		Eng: joinScores(scores[models.England]),
		Aus: joinScores(scores[models.Australia]),
	}

	return record, nil
}

func joinScores(scores []string) string {
	if len(scores) == 0 {
		return "0/0"
	}
	return strings.Join(scores, " & ")
}

// ProcessScorecard fetches a scorecard URL and parses it into a match record
func ProcessScorecard(url, date string) (*models.MatchRecord, error) {
	matchID, err := MatchIDFromURL(url)
	if err != nil {
		return nil, err
	}

	htmlContent, err := FetchURL(url)
	if err != nil {
		return nil, fmt.Errorf("error scraping URL: %w", err)
	}

	record, err := ExtractScorecard(htmlContent, matchID, date)
	if err != nil {
		return nil, err
	}

	log.Info("Extracted match record", "matchId", record.MatchID, "eng", record.Scores.Eng, "aus", record.Scores.Aus)
	return record, nil
}

// FetchURL gets the HTML content from a URL
// Defined here to avoid circular dependency but implementation provided in scraper
var FetchURL func(url string) (string, error)
