package models

// Participant is one entry's predictions from participants.json
type Participant struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	SeriesScore      string `json:"seriesScore"`
	SeriesWinner     string `json:"seriesWinner"`
	LeadRunScorerEng string `json:"leadRunScorerEng"`
	LeadRunScorerAus string `json:"leadRunScorerAus"`
	LeadWktTakerEng  string `json:"leadWktTakerEng"`
	LeadWktTakerAus  string `json:"leadWktTakerAus"`
	Tiebreaker       int    `json:"tiebreaker"`
}

// Correctness records which predictions scored
type Correctness struct {
	SeriesWinner     bool `json:"seriesWinner"`
	SeriesScore      bool `json:"seriesScore"`
	LeadRunScorerEng bool `json:"leadRunScorerEng"`
	LeadRunScorerAus bool `json:"leadRunScorerAus"`
	LeadWktTakerEng  bool `json:"leadWktTakerEng"`
	LeadWktTakerAus  bool `json:"leadWktTakerAus"`
}

// RankedParticipant is a participant with their computed standing
type RankedParticipant struct {
	Participant
	TotalPoints    int         `json:"totalPoints"`
	Rank           int         `json:"rank"`
	TiebreakerDiff int         `json:"tiebreakerDiff"`
	Correct        Correctness `json:"correct"`
}

// MatchWindow is a scheduled match and the dates it is played on
type MatchWindow struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	URL   string `yaml:"url"`
}

// Contains reports whether date (YYYY-MM-DD) falls inside the window
func (w MatchWindow) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}
