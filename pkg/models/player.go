// Package models contains data structures for the Ashes prediction leaderboard
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Team identifies one side of the series
type Team string

const (
	England   Team = "eng"
	Australia Team = "aus"
)

// Teams lists both sides in the order they are processed
var Teams = []Team{England, Australia}

// Opponent returns the other side
func (t Team) Opponent() Team {
	if t == England {
		return Australia
	}
	return England
}

// PlayerStats holds a player's figures
type PlayerStats struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

// PlayerTable maps player names to their figures and remembers the order
// in which players were first added.
type PlayerTable struct {
	names []string
	stats map[string]PlayerStats
}

// Add accumulates runs and wickets for a player
func (t *PlayerTable) Add(name string, runs, wickets int) {
	if t.stats == nil {
		t.stats = make(map[string]PlayerStats)
	}
	s, ok := t.stats[name]
	if !ok {
		t.names = append(t.names, name)
	}
	s.Runs += runs
	s.Wickets += wickets
	t.stats[name] = s
}

// Get returns the figures recorded for a player
func (t PlayerTable) Get(name string) (PlayerStats, bool) {
	s, ok := t.stats[name]
	return s, ok
}

// Names returns player names in insertion order
func (t PlayerTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of players in the table
func (t PlayerTable) Len() int {
	return len(t.names)
}

// Each calls fn for every player in insertion order
func (t PlayerTable) Each(fn func(name string, stats PlayerStats)) {
	for _, name := range t.names {
		fn(name, t.stats[name])
	}
}

// MarshalJSON writes the table as a JSON object keeping insertion order
func (t PlayerTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.stats[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of player figures keeping key order
func (t *PlayerTable) UnmarshalJSON(data []byte) error {
	*t = PlayerTable{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var s PlayerStats
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("player %q: %w", key, err)
		}
		t.Add(key, s.Runs, s.Wickets)
		return nil
	})
}

// PlayerInningsStats holds one team's figures for a single innings
type PlayerInningsStats struct {
	Innings int
	Players PlayerTable
}

// TeamStats holds a team's per-innings figures for one match, ordered by innings
type TeamStats struct {
	Innings []PlayerInningsStats
}

// Inning returns the table for innings n, creating it if needed
func (ts *TeamStats) Inning(n int) *PlayerTable {
	for i := range ts.Innings {
		if ts.Innings[i].Innings == n {
			return &ts.Innings[i].Players
		}
	}
	ts.Innings = append(ts.Innings, PlayerInningsStats{Innings: n})
	sort.SliceStable(ts.Innings, func(i, j int) bool {
		return ts.Innings[i].Innings < ts.Innings[j].Innings
	})
	for i := range ts.Innings {
		if ts.Innings[i].Innings == n {
			return &ts.Innings[i].Players
		}
	}
	return nil
}

// MarshalJSON always writes the per-innings shape: {"innings1": {...}, ...}
func (ts TeamStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, inn := range ts.Innings {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := json.Marshal(inn.Players)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", inningsKeyPrefix+strconv.Itoa(inn.Innings))
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

const inningsKeyPrefix = "innings"

// UnmarshalJSON accepts both the flat shape {"Player": {"runs":..}} recorded
// by older scrapes, which is read as innings 1, and the per-innings shape.
func (ts *TeamStats) UnmarshalJSON(data []byte) error {
	*ts = TeamStats{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	type entry struct {
		key string
		raw json.RawMessage
	}
	var entries []entry
	perInnings := true
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		entries = append(entries, entry{key, raw})
		if _, ok := inningsNumber(key); !ok {
			perInnings = false
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if !perInnings {
		var flat PlayerTable
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		ts.Innings = []PlayerInningsStats{{Innings: 1, Players: flat}}
		return nil
	}

	for _, e := range entries {
		n, _ := inningsNumber(e.key)
		var players PlayerTable
		if err := json.Unmarshal(e.raw, &players); err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		table := ts.Inning(n)
		players.Each(func(name string, s PlayerStats) {
			table.Add(name, s.Runs, s.Wickets)
		})
	}
	return nil
}

func inningsNumber(key string) (int, bool) {
	if !strings.HasPrefix(key, inningsKeyPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, inningsKeyPrefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// decodeObject walks the top-level keys of a JSON object in document order
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
