// Package stats aggregates per-player figures across a series and builds the
// top run-scorer and wicket-taker lists.
package stats

import (
	"regexp"
	"strings"
)

var designation = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// StripDesignation removes parenthesised suffixes such as "(c)" and "(wk)"
func StripDesignation(name string) string {
	return strings.TrimSpace(designation.ReplaceAllString(name, ""))
}

// NormalizeName maps a scraped player name onto the official roster.
//
// The designation-stripped name is returned as-is when it is on the roster.
// Otherwise the alias table is consulted, and finally a roster entry is chosen
// when it is the only one that contains, or is contained in, the name
// (case-insensitive). Ambiguous or unknown names are returned stripped but
// otherwise unchanged.
func NormalizeName(raw string, roster []string, aliases map[string]string) string {
	name := StripDesignation(raw)

	for _, official := range roster {
		if official == name {
			return name
		}
	}

	if alias, ok := aliases[name]; ok {
		return alias
	}

	lower := strings.ToLower(name)
	if lower == "" {
		return name
	}
	match := ""
	hits := 0
	for _, official := range roster {
		o := strings.ToLower(official)
		if strings.Contains(o, lower) || strings.Contains(lower, o) {
			match = official
			hits++
		}
	}
	if hits == 1 {
		return match
	}
	return name
}
