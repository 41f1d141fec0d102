package textutil

import (
	"strings"
)

// characters the hiscores display names use as separators
const separators = "-:(),"

// NormalizeKey converts an upstream display name into a stable snake_case
// key, e.g. "Clue Scrolls (all)" -> "clue_scrolls_all" and
// "Bounty Hunter - Hunter" -> "bounty_hunter_hunter".
func NormalizeKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "'", "")
	for _, ch := range separators {
		s = strings.ReplaceAll(s, string(ch), " ")
	}
	return strings.Join(strings.Fields(s), "_")
}

// Fold normalizes a string for case-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsFold reports whether name contains query, ignoring case.
func ContainsFold(name, query string) bool {
	return strings.Contains(Fold(name), Fold(query))
}
