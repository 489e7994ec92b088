package engine

import (
	"strings"
)

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ParseDifficulty parses user input to a Difficulty.
// Supported: easy, medium, hard, daunting, plus a few aliases and the 1-4 scale.
// If input is empty or unrecognized, returns DefaultDifficulty.
func ParseDifficulty(input string) Difficulty {
	switch normalizeKey(input) {
	case "easy", "e", "1":
		return DifficultyEasy
	case "medium", "med", "m", "2":
		return DifficultyMedium
	case "hard", "h", "3":
		return DifficultyHard
	case "daunting", "epic", "d", "4":
		return DifficultyDaunting
	default:
		return DefaultDifficulty
	}
}

// parseStoredDifficulty accepts only canonical values; anything else from the
// database degrades to the default rather than failing a load.
func parseStoredDifficulty(s string) Difficulty {
	d := Difficulty(strings.TrimSpace(strings.ToLower(s)))
	if d.IsValid() {
		return d
	}
	return DefaultDifficulty
}
