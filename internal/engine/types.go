package engine

import "strings"

// Stat is one of the five character attributes.
type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatAgility      Stat = "agility"
	StatFocus        Stat = "focus"
	StatCreativity   Stat = "creativity"
)

// AllStats lists the stats in display order.
var AllStats = []Stat{StatStrength, StatIntelligence, StatAgility, StatFocus, StatCreativity}

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatAgility, StatFocus, StatCreativity:
		return true
	default:
		return false
	}
}

// Stats maps a stat to its value (or to an increment, for growth tables).
type Stats map[Stat]int

// Clone returns an independent copy. A nil receiver yields an empty map.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyDaunting Difficulty = "daunting"
)

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty = DifficultyMedium

// AllDifficulties lists difficulties from lightest to heaviest.
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyDaunting}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyDaunting:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the task can still be worked on or completed.
func (s TaskStatus) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// Category is a free-form task category. Only the categories named in a class's
// bonus table carry a multiplier; anything else earns the plain rate.
type Category string

const DefaultCategory Category = "general"

// KnownCategories are the categories offered by the CLI. Users may still type any
// other category.
var KnownCategories = []Category{
	"Programming", "Learning", "Health", "Work",
	"Personal", "Creative", "Social", "Gaming",
}

// NormalizeCategory trims the input and matches it case-insensitively against
// KnownCategories so that "programming" earns the "Programming" bonus.
func NormalizeCategory(input string) Category {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultCategory
	}
	for _, c := range KnownCategories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	if strings.EqualFold(s, string(DefaultCategory)) {
		return DefaultCategory
	}
	return Category(s)
}
