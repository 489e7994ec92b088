package engine

import (
	"math"
)

const (
	// BaseXPToNextLevel is the threshold between level 1 and level 2.
	BaseXPToNextLevel = 100

	// LevelGrowthFactor scales each level's threshold over the previous one.
	LevelGrowthFactor = 1.15

	// HoursMultiplierRate converts logged hours into a reward multiplier.
	HoursMultiplierRate = 0.3

	// MinTimeMultiplier is the floor of the time multiplier. There is no cap.
	MinTimeMultiplier = 1.0

	// floorEpsilon absorbs binary float error before flooring (100*1.15 is
	// 114.99999999999999 in float64).
	floorEpsilon = 1e-9
)

// BaseXP is the reward for a task of each difficulty before multipliers.
var BaseXP = map[Difficulty]int{
	DifficultyEasy:     25,
	DifficultyMedium:   50,
	DifficultyHard:     100,
	DifficultyDaunting: 200,
}

func floorInt(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	f := math.Floor(v + floorEpsilon)
	if f >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(f)
}

// BaseXPFor returns the base reward for d. Unknown difficulties earn the medium rate.
func BaseXPFor(d Difficulty) int {
	if xp, ok := BaseXP[d]; ok {
		return xp
	}
	return BaseXP[DefaultDifficulty]
}

// TimeMultiplier returns max(hours*HoursMultiplierRate, MinTimeMultiplier).
func TimeMultiplier(actualHours float64) float64 {
	if math.IsNaN(actualHours) {
		return MinTimeMultiplier
	}
	return math.Max(actualHours*HoursMultiplierRate, MinTimeMultiplier)
}

// XPReward computes the XP a completed task grants a character of the given class.
// It never fails: unknown difficulties, categories and classes fall back to their
// defaults.
func XPReward(d Difficulty, actualHours float64, category Category, class ClassName) int {
	return xpReward(Catalog, d, actualHours, category, class)
}

func xpReward(catalog *ClassCatalog, d Difficulty, actualHours float64, category Category, class ClassName) int {
	base := float64(BaseXPFor(d))
	return floorInt(base * TimeMultiplier(actualHours) * catalog.BonusFor(class, category))
}

// XPToNextLevel returns the XP needed to advance from level to level+1.
// Levels below 1 are treated as level 1. The curve is strictly increasing until it
// saturates at math.MaxInt, around level 264 on 64-bit platforms.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return floorInt(BaseXPToNextLevel * math.Pow(LevelGrowthFactor, float64(level-1)))
}
