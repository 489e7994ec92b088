package engine

import (
	"sort"
	"time"
)

// Achievement represents a badge the character can earn. Badges are cosmetic and
// grant no XP.
type Achievement struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Earned      bool
	EarnedAt    *time.Time
}

const (
	// SpecialistTaskCount is how many completed tasks in one bonus category earn the
	// specialist badge.
	SpecialistTaskCount = 10
	// MarathonHours is the logged time that earns the marathon badge.
	MarathonHours = 8.0
)

// AchievementChecker calculates which achievements a character has earned from its
// progression state and task history.
type AchievementChecker struct {
	character *Character
	tasks     []Task
}

func NewAchievementChecker(character *Character, tasks []Task) *AchievementChecker {
	return &AchievementChecker{
		character: character,
		tasks:     tasks,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("level_2", "Awakened", "Reach level 2", "🌱", 2),
		c.levelAchievement("level_5", "Hunter", "Reach level 5", "🗡️", 5),
		c.levelAchievement("level_10", "Elite", "Reach level 10", "⭐", 10),
		c.levelAchievement("level_20", "Monarch", "Reach level 20", "👑", 20),

		// Task completion milestones
		c.taskCountAchievement("first_task", "First Quest", "Complete 1 task", "✓", 1),
		c.taskCountAchievement("productive", "Productive", "Complete 10 tasks", "📋", 10),
		c.taskCountAchievement("achiever", "Achiever", "Complete 50 tasks", "🏅", 50),
		c.taskCountAchievement("powerhouse", "Powerhouse", "Complete 100 tasks", "🏆", 100),

		c.dauntingAchievement("dungeon_clear", "Dungeon Clear", "Complete a daunting task", "🐉"),
		c.specialistAchievement("specialist", "Specialist", "Complete 10 tasks in one of your class's bonus categories", "🎯"),
		c.marathonAchievement("marathon", "Marathon", "Complete a task with 8+ hours logged", "⏱️"),
	}
}

// Earned returns only the earned achievements.
func (c *AchievementChecker) Earned() []Achievement {
	var out []Achievement
	for _, a := range c.GetAchievements() {
		if a.Earned {
			out = append(out, a)
		}
	}
	return out
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	return len(c.Earned())
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) completed() []Task {
	var out []Task
	for _, t := range c.tasks {
		if t.Status == StatusCompleted {
			out = append(out, t)
		}
	}
	return out
}

func (c *AchievementChecker) levelAchievement(code, name, desc, icon string, level int) Achievement {
	earned := c.character != nil && c.character.Level >= level
	return Achievement{Code: code, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) taskCountAchievement(code, name, desc, icon string, count int) Achievement {
	earned := len(c.completed()) >= count
	return Achievement{Code: code, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) dauntingAchievement(code, name, desc, icon string) Achievement {
	earned := false
	for _, t := range c.completed() {
		if t.Difficulty == DifficultyDaunting {
			earned = true
			break
		}
	}
	return Achievement{Code: code, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) specialistAchievement(code, name, desc, icon string) Achievement {
	earned := false
	if c.character != nil {
		bonus := Catalog.Get(c.character.Class).CategoryBonus
		perCategory := map[Category]int{}
		for _, t := range c.completed() {
			if _, ok := bonus[t.Category]; ok {
				perCategory[t.Category]++
			}
		}
		for _, n := range perCategory {
			if n >= SpecialistTaskCount {
				earned = true
				break
			}
		}
	}
	return Achievement{Code: code, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) marathonAchievement(code, name, desc, icon string) Achievement {
	earned := false
	for _, t := range c.completed() {
		if t.ActualHours >= MarathonHours {
			earned = true
			break
		}
	}
	return Achievement{Code: code, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Standing is one row of the local leaderboard.
type Standing struct {
	Rank        int
	CharacterID int64
	Name        string
	Class       ClassName
	Level       int
	TotalXP     int
}

// RankCharacters orders characters by level, then lifetime XP (both descending),
// then id, and numbers them from 1.
func RankCharacters(chars []Character) []Standing {
	sorted := make([]Character, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if a.TotalXP != b.TotalXP {
			return a.TotalXP > b.TotalXP
		}
		return a.ID < b.ID
	})

	out := make([]Standing, len(sorted))
	for i, c := range sorted {
		out[i] = Standing{
			Rank:        i + 1,
			CharacterID: c.ID,
			Name:        c.Name,
			Class:       c.Class,
			Level:       c.Level,
			TotalXP:     c.TotalXP,
		}
	}
	return out
}
