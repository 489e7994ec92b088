package engine

import (
	"math"
	"strings"
	"time"
)

// LevelUpEvent records a single level transition and the stat growth applied with it.
type LevelUpEvent struct {
	Level      int
	StatDeltas Stats
}

// Character is the player's avatar. It is mutated only through ApplyXP and is not
// safe for concurrent use.
type Character struct {
	ID     int64
	UserID int64
	Name   string
	Class  ClassName

	Level         int
	CurrentXP     int
	TotalXP       int
	XPToNextLevel int
	Stats         Stats

	CreatedAt    time.Time
	LastActiveAt time.Time
}

// CharacterSnapshot is a detached copy of a character's progression state.
type CharacterSnapshot struct {
	ID            int64
	Name          string
	Class         ClassName
	Level         int
	CurrentXP     int
	TotalXP       int
	XPToNextLevel int
	Stats         Stats
}

// NewCharacter creates a level 1 character whose stats are a copy of the class's base
// stats. Unknown classes resolve to DefaultClass.
func NewCharacter(name string, class ClassName) (*Character, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, InvalidArgumentError{Field: "name", Reason: "is required"}
	}
	def := Catalog.Get(class)
	return &Character{
		Name:          n,
		Class:         def.Name,
		Level:         1,
		CurrentXP:     0,
		TotalXP:       0,
		XPToNextLevel: XPToNextLevel(1),
		Stats:         def.BaseStats,
	}, nil
}

// ApplyXP adds amount to the character and performs every level-up it pays for, in
// order. Each level-up applies the class growth stats once. Negative amounts are
// rejected and leave the character untouched.
func (c *Character) ApplyXP(amount int) ([]LevelUpEvent, error) {
	if amount < 0 {
		return nil, InvalidArgumentError{Field: "amount", Reason: "must not be negative"}
	}
	if amount > math.MaxInt-max(c.CurrentXP, c.TotalXP, 0) {
		return nil, InvalidArgumentError{Field: "amount", Reason: "would overflow the character's XP"}
	}
	if c.Stats == nil {
		c.Stats = Stats{}
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.XPToNextLevel <= 0 {
		c.XPToNextLevel = XPToNextLevel(c.Level)
	}

	c.CurrentXP += amount
	c.TotalXP += amount

	events := []LevelUpEvent{}
	growth := Catalog.Get(c.Class).GrowthStats
	for c.CurrentXP >= c.XPToNextLevel {
		c.CurrentXP -= c.XPToNextLevel
		c.Level++
		c.XPToNextLevel = XPToNextLevel(c.Level)

		deltas := Stats{}
		for _, st := range AllStats {
			inc, ok := growth[st]
			if !ok {
				continue
			}
			c.Stats[st] += inc
			deltas[st] = inc
		}
		events = append(events, LevelUpEvent{Level: c.Level, StatDeltas: deltas})
	}
	return events, nil
}

// Progress returns progress toward the next level as a percentage.
func (c *Character) Progress() float64 {
	if c.XPToNextLevel == 0 {
		return 100.0
	}
	return float64(c.CurrentXP) / float64(c.XPToNextLevel) * 100
}

// Definition returns the character's class definition.
func (c *Character) Definition() ClassDefinition {
	return Catalog.Get(c.Class)
}

// Snapshot returns a copy of the progression state that shares no maps with c.
func (c *Character) Snapshot() CharacterSnapshot {
	return CharacterSnapshot{
		ID:            c.ID,
		Name:          c.Name,
		Class:         c.Class,
		Level:         c.Level,
		CurrentXP:     c.CurrentXP,
		TotalXP:       c.TotalXP,
		XPToNextLevel: c.XPToNextLevel,
		Stats:         c.Stats.Clone(),
	}
}
