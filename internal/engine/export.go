package engine

import (
	"context"
	"time"
)

// Sheet is the exportable view of the active character.
type Sheet struct {
	Name          string         `yaml:"name"`
	Class         string         `yaml:"class"`
	Level         int            `yaml:"level"`
	CurrentXP     int            `yaml:"current_xp"`
	XPToNextLevel int            `yaml:"xp_to_next_level"`
	TotalXP       int            `yaml:"total_xp"`
	Stats         map[string]int `yaml:"stats"`
	CreatedAt     time.Time      `yaml:"created_at"`
	Achievements  []SheetBadge   `yaml:"achievements,omitempty"`
	Tasks         SheetTasks     `yaml:"tasks"`
}

type SheetBadge struct {
	Code     string    `yaml:"code"`
	Name     string    `yaml:"name"`
	EarnedAt time.Time `yaml:"earned_at"`
}

type SheetTasks struct {
	Open      int `yaml:"open"`
	Completed int `yaml:"completed"`
	Failed    int `yaml:"failed"`
	XPEarned  int `yaml:"xp_earned"`
}

// Sheet gathers the active character, its earned badges and task totals.
func (s *Service) Sheet(ctx context.Context) (*Sheet, error) {
	c, err := s.ActiveCharacter(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(ctx, true)
	if err != nil {
		return nil, err
	}
	badges, err := s.Achievements(ctx)
	if err != nil {
		return nil, err
	}

	sh := &Sheet{
		Name:          c.Name,
		Class:         string(c.Class),
		Level:         c.Level,
		CurrentXP:     c.CurrentXP,
		XPToNextLevel: c.XPToNextLevel,
		TotalXP:       c.TotalXP,
		Stats:         make(map[string]int, len(c.Stats)),
		CreatedAt:     c.CreatedAt,
	}
	for _, st := range AllStats {
		sh.Stats[string(st)] = c.Stats[st]
	}
	for _, b := range badges {
		if b.Earned && b.EarnedAt != nil {
			sh.Achievements = append(sh.Achievements, SheetBadge{Code: b.Code, Name: b.Name, EarnedAt: *b.EarnedAt})
		}
	}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			sh.Tasks.Completed++
			sh.Tasks.XPEarned += t.XPReward
		case StatusFailed:
			sh.Tasks.Failed++
		default:
			sh.Tasks.Open++
		}
	}
	return sh, nil
}
