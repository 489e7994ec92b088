package engine

import (
	"context"
	"time"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/storage"
)

type CompleteResult struct {
	TaskID      int64
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUps    []LevelUpEvent
	Unlocked    []Achievement
	Character   *Character
}

// LevelUp reports whether the completion raised the character's level.
func (r *CompleteResult) LevelUp() bool {
	return r.LevelAfter > r.LevelBefore
}

// CompleteTask closes any running session, awards the task's XP to the active
// character and records newly earned achievements. Everything happens in one
// transaction; a task that is already closed is rejected with InvalidStateError.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*CompleteResult, error) {
	var res *CompleteResult
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.activeCharacter(ctx, r)
		if err != nil {
			return err
		}
		t, err := s.loadTask(ctx, r, c, id)
		if err != nil {
			return err
		}
		if !t.Status.IsOpen() {
			return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "complete"}
		}

		now := s.now()
		if _, err := s.closeSession(ctx, r, t, now); err != nil {
			return err
		}

		levelBefore := c.Level
		events, err := Complete(t, c, now)
		if err != nil {
			return err
		}
		c.LastActiveAt = now

		if err := r.tasks.Update(ctx, taskRecord(t)); err != nil {
			return err
		}
		if err := r.characters.UpdateProgress(ctx, characterRecord(c)); err != nil {
			return err
		}

		unlocked, err := s.recordAchievements(ctx, r, c, now)
		if err != nil {
			return err
		}
		if _, err := s.refreshLeaderboard(ctx, r); err != nil {
			return err
		}

		res = &CompleteResult{
			TaskID:      t.ID,
			XPAwarded:   t.XPReward,
			LevelBefore: levelBefore,
			LevelAfter:  c.Level,
			LevelUps:    events,
			Unlocked:    unlocked,
			Character:   c,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task completed", "task_id", res.TaskID, "xp", res.XPAwarded, "character_id", res.Character.ID)
	for _, ev := range res.LevelUps {
		s.log.Info("level up", "character_id", res.Character.ID, "level", ev.Level)
	}
	for _, a := range res.Unlocked {
		s.log.Info("achievement unlocked", "character_id", res.Character.ID, "code", a.Code)
	}
	return res, nil
}

// recordAchievements stores every earned badge not yet on record and returns those.
func (s *Service) recordAchievements(ctx context.Context, r repos, c *Character, now time.Time) ([]Achievement, error) {
	recs, err := r.tasks.ListByCharacter(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, *taskFromRecord(&recs[i]))
	}

	var unlocked []Achievement
	for _, a := range NewAchievementChecker(c, tasks).Earned() {
		inserted, err := r.achievements.Insert(ctx, &storage.Achievement{
			CharacterID: c.ID,
			Code:        a.Code,
			Title:       a.Name,
			Description: a.Description,
			EarnedAt:    now,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			at := now
			a.EarnedAt = &at
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

// Achievements lists every badge for the active character with the time it was
// first recorded.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return nil, err
	}
	recs, err := r.tasks.ListByCharacter(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, *taskFromRecord(&recs[i]))
	}

	stored, err := r.achievements.ListByCharacter(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	earnedAt := make(map[string]time.Time, len(stored))
	for _, a := range stored {
		earnedAt[a.Code] = a.EarnedAt
	}

	all := NewAchievementChecker(c, tasks).GetAchievements()
	for i := range all {
		if at, ok := earnedAt[all[i].Code]; ok {
			at := at
			all[i].Earned = true
			all[i].EarnedAt = &at
		}
	}
	return all, nil
}
