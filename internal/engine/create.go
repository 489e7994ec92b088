package engine

import (
	"context"
	"time"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/storage"
)

type CreateCharacterInput struct {
	Name  string
	Class ClassName
}

// CreateCharacter persists a new level 1 character and makes it the active one.
func (s *Service) CreateCharacter(ctx context.Context, in CreateCharacterInput) (*Character, error) {
	c, err := NewCharacter(in.Name, in.Class)
	if err != nil {
		return nil, err
	}
	if !Catalog.Has(in.Class) {
		s.log.Warn("unknown class requested, using default", "class", string(in.Class), "default", string(c.Class))
	}
	now := s.now()
	c.CreatedAt = now
	c.LastActiveAt = now

	err = s.inTx(ctx, func(r repos) error {
		u, err := r.users.GetOrCreate(ctx, storage.MainUsername)
		if err != nil {
			return err
		}
		c.UserID = u.ID

		id, err := r.characters.Insert(ctx, characterRecord(c))
		if err != nil {
			return err
		}
		c.ID = id
		if err := r.characters.SetActive(ctx, id); err != nil {
			return err
		}
		_, err = s.refreshLeaderboard(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("character created", "character_id", c.ID, "name", c.Name, "class", string(c.Class))
	return c, nil
}

// ListCharacters returns every local character, oldest first.
func (s *Service) ListCharacters(ctx context.Context) ([]Character, error) {
	recs, err := newRepos(s.db).characters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Character, 0, len(recs))
	for i := range recs {
		out = append(out, *s.characterFromRecord(&recs[i]))
	}
	return out, nil
}

// SwitchCharacter makes id the active character.
func (s *Service) SwitchCharacter(ctx context.Context, id int64) (*Character, error) {
	var c *Character
	err := s.inTx(ctx, func(r repos) error {
		rec, err := r.characters.Get(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return NotFoundError{Kind: "character", ID: id}
		}
		if err := r.characters.SetActive(ctx, id); err != nil {
			return err
		}
		c = s.characterFromRecord(rec)
		c.LastActiveAt = s.now()
		return r.characters.UpdateProgress(ctx, characterRecord(c))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

type CreateTaskInput struct {
	Title          string
	Description    string
	Difficulty     Difficulty
	Category       Category
	EstimatedHours float64
	Priority       int
	Deadline       *time.Time
}

// CreateTask adds a pending task for the active character.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	var t *Task
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.activeCharacter(ctx, r)
		if err != nil {
			return err
		}
		t, err = NewTask(NewTaskInput{
			CharacterID:    c.ID,
			Title:          in.Title,
			Description:    in.Description,
			Difficulty:     in.Difficulty,
			Category:       in.Category,
			EstimatedHours: in.EstimatedHours,
			Priority:       in.Priority,
			Deadline:       in.Deadline,
			CreatedAt:      s.now(),
		})
		if err != nil {
			return err
		}
		id, err := r.tasks.Insert(ctx, taskRecord(t))
		if err != nil {
			return err
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns the active character's tasks; closed ones only when includeClosed.
func (s *Service) ListTasks(ctx context.Context, includeClosed bool) ([]Task, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return nil, err
	}
	var statuses []string
	if !includeClosed {
		statuses = []string{string(StatusPending), string(StatusInProgress)}
	}
	recs, err := r.tasks.ListByCharacter(ctx, c.ID, statuses...)
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(recs))
	for i := range recs {
		out = append(out, *taskFromRecord(&recs[i]))
	}
	return out, nil
}

// GetTask returns one of the active character's tasks.
func (s *Service) GetTask(ctx context.Context, id int64) (*Task, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return nil, err
	}
	return s.loadTask(ctx, r, c, id)
}
