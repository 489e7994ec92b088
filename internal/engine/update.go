package engine

import (
	"context"
	"time"
)

// StopResult describes a closed time session.
type StopResult struct {
	TaskID      int64
	Elapsed     time.Duration
	ActualHours float64
}

// StartTask moves a pending task to in_progress and opens a time session on it.
func (s *Service) StartTask(ctx context.Context, id int64) (*Task, error) {
	var t *Task
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.activeCharacter(ctx, r)
		if err != nil {
			return err
		}
		t, err = s.loadTask(ctx, r, c, id)
		if err != nil {
			return err
		}
		now := s.now()
		if err := t.Start(now); err != nil {
			return err
		}
		if err := r.tasks.Update(ctx, taskRecord(t)); err != nil {
			return err
		}
		_, err = r.sessions.Open(ctx, t.ID, c.ID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// StopTask closes the running session and adds its length to the task's actual hours.
func (s *Service) StopTask(ctx context.Context, id int64) (*StopResult, error) {
	var res *StopResult
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
			return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "stop"}
		}
		elapsed, err := s.closeSession(ctx, r, t, s.now())
		if err != nil {
			return err
		}
		if elapsed < 0 {
			return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "stop"}
		}
		if err := r.tasks.Update(ctx, taskRecord(t)); err != nil {
			return err
		}
		res = &StopResult{TaskID: t.ID, Elapsed: elapsed, ActualHours: t.ActualHours}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// closeSession ends the task's open session, if any, and logs its hours on t.
// It returns -1 when there was no open session.
func (s *Service) closeSession(ctx context.Context, r repos, t *Task, now time.Time) (time.Duration, error) {
	sess, err := r.sessions.GetOpen(ctx, t.ID)
	if err != nil {
		return 0, err
	}
	if sess == nil {
		return -1, nil
	}
	elapsed, err := r.sessions.Close(ctx, sess, now)
	if err != nil {
		return 0, err
	}
	if err := t.LogHours(elapsed.Hours()); err != nil {
		return 0, err
	}
	return elapsed, nil
}

// LogHours adds manually tracked time to an open task.
func (s *Service) LogHours(ctx context.Context, id int64, hours float64) (*Task, error) {
	var t *Task
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.activeCharacter(ctx, r)
		if err != nil {
			return err
		}
		t, err = s.loadTask(ctx, r, c, id)
		if err != nil {
			return err
		}
		if err := t.LogHours(hours); err != nil {
			return err
		}
		return r.tasks.Update(ctx, taskRecord(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FailTask closes an open task without reward.
func (s *Service) FailTask(ctx context.Context, id int64) (*Task, error) {
	var t *Task
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.activeCharacter(ctx, r)
		if err != nil {
			return err
		}
		t, err = s.loadTask(ctx, r, c, id)
		if err != nil {
			return err
		}
		if !t.Status.IsOpen() {
			return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "fail"}
		}
		now := s.now()
		if _, err := s.closeSession(ctx, r, t, now); err != nil {
			return err
		}
		if err := t.Fail(now); err != nil {
			return err
		}
		return r.tasks.Update(ctx, taskRecord(t))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PreviewXP returns the XP the active character would earn by completing id now.
func (s *Service) PreviewXP(ctx context.Context, id int64) (int, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return 0, err
	}
	t, err := s.loadTask(ctx, r, c, id)
	if err != nil {
		return 0, err
	}
	return PreviewXP(t, c.Class), nil
}
