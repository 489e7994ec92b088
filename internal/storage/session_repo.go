package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRepo stores timed work sessions on tasks.
type SessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Open(ctx context.Context, taskID, characterID int64, start time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO time_sessions (task_id, character_id, start_time)
		VALUES (?, ?, ?)
	`, taskID, characterID, toMillis(start))
	if err != nil {
		return 0, fmt.Errorf("session open: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session last insert id: %w", err)
	}
	return id, nil
}

// GetOpen returns the running session of a task, or nil.
func (r *SessionRepo) GetOpen(ctx context.Context, taskID int64) (*TimeSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task_id, character_id, start_time, end_time, duration_seconds
		FROM time_sessions
		WHERE task_id = ? AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`, taskID)

	var (
		s        TimeSession
		start    int64
		end      sql.NullInt64
		duration sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.TaskID, &s.CharacterID, &start, &end, &duration); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session get open: %w", err)
	}
	s.StartTime = fromMillis(start)
	s.EndTime = fromNullMillis(end)
	if duration.Valid {
		v := duration.Int64
		s.DurationSeconds = &v
	}
	return &s, nil
}

// Close ends a session and returns its duration.
func (r *SessionRepo) Close(ctx context.Context, s *TimeSession, end time.Time) (time.Duration, error) {
	d := end.Sub(s.StartTime)
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	if _, err := r.db.ExecContext(ctx, `
		UPDATE time_sessions SET end_time = ?, duration_seconds = ? WHERE id = ?
	`, toMillis(end), secs, s.ID); err != nil {
		return 0, fmt.Errorf("session close: %w", err)
	}
	s.EndTime = &end
	s.DurationSeconds = &secs
	return d, nil
}

// TotalSeconds sums closed session time for a task.
func (r *SessionRepo) TotalSeconds(ctx context.Context, taskID int64) (int64, error) {
	var total sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `
		SELECT SUM(duration_seconds) FROM time_sessions WHERE task_id = ? AND end_time IS NOT NULL
	`, taskID).Scan(&total); err != nil {
		return 0, fmt.Errorf("session total: %w", err)
	}
	return total.Int64, nil
}
