package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, character_id, title, description, difficulty, category,
	estimated_hours, actual_hours, status, priority, xp_reward,
	created_at, started_at, ended_at, deadline`

func (r *TaskRepo) Insert(ctx context.Context, t *Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			character_id, title, description, difficulty, category,
			estimated_hours, actual_hours, status, priority, xp_reward,
			created_at, started_at, ended_at, deadline
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.CharacterID, t.Title, t.Description, t.Difficulty, t.Category,
		t.EstimatedHours, t.ActualHours, t.Status, t.Priority, t.XPReward,
		toMillis(t.CreatedAt), toNullMillis(t.StartedAt), toNullMillis(t.EndedAt), toNullMillis(t.Deadline))
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// ListByCharacter returns a character's tasks. With no statuses given every task is
// returned. Ordering: priority (high first), then deadline, then id.
func (r *TaskRepo) ListByCharacter(ctx context.Context, characterID int64, statuses ...string) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE character_id = ?`
	args := []any{characterID}
	if len(statuses) > 0 {
		query += ` AND status IN (?` + strings.Repeat(", ?", len(statuses)-1) + `)`
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	query += ` ORDER BY priority DESC, deadline IS NULL, deadline ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// Update persists the mutable task fields.
func (r *TaskRepo) Update(ctx context.Context, t *Task) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, difficulty = ?, category = ?,
			estimated_hours = ?, actual_hours = ?, status = ?, priority = ?, xp_reward = ?,
			started_at = ?, ended_at = ?, deadline = ?
		WHERE id = ?
	`, t.Title, t.Description, t.Difficulty, t.Category,
		t.EstimatedHours, t.ActualHours, t.Status, t.Priority, t.XPReward,
		toNullMillis(t.StartedAt), toNullMillis(t.EndedAt), toNullMillis(t.Deadline), t.ID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

// CountCompletedByCategory returns completed task counts per category for a character.
func (r *TaskRepo) CountCompletedByCategory(ctx context.Context, characterID int64) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM tasks
		WHERE character_id = ? AND status = 'completed'
		GROUP BY category
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("task count by category: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("task count scan: %w", err)
		}
		out[cat] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task count rows: %w", err)
	}
	return out, nil
}

func scanTask(row scanner) (*Task, error) {
	var (
		t         Task
		createdAt int64
		startedAt sql.NullInt64
		endedAt   sql.NullInt64
		deadline  sql.NullInt64
	)
	if err := row.Scan(
		&t.ID, &t.CharacterID, &t.Title, &t.Description, &t.Difficulty, &t.Category,
		&t.EstimatedHours, &t.ActualHours, &t.Status, &t.Priority, &t.XPReward,
		&createdAt, &startedAt, &endedAt, &deadline,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	t.StartedAt = fromNullMillis(startedAt)
	t.EndedAt = fromNullMillis(endedAt)
	t.Deadline = fromNullMillis(deadline)
	return &t, nil
}

