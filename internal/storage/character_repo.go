package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type CharacterRepo struct {
	db DBTX
}

func NewCharacterRepo(db DBTX) *CharacterRepo {
	return &CharacterRepo{db: db}
}

const characterColumns = `id, user_id, name, class, level, current_xp, total_xp, xp_to_next_level,
	stats, is_active, created_at, last_active_at`

func (r *CharacterRepo) Insert(ctx context.Context, c *Character) (int64, error) {
	stats, err := encodeStats(c.Stats)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO characters (
			user_id, name, class, level, current_xp, total_xp, xp_to_next_level,
			stats, is_active, created_at, last_active_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.UserID, c.Name, c.Class, c.Level, c.CurrentXP, c.TotalXP, c.XPToNextLevel,
		stats, boolToInt(c.IsActive), toMillis(c.CreatedAt), toMillis(c.LastActiveAt))
	if err != nil {
		return 0, fmt.Errorf("character insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("character last insert id: %w", err)
	}
	return id, nil
}

func (r *CharacterRepo) Get(ctx context.Context, id int64) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)
	return scanCharacter(row)
}

// GetActive returns the active character, or nil when none has been created yet.
func (r *CharacterRepo) GetActive(ctx context.Context) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE is_active = 1
		ORDER BY last_active_at DESC
		LIMIT 1
	`)
	return scanCharacter(row)
}

func (r *CharacterRepo) ListAll(ctx context.Context) ([]Character, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("character list: %w", err)
	}
	defer rows.Close()

	var out []Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("character list rows: %w", err)
	}
	return out, nil
}

// UpdateProgress persists level, XP, stats and the last-active timestamp.
func (r *CharacterRepo) UpdateProgress(ctx context.Context, c *Character) error {
	stats, err := encodeStats(c.Stats)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE characters
		SET level = ?, current_xp = ?, total_xp = ?, xp_to_next_level = ?, stats = ?, last_active_at = ?
		WHERE id = ?
	`, c.Level, c.CurrentXP, c.TotalXP, c.XPToNextLevel, stats, toMillis(c.LastActiveAt), c.ID)
	if err != nil {
		return fmt.Errorf("character update: %w", err)
	}
	return nil
}

// SetActive marks id as the only active character.
func (r *CharacterRepo) SetActive(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE characters SET is_active = CASE WHEN id = ? THEN 1 ELSE 0 END`, id); err != nil {
		return fmt.Errorf("character set active: %w", err)
	}
	return nil
}

func encodeStats(stats map[string]int) (string, error) {
	if stats == nil {
		stats = map[string]int{}
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal stats: %w", err)
	}
	return string(data), nil
}

func scanCharacter(row scanner) (*Character, error) {
	var (
		c          Character
		statsRaw   string
		isActive   int
		createdAt  int64
		lastActive int64
	)
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Class, &c.Level, &c.CurrentXP, &c.TotalXP, &c.XPToNextLevel,
		&statsRaw, &isActive, &createdAt, &lastActive,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("character scan: %w", err)
	}

	c.Stats = map[string]int{}
	if statsRaw != "" {
		if err := json.Unmarshal([]byte(statsRaw), &c.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	c.IsActive = isActive != 0
	c.CreatedAt = fromMillis(createdAt)
	c.LastActiveAt = fromMillis(lastActive)
	return &c, nil
}
