package storage

import (
	"context"
	"fmt"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Insert records an earned achievement. It reports false when the character already
// had it.
func (r *AchievementRepo) Insert(ctx context.Context, a *Achievement) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievements (character_id, code, title, description, earned_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.CharacterID, a.Code, a.Title, a.Description, toMillis(a.EarnedAt))
	if err != nil {
		return false, fmt.Errorf("achievement insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("achievement rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *AchievementRepo) ListByCharacter(ctx context.Context, characterID int64) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, character_id, code, title, description, earned_at
		FROM achievements
		WHERE character_id = ?
		ORDER BY earned_at ASC, id ASC
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var (
			a        Achievement
			earnedAt int64
		)
		if err := rows.Scan(&a.ID, &a.CharacterID, &a.Code, &a.Title, &a.Description, &earnedAt); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		a.EarnedAt = fromMillis(earnedAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}
