package storage

import (
	"context"
	"fmt"
	"time"
)

type LeaderboardRepo struct {
	db DBTX
}

func NewLeaderboardRepo(db DBTX) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

// Replace overwrites the stored ranking with entries.
func (r *LeaderboardRepo) Replace(ctx context.Context, entries []LeaderboardEntry, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("leaderboard clear: %w", err)
	}
	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO leaderboard (character_id, rank, level, xp, last_update)
			VALUES (?, ?, ?, ?, ?)
		`, e.CharacterID, e.Rank, e.Level, e.XP, toMillis(at)); err != nil {
			return fmt.Errorf("leaderboard insert: %w", err)
		}
	}
	return nil
}

func (r *LeaderboardRepo) List(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.character_id, c.name, c.class, l.rank, l.level, l.xp, l.last_update
		FROM leaderboard l
		JOIN characters c ON c.id = l.character_id
		ORDER BY l.rank ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("leaderboard list: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var (
			e  LeaderboardEntry
			at int64
		)
		if err := rows.Scan(&e.CharacterID, &e.Name, &e.Class, &e.Rank, &e.Level, &e.XP, &at); err != nil {
			return nil, fmt.Errorf("leaderboard scan: %w", err)
		}
		e.LastUpdate = fromMillis(at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows: %w", err)
	}
	return out, nil
}
