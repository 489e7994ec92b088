package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MainUsername is the local profile every character belongs to.
const MainUsername = "main_user"

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, email, created_at FROM users WHERE username = ?`, username)

	var (
		u       User
		email   sql.NullString
		created int64
	)
	if err := row.Scan(&u.ID, &u.Username, &email, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	if email.Valid {
		v := email.String
		u.Email = &v
	}
	u.CreatedAt = fromMillis(created)
	return &u, nil
}

func (r *UserRepo) GetOrCreate(ctx context.Context, username string) (*User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO users (username, created_at) VALUES (?, ?)`, username, toMillis(time.Now())); err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return r.GetByUsername(ctx, username)
}
