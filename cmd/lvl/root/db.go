package root

import (
	"context"
	"database/sql"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/storage"
)

func (a *app) openDB(ctx context.Context) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func (a *app) openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := a.openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db, engine.WithLogger(a.log)), cleanup, nil
}
