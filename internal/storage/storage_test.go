package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertCharacter(t *testing.T, db *sql.DB, name string) *Character {
	t.Helper()
	ctx := context.Background()
	u, err := NewUserRepo(db).GetOrCreate(ctx, MainUsername)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	c := &Character{
		UserID:        u.ID,
		Name:          name,
		Class:         "Technomancer",
		Level:         1,
		XPToNextLevel: 100,
		Stats:         map[string]int{"strength": 8, "intelligence": 16},
		IsActive:      true,
		CreatedAt:     now,
		LastActiveAt:  now,
	}
	id, err := NewCharacterRepo(db).Insert(ctx, c)
	require.NoError(t, err)
	c.ID = id
	return c
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (x INT);\n", extractUp(content))
	assert.Equal(t, "SELECT 1;", extractUp("SELECT 1;"))
}

func TestUserGetOrCreate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	u1, err := repo.GetOrCreate(ctx, MainUsername)
	require.NoError(t, err)
	u2, err := repo.GetOrCreate(ctx, MainUsername)
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCharacterStatsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepo(db)
	c := insertCharacter(t, db, "Neo")

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.Stats, got.Stats)
	assert.True(t, got.IsActive)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)

	got.Level = 3
	got.CurrentXP = 35
	got.TotalXP = 250
	got.XPToNextLevel = 132
	got.Stats["intelligence"] = 22
	require.NoError(t, repo.UpdateProgress(ctx, got))

	again, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Level)
	assert.Equal(t, 35, again.CurrentXP)
	assert.Equal(t, 250, again.TotalXP)
	assert.Equal(t, 132, again.XPToNextLevel)
	assert.Equal(t, 22, again.Stats["intelligence"])
}

func TestCharacterSetActive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepo(db)

	a := insertCharacter(t, db, "A")
	b := insertCharacter(t, db, "B")
	require.NoError(t, repo.SetActive(ctx, a.ID))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, a.ID, active.ID)

	other, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, other.IsActive)
}

func TestTaskInsertListUpdate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := insertCharacter(t, db, "Neo")
	repo := NewTaskRepo(db)

	deadline := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Millisecond)
	low := &Task{CharacterID: c.ID, Title: "low", Difficulty: "easy", Category: "general", Status: "pending", Priority: 1, CreatedAt: time.Now()}
	high := &Task{CharacterID: c.ID, Title: "high", Difficulty: "hard", Category: "Programming", Status: "pending", Priority: 3, CreatedAt: time.Now(), Deadline: &deadline}

	lowID, err := repo.Insert(ctx, low)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, high)
	require.NoError(t, err)

	list, err := repo.ListByCharacter(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "high", list[0].Title)
	require.NotNil(t, list[0].Deadline)
	assert.Equal(t, deadline, *list[0].Deadline)

	got, err := repo.Get(ctx, lowID)
	require.NoError(t, err)
	ended := time.Now().UTC().Truncate(time.Millisecond)
	got.Status = "completed"
	got.XPReward = 25
	got.ActualHours = 1.5
	got.EndedAt = &ended
	require.NoError(t, repo.Update(ctx, got))

	open, err := repo.ListByCharacter(ctx, c.ID, "pending", "in_progress")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "high", open[0].Title)

	counts, err := repo.CountCompletedByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"general": 1}, counts)

	missing, err := repo.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTaskCheckConstraintRejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := insertCharacter(t, db, "Neo")

	_, err := NewTaskRepo(db).Insert(ctx, &Task{CharacterID: c.ID, Title: "x", Difficulty: "medium", Category: "general", Status: "done", Priority: 1, CreatedAt: time.Now()})
	assert.Error(t, err)
}

func TestSessionOpenClose(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := insertCharacter(t, db, "Neo")
	taskID, err := NewTaskRepo(db).Insert(ctx, &Task{CharacterID: c.ID, Title: "x", Difficulty: "medium", Category: "general", Status: "in_progress", Priority: 1, CreatedAt: time.Now()})
	require.NoError(t, err)

	repo := NewSessionRepo(db)
	start := time.Now().UTC().Add(-90 * time.Minute)
	_, err = repo.Open(ctx, taskID, c.ID, start)
	require.NoError(t, err)

	s, err := repo.GetOpen(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, s)

	d, err := repo.Close(ctx, s, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d.Truncate(time.Second))

	s, err = repo.GetOpen(ctx, taskID)
	require.NoError(t, err)
	assert.Nil(t, s)

	total, err := repo.TotalSeconds(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, int64(90*60), total)
}

func TestAchievementInsertOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := insertCharacter(t, db, "Neo")
	repo := NewAchievementRepo(db)

	a := &Achievement{CharacterID: c.ID, Code: "first_task", Title: "First Quest", EarnedAt: time.Now()}
	inserted, err := repo.Insert(ctx, a)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, a)
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := repo.ListByCharacter(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first_task", list[0].Code)
}

func TestLeaderboardReplace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := insertCharacter(t, db, "A")
	b := insertCharacter(t, db, "B")
	repo := NewLeaderboardRepo(db)

	now := time.Now()
	require.NoError(t, repo.Replace(ctx, []LeaderboardEntry{
		{CharacterID: b.ID, Rank: 1, Level: 4, XP: 500},
		{CharacterID: a.ID, Rank: 2, Level: 1, XP: 0},
	}, now))
	require.NoError(t, repo.Replace(ctx, []LeaderboardEntry{
		{CharacterID: a.ID, Rank: 1, Level: 5, XP: 900},
		{CharacterID: b.ID, Rank: 2, Level: 4, XP: 500},
	}, now))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, 1, list[0].Rank)
	assert.Equal(t, "Technomancer", list[0].Class)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := NewUserRepo(tx).GetOrCreate(ctx, "ghost"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	u, err := NewUserRepo(db).GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}
