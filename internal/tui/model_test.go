package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(db)
	_, err = svc.CreateCharacter(ctx, engine.CreateCharacterInput{Name: "Sung", Class: engine.ClassTechnomancer})
	require.NoError(t, err)
	return newBoardModel(ctx, svc), svc
}

// run feeds the message produced by cmd back into m.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardCompletesSelectedTask(t *testing.T) {
	m, svc := newTestBoard(t)
	ctx := context.Background()
	_, err := svc.CreateTask(ctx, engine.CreateTaskInput{Title: "Raid", Difficulty: engine.DifficultyDaunting})
	require.NoError(t, err)

	var model tea.Model = m
	model = run(t, model, m.Init())
	bm := model.(boardModel)
	require.Len(t, bm.tasks, 1)
	assert.Contains(t, bm.View(), "Raid")

	model, cmd := model.Update(key("c"))
	model, cmd = model.Update(cmd())
	bm = model.(boardModel)
	assert.Contains(t, bm.lastLog, "+200 XP")
	assert.Contains(t, bm.lastLog, "LEVEL UP")

	model = run(t, model, cmd)
	bm = model.(boardModel)
	assert.Empty(t, bm.tasks)
	assert.Equal(t, 2, bm.character.Level)
}

func TestBoardStartFailAndShowAll(t *testing.T) {
	m, svc := newTestBoard(t)
	ctx := context.Background()
	task, err := svc.CreateTask(ctx, engine.CreateTaskInput{Title: "Study"})
	require.NoError(t, err)

	var model tea.Model = m
	model = run(t, model, m.Init())

	model, cmd := model.Update(key("s"))
	model = run(t, model, cmd)
	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusInProgress, got.Status)

	model, cmd = model.Update(key("f"))
	model, cmd = model.Update(cmd())
	model = run(t, model, cmd)
	assert.Empty(t, model.(boardModel).tasks)

	model, cmd = model.Update(key("a"))
	model = run(t, model, cmd)
	bm := model.(boardModel)
	require.Len(t, bm.tasks, 1)
	assert.Equal(t, engine.StatusFailed, bm.tasks[0].Status)
}

func TestBoardWithoutCharacterShowsError(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := newBoardModel(ctx, engine.NewService(db))
	var model tea.Model = m
	model = run(t, model, m.Init())
	assert.Contains(t, model.View(), "not found")
}
