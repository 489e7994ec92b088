package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	character *engine.Character
	tasks     []engine.Task

	selected int
	showAll  bool

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	character *engine.Character
	tasks     []engine.Task
	err       error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

// actionMsg reports the outcome of start, stop and fail.
type actionMsg struct {
	text string
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	showAll := m.showAll
	return func() tea.Msg {
		c, err := m.svc.ActiveCharacter(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListTasks(m.ctx, showAll)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{character: c, tasks: tasks}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) toggleTimerCmd(t engine.Task) tea.Cmd {
	return func() tea.Msg {
		if t.Status == engine.StatusPending {
			if _, err := m.svc.StartTask(m.ctx, t.ID); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{text: fmt.Sprintf("Started %d.", t.ID)}
		}
		res, err := m.svc.StopTask(m.ctx, t.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: fmt.Sprintf("Stopped %d after %s (%.2fh total).", t.ID, res.Elapsed.Round(time.Second), res.ActualHours)}
	}
}

func (m boardModel) failCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.FailTask(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: fmt.Sprintf("Failed %d.", id)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.character = msg.character
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completionLog(msg.res)
		return m, m.loadCmd()
	case actionMsg:
		if msg.err != nil {
			m.lastLog = msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.text
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "a":
			m.showAll = !m.showAll
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			t := m.current()
			if t == nil {
				return m, nil
			}
			if !t.Status.IsOpen() {
				m.lastLog = fmt.Sprintf("Task %d is already %s.", t.ID, t.Status)
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %d…", t.ID)
			return m, m.completeCmd(t.ID)
		case "s":
			t := m.current()
			if t == nil || !t.Status.IsOpen() {
				return m, nil
			}
			return m, m.toggleTimerCmd(*t)
		case "f":
			t := m.current()
			if t == nil || !t.Status.IsOpen() {
				return m, nil
			}
			return m, m.failCmd(t.ID)
		}
	}
	return m, nil
}

func (m boardModel) current() *engine.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}

func completionLog(res *engine.CompleteResult) string {
	parts := []string{fmt.Sprintf("Completed %d: +%d XP", res.TaskID, res.XPAwarded)}
	for _, ev := range res.LevelUps {
		parts = append(parts, fmt.Sprintf("%s → %d", ui.BadgeLevelUp, ev.Level))
	}
	for _, a := range res.Unlocked {
		parts = append(parts, fmt.Sprintf("%s %s", a.Icon, a.Name))
	}
	return strings.Join(parts, " | ")
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	sidebar := lipgloss.NewStyle().Width(leftW).Render(m.renderSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", m.renderMain())
	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	c := m.character
	if c == nil {
		return ui.Title.Render("LevelUp") + " loading…"
	}
	def := c.Definition()
	return fmt.Sprintf("%s | %s %s (%s) | Level %d | XP %s/%s %s",
		ui.Title.Render("LevelUp"),
		def.Icon, c.Name, c.Class,
		c.Level,
		ui.Number(c.CurrentXP), ui.Number(c.XPToNextLevel),
		ui.XPBar(c.CurrentXP, c.XPToNextLevel, 30),
	)
}

func (m boardModel) renderSidebar() string {
	c := m.character
	if c == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{ui.PanelTitle.Render("Stats")}
	for _, st := range engine.AllStats {
		lines = append(lines, fmt.Sprintf("- %-12s %3d", st, c.Stats[st]))
	}
	lines = append(lines, "", ui.PanelTitle.Render("Keys"))
	lines = append(lines,
		"- ↑/↓ or j/k: move",
		"- c/space: complete",
		"- s: start/stop timer",
		"- f: fail",
		"- a: show closed",
		"- r: refresh",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, ui.PanelTitle.Render("Focus"))
	focus := m.focusTasks(3)
	if len(focus) == 0 {
		out = append(out, "(no open tasks)")
	}
	for _, t := range focus {
		out = append(out, fmt.Sprintf("- %d %s (+%d XP)", t.ID, t.Title, engine.PreviewXP(&t, m.character.Class)))
	}

	out = append(out, "", ui.PanelTitle.Render("Quest Log"))
	if len(m.tasks) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	now := time.Now()
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		xp := t.XPReward
		if t.Status.IsOpen() {
			xp = engine.PreviewXP(&t, m.character.Class)
		}
		line := fmt.Sprintf("%s%d %s [%s/%s] %s %.1fh +%d XP",
			cursor, t.ID, t.Title, t.Difficulty, t.Category, ui.StatusText(string(t.Status)), t.ActualHours, xp)
		if t.IsOverdue(now) {
			line += " " + ui.Bad.Render("overdue")
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

// focusTasks picks open tasks by deadline, then priority, then id.
func (m boardModel) focusTasks(n int) []engine.Task {
	var open []engine.Task
	for _, t := range m.tasks {
		if t.Status.IsOpen() {
			open = append(open, t)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		ai, aj := open[i].Deadline, open[j].Deadline
		if ai == nil && aj != nil {
			return false
		}
		if ai != nil && aj == nil {
			return true
		}
		if ai != nil && aj != nil && !ai.Equal(*aj) {
			return ai.Before(*aj)
		}
		if open[i].Priority != open[j].Priority {
			return open[i].Priority > open[j].Priority
		}
		return open[i].ID < open[j].ID
	})
	if len(open) > n {
		open = open[:n]
	}
	return open
}
