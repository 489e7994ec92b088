package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

// MaxCountdown is the longest countdown ParseCountdown accepts.
const MaxCountdown = 99*time.Hour + 59*time.Minute + 59*time.Second

// ParseCountdown parses "HH:MM:SS", "MM:SS" or "SS". Minutes and seconds after the
// leading component must be below 60, and the total may not exceed MaxCountdown.
func ParseCountdown(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q: want HH:MM:SS", s)
	}

	maxSecs := int(MaxCountdown / time.Second)
	var total int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q: bad component %q", s, p)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid duration %q: %d is out of range", s, n)
		}
		if n > maxSecs {
			return 0, fmt.Errorf("invalid duration %q: longer than %s", s, FormatClock(MaxCountdown))
		}
		total = total*60 + n
		if total > maxSecs {
			return 0, fmt.Errorf("invalid duration %q: longer than %s", s, FormatClock(MaxCountdown))
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return time.Duration(total) * time.Second, nil
}

// FormatClock renders d as HH:MM:SS.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// TimerResult reports how a countdown ended.
type TimerResult struct {
	Elapsed  time.Duration
	Finished bool
}

type tickMsg time.Time

type timerModel struct {
	label     string
	total     time.Duration
	remaining time.Duration
	finished  bool
	aborted   bool
}

func newTimerModel(label string, d time.Duration) timerModel {
	return timerModel{label: label, total: d, remaining: d}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m timerModel) Init() tea.Cmd {
	return tick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			m.finished = true
			return m, tea.Quit
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.finished {
		return ui.Good.Render(ui.IconDone+" Time's up!") + "\n"
	}
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTimer, m.label))
	b.WriteString("\n\n  ")
	b.WriteString(ui.H2.Render(FormatClock(m.remaining)))
	b.WriteString("\n  ")
	b.WriteString(ui.XPBar(int(m.total-m.remaining), int(m.total), 30))
	b.WriteString("\n\n")
	b.WriteString(ui.Muted.Render("q to stop"))
	b.WriteString("\n")
	return b.String()
}

func (m timerModel) result() TimerResult {
	return TimerResult{Elapsed: m.total - m.remaining, Finished: m.finished}
}

// RunTimer shows a countdown of d and blocks until it ends or the user quits.
func RunTimer(label string, d time.Duration, out io.Writer) (TimerResult, error) {
	p := tea.NewProgram(newTimerModel(label, d), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return TimerResult{}, err
	}
	m, ok := final.(timerModel)
	if !ok {
		return TimerResult{}, fmt.Errorf("unexpected timer model %T", final)
	}
	return m.result(), nil
}
