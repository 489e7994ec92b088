package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountdown(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"01:30:00", 90 * time.Minute},
		{"25:00", 25 * time.Minute},
		{"45", 45 * time.Second},
		{"99:59:59", MaxCountdown},
		{" 00:00:10 ", 10 * time.Second},
	}
	for _, tt := range tests {
		got, err := ParseCountdown(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseCountdownErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "00:61", "-1:00", "00:00:00", "1::2", "100:00:00", "99999999999999999:00:00", "6000:00", "360000"} {
		_, err := ParseCountdown(in)
		assert.Error(t, err, in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "01:02:03", FormatClock(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "00:00:00", FormatClock(-time.Second))
}

func TestTimerModelFinishes(t *testing.T) {
	var m tea.Model = newTimerModel("Focus", 2*time.Second)

	m, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.False(t, m.(timerModel).finished)

	m, _ = m.Update(tickMsg(time.Now()))
	res := m.(timerModel).result()
	assert.True(t, res.Finished)
	assert.Equal(t, 2*time.Second, res.Elapsed)
}

func TestTimerModelAbort(t *testing.T) {
	var m tea.Model = newTimerModel("Focus", time.Minute)
	m, _ = m.Update(tickMsg(time.Now()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	tm := m.(timerModel)
	assert.True(t, tm.aborted)
	assert.False(t, tm.result().Finished)
	assert.Equal(t, time.Second, tm.result().Elapsed)
}
