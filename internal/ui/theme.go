package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Neon terminal theme shared by the CLI and the TUI.

const (
	IconSword   = "⚔️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconFail    = "💀"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconTimer   = "⏱️"
	IconScroll  = "📜"
	IconStar    = "⭐"
)

var (
	cPrimary = lipgloss.Color("#00ff41") // matrix green
	cAccent  = lipgloss.Color("#ff0080") // cyber pink
	cCyan    = lipgloss.Color("#00ffff")
	cWarn    = lipgloss.Color("#ffff00")
	cBad     = lipgloss.Color("#ff0040")
	cMuted   = lipgloss.Color("244")
	cDark    = lipgloss.Color("#333333")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cDark).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cPrimary).Background(cDark)

	barFull  = lipgloss.NewStyle().Foreground(cPrimary)
	barEmpty = lipgloss.NewStyle().Foreground(cDark)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("LEVEL UP")
)

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("completed")
	case "in_progress":
		return H2.Render("in progress")
	case "pending":
		return Warn.Render("pending")
	case "failed":
		return Bad.Render("failed")
	default:
		return Muted.Render(status)
	}
}

func DifficultyText(d string) string {
	switch strings.ToLower(d) {
	case "easy":
		return Good.Render(d)
	case "medium":
		return H2.Render(d)
	case "hard":
		return Warn.Render(d)
	case "daunting":
		return Bad.Render(d)
	default:
		return Muted.Render(d)
	}
}

// XPBar renders current/next as a bar of width cells.
func XPBar(current, next, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := width
	if next > 0 {
		filled = current * width / next
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barFull.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
}
