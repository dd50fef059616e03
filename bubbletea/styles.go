package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/storee/storee"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Question lipgloss.Style
	Answer   lipgloss.Style
	Summary  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t storee.Theme) Styles {
	return Styles{
		Question: lipgloss.NewStyle().Foreground(ansiColor(t.Question)).Bold(true),
		Answer:   lipgloss.NewStyle().Foreground(ansiColor(t.Answer)).Bold(true),
		Summary:  lipgloss.NewStyle().Foreground(ansiColor(t.Summary)).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
