// Package theme holds the colors and styles shared by the views. The
// palette is Catppuccin Mocha.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")

	App = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Cursor = lipgloss.NewStyle().Foreground(Lavender).Bold(true)

	Tab       = lipgloss.NewStyle().Foreground(Subtext0).Padding(0, 1)
	TabActive = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Bold(true).Padding(0, 1)

	Success = lipgloss.NewStyle().Foreground(Base).Background(Green).Padding(0, 1)
	Failure = lipgloss.NewStyle().Foreground(Base).Background(Red).Padding(0, 1)
	Busy    = lipgloss.NewStyle().Foreground(Base).Background(Yellow).Padding(0, 1)

	Outgoing = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Sapphire).
			Padding(0, 1)
	Incoming = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1)

	StatusBar = lipgloss.NewStyle().Foreground(Subtext0).Background(Surface0).Padding(0, 1)
)

// Bar draws a percentage as a fixed-width meter.
func Bar(percent, width int) string {
	if width < 4 {
		width = 4
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return lipgloss.NewStyle().Foreground(Green).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Surface1).Render(strings.Repeat("░", width-filled))
}

// Spark draws values scaled against max with block characters.
func Spark(values []float64, max float64) string {
	const blocks = "▁▂▃▄▅▆▇█"
	levels := []rune(blocks)
	if max <= 0 {
		max = 1
	}
	var b strings.Builder
	for _, v := range values {
		i := int(v / max * float64(len(levels)-1))
		if i < 0 {
			i = 0
		}
		if i >= len(levels) {
			i = len(levels) - 1
		}
		b.WriteRune(levels[i])
	}
	return lipgloss.NewStyle().Foreground(Sapphire).Render(b.String())
}

// Score formats one labelled value as "label  ███░░ 3.5/5".
func Score(label string, value, max float64, labelWidth int) string {
	pct := 0
	if max > 0 {
		pct = int(value / max * 100)
	}
	return fmt.Sprintf("%-*s %s %.1f/%g", labelWidth, label, Bar(pct, 10), value, max)
}
