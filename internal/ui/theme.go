package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"planner/internal/storage"
)

// Planner theme (CLI + TUI).
// Two palettes matching the stored light/dark theme, plus a few icons.

const (
	IconPlan     = "🗺️"
	IconDone     = "✅"
	IconNote     = "📝"
	IconTarget   = "🎯"
	IconBackup   = "💾"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconLock     = "🔒"
	IconCalendar = "📅"
)

// Palette is the set of colours one theme draws with.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
}

var (
	lightPalette = Palette{
		Primary: lipgloss.Color("25"),  // blue
		Accent:  lipgloss.Color("127"), // magenta
		Good:    lipgloss.Color("28"),  // green
		Warn:    lipgloss.Color("166"), // orange
		Bad:     lipgloss.Color("160"), // red
		Muted:   lipgloss.Color("243"), // gray
		Text:    lipgloss.Color("235"),
	}
	darkPalette = Palette{
		Primary: lipgloss.Color("63"),
		Accent:  lipgloss.Color("205"),
		Good:    lipgloss.Color("42"),
		Warn:    lipgloss.Color("214"),
		Bad:     lipgloss.Color("196"),
		Muted:   lipgloss.Color("244"),
		Text:    lipgloss.Color("252"),
	}
)

// Styles is a rendered palette.
type Styles struct {
	Title       lipgloss.Style
	H2          lipgloss.Style
	Muted       lipgloss.Style
	Key         lipgloss.Style
	Good        lipgloss.Style
	Warn        lipgloss.Style
	Bad         lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	SelectedRow lipgloss.Style
	DayDone     lipgloss.Style
	DayNoted    lipgloss.Style
	DayEmpty    lipgloss.Style
}

// For returns the styles of theme t. Unknown themes fall back to light.
func For(t storage.Theme) Styles {
	p := lightPalette
	if t == storage.ThemeDark {
		p = darkPalette
	}
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		H2:          lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:       lipgloss.NewStyle().Foreground(p.Muted),
		Key:         lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Good:        lipgloss.NewStyle().Bold(true).Foreground(p.Good),
		Warn:        lipgloss.NewStyle().Bold(true).Foreground(p.Warn),
		Bad:         lipgloss.NewStyle().Bold(true).Foreground(p.Bad),
		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		SelectedRow: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Primary),
		DayDone:     lipgloss.NewStyle().Bold(true).Foreground(p.Good),
		DayNoted:    lipgloss.NewStyle().Foreground(p.Primary),
		DayEmpty:    lipgloss.NewStyle().Foreground(p.Muted),
	}
}

func (s Styles) Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return s.Title.Render(icon + title)
}

func (s Styles) LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", s.Key.Render(label+":"), value)
}

// Percent renders p coloured by how far along it is.
func (s Styles) Percent(p int) string {
	text := fmt.Sprintf("%3d%%", p)
	switch {
	case p >= 75:
		return s.Good.Render(text)
	case p >= 25:
		return s.Warn.Render(text)
	default:
		return s.Muted.Render(text)
	}
}

// ProgressBar draws a fixed-width bar for a 0-100 percentage.
func ProgressBar(percent int, width int) string {
	if width <= 3 {
		width = 3
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
