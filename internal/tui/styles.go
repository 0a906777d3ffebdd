package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorFg       = "#F8FAFC" // Slate 50
	colorFgMuted  = "#94A3B8" // Slate 400
	colorBgAlt    = "#1E293B" // Slate 800
	colorPrimary  = "#3B82F6" // Blue 500
	colorAccent   = "#06B6D4" // Cyan 500
	colorSuccess  = "#10B981" // Emerald 500
	colorError    = "#EF4444" // Red 500
	colorBorder   = "#334155" // Slate 700
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBgAlt)).
			Padding(0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			Padding(0, 2).
			Underline(true)

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFg)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 2)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorAccent)).
				Padding(0, 2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)).
			Padding(0, 2)

	statusErrorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorError)).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Padding(0, 2)
)
