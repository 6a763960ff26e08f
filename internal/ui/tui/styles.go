package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cursorCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("205"))

	editingCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("42"))

	// the deleted card drifts right and fades until it is removed
	flyAwayCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("236")).
			Foreground(lipgloss.Color("240")).
			Faint(true).
			Strikethrough(true).
			MarginLeft(6)

	noteTitleStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Italic(true)
)
