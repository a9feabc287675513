package tui

import "github.com/charmbracelet/lipgloss"

// chatStyles holds the pre-configured lipgloss styles for the chat view.
type chatStyles struct {
	Title     lipgloss.Style
	Question  lipgloss.Style
	Answer    lipgloss.Style
	Source    lipgloss.Style
	FollowUp  lipgloss.Style
	Error     lipgloss.Style
	InputLine lipgloss.Style
	Help      lipgloss.Style
}

func defaultChatStyles() chatStyles {
	return chatStyles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Question:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Answer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		FollowUp:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#A6E3A1")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		InputLine: lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color("#45475A")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}
