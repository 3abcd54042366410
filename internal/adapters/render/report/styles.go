package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	account lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	counts  lipgloss.Style
	errLine lipgloss.Style
	empty   lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		counts:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errLine: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
