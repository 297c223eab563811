package timelineview

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	name     lipgloss.Style
	meta     lipgloss.Style
	empty    lipgloss.Style
	lane     lipgloss.Style
	barAI    lipgloss.Style
	barError lipgloss.Style
	barPlain lipgloss.Style
	arrow    lipgloss.Style
	endpoint lipgloss.Style
	step     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:    lipgloss.NewStyle().Faint(true),
		lane:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barAI:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		barError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		barPlain: lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		arrow:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		endpoint: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		step:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
