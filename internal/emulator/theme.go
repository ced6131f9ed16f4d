package emulator

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Header lipgloss.Style
	Frame  lipgloss.Style
	Muted  lipgloss.Style
	Status lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00FFFF")
	secondary := lipgloss.Color("#7D7D7D")

	return theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Status: lipgloss.NewStyle().
			Foreground(accent),
	}
}
