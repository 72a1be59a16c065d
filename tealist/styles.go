package tealist

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by View.
type Styles struct {
	Pull    lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Pull:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
