package table

import "github.com/charmbracelet/lipgloss"

// Style controls grid rendering.
type Style struct {
	Border      lipgloss.Border
	BorderStyle lipgloss.Style

	Header  lipgloss.Style
	Cell    lipgloss.Style
	Focused lipgloss.Style
	Cursor  lipgloss.Style

	// Affordance renders the "+ row" / "+ col" hints under the grid.
	Affordance lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Style{
		Border:      lipgloss.RoundedBorder(),
		BorderStyle: dim,
		Header:      cell.Bold(true),
		Cell:        cell,
		Focused:     cell.Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Affordance:  dim,
	}
}
