package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/livemd/table"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Markdown decorations.
	Rule      lipgloss.Style
	QuoteMark lipgloss.Style
	Task      lipgloss.Style
	Spoiler   lipgloss.Style

	// Table styles every grid. A zero Border selects table.DefaultStyle.
	Table table.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Rule:          gutter,
		QuoteMark:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		Task:          lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Spoiler:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Table:         table.DefaultStyle(),
	}
}
