package table

// MenuItem is one entry of a context menu. Separator items carry no label
// or action.
type MenuItem struct {
	Label     string
	Separator bool
	Action    func() bool
}

// MenuSeparator is the divider between menu groups.
var MenuSeparator = MenuItem{Separator: true}

// Menu returns the table commands for the focused cell, or nil when no cell
// has focus.
func (g *Grid) Menu() []MenuItem {
	s := g.session
	if s == nil {
		return nil
	}
	row, col := s.Row, s.Col
	return []MenuItem{
		{Label: "Add Row Above", Action: func() bool { return g.AddRow(row) }},
		{Label: "Add Row Below", Action: func() bool { return g.AddRow(row + 1) }},
		{Label: "Add Column Left", Action: func() bool { return g.AddColumn(col) }},
		{Label: "Add Column Right", Action: func() bool { return g.AddColumn(col + 1) }},
		MenuSeparator,
		{Label: "Move Row Up", Action: func() bool { return g.MoveRowUp(row) }},
		{Label: "Move Row Down", Action: func() bool { return g.MoveRowDown(row) }},
		{Label: "Move Column Left", Action: func() bool { return g.MoveColumnLeft(col) }},
		{Label: "Move Column Right", Action: func() bool { return g.MoveColumnRight(col) }},
		MenuSeparator,
		{Label: "Delete Row", Action: func() bool { return g.DeleteRow(row) }},
		{Label: "Delete Column", Action: func() bool { return g.DeleteColumn(col) }},
	}
}
