package editor

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/internal/grapheme"
	"github.com/iw2rmb/livemd/syntax"
	"github.com/iw2rmb/livemd/table"
)

// rescan rebuilds table regions and decoration marks from the buffer. A
// single local edit since the last scan only re-parses the touched span.
func (m *Model) rescan() {
	if !m.cfg.RenderMarkdown {
		return
	}
	src := []byte(m.buf.Text())

	incremental := false
	if m.scanned && m.buf.TextVersion() == m.lastTextVersion+1 {
		if ch, ok := m.buf.LastChange(); ok {
			if from, to, delta, ok := ch.ByteSpan(); ok {
				m.regions = m.tracker.ScanRange(src, from, to, delta, m.regions)
				incremental = true
			}
		}
	}
	if !incremental {
		m.regions = m.tracker.Scan(src)
	}
	m.scanned = true

	var marks []syntax.Node
	m.cfg.Tree.Iterate(src, 0, len(src), func(n syntax.Node) bool {
		if n.Name != syntax.NameTable {
			marks = append(marks, n)
		}
		return true
	})
	m.marks = marks
	m.syncGrids()
}

// syncGrids pairs every region with a grid. A grid survives a rescan when
// it still renders its region, so a focused cell keeps its session.
func (m *Model) syncGrids() {
	grids := make([]*table.Grid, 0, len(m.regions))
	for _, r := range m.regions {
		fresh := m.newGrid(r)
		if old := m.gridFor(r); old != nil && old.Equal(fresh) {
			grids = append(grids, old)
			continue
		}
		grids = append(grids, fresh)
	}
	m.grids = grids

	if m.active != nil && m.gridFor(m.active.Region()) != m.active {
		m.log.WithField("from", m.active.Region().From).Debug("focused table removed")
		m.active.Blur()
		m.active = nil
	}
}

func (m *Model) newGrid(r *table.Region) *table.Grid {
	return table.NewGrid(r, m.buf,
		table.WithKeyMap(m.cfg.KeyMap.Table),
		table.WithStyle(m.cfg.Style.Table),
		table.WithMaxCellWidth(m.cfg.MaxCellWidth),
		table.WithGridLogger(m.log),
		table.WithTracker(m.tracker),
	)
}

func (m Model) gridFor(r *table.Region) *table.Grid {
	for _, g := range m.grids {
		if g.Region() == r {
			return g
		}
	}
	return nil
}

func (m Model) gridAt(off int) *table.Grid {
	for _, g := range m.grids {
		if g.Region().Contains(off) {
			return g
		}
	}
	return nil
}

func (m *Model) focusGrid(g *table.Grid, pos table.GridPos) bool {
	if m.cfg.ReadOnly || g == nil {
		return false
	}
	if m.active != nil && m.active != g {
		m.active.Blur()
	}
	if g.Focus(pos) == nil {
		return false
	}
	m.active = g
	return true
}

func (m *Model) blurGrid() {
	if m.active == nil {
		return
	}
	m.active.Blur()
	m.active = nil
}

// enterFrom tries to move focus into a table from the line next to it.
func (m *Model) enterFrom(k table.NavKey) bool {
	cur := m.buf.CursorOffset()
	for _, g := range m.grids {
		if pos, ok := table.EntryFor(cur, g.Region(), k); ok {
			return m.focusGrid(g, pos)
		}
	}
	return false
}

// enterAt focuses the table under the cursor after a buffer move. Forward
// moves land on the first cell, backward moves on the last cell.
func (m *Model) enterAt(k table.NavKey) bool {
	g := m.gridAt(m.buf.CursorOffset())
	if g == nil {
		return false
	}
	b := table.BoundsOf(g.Model())
	pos := table.GridPos{}
	if k == table.NavUp || k == table.NavLeft {
		pos = table.GridPos{Row: b.MaxRow, Col: b.MaxCol}
	}
	return m.focusGrid(g, pos)
}

// leaveTable finishes an exit. A table at either end of the document gets
// an empty line to land on.
func (m *Model) leaveTable(g *table.Grid, out table.Outcome) {
	m.active = nil
	r := g.Region()
	switch out.Exit {
	case table.ExitBelow:
		if end := m.buf.Len(); r.To >= end {
			m.replace(end, end, "\n")
			m.buf.SetCursorOffset(end + 1)
		}
	case table.ExitAbove:
		if r.From == 0 {
			m.replace(0, 0, "\n")
			m.buf.SetCursorOffset(0)
		}
	}
}

// insertTable inserts a blank table after the cursor line and focuses its
// first cell.
func (m *Model) insertTable() bool {
	if m.cfg.ReadOnly {
		return false
	}
	start, ok := m.insertBlankTable()
	if !ok {
		return false
	}
	m.syncFromBuffer()
	return m.focusGrid(m.gridAt(start), table.GridPos{})
}

// insertBlankTable writes table.Blank after the cursor line and returns the
// offset the table starts at.
func (m Model) insertBlankTable() (int, bool) {
	row := m.buf.Cursor().Row
	line := m.buf.Line(row)
	end, ok := m.buf.ByteOffsetFromPos(buffer.Pos{Row: row, GraphemeCol: grapheme.Count(line)}, buffer.OffsetClamp)
	if !ok {
		return 0, false
	}

	text := table.Blank(2, 3)
	start := end
	if strings.TrimSpace(line) != "" {
		text = "\n\n" + text
		start += 2
	}
	if row+1 < m.buf.LineCount() && strings.TrimSpace(m.buf.Line(row+1)) != "" {
		text += "\n"
	}
	if !m.replace(end, end, text) {
		return 0, false
	}
	return start, true
}

// toggleTask flips the task checkbox under the cursor.
func (m Model) toggleTask() bool {
	if m.cfg.ReadOnly {
		return false
	}
	cur := m.buf.CursorOffset()
	for _, n := range m.marks {
		if n.Name != syntax.NameTask || cur < n.From || cur > n.To {
			continue
		}
		next := "x"
		if mark := m.buf.SliceText(n.From+1, n.From+2); mark != " " {
			next = " "
		}
		if !m.replace(n.From+1, n.From+2, next) {
			return false
		}
		m.buf.SetCursorOffset(cur)
		return true
	}
	return false
}

// insertPair inserts open+close and places the caret between them. In a
// focused cell the pair goes into the cell text.
func (m Model) insertPair(open, close string) bool {
	if m.cfg.ReadOnly {
		return false
	}
	if g := m.active; g != nil && g.Editing() {
		return g.Input(open + close)
	}
	off := m.buf.CursorOffset()
	if !m.replace(off, off, open+close) {
		return false
	}
	m.buf.SetCursorOffset(off + len(open))
	return true
}

// insertLinePrefix puts prefix at the start of the cursor line.
func (m Model) insertLinePrefix(prefix string) bool {
	if m.cfg.ReadOnly {
		return false
	}
	row := m.buf.Cursor().Row
	off, ok := m.buf.ByteOffsetFromPos(buffer.Pos{Row: row}, buffer.OffsetClamp)
	if !ok {
		return false
	}
	cur := m.buf.CursorOffset()
	if !m.replace(off, off, prefix) {
		return false
	}
	m.buf.SetCursorOffset(cur + len(prefix))
	return true
}

func (m Model) replace(from, to int, text string) bool {
	if m.buf.ReplaceText(from, to, text) {
		return true
	}
	m.log.WithFields(logrus.Fields{"from": from, "to": to}).Warn("replace rejected")
	return false
}

// ContextMenu returns the commands for the current focus: the table menu
// when a cell is focused, the document menu otherwise.
//
// Actions only write to the buffer; pass the model through Update after
// running one so the view catches up.
func (m Model) ContextMenu() []table.MenuItem {
	scripts := []table.MenuItem{
		{Label: "Insert Superscript", Action: func() bool { return m.insertPair("<sup>", "</sup>") }},
		{Label: "Insert Subscript", Action: func() bool { return m.insertPair("<sub>", "</sub>") }},
	}
	if g := m.active; g != nil && g.Editing() {
		items := g.Menu()
		items = append(items, table.MenuSeparator)
		return append(items, scripts...)
	}
	items := append(scripts, table.MenuSeparator)
	return append(items,
		table.MenuItem{Label: "Insert Table", Action: func() bool {
			_, ok := m.insertBlankTable()
			return ok
		}},
		table.MenuItem{Label: "Insert Task List", Action: func() bool { return m.insertLinePrefix("- [ ] ") }},
	)
}
