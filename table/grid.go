package table

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/internal/grapheme"
	"github.com/iw2rmb/livemd/internal/logging"
)

// Host is the document a grid writes to.
type Host interface {
	SliceText(from, to int) string
	// ReplaceText swaps [from, to) for text as one undoable change and
	// reports whether it was applied.
	ReplaceText(from, to int, text string) bool
	SetCursorOffset(off int)
	Len() int
}

// Grid renders one Region and edits it in place.
//
// Every change, whether a keystroke in a cell or a structural command, is
// applied to the region's Model first and then written to the host as a
// single replace of [From, To).
type Grid struct {
	region *Region
	host   Host

	keys  KeyMap
	style Style
	log   logrus.FieldLogger

	// maxCellWidth truncates unfocused cells in View; 0 disables it.
	maxCellWidth int

	onFocus func(*Region)
	onBlur  func()

	session *Session
}

type GridOption func(*Grid)

func WithKeyMap(km KeyMap) GridOption   { return func(g *Grid) { g.keys = km } }
func WithStyle(st Style) GridOption     { return func(g *Grid) { g.style = st } }
func WithMaxCellWidth(n int) GridOption { return func(g *Grid) { g.maxCellWidth = n } }

func WithGridLogger(l logrus.FieldLogger) GridOption {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// WithTracker locks the tracker on the grid's region for the lifetime of an
// edit session.
func WithTracker(t *Tracker) GridOption {
	return func(g *Grid) {
		g.onFocus = t.Lock
		g.onBlur = t.Unlock
	}
}

func NewGrid(region *Region, host Host, opts ...GridOption) *Grid {
	g := &Grid{
		region: region,
		host:   host,
		keys:   DefaultKeyMap(),
		style:  DefaultStyle(),
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Grid) Region() *Region { return g.region }
func (g *Grid) Model() *Model   { return g.region.Model }

// Session returns the active edit session, or nil.
func (g *Grid) Session() *Session { return g.session }

// Editing reports whether a cell has focus.
func (g *Grid) Editing() bool { return g.session != nil }

// Equal reports whether g can stand in for other after a rescan. A grid
// with an active session always can, so an edit never re-renders the grid
// under the user's cursor.
func (g *Grid) Equal(other *Grid) bool {
	if g.session != nil {
		return true
	}
	return other != nil && g.region.Model.String() == other.region.Model.String()
}

// Focus starts (or moves) the edit session to pos with the caret at the
// end of the cell. It returns nil when pos is not an editable cell.
func (g *Grid) Focus(pos GridPos) *Session {
	m := g.region.Model
	if !g.editable(pos) {
		g.log.WithFields(logrus.Fields{"op": "focus", "row": pos.Row, "col": pos.Col}).Warn("cell out of range")
		return nil
	}
	if g.session == nil {
		g.session = &Session{Model: m}
		if g.onFocus != nil {
			g.onFocus(g.region)
		}
	}
	g.session.Row, g.session.Col = pos.Row, pos.Col
	g.session.load()
	return g.session
}

// Blur ends the edit session.
func (g *Grid) Blur() {
	if g.session == nil {
		return
	}
	g.session = nil
	if g.onBlur != nil {
		g.onBlur()
	}
}

func (g *Grid) editable(pos GridPos) bool {
	m := g.region.Model
	return m.validRow(pos.Row) && !m.IsSeparator(pos.Row) &&
		pos.Col >= 0 && pos.Col < m.ColumnCount()
}

// Input inserts text at the caret of the focused cell.
func (g *Grid) Input(text string) bool {
	s := g.session
	if s == nil || text == "" {
		return false
	}
	s.insert(text)
	return g.writeCell()
}

// Backspace deletes the grapheme before the caret.
func (g *Grid) Backspace() bool {
	if g.session == nil || !g.session.deleteBefore() {
		return false
	}
	return g.writeCell()
}

// DeleteForward deletes the grapheme after the caret.
func (g *Grid) DeleteForward() bool {
	if g.session == nil || !g.session.deleteAfter() {
		return false
	}
	return g.writeCell()
}

func (g *Grid) writeCell() bool {
	s := g.session
	if !g.region.Model.UpdateCell(s.Row, s.Col, s.text) {
		g.log.WithFields(logrus.Fields{"op": "update", "row": s.Row, "col": s.Col}).Warn("stale cell")
		return false
	}
	return g.commit()
}

// commit writes the serialized model over the region and moves To to the
// end of the new text.
func (g *Grid) commit() bool {
	text := g.region.Model.String()
	if !g.host.ReplaceText(g.region.From, g.region.To, text) {
		g.log.WithFields(logrus.Fields{"from": g.region.From, "to": g.region.To}).Warn("replace rejected")
		return false
	}
	g.region.To = g.region.From + len(text)
	return true
}

// structural applies a row or column command and keeps the session on the
// same content. fixCol maps the old focused column to the new one.
func (g *Grid) structural(op string, ri, ci int, apply func(*Model) bool, fixCol func(int) int) bool {
	m := g.region.Model
	if ri < 0 || ri >= m.RowCount() || ci < 0 || ci > m.ColumnCount() {
		g.log.WithFields(logrus.Fields{"op": op, "row": ri, "col": ci}).Warn("stale index")
		return false
	}

	var focused *row
	if s := g.session; s != nil && m.validRow(s.Row) {
		focused = m.rows[s.Row]
	}
	if !apply(m) {
		return false
	}

	if s := g.session; s != nil {
		if i := m.indexOf(focused); i >= 0 {
			s.Row = i
		}
		s.Row = m.nearestContentRow(s.Row)
		if fixCol != nil {
			s.Col = fixCol(s.Col)
		}
		s.Col = clamp(s.Col, 0, max(m.ColumnCount()-1, 0))
		s.load()
	}
	return g.commit()
}

func (g *Grid) AddRow(index int) bool {
	return g.structural("add_row", clamp(index, 0, max(g.region.Model.RowCount()-1, 0)), 0,
		func(m *Model) bool { return m.AddRow(index) }, nil)
}

func (g *Grid) AddColumn(index int) bool {
	at := clamp(index, 0, g.region.Model.ColumnCount())
	return g.structural("add_column", 0, at,
		func(m *Model) bool { return m.AddColumn(index) },
		func(c int) int {
			if c >= at {
				return c + 1
			}
			return c
		})
}

func (g *Grid) DeleteRow(index int) bool {
	return g.structural("delete_row", index, 0,
		func(m *Model) bool { return m.DeleteRow(index) }, nil)
}

func (g *Grid) DeleteColumn(index int) bool {
	return g.structural("delete_column", 0, index,
		func(m *Model) bool { return m.DeleteColumn(index) },
		func(c int) int {
			if c > index {
				return c - 1
			}
			return c
		})
}

func (g *Grid) MoveRowUp(index int) bool {
	return g.structural("move_row_up", index, 0,
		func(m *Model) bool { return m.MoveRowUp(index) }, nil)
}

func (g *Grid) MoveRowDown(index int) bool {
	return g.structural("move_row_down", index, 0,
		func(m *Model) bool { return m.MoveRowDown(index) }, nil)
}

func (g *Grid) MoveColumnLeft(index int) bool {
	return g.structural("move_column_left", 0, index,
		func(m *Model) bool { return m.MoveColumnLeft(index) }, swapCol(index, index-1))
}

func (g *Grid) MoveColumnRight(index int) bool {
	return g.structural("move_column_right", 0, index,
		func(m *Model) bool { return m.MoveColumnRight(index) }, swapCol(index, index+1))
}

func swapCol(a, b int) func(int) int {
	return func(c int) int {
		switch c {
		case a:
			return b
		case b:
			return a
		}
		return c
	}
}

// AppendRow adds a blank row at the end and focuses it.
func (g *Grid) AppendRow() bool {
	if !g.AddRow(g.region.Model.RowCount()) {
		return false
	}
	if s := g.session; s != nil {
		g.Focus(GridPos{Row: g.region.Model.RowCount() - 1, Col: s.Col})
	}
	return true
}

// AppendColumn adds a blank column at the right edge and focuses it.
func (g *Grid) AppendColumn() bool {
	if !g.AddColumn(g.region.Model.ColumnCount()) {
		return false
	}
	if s := g.session; s != nil {
		g.Focus(GridPos{Row: s.Row, Col: g.region.Model.ColumnCount() - 1})
	}
	return true
}

// Outcome reports what HandleKey did with a key.
type Outcome struct {
	Handled bool
	Exit    ExitDir
	// CursorOffset is the host cursor offset after an exit.
	CursorOffset int
}

// HandleKey processes a key for the focused cell. Keys are not handled
// when no session is active.
func (g *Grid) HandleKey(msg tea.KeyMsg) Outcome {
	s := g.session
	if s == nil {
		return Outcome{}
	}
	km := g.keys

	if msg.Type == tea.KeyRunes && msg.Paste {
		g.Input(string(msg.Runes))
		return Outcome{Handled: true}
	}

	switch {
	case key.Matches(msg, km.MoveRowUp):
		g.MoveRowUp(s.Row)
	case key.Matches(msg, km.MoveRowDown):
		g.MoveRowDown(s.Row)
	case key.Matches(msg, km.MoveColumnLeft):
		g.MoveColumnLeft(s.Col)
	case key.Matches(msg, km.MoveColumnRight):
		g.MoveColumnRight(s.Col)
	case key.Matches(msg, km.AppendRow):
		g.AppendRow()
	case key.Matches(msg, km.AppendColumn):
		g.AppendColumn()
	case key.Matches(msg, km.DeleteRow):
		g.DeleteRow(s.Row)
	case key.Matches(msg, km.DeleteColumn):
		g.DeleteColumn(s.Col)

	case key.Matches(msg, km.Up):
		return g.navigate(NavUp)
	case key.Matches(msg, km.Down):
		return g.navigate(NavDown)
	case key.Matches(msg, km.Enter):
		return g.navigate(NavEnter)
	case key.Matches(msg, km.Tab):
		return g.navigate(NavTab)
	case key.Matches(msg, km.ShiftTab):
		return g.navigate(NavShiftTab)
	case key.Matches(msg, km.Escape):
		return g.exit(ExitBelow)

	case key.Matches(msg, km.Left):
		s.moveCaret(s.caret - 1)
	case key.Matches(msg, km.Right):
		s.moveCaret(s.caret + 1)
	case key.Matches(msg, km.Home):
		s.moveCaret(0)
	case key.Matches(msg, km.End):
		s.moveCaret(grapheme.Count(s.text))

	case key.Matches(msg, km.Backspace):
		g.Backspace()
	case key.Matches(msg, km.Delete):
		g.DeleteForward()

	default:
		switch {
		case msg.Type == tea.KeySpace:
			g.Input(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			g.Input(string(msg.Runes))
		default:
			return Outcome{}
		}
	}
	return Outcome{Handled: true}
}

func (g *Grid) navigate(k NavKey) Outcome {
	mv := Step(g.session.Pos(), k, BoundsOf(g.region.Model))
	if mv.Exit != ExitNone {
		return g.exit(mv.Exit)
	}
	g.Focus(mv.Pos)
	return Outcome{Handled: true}
}

func (g *Grid) exit(dir ExitDir) Outcome {
	g.Blur()
	off := ExitOffset(g.region, dir, g.host.Len())
	g.host.SetCursorOffset(off)
	return Outcome{Handled: true, Exit: dir, CursorOffset: off}
}

// CellRef is one displayed cell.
type CellRef struct {
	Row     int
	Col     int
	Text    string
	Focused bool
}

// Cells lists every displayed cell in row order, skipping the separator.
func (g *Grid) Cells() []CellRef {
	m := g.region.Model
	var out []CellRef
	for _, r := range m.ContentRows() {
		for c := 0; c < m.ColumnCount(); c++ {
			text, _ := m.Cell(r, c)
			focused := g.session != nil && g.session.Row == r && g.session.Col == c
			if focused {
				text = g.session.text
			}
			out = append(out, CellRef{Row: r, Col: c, Text: text, Focused: focused})
		}
	}
	return out
}

// View renders the table followed by a line of "+ row" / "+ col" hints
// naming the append keys.
func (g *Grid) View() string {
	m := g.region.Model
	if m.ColumnCount() == 0 {
		return m.String()
	}

	rows := m.ContentRows()
	if len(rows) == 0 {
		return m.String()
	}
	display := make([][]string, len(rows))
	for i, r := range rows {
		display[i] = make([]string, m.ColumnCount())
		for c := range display[i] {
			display[i][c] = g.cellView(r, c)
		}
	}

	align := columnAlignments(m)
	st := g.style
	t := ltable.New().
		Border(st.Border).
		BorderStyle(st.BorderStyle).
		Headers(display[0]...).
		Rows(display[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			src := 0
			if row != ltable.HeaderRow {
				src = rows[row+1]
			}
			base := st.Cell
			if row == ltable.HeaderRow {
				base = st.Header
			}
			if s := g.session; s != nil && s.Row == src && s.Col == col {
				base = st.Focused
			}
			if col < len(align) {
				base = base.Align(align[col])
			}
			return base
		})

	hint := st.Affordance.Render(affordance("+ row", g.keys.AppendRow)) + "  " +
		st.Affordance.Render(affordance("+ col", g.keys.AppendColumn))
	return t.Render() + "\n" + hint
}

func affordance(label string, b key.Binding) string {
	if k := b.Help().Key; k != "" && b.Enabled() {
		return label + " " + k
	}
	return label
}

func (g *Grid) cellView(row, col int) string {
	if s := g.session; s != nil && s.Row == row && s.Col == col {
		return g.caretView(s)
	}
	text, _ := g.region.Model.Cell(row, col)
	if g.maxCellWidth > 0 && runewidth.StringWidth(text) > g.maxCellWidth {
		text = runewidth.Truncate(text, g.maxCellWidth, "…")
	}
	return text
}

func (g *Grid) caretView(s *Session) string {
	clusters := grapheme.Split(s.text)
	var b strings.Builder
	for i, c := range clusters {
		if i == s.caret {
			b.WriteString(g.style.Cursor.Render(c))
			continue
		}
		b.WriteString(c)
	}
	if s.caret >= len(clusters) {
		b.WriteString(g.style.Cursor.Render(" "))
	}
	return b.String()
}

// columnAlignments reads each column's alignment from the separator row.
func columnAlignments(m *Model) []lipgloss.Position {
	out := make([]lipgloss.Position, m.ColumnCount())
	for c := range out {
		out[c] = lipgloss.Left
	}
	if !m.IsSeparator(1) {
		return out
	}
	sep, _ := m.Row(1)
	for c := 0; c < len(out) && c < len(sep.Cells); c++ {
		mark := strings.TrimSpace(sep.Cells[c])
		left := strings.HasPrefix(mark, ":")
		right := strings.HasSuffix(mark, ":")
		switch {
		case left && right:
			out[c] = lipgloss.Center
		case right:
			out[c] = lipgloss.Right
		}
	}
	return out
}
