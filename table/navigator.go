package table

// GridPos addresses a cell by source row and column. Row 1 is the
// separator in any table that has one and is never a valid position.
type GridPos struct {
	Row int
	Col int
}

// ExitDir tells the host where the cursor leaves a table.
type ExitDir int

const (
	ExitNone ExitDir = iota
	ExitAbove
	ExitBelow
)

func (d ExitDir) String() string {
	switch d {
	case ExitAbove:
		return "above"
	case ExitBelow:
		return "below"
	default:
		return "none"
	}
}

// NavKey is a navigation key, independent of any key binding.
type NavKey int

const (
	NavUp NavKey = iota
	NavDown
	NavLeft
	NavRight
	NavEnter
	NavTab
	NavShiftTab
)

// Bounds describes the navigable area of a table.
type Bounds struct {
	MaxRow    int
	MaxCol    int
	Separator bool
}

// BoundsOf returns the navigation bounds of m.
func BoundsOf(m *Model) Bounds {
	b := Bounds{MaxCol: m.ColumnCount() - 1, Separator: m.IsSeparator(1)}
	if rows := m.ContentRows(); len(rows) > 0 {
		b.MaxRow = rows[len(rows)-1]
	}
	if b.MaxCol < 0 {
		b.MaxCol = 0
	}
	return b
}

// Move is the result of one navigation step: either a new position or an
// exit.
type Move struct {
	Pos  GridPos
	Exit ExitDir
}

// Step moves pos by one key. Left and Right move within a cell and leave
// the position unchanged.
func Step(pos GridPos, key NavKey, b Bounds) Move {
	switch key {
	case NavDown, NavEnter:
		if pos.Row >= b.MaxRow {
			return Move{Pos: pos, Exit: ExitBelow}
		}
		return Move{Pos: GridPos{Row: b.next(pos.Row), Col: pos.Col}}

	case NavUp:
		if pos.Row <= 0 {
			return Move{Pos: pos, Exit: ExitAbove}
		}
		return Move{Pos: GridPos{Row: b.prev(pos.Row), Col: pos.Col}}

	case NavTab:
		if pos.Row >= b.MaxRow && pos.Col >= b.MaxCol {
			return Move{Pos: pos, Exit: ExitBelow}
		}
		if pos.Col < b.MaxCol {
			return Move{Pos: GridPos{Row: pos.Row, Col: pos.Col + 1}}
		}
		return Move{Pos: GridPos{Row: b.next(pos.Row), Col: 0}}

	case NavShiftTab:
		if pos.Row <= 0 && pos.Col <= 0 {
			return Move{Pos: pos, Exit: ExitAbove}
		}
		if pos.Col > 0 {
			return Move{Pos: GridPos{Row: pos.Row, Col: pos.Col - 1}}
		}
		return Move{Pos: GridPos{Row: b.prev(pos.Row), Col: b.MaxCol}}
	}
	return Move{Pos: pos}
}

func (b Bounds) next(row int) int {
	row++
	if row == 1 && b.Separator {
		row++
	}
	return row
}

func (b Bounds) prev(row int) int {
	row--
	if row == 1 && b.Separator {
		row--
	}
	return row
}

// ExitOffset is the document offset the cursor lands on when it leaves r:
// the start of the line after the table, or the end of the line before it.
func ExitOffset(r *Region, exit ExitDir, docLen int) int {
	switch exit {
	case ExitBelow:
		return min(r.To+1, docLen)
	case ExitAbove:
		return max(r.From-1, 0)
	}
	return r.From
}

// EntryFor reports whether pressing key with the cursor at offset enters
// the table from outside, and the cell that receives focus.
//
// Down and Right enter at the first cell from the end of the line above.
// Up and Left enter at the last cell of the last row from the start of the
// line below.
func EntryFor(cursor int, r *Region, key NavKey) (GridPos, bool) {
	b := BoundsOf(r.Model)
	switch key {
	case NavDown, NavRight:
		if cursor == r.From-1 || (r.From == 0 && cursor == 0) {
			return GridPos{}, true
		}
	case NavUp, NavLeft:
		if cursor == r.To+1 {
			return GridPos{Row: b.MaxRow, Col: b.MaxCol}, true
		}
	}
	return GridPos{}, false
}
