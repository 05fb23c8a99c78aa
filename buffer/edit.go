package buffer

import (
	"strings"

	"github.com/iw2rmb/livemd/internal/grapheme"
)

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	r, ok := b.Selection()
	if !ok {
		if s == "" {
			return
		}
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.applyOne(r, s)
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if r, ok := b.Selection(); ok {
		b.applyOne(r, "")
		return
	}

	row, col := b.cursor.Row, b.cursor.GraphemeCol
	switch {
	case row == 0 && col == 0:
		return
	case col > 0:
		b.applyOne(Range{Start: Pos{Row: row, GraphemeCol: col - 1}, End: b.cursor}, "")
	default:
		// Join with previous line (delete the newline).
		prev := Pos{Row: row - 1, GraphemeCol: len(b.lines[row-1])}
		b.applyOne(Range{Start: prev, End: b.cursor}, "")
	}
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if r, ok := b.Selection(); ok {
		b.applyOne(r, "")
		return
	}

	row, col := b.cursor.Row, b.cursor.GraphemeCol
	lastRow := len(b.lines) - 1
	switch {
	case row == lastRow && col == len(b.lines[lastRow]):
		return
	case col < len(b.lines[row]):
		b.applyOne(Range{Start: b.cursor, End: Pos{Row: row, GraphemeCol: col + 1}}, "")
	default:
		b.applyOne(Range{Start: b.cursor, End: Pos{Row: row + 1, GraphemeCol: 0}}, "")
	}
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	if r, ok := b.Selection(); ok {
		b.applyOne(r, "")
	}
}

// applyOne runs a single replace as one undoable transaction.
func (b *Buffer) applyOne(r Range, text string) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	nextCursor, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}

	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}
	byteFrom := b.posToByteOffset(r.Start)

	startRow, startCol := r.Start.Row, r.Start.GraphemeCol
	endRow, endCol := r.End.Row, r.End.GraphemeCol

	prefix := grapheme.Join(b.lines[startRow][:startCol])
	suffix := grapheme.Join(b.lines[endRow][endCol:])

	// Re-segment the touched lines as a whole so clusters that merge across
	// the edit boundary (e.g. combining marks) stay intact.
	parts := strings.Split(prefix+text+suffix, "\n")
	repl := make([][]string, 0, len(parts))
	for _, p := range parts {
		repl = append(repl, grapheme.Split(p))
	}

	insertedLines := strings.Split(text, "\n")
	lastInserted := insertedLines[len(insertedLines)-1]
	cursorRow := startRow + len(insertedLines) - 1
	cursorCol := grapheme.Count(lastInserted)
	if len(insertedLines) == 1 {
		cursorCol = grapheme.Count(prefix + lastInserted)
	}

	out := make([][]string, 0, len(b.lines)-(endRow-startRow)+len(repl))
	out = append(out, b.lines[:startRow]...)
	out = append(out, repl...)
	out = append(out, b.lines[endRow+1:]...)
	b.lines = out

	nextCursor = b.clampPos(Pos{Row: cursorRow, GraphemeCol: cursorCol})
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
		ByteFrom:    byteFrom,
		ByteTo:      byteFrom + len(deletedText),
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]string, r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return grapheme.Join(lines[r.Start.Row][r.Start.GraphemeCol:r.End.GraphemeCol])
	}

	var sb strings.Builder
	sb.WriteString(grapheme.Join(lines[r.Start.Row][r.Start.GraphemeCol:]))
	for row := r.Start.Row + 1; row < r.End.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(grapheme.Join(lines[row]))
	}
	sb.WriteByte('\n')
	sb.WriteString(grapheme.Join(lines[r.End.Row][:r.End.GraphemeCol]))
	return sb.String()
}

// Apply runs edits in order as one undoable change and reports whether any
// of them changed the text. Each range is read against the document as left
// by the previous edit and is clamped to its bounds. The cursor lands at the
// end of the last effective edit and the selection is dropped.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	cursor := b.cursor
	n := 0
	for _, e := range edits {
		next, applied, changed := b.replaceRange(e.Range, e.Text)
		if changed {
			cursor = next
			change.addAppliedEdit(applied)
			n++
		}
	}
	if n == 0 {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}
