package buffer

import "unicode/utf8"

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// PosFromByteOffset converts a byte offset into a document position. Offsets
// that fall inside a grapheme cluster are rejected (ok == false) even in
// OffsetClamp mode; clamping only applies to the document bounds.
func (b *Buffer) PosFromByteOffset(off int, mode OffsetClampMode) (Pos, bool) {
	off, ok := clampOffset(off, b.Len(), mode)
	if !ok {
		return Pos{}, false
	}
	return b.byteOffsetToPos(off)
}

func (b *Buffer) ByteOffsetFromPos(pos Pos, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if b.clampPos(pos) != pos {
			return 0, false
		}
	case OffsetClamp:
		pos = b.clampPos(pos)
	default:
		return 0, false
	}
	return b.posToByteOffset(pos), true
}

// Len returns the document length in bytes.
func (b *Buffer) Len() int {
	total := 0
	for row, line := range b.lines {
		for _, cluster := range line {
			total += len(cluster)
		}
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

// RuneLen returns the document length in runes.
func (b *Buffer) RuneLen() int {
	total := 0
	for row, line := range b.lines {
		for _, cluster := range line {
			total += utf8.RuneCountInString(cluster)
		}
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

// SliceText returns the text between byte offsets [from, to), clamped to the
// document. It returns "" for inverted or unaligned ranges.
func (b *Buffer) SliceText(from, to int) string {
	start, ok1 := b.PosFromByteOffset(from, OffsetClamp)
	end, ok2 := b.PosFromByteOffset(to, OffsetClamp)
	if !ok1 || !ok2 || ComparePos(start, end) > 0 {
		return ""
	}
	return textForLinesRange(b.lines, Range{Start: start, End: end})
}

// ReplaceText atomically replaces the bytes in [from, to) with text as one
// undoable change. It reports false when either offset is not on a grapheme
// boundary or the range is inverted; out-of-document offsets are clamped.
func (b *Buffer) ReplaceText(from, to int, text string) bool {
	start, ok1 := b.PosFromByteOffset(from, OffsetClamp)
	end, ok2 := b.PosFromByteOffset(to, OffsetClamp)
	if !ok1 || !ok2 || ComparePos(start, end) > 0 {
		return false
	}
	// A no-op replacement still counts as applied.
	b.Apply(TextEdit{Range: Range{Start: start, End: end}, Text: text})
	return true
}

// CursorOffset returns the byte offset of the cursor (the selection head).
func (b *Buffer) CursorOffset() int {
	return b.posToByteOffset(b.cursor)
}

// SetCursorOffset moves the cursor to a byte offset, clamped to the document.
// Offsets inside a grapheme cluster snap to the cluster start.
func (b *Buffer) SetCursorOffset(off int) {
	off, _ = clampOffset(off, b.Len(), OffsetClamp)
	for ; off > 0; off-- {
		if p, ok := b.byteOffsetToPos(off); ok {
			b.SetCursor(p)
			return
		}
	}
	b.SetCursor(Pos{})
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}

func (b *Buffer) byteOffsetToPos(off int) (Pos, bool) {
	cur := 0
	for row, line := range b.lines {
		if off == cur {
			return Pos{Row: row, GraphemeCol: 0}, true
		}
		for col, cluster := range line {
			next := cur + len(cluster)
			if off > cur && off < next {
				return Pos{}, false
			}
			cur = next
			if off == cur {
				return Pos{Row: row, GraphemeCol: col + 1}, true
			}
		}
		if row < len(b.lines)-1 {
			cur++
		}
	}
	return Pos{}, false
}

func (b *Buffer) posToByteOffset(pos Pos) int {
	off := 0
	for row := 0; row < pos.Row && row < len(b.lines); row++ {
		for _, cluster := range b.lines[row] {
			off += len(cluster)
		}
		off++
	}
	if pos.Row < 0 || pos.Row >= len(b.lines) {
		return off
	}
	line := b.lines[pos.Row]
	for col := 0; col < pos.GraphemeCol && col < len(line); col++ {
		off += len(line[col])
	}
	return off
}
