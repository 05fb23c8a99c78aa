package editor

import (
	"strings"

	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/internal/grapheme"
	"github.com/iw2rmb/livemd/table"
)

// block is a run of logical rows drawn by a grid instead of their text.
type block struct {
	grid   *table.Grid
	endRow int
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	lineCount := m.buf.LineCount()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()
	blocks := m.blocks()
	decor := m.decorations(cursor.Row)

	top := m.viewport.YOffset
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()

	out := make([]string, 0, lineCount)
	m.rowStarts = make([]int, lineCount)
	for row := 0; row < lineCount; {
		m.rowStarts[row] = len(out)

		if b, ok := blocks[row]; ok {
			active := b.grid == m.active
			for i, line := range strings.Split(b.grid.View(), "\n") {
				gutterRow := -1
				if i == 0 {
					gutterRow = row
				}
				out = append(out, m.gutter(gutterRow, active)+line)
			}
			for r := row + 1; r <= b.endRow && r < lineCount; r++ {
				m.rowStarts[r] = m.rowStarts[row]
			}
			row = b.endRow + 1
			continue
		}

		d := decor[row]
		var line string
		if d != nil && d.rule {
			line = m.ruleLine()
		} else {
			visible := h > 0 && len(out) >= top && len(out) < top+h
			line = m.renderRow(row, cursor, sel, selOK, d, visible)
		}
		out = append(out, m.gutter(row, row == cursor.Row && m.active == nil)+line)
		row++
	}

	return strings.Join(out, "\n")
}

// blocks maps the first row of every table region to its grid.
func (m *Model) blocks() map[int]block {
	if len(m.grids) == 0 {
		return nil
	}
	out := make(map[int]block, len(m.grids))
	for _, g := range m.grids {
		r := g.Region()
		start := m.rowOf(r.From)
		end := m.rowOf(r.To)
		out[start] = block{grid: g, endRow: end}
	}
	return out
}

func (m *Model) renderRow(row int, cursor buffer.Pos, sel buffer.Range, selOK bool, d *lineDecor, highlight bool) string {
	raw := m.buf.Line(row)
	rawLen := grapheme.Count(raw)

	hasCursor := row == cursor.Row
	cursorCol := -1
	if hasCursor {
		cursorCol = clampInt(cursor.GraphemeCol, 0, rawLen)
	}
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, rawLen)

	var vt VirtualText
	if d != nil {
		vt = d.vt
	}
	if p := m.cfg.VirtualTextProvider; p != nil {
		vt = mergeVirtualText(vt, p(VirtualTextContext{
			Row:                       row,
			LineText:                  raw,
			CursorGraphemeCol:         cursorCol,
			HasCursor:                 hasCursor,
			SelectionStartGraphemeCol: selStart,
			SelectionEndGraphemeCol:   selEnd,
			HasSelection:              hasSel,
			DocVersion:                m.buf.TextVersion(),
		}))
	}
	vl := BuildVisualLine(raw, vt)

	var spans []HighlightSpan
	if d != nil {
		for _, sp := range d.marks {
			spans = append(spans, HighlightSpan{
				StartGraphemeCol: vl.VisibleCol(sp.start),
				EndGraphemeCol:   vl.VisibleCol(sp.end),
				Style:            sp.style,
			})
		}
	}
	if highlight && m.cfg.Highlighter != nil {
		spans = append(spans, m.highlightRow(row, raw, vl, cursorCol)...)
	}
	visibleLen := 0
	for _, tok := range vl.Tokens {
		if tok.Kind == VisualTokenDoc {
			visibleLen++
		}
	}
	spans = normalizeHighlightSpans(spans, visibleLen)

	if !m.focused || m.active != nil {
		cursorCol = -1
	}
	return m.renderVisualLine(vl, cursorCol, selStart, selEnd, hasSel, spans)
}

func (m *Model) highlightRow(row int, raw string, vl VisualLine, rawCursorCol int) []HighlightSpan {
	cursorCol := -1
	if rawCursorCol >= 0 {
		cursorCol = vl.VisibleCol(rawCursorCol)
	}
	spans, err := m.cfg.Highlighter.HighlightLine(LineContext{
		Row:                  row,
		RawText:              raw,
		Text:                 vl.VisibleText(raw),
		CursorGraphemeCol:    cursorCol,
		RawCursorGraphemeCol: rawCursorCol,
		HasCursor:            rawCursorCol >= 0,
	})
	if err != nil {
		m.log.WithError(err).WithField("row", row).Debug("highlighter failed")
		return nil
	}
	return spans
}

// renderVisualLine styles each token. cursorCol is a raw column, or -1.
func (m *Model) renderVisualLine(vl VisualLine, cursorCol, selStart, selEnd int, hasSel bool, highlights []HighlightSpan) string {
	st := m.cfg.Style

	cursorTok := -1
	if cursorCol >= 0 && cursorCol < vl.RawGraphemeLen {
		cell := vl.DocGraphemeColToVisualCell[cursorCol]
		for i, tok := range vl.Tokens {
			if tok.Kind == VisualTokenDoc && tok.StartCell == cell {
				cursorTok = i
				break
			}
		}
	}

	var sb strings.Builder
	for i, tok := range vl.Tokens {
		switch {
		case i == cursorTok:
			sb.WriteString(st.Cursor.Render(tok.Text))
		case tok.Kind == VisualTokenVirtual:
			sb.WriteString(m.virtualStyle(tok).Render(tok.Text))
		case hasSel && tok.DocGraphemeCol >= selStart && tok.DocGraphemeCol < selEnd:
			sb.WriteString(st.Selection.Render(tok.Text))
		default:
			style := st.Text
			for _, sp := range highlights {
				if tok.VisibleGraphemeCol >= sp.StartGraphemeCol && tok.VisibleGraphemeCol < sp.EndGraphemeCol {
					style = sp.Style.Inherit(st.Text)
					break
				}
			}
			sb.WriteString(style.Render(tok.Text))
		}
	}
	// Cursor at EOL (or past every visible grapheme) renders as a 1-cell placeholder.
	if cursorCol >= 0 && cursorTok < 0 {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = clampInt(sel.Start.GraphemeCol, 0, lineLen)
	}
	if row == sel.End.Row {
		end = clampInt(sel.End.GraphemeCol, 0, lineLen)
	}
	return start, end, start < end
}
