package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/syntax"
)

// Style keys of the virtual text added for Markdown marks.
const (
	styleKeyTask    = "task"
	styleKeySpoiler = "spoiler"
)

const (
	taskOpen    = "☐"
	taskDone    = "☑"
	spoilerCell = "█"
	ruleCell    = "─"
)

// lineDecor is the view-only dressing of one logical line.
type lineDecor struct {
	vt VirtualText
	// marks are raw-column spans styled after deletions are applied.
	marks []rawSpan
	rule  bool
}

type rawSpan struct {
	start, end int
	style      lipgloss.Style
}

// decorations turns the non-table marks into per-row dressing. Rules and
// spoilers show their source while the cursor is on their row.
func (m *Model) decorations(cursorRow int) map[int]*lineDecor {
	if len(m.marks) == 0 {
		return nil
	}
	out := make(map[int]*lineDecor)
	at := func(row int) *lineDecor {
		d, ok := out[row]
		if !ok {
			d = &lineDecor{}
			out[row] = d
		}
		return d
	}

	for _, n := range m.marks {
		from, ok1 := m.buf.PosFromByteOffset(n.From, buffer.OffsetClamp)
		to, ok2 := m.buf.PosFromByteOffset(n.To, buffer.OffsetClamp)
		if !ok1 || !ok2 || from.Row != to.Row {
			continue
		}
		row := from.Row
		switch n.Name {
		case syntax.NameHorizontalRule:
			if row != cursorRow {
				at(row).rule = true
			}
		case syntax.NameQuoteMark:
			d := at(row)
			d.marks = append(d.marks, rawSpan{start: from.GraphemeCol, end: to.GraphemeCol, style: m.cfg.Style.QuoteMark})
		case syntax.NameTask:
			box := taskOpen
			if mark := m.buf.SliceText(n.From+1, n.From+2); strings.EqualFold(mark, "x") {
				box = taskDone
			}
			d := at(row)
			d.vt.Deletions = append(d.vt.Deletions, VirtualDeletion{StartGraphemeCol: from.GraphemeCol, EndGraphemeCol: to.GraphemeCol})
			d.vt.Insertions = append(d.vt.Insertions, VirtualInsertion{
				GraphemeCol: from.GraphemeCol,
				Text:        box,
				Role:        VirtualRoleMark,
				StyleKey:    styleKeyTask,
			})
		case syntax.NameSpoiler:
			if row == cursorRow {
				continue
			}
			d := at(row)
			d.vt.Deletions = append(d.vt.Deletions, VirtualDeletion{StartGraphemeCol: from.GraphemeCol, EndGraphemeCol: to.GraphemeCol})
			d.vt.Insertions = append(d.vt.Insertions, VirtualInsertion{
				GraphemeCol: from.GraphemeCol,
				Text:        strings.Repeat(spoilerCell, to.GraphemeCol-from.GraphemeCol),
				Role:        VirtualRoleMark,
				StyleKey:    styleKeySpoiler,
			})
		}
	}
	return out
}

// virtualStyle resolves the style of an inserted token.
func (m *Model) virtualStyle(tok VisualToken) lipgloss.Style {
	st := m.cfg.Style
	switch tok.StyleKey {
	case styleKeyTask:
		return st.Task.Inherit(st.Text)
	case styleKeySpoiler:
		return st.Spoiler.Inherit(st.Text)
	}
	if f := m.cfg.VirtualStyleForKey; f != nil && tok.StyleKey != "" {
		if keyed, ok := f(tok.StyleKey); ok {
			return keyed.Inherit(st.Text)
		}
	}
	return st.Text
}

// ruleLine draws a horizontal rule across the content width.
func (m *Model) ruleLine() string {
	w := m.viewport.Width - m.gutterWidth()
	if w < 3 {
		w = 3
	}
	return m.cfg.Style.Rule.Render(strings.Repeat(ruleCell, w))
}
