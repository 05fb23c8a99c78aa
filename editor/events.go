package editor

import (
	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/table"
)

type ChangeEvent struct {
	Version     uint64
	TextVersion uint64
	Cursor      buffer.Pos
	Selection   struct {
		Range  buffer.Range
		Active bool
	}

	// Text is the whole document; hosts diff it if they need to.
	Text string

	// Tables is the number of table regions after the change.
	Tables int
	// Focus is the active table cell session, or nil.
	Focus *table.Session
}

func (m Model) buildChangeEvent() ChangeEvent {
	b := m.buf
	ev := ChangeEvent{
		Version:     b.Version(),
		TextVersion: b.TextVersion(),
		Cursor:      b.Cursor(),
		Text:        b.Text(),
		Tables:      len(m.regions),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	if s, ok := m.FocusContext(); ok {
		ev.Focus = s
	}
	return ev
}
