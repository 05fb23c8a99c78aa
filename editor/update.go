package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/table"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused || m.buf == nil {
		return m
	}

	// The cursor can sit inside a table after a host move or a click; the
	// grid takes over as soon as a key arrives.
	if m.active == nil && !m.cfg.ReadOnly {
		if g := m.gridAt(m.buf.CursorOffset()); g != nil {
			m.focusGrid(g, table.GridPos{})
		}
	}
	if g := m.active; g != nil {
		return m.updateGridKey(g, msg)
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(string(msg.Runes))
		}
		return m
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.moveOrEnter(table.NavLeft, buffer.DirLeft)
	case key.Matches(msg, km.Right):
		m.moveOrEnter(table.NavRight, buffer.DirRight)
	case key.Matches(msg, km.Up):
		m.moveOrEnter(table.NavUp, buffer.DirUp)
	case key.Matches(msg, km.Down):
		m.moveOrEnter(table.NavDown, buffer.DirDown)

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.buf.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertNewline()
		}
	case key.Matches(msg, km.Tab):
		if !m.cfg.ReadOnly {
			m.buf.InsertText("\t")
		}

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Redo()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	case key.Matches(msg, km.InsertTable):
		(&m).insertTable()
	case key.Matches(msg, km.ToggleTask) && m.toggleTask():

	default:
		if m.cfg.ReadOnly {
			return m
		}
		switch {
		case msg.Type == tea.KeySpace:
			m.buf.InsertText(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.buf.InsertText(string(msg.Runes))
		}
	}

	return m
}

// updateGridKey routes a key to the focused grid. Keys the grid does not
// use fall through to history and clipboard commands.
func (m Model) updateGridKey(g *table.Grid, msg tea.KeyMsg) Model {
	out := g.HandleKey(msg)
	if out.Exit != table.ExitNone {
		(&m).leaveTable(g, out)
		return m
	}
	if !g.Editing() {
		m.active = nil
	}
	if out.Handled {
		return m
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Undo):
		(&m).blurGrid()
		_ = m.buf.Undo()
	case key.Matches(msg, km.Redo):
		(&m).blurGrid()
		_ = m.buf.Redo()
	case key.Matches(msg, km.Paste):
		if s, ok := m.readClipboard(); ok {
			g.Input(s)
		}
	case key.Matches(msg, km.Copy):
		if s := g.Session(); s != nil && s.Text() != "" {
			m.writeClipboard(s.Text())
		}
	}
	return m
}

// moveOrEnter enters an adjacent table, or moves the cursor and enters the
// table it lands in.
func (m *Model) moveOrEnter(k table.NavKey, dir buffer.MoveDir) {
	if !m.cfg.ReadOnly && m.enterFrom(k) {
		return
	}
	m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: dir})
	if !m.cfg.ReadOnly {
		m.enterAt(k)
	}
}

func (m Model) copySelection() {
	r, ok := m.buf.Selection()
	if !ok {
		return
	}
	if s := m.selectedText(r); s != "" {
		m.writeClipboard(s)
	}
}

func (m Model) cutSelection() {
	r, ok := m.buf.Selection()
	if !ok {
		return
	}
	if s := m.selectedText(r); s != "" {
		m.writeClipboard(s)
	}
	m.buf.DeleteSelection()
}

func (m Model) pasteClipboard() {
	if s, ok := m.readClipboard(); ok {
		m.buf.InsertText(s)
	}
}

func (m Model) selectedText(r buffer.Range) string {
	from, ok1 := m.buf.ByteOffsetFromPos(r.Start, buffer.OffsetClamp)
	to, ok2 := m.buf.ByteOffsetFromPos(r.End, buffer.OffsetClamp)
	if !ok1 || !ok2 {
		return ""
	}
	return m.buf.SliceText(from, to)
}

func (m Model) readClipboard() (string, bool) {
	if m.cfg.Clipboard == nil {
		return "", false
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.WithError(err).Warn("clipboard read failed")
		return "", false
	}
	if s == "" {
		return "", false
	}
	// Normalize newlines from external sources.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s, true
}

func (m Model) writeClipboard(s string) {
	if m.cfg.Clipboard == nil {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.WithError(err).Warn("clipboard write failed")
	}
}
