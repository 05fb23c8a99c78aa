package table

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of a focused grid.
type KeyMap struct {
	Up, Down, Left, Right key.Binding
	Tab, ShiftTab         key.Binding
	Home, End             key.Binding
	Enter, Escape         key.Binding

	Backspace, Delete key.Binding

	AppendRow, AppendColumn         key.Binding
	DeleteRow, DeleteColumn         key.Binding
	MoveRowUp, MoveRowDown          key.Binding
	MoveColumnLeft, MoveColumnRight key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "cell above")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "cell below")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "caret left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "caret right")),

		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous cell")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "cell start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "cell end")),

		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "cell below")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave table")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),

		AppendRow:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "append row")),
		AppendColumn: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "append column")),
		DeleteRow:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "delete row")),
		DeleteColumn: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete column")),

		// Terminals report alt+arrows inconsistently; shift+alt is the fallback.
		MoveRowUp:       key.NewBinding(key.WithKeys("alt+up", "shift+alt+up"), key.WithHelp("alt+↑", "move row up")),
		MoveRowDown:     key.NewBinding(key.WithKeys("alt+down", "shift+alt+down"), key.WithHelp("alt+↓", "move row down")),
		MoveColumnLeft:  key.NewBinding(key.WithKeys("alt+left", "shift+alt+left"), key.WithHelp("alt+←", "move column left")),
		MoveColumnRight: key.NewBinding(key.WithKeys("alt+right", "shift+alt+right"), key.WithHelp("alt+→", "move column right")),
	}
}
