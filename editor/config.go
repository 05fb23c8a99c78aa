package editor

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/syntax"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	// RenderMarkdown replaces tables with editable grids and decorates
	// rules, quote marks, task checkboxes and spoilers.
	RenderMarkdown bool
	Style          Style

	// KeyMap defaults to DefaultKeyMap when left zero.
	KeyMap KeyMap

	// Forwarded to buffer.Options.
	HistoryLimit int

	// Tree finds Markdown constructs. Defaults to syntax.NewGoldmark().
	Tree syntax.Tree

	// Logger defaults to a logger that discards everything.
	Logger logrus.FieldLogger

	Clipboard   Clipboard
	Highlighter Highlighter

	VirtualTextProvider VirtualTextProvider
	// VirtualStyleForKey resolves VirtualInsertion.StyleKey.
	VirtualStyleForKey func(key string) (lipgloss.Style, bool)

	// OnChange is called after every update that changed the buffer
	// version (text, cursor or selection).
	OnChange func(ChangeEvent)

	ReadOnly bool

	// MaxCellWidth truncates unfocused table cells; 0 disables it.
	MaxCellWidth int
}
