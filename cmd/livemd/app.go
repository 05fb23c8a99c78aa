package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/editor"
	"github.com/iw2rmb/livemd/table"
)

// docState is shared with the editor's OnChange callback.
type docState struct {
	savedVersion uint64
	textVersion  uint64
}

func (s *docState) handleChange(ev editor.ChangeEvent) {
	s.textVersion = ev.TextVersion
}

func (s *docState) dirty() bool { return s.textVersion != s.savedVersion }

// menuDoneMsg makes the editor pick up buffer edits done by a menu action.
type menuDoneMsg struct{}

type app struct {
	editor editor.Model
	doc    *docState
	log    logrus.FieldLogger
	path   string

	menu   []table.MenuItem
	status string
	width  int
	height int
}

var statusStyle = lipgloss.NewStyle().Faint(true)

func newApp(opts options, path, text string, log logrus.FieldLogger) app {
	doc := &docState{}
	cfg := editor.Config{
		Text:           text,
		ShowLineNums:   opts.lineNumbers,
		RenderMarkdown: opts.renderMarkdown,
		Style:          editor.DefaultStyle(),
		HistoryLimit:   opts.historyLimit,
		Logger:         log,
		Clipboard:      systemClipboard{},
		OnChange:       doc.handleChange,
		ReadOnly:       opts.readOnly,
		MaxCellWidth:   opts.maxCellWidth,
	}
	a := app{editor: editor.New(cfg), doc: doc, log: log, path: path}
	doc.textVersion = a.editor.Buffer().TextVersion()
	doc.savedVersion = doc.textVersion
	return a
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.editor = a.editor.SetSize(msg.Width, editorHeight(msg.Height))
		return a, nil
	case tea.KeyMsg:
		if a.menu != nil {
			return a.updateMenu(msg), nil
		}
		switch msg.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+s":
			a.save()
			return a, nil
		case "f2":
			a.menu = a.editor.ContextMenu()
			return a, nil
		}
		a.status = ""
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// updateMenu runs the entry whose letter was pressed and closes the menu.
// Any other key just closes it.
func (a app) updateMenu(msg tea.KeyMsg) app {
	items := a.menu
	a.menu = nil
	if len(msg.Runes) != 1 {
		return a
	}
	n := 0
	for _, it := range items {
		if it.Separator {
			continue
		}
		if menuKey(n) != msg.Runes[0] {
			n++
			continue
		}
		if !it.Action() {
			a.status = it.Label + ": not applied"
		}
		a.editor, _ = a.editor.Update(menuDoneMsg{})
		break
	}
	return a
}

// menuKey labels the n-th non-separator menu entry.
func menuKey(n int) rune { return rune('a' + n) }

func (a *app) save() {
	if a.path == "" {
		a.status = "no file name"
		return
	}
	buf := a.editor.Buffer()
	if err := os.WriteFile(a.path, []byte(buf.Text()), 0o644); err != nil {
		a.log.WithError(err).WithField("path", a.path).Error("save failed")
		a.status = "save failed: " + err.Error()
		return
	}
	a.doc.savedVersion = buf.TextVersion()
	a.doc.textVersion = a.doc.savedVersion
	a.log.WithField("path", a.path).Info("saved")
	a.status = "saved"
}

func (a app) View() string {
	return a.editor.View() + "\n" + statusStyle.Render(a.statusLine())
}

func (a app) statusLine() string {
	if a.menu != nil {
		var parts []string
		n := 0
		for _, it := range a.menu {
			if it.Separator {
				parts = append(parts, "|")
				continue
			}
			parts = append(parts, fmt.Sprintf("%c %s", menuKey(n), it.Label))
			n++
		}
		return strings.Join(parts, "  ")
	}

	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	if a.doc.dirty() {
		name += " *"
	}
	parts := []string{name}
	if s, ok := a.editor.FocusContext(); ok {
		p := s.Pos()
		parts = append(parts, fmt.Sprintf("cell %d:%d", p.Row, p.Col))
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}
	return strings.Join(parts, "  ")
}

func editorHeight(total int) int {
	if total <= 1 {
		return 0
	}
	return total - 1
}
