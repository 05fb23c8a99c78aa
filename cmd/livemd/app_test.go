package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/livemd/internal/logging"
)

func testApp(t *testing.T, path, text string) app {
	t.Helper()
	a := newApp(defaultOptions(), path, text, logging.Discard())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	return m.(app)
}

func send(t *testing.T, a app, msgs ...tea.KeyMsg) app {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(app)
	}
	return a
}

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestApp_SaveWritesBufferAndClearsDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	a := testApp(t, path, "x")

	a = send(t, a, runeKey('y'))
	if !a.doc.dirty() {
		t.Fatalf("expected dirty after typing")
	}
	if got := a.statusLine(); !strings.Contains(got, " *") {
		t.Fatalf("status: got %q, want dirty marker", got)
	}

	a = send(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if got, want := string(b), "yx"; got != want {
		t.Fatalf("saved text: got %q, want %q", got, want)
	}
	if a.doc.dirty() {
		t.Fatalf("expected clean after save")
	}
	if got := a.statusLine(); !strings.Contains(got, "saved") {
		t.Fatalf("status: got %q, want saved", got)
	}
}

func TestApp_SaveWithoutPath(t *testing.T) {
	a := testApp(t, "", "x")
	a = send(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := a.statusLine(); !strings.Contains(got, "no file name") {
		t.Fatalf("status: got %q, want no file name", got)
	}
}

func TestApp_MenuRunsLetteredEntry(t *testing.T) {
	a := testApp(t, "", "x")

	a = send(t, a, tea.KeyMsg{Type: tea.KeyF2})
	if a.menu == nil {
		t.Fatalf("expected menu to open")
	}
	if got := a.statusLine(); !strings.Contains(got, "d Insert Task List") {
		t.Fatalf("menu line: got %q", got)
	}

	a = send(t, a, runeKey('d'))
	if a.menu != nil {
		t.Fatalf("expected menu to close")
	}
	if got, want := a.editor.Buffer().Text(), "- [ ] x"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if !a.doc.dirty() {
		t.Fatalf("expected the menu edit to reach OnChange")
	}
}

func TestApp_MenuClosesOnOtherKey(t *testing.T) {
	a := testApp(t, "", "x")
	a = send(t, a, tea.KeyMsg{Type: tea.KeyF2}, tea.KeyMsg{Type: tea.KeyEsc})
	if a.menu != nil {
		t.Fatalf("expected menu to close")
	}
	if got, want := a.editor.Buffer().Text(), "x"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestApp_StatusShowsFocusedCell(t *testing.T) {
	a := testApp(t, "", "x\n| A | B |\n|---|---|\n| 1 | 2 |")
	a = send(t, a, tea.KeyMsg{Type: tea.KeyDown})
	if got := a.statusLine(); !strings.Contains(got, "cell 0:0") {
		t.Fatalf("status: got %q, want focused cell", got)
	}
}

func TestEditorHeight(t *testing.T) {
	if got := editorHeight(1); got != 0 {
		t.Fatalf("editorHeight(1): got %d, want 0", got)
	}
	if got := editorHeight(24); got != 23 {
		t.Fatalf("editorHeight(24): got %d, want 23", got)
	}
}
