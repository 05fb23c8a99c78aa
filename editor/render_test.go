package editor

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/livemd/buffer"
)

func TestRender_LineNumberAlignment_1To120(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("x")
	}

	m := New(Config{
		Text:         sb.String(),
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(10, 120)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 120 {
		t.Fatalf("expected 120 lines, got %d", len(lines))
	}

	digits := 3
	for i, line := range lines {
		wantPrefix := fmt.Sprintf("%*d ", digits, i+1)
		if !strings.HasPrefix(stripANSI(line), wantPrefix) {
			t.Fatalf("line %d prefix: got %q, want prefix %q", i+1, line, wantPrefix)
		}
	}
}

func TestRender_CursorProducesANSIWhenFocused(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})

	got := m.renderContent()
	want := " a b"
	if got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorAtEOLRendersPlaceholder(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{Cursor: lipgloss.NewStyle().PaddingLeft(1)},
	})
	m.buf.SetCursor(buffer.Pos{Row: 0, GraphemeCol: 2})

	if got, want := m.renderContent(), "ab  "; got != want {
		t.Fatalf("eol cursor rendering: got %q, want %q", got, want)
	}
}

func TestRender_TableBlockReplacesSourceLines(t *testing.T) {
	m := New(Config{
		Text:           "intro\n" + sampleTable + "\nouter",
		ShowLineNums:   true,
		RenderMarkdown: true,
	})
	m = m.Blur()
	m = m.SetSize(40, 8)

	lines := viewLines(m)
	if got, want := len(lines), 8; got != want {
		t.Fatalf("view lines: got %d, want %d\n%s", got, want, strings.Join(lines, "\n"))
	}
	if got, want := lines[0], "1 intro"; got != want {
		t.Fatalf("line 0: got %q, want %q", got, want)
	}
	if !strings.HasPrefix(lines[1], "2 ") {
		t.Fatalf("first grid line keeps the table's line number: got %q", lines[1])
	}
	for _, l := range lines[2:7] {
		if !strings.HasPrefix(l, "  ") {
			t.Fatalf("grid continuation line has a number: got %q", l)
		}
	}
	if got, want := lines[7], "5 outer"; got != want {
		t.Fatalf("line after table: got %q, want %q", got, want)
	}

	view := strings.Join(lines, "\n")
	if strings.Contains(view, "| A | B |") || strings.Contains(view, "---") {
		t.Fatalf("raw table source is visible:\n%s", view)
	}
	for _, want := range []string{"A", "B", "1", "2", "+ row", "+ col"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRender_RawTableWithoutMarkdownRendering(t *testing.T) {
	m := New(Config{Text: sampleTable})
	m = m.Blur()
	m = m.SetSize(20, 3)

	if got, want := viewLines(m)[0], "| A | B |"; got != want {
		t.Fatalf("line 0: got %q, want %q", got, want)
	}
}

func TestRender_RuleShowsSourceOnCursorRow(t *testing.T) {
	m := New(Config{Text: "a\n\n---\n\nb", RenderMarkdown: true})
	m = m.SetSize(10, 5)

	if got, want := viewLines(m)[2], strings.Repeat(ruleCell, 10); got != want {
		t.Fatalf("rule line: got %q, want %q", got, want)
	}

	m.buf.SetCursor(buffer.Pos{Row: 2, GraphemeCol: 3})
	m, _ = m.Update(struct{}{})
	if got, want := viewLines(m)[2], "---"; got != want {
		t.Fatalf("rule on cursor row: got %q, want %q", got, want)
	}
}

func TestRender_TaskCheckboxes(t *testing.T) {
	m := New(Config{Text: "- [ ] open\n- [x] done", RenderMarkdown: true})
	m = m.Blur()
	m = m.SetSize(20, 2)

	lines := viewLines(m)
	if got, want := lines[0], "- "+taskOpen+" open"; got != want {
		t.Fatalf("open task: got %q, want %q", got, want)
	}
	if got, want := lines[1], "- "+taskDone+" done"; got != want {
		t.Fatalf("done task: got %q, want %q", got, want)
	}
}

func TestRender_SpoilerHiddenOffCursorRow(t *testing.T) {
	m := New(Config{Text: "top\nsee ||secret|| end", RenderMarkdown: true})
	m = m.SetSize(30, 2)

	if got, want := viewLines(m)[1], "see "+strings.Repeat(spoilerCell, 10)+" end"; got != want {
		t.Fatalf("hidden spoiler: got %q, want %q", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := viewLines(m)[1]; !strings.Contains(got, "||secret||") {
		t.Fatalf("spoiler on cursor row: got %q, want the source", got)
	}
}

func TestRender_QuoteMarkKeepsText(t *testing.T) {
	m := New(Config{Text: "> quoted", RenderMarkdown: true})
	m = m.Blur()
	m = m.SetSize(20, 1)

	if got, want := viewLines(m)[0], "> quoted"; got != want {
		t.Fatalf("quote line: got %q, want %q", got, want)
	}
	if got := len(m.marks); got != 1 {
		t.Fatalf("quote marks: got %d, want %d", got, 1)
	}
}
