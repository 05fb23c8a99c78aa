package table

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = "| A | B |\n|---|---|\n| 1 | 2 |"

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		sample,
		"| Name | Qty |\n|:-----|----:|\n| apple | 3 |\n| pear | 10 |",
		"|x|\n|-|\n|y|",
		"| a \\| b | c |\n|---|---|\n| 1 | 2 |",
		"  | indented | row |  \n|---|---|",
		"| H |",
	}
	for _, src := range tests {
		m := Parse(src)
		if got := m.String(); got != src {
			t.Fatalf("String(): got %q, want %q", got, src)
		}
		if m.TrimmedLength() != len(src) {
			t.Fatalf("TrimmedLength(%q): got %d, want %d", src, m.TrimmedLength(), len(src))
		}

		again := Parse(m.String())
		if again.RowCount() != m.RowCount() || again.ColumnCount() != m.ColumnCount() {
			t.Fatalf("reparse shape of %q: got %dx%d, want %dx%d", src,
				again.RowCount(), again.ColumnCount(), m.RowCount(), m.ColumnCount())
		}
		for r := 0; r < m.RowCount(); r++ {
			want, _ := m.Row(r)
			got, _ := again.Row(r)
			if diff := cmp.Diff(want.Cells, got.Cells); diff != "" {
				t.Fatalf("reparse row %d of %q (-want +got):\n%s", r, src, diff)
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	m := Parse("| Name | Qty |\n|:-----|----:|\n| apple | 3 |")
	if m.RowCount() != 3 || m.ColumnCount() != 2 {
		t.Fatalf("shape: got %dx%d, want 3x2", m.RowCount(), m.ColumnCount())
	}
	if !m.IsSeparator(1) || m.IsSeparator(0) || m.IsSeparator(2) {
		t.Fatalf("separator flags wrong")
	}
	if got := m.ContentRows(); !cmp.Equal(got, []int{0, 2}) {
		t.Fatalf("ContentRows: got %v, want [0 2]", got)
	}
	if got, ok := m.Cell(2, 0); !ok || got != "apple" {
		t.Fatalf("Cell(2,0): got %q/%v, want %q", got, ok, "apple")
	}
	if _, ok := m.Cell(3, 0); ok {
		t.Fatalf("Cell(3,0): expected out of range")
	}
	if _, ok := m.Cell(0, 2); ok {
		t.Fatalf("Cell(0,2): expected out of range")
	}
	if _, ok := m.Row(-1); ok {
		t.Fatalf("Row(-1): expected out of range")
	}
}

func TestParseTrimsTrailingLines(t *testing.T) {
	src := "| A |\n|---|\n| 1 |\nnot a table line"
	m := Parse(src)

	want := "| A |\n|---|\n| 1 |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
	if m.TrimmedLength() != len(want) {
		t.Fatalf("TrimmedLength: got %d, want %d", m.TrimmedLength(), len(want))
	}
	if got := m.EndOffset(100); got != 100+len(want) {
		t.Fatalf("EndOffset: got %d, want %d", got, 100+len(want))
	}
}

func TestParseKeepsAllWhenNoPipeLine(t *testing.T) {
	src := "foo\nbar"
	m := Parse(src)
	if m.RowCount() != 2 || m.String() != src {
		t.Fatalf("got %d rows %q, want 2 rows %q", m.RowCount(), m.String(), src)
	}
	if m.ColumnCount() != 0 {
		t.Fatalf("ColumnCount: got %d, want 0", m.ColumnCount())
	}
}

func TestIsSeparatorLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|---|---|", true},
		{" | :--- | ---: | ", true},
		{"|:-:|", true},
		{"---", false},
		{"| a |", false},
		{"|   |", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSeparatorLine(tt.line); got != tt.want {
			t.Fatalf("IsSeparatorLine(%q): got %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestAddColumnScenario(t *testing.T) {
	m := Parse(sample)
	if !m.AddColumn(2) {
		t.Fatalf("AddColumn(2) refused")
	}
	if got, _ := m.Cell(0, 2); got != "" {
		t.Fatalf("Cell(0,2): got %q, want blank", got)
	}
	if got, _ := m.Cell(1, 2); got != "---" {
		t.Fatalf("Cell(1,2): got %q, want %q", got, "---")
	}
	want := "| A | B |   |\n|---|---|---|\n| 1 | 2 |   |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
	if m.ColumnCount() != 3 {
		t.Fatalf("ColumnCount: got %d, want 3", m.ColumnCount())
	}
}

func TestAddColumnClamps(t *testing.T) {
	m := Parse(sample)
	m.AddColumn(-5)
	m.AddColumn(99)
	want := "|   | A | B |   |\n|---|---|---|---|\n|   | 1 | 2 |   |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
}

func TestAddRow(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"above header", 0, "|   |   |\n|---|---|\n| A | B |\n| 1 | 2 |"},
		{"below header", 1, "| A | B |\n|---|---|\n|   |   |\n| 1 | 2 |"},
		{"middle", 2, "| A | B |\n|---|---|\n|   |   |\n| 1 | 2 |"},
		{"end", 3, "| A | B |\n|---|---|\n| 1 | 2 |\n|   |   |"},
		{"clamped", 42, "| A | B |\n|---|---|\n| 1 | 2 |\n|   |   |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(sample)
			if !m.AddRow(tt.index) {
				t.Fatalf("AddRow(%d) refused", tt.index)
			}
			if got := m.String(); got != tt.want {
				t.Fatalf("String(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddRowKeepsLinePrefix(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"quote", "> | A |\n> |---|\n> | 1 |", "> | A |\n> |---|\n> | 1 |\n> |   |"},
		{"list item", "  | A |\n  |---|", "  | A |\n  |---|\n  |   |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(tt.src)
			if !m.IsSeparator(1) {
				t.Fatalf("row 1 is not a separator: %q", tt.src)
			}
			if !m.AddRow(m.RowCount()) {
				t.Fatalf("AddRow refused")
			}
			if got := m.String(); got != tt.want {
				t.Fatalf("String(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteRowHeaderPromotesBody(t *testing.T) {
	m := Parse("| H1 | H2 |\n|---|---|\n| a | b |\n| c | d |")
	if !m.DeleteRow(0) {
		t.Fatalf("DeleteRow(0) refused")
	}
	want := "| a | b |\n|---|---|\n| c | d |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
	if !m.IsSeparator(1) {
		t.Fatalf("row 1 is not the separator")
	}
}

func TestDeleteRowRefusals(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		index int
	}{
		{"separator", sample, 1},
		{"negative", sample, -1},
		{"past end", sample, 3},
		{"header without body", "| A |\n|---|", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(tt.src)
			if m.DeleteRow(tt.index) {
				t.Fatalf("DeleteRow(%d) applied", tt.index)
			}
			if got := m.String(); got != tt.src {
				t.Fatalf("String(): got %q, want %q", got, tt.src)
			}
		})
	}
}

func TestDeleteColumn(t *testing.T) {
	m := Parse(sample)
	if !m.DeleteColumn(0) {
		t.Fatalf("DeleteColumn(0) refused")
	}
	want := "| B |\n|---|\n| 2 |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
	if m.DeleteColumn(0) {
		t.Fatalf("deleted the last column")
	}
	if m.DeleteColumn(5) {
		t.Fatalf("DeleteColumn(5) applied")
	}
}

func TestMoveRows(t *testing.T) {
	src := "| H |\n|---|\n| a |\n| b |"
	tests := []struct {
		name string
		op   func(*Model) bool
		want string
	}{
		{"up from first body row", func(m *Model) bool { return m.MoveRowUp(2) }, "| a |\n|---|\n| H |\n| b |"},
		{"up", func(m *Model) bool { return m.MoveRowUp(3) }, "| H |\n|---|\n| b |\n| a |"},
		{"down from header", func(m *Model) bool { return m.MoveRowDown(0) }, "| a |\n|---|\n| H |\n| b |"},
		{"down", func(m *Model) bool { return m.MoveRowDown(2) }, "| H |\n|---|\n| b |\n| a |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(src)
			if !tt.op(m) {
				t.Fatalf("move refused")
			}
			if got := m.String(); got != tt.want {
				t.Fatalf("String(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveColumns(t *testing.T) {
	m := Parse("| A | B | C |\n|:--|---|--:|\n| 1 | 2 | 3 |")
	if !m.MoveColumnRight(0) {
		t.Fatalf("MoveColumnRight(0) refused")
	}
	want := "| B | A | C |\n|---|:--|--:|\n| 2 | 1 | 3 |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
	if !m.MoveColumnLeft(2) {
		t.Fatalf("MoveColumnLeft(2) refused")
	}
	want = "| B | C | A |\n|---|--:|:--|\n| 2 | 3 | 1 |"
	if got := m.String(); got != want {
		t.Fatalf("String(): got %q, want %q", got, want)
	}
}

func TestBoundaryMovesAreNoOps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		op   func(*Model) bool
	}{
		{"header up", sample, func(m *Model) bool { return m.MoveRowUp(0) }},
		{"last row down", sample, func(m *Model) bool { return m.MoveRowDown(2) }},
		{"separator up", sample, func(m *Model) bool { return m.MoveRowUp(1) }},
		{"separator down", sample, func(m *Model) bool { return m.MoveRowDown(1) }},
		{"first column left", sample, func(m *Model) bool { return m.MoveColumnLeft(0) }},
		{"last column right", sample, func(m *Model) bool { return m.MoveColumnRight(1) }},
		{"single column right", "| A |\n|---|\n| 1 |", func(m *Model) bool { return m.MoveColumnRight(0) }},
		{"single column left", "| A |\n|---|\n| 1 |", func(m *Model) bool { return m.MoveColumnLeft(0) }},
		{"header only down", "| A |\n|---|", func(m *Model) bool { return m.MoveRowDown(0) }},
		{"stale row", sample, func(m *Model) bool { return m.MoveRowUp(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(tt.src)
			if tt.op(m) {
				t.Fatalf("boundary move applied")
			}
			if got := m.String(); got != tt.src {
				t.Fatalf("String(): got %q, want %q", got, tt.src)
			}
		})
	}
}

func TestSeparatorStaysAtRowOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := Parse("| H | I |\n|---|---|\n| a | b |\n| c | d |")

	for step := 0; step < 500; step++ {
		n := m.RowCount()
		i := rng.Intn(n+2) - 1
		switch rng.Intn(4) {
		case 0:
			m.AddRow(i)
		case 1:
			m.DeleteRow(i)
		case 2:
			m.MoveRowUp(i)
		case 3:
			m.MoveRowDown(i)
		}
		if m.RowCount() >= 2 && !m.IsSeparator(1) {
			t.Fatalf("step %d: separator lost:\n%s", step, m.String())
		}
		for r := 0; r < m.RowCount(); r++ {
			if r != 1 && m.IsSeparator(r) {
				t.Fatalf("step %d: extra separator at %d:\n%s", step, r, m.String())
			}
		}
	}
}

func TestColumnCountMatchesEveryRow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := Parse(sample)

	for step := 0; step < 300; step++ {
		i := rng.Intn(m.ColumnCount()+2) - 1
		switch rng.Intn(4) {
		case 0:
			m.AddColumn(i)
		case 1:
			m.DeleteColumn(i)
		case 2:
			m.MoveColumnLeft(i)
		case 3:
			m.MoveColumnRight(i)
		}
		for r := 0; r < m.RowCount(); r++ {
			row, _ := m.Row(r)
			if len(row.Cells) != m.ColumnCount() {
				t.Fatalf("step %d: row %d has %d cells, want %d", step, r, len(row.Cells), m.ColumnCount())
			}
		}
		again := Parse(m.String())
		if again.ColumnCount() != m.ColumnCount() {
			t.Fatalf("step %d: reparse columns got %d, want %d", step, again.ColumnCount(), m.ColumnCount())
		}
	}
}

func TestUpdateCellPrecision(t *testing.T) {
	src := "| Name | Qty |\n|:-----|----:|\n| apple | 3 |\n| pear | 10 |"
	tests := []string{"banana", "", "a | b", `x\|y`, "two\nlines", "  padded  "}
	for _, content := range tests {
		m := Parse(src)
		before := make([]Row, m.RowCount())
		for r := range before {
			before[r], _ = m.Row(r)
		}

		if !m.UpdateCell(2, 1, content) {
			t.Fatalf("UpdateCell(2,1,%q) refused", content)
		}

		want := strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
		if got, _ := m.Cell(2, 1); got != want {
			t.Fatalf("Cell after update: got %q, want %q", got, want)
		}
		after, _ := m.Row(2)
		if after.Cells[0] != before[2].Cells[0] {
			t.Fatalf("sibling cell changed: got %q, want %q", after.Cells[0], before[2].Cells[0])
		}
		for _, r := range []int{0, 1, 3} {
			got, _ := m.Row(r)
			if got.Raw != before[r].Raw {
				t.Fatalf("row %d changed: got %q, want %q", r, got.Raw, before[r].Raw)
			}
		}
		if again := Parse(m.String()); again.ColumnCount() != 2 {
			t.Fatalf("UpdateCell(%q) broke the row: %q", content, m.String())
		}
	}
}

func TestUpdateCellRefusals(t *testing.T) {
	m := Parse(sample)
	for _, pos := range [][2]int{{1, 0}, {3, 0}, {0, 2}, {-1, 0}} {
		if m.UpdateCell(pos[0], pos[1], "x") {
			t.Fatalf("UpdateCell(%d,%d) applied", pos[0], pos[1])
		}
	}
	if got := m.String(); got != sample {
		t.Fatalf("String(): got %q, want %q", got, sample)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := Parse(sample)
	c := m.Clone()
	c.UpdateCell(0, 0, "Z")
	c.AddColumn(0)
	if got := m.String(); got != sample {
		t.Fatalf("original changed: got %q", got)
	}
}

func TestBlank(t *testing.T) {
	got := Blank(2, 3)
	want := "| Column 1 | Column 2 | Column 3 |\n|---|---|---|\n|   |   |   |\n|   |   |   |"
	if got != want {
		t.Fatalf("Blank(2,3): got %q, want %q", got, want)
	}
	m := Parse(got)
	if m.RowCount() != 4 || m.ColumnCount() != 3 || !m.IsSeparator(1) {
		t.Fatalf("Blank parse: got %dx%d", m.RowCount(), m.ColumnCount())
	}
}
