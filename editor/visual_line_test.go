package editor

import (
	"fmt"
	"testing"
)

func cellMap(vl VisualLine) []int {
	var out []int
	for _, tok := range vl.Tokens {
		for i := 0; i < tok.CellWidth; i++ {
			out = append(out, tok.DocGraphemeCol)
		}
	}
	return out
}

func TestVisualLine_DeletionRemovesColumns(t *testing.T) {
	vl := BuildVisualLine("abcd", VirtualText{
		Deletions: []VirtualDeletion{{StartGraphemeCol: 1, EndGraphemeCol: 3}}, // hide "bc"
	})

	if got, want := fmt.Sprintf("%v", cellMap(vl)), "[0 3]"; got != want {
		t.Fatalf("visual->doc: got %s, want %s", got, want)
	}
	if got := vl.DocGraphemeColToVisualCell; len(got) != 5 {
		t.Fatalf("doc->visual len: got %d, want %d", len(got), 5)
	}
	if got, want := vl.DocGraphemeColToVisualCell[1], 1; got != want {
		t.Fatalf("doc col 1 maps to: got %d, want %d", got, want)
	}
	if got, want := vl.DocGraphemeColToVisualCell[2], 1; got != want {
		t.Fatalf("doc col 2 maps to: got %d, want %d", got, want)
	}
	if got, want := vl.VisibleText("abcd"), "ad"; got != want {
		t.Fatalf("visible text: got %q, want %q", got, want)
	}
}

func TestVisualLine_InsertionAddsCellsButDocStaysAnchored(t *testing.T) {
	vl := BuildVisualLine("ab", VirtualText{
		Insertions: []VirtualInsertion{{GraphemeCol: 1, Text: "XX"}},
	})

	if got, want := fmt.Sprintf("%v", cellMap(vl)), "[0 1 1 1]"; got != want {
		t.Fatalf("visual->doc: got %s, want %s", got, want)
	}
	if got, want := vl.DocGraphemeColToVisualCell[1], 3; got != want {
		t.Fatalf("doc col 1 visual cell: got %d, want %d", got, want)
	}
}

func TestVisualLine_ReplacementKeepsVisibleColumns(t *testing.T) {
	// "- [ ] x" with the checkbox swapped for a single glyph.
	vl := BuildVisualLine("- [ ] x", VirtualText{
		Deletions:  []VirtualDeletion{{StartGraphemeCol: 2, EndGraphemeCol: 5}},
		Insertions: []VirtualInsertion{{GraphemeCol: 2, Text: taskOpen}},
	})

	if got, want := vl.VisualLen(), 5; got != want {
		t.Fatalf("visual len: got %d, want %d", got, want)
	}
	if got, want := vl.VisibleCol(6), 3; got != want {
		t.Fatalf("visible col of x: got %d, want %d", got, want)
	}
	if got, want := vl.VisibleCol(3), 2; got != want {
		t.Fatalf("visible col inside deletion: got %d, want %d", got, want)
	}
}

func TestVisualLine_WideGraphemeMapsAllCellsToOneDocCol(t *testing.T) {
	vl := BuildVisualLine("界", VirtualText{})
	if got, want := vl.VisualLen(), 2; got != want {
		t.Fatalf("visual len: got %d, want %d", got, want)
	}
	if got, want := fmt.Sprintf("%v", cellMap(vl)), "[0 0]"; got != want {
		t.Fatalf("visual->doc: got %s, want %s", got, want)
	}
}

func TestVisualLine_TabExpansionDeterministic(t *testing.T) {
	vl := BuildVisualLine("a\tb", VirtualText{})
	if got, want := fmt.Sprintf("%v", cellMap(vl)), "[0 1 1 1 2]"; got != want {
		t.Fatalf("visual->doc: got %s, want %s", got, want)
	}
}

func TestVisualLine_CombiningClusterIsSingleGrapheme(t *testing.T) {
	vl := BuildVisualLine("éx", VirtualText{
		Deletions: []VirtualDeletion{{StartGraphemeCol: 0, EndGraphemeCol: 1}},
	})

	if got, want := vl.RawGraphemeLen, 2; got != want {
		t.Fatalf("raw grapheme len: got %d, want %d", got, want)
	}
	if got, want := fmt.Sprintf("%v", cellMap(vl)), "[1]"; got != want {
		t.Fatalf("visual->doc: got %s, want %s", got, want)
	}
	if got, want := vl.DocGraphemeColToVisualCell[0], 0; got != want {
		t.Fatalf("deleted grapheme maps to next visible cell: got %d, want %d", got, want)
	}
}
