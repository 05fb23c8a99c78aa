package buffer

import "testing"

func TestBuffer_InsertAndDelete(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, GraphemeCol: 1})

	b.InsertText("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, GraphemeCol: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}

	b.SetCursor(Pos{Row: 1, GraphemeCol: 0})
	b.DeleteBackward()
	if got, want := b.Text(), "aXYb"; got != want {
		t.Fatalf("after join: text=%q, want %q", got, want)
	}

	b.DeleteForward()
	if got, want := b.Text(), "aXb"; got != want {
		t.Fatalf("after delete forward: text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteBackward_RemovesWholeCluster(t *testing.T) {
	b := New("ae\u0301", Options{})
	b.SetCursor(Pos{Row: 0, GraphemeCol: 2})
	b.DeleteBackward()
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Apply_SingleVersionForMultipleEdits(t *testing.T) {
	b := New("hello", Options{})
	v := b.Version()

	b.Apply(
		TextEdit{Range: Range{Start: Pos{}, End: Pos{}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{GraphemeCol: 1}, End: Pos{GraphemeCol: 2}}, Text: ""},
	)
	if got, want := b.Text(), "Xello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_Apply_NoEffectiveEdit_NoVersionBump(t *testing.T) {
	b := New("abc", Options{})
	b.Apply(TextEdit{Range: Range{Start: Pos{}, End: Pos{GraphemeCol: 1}}, Text: "a"})
	if b.Version() != 0 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change recorded")
	}
}

func TestBuffer_Apply_ReportsEffect(t *testing.T) {
	b := New("abc", Options{})
	if b.Apply() {
		t.Fatalf("empty Apply: got true, want false")
	}
	if b.Apply(TextEdit{Range: Range{Start: Pos{}, End: Pos{GraphemeCol: 1}}, Text: "a"}) {
		t.Fatalf("no-op edit: got true, want false")
	}
	if !b.Apply(TextEdit{Range: Range{Start: Pos{GraphemeCol: 3}, End: Pos{GraphemeCol: 3}}, Text: "!"}) {
		t.Fatalf("insert: got false, want true")
	}
	if got, want := b.Cursor(), (Pos{GraphemeCol: 4}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
}
