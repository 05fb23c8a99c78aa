package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/livemd/internal/grapheme"
)

const tabWidth = 4

type VisualTokenKind int

const (
	VisualTokenDoc VisualTokenKind = iota
	VisualTokenVirtual
)

// VisualToken is one rendered grapheme of a line, either backed by the
// document or inserted by virtual text.
type VisualToken struct {
	Kind VisualTokenKind

	// Text is the rendered text. Tabs are expanded to spaces.
	Text string

	StartCell int
	CellWidth int

	// Visible columns index the line after deletions; doc tokens only.
	VisibleGraphemeCol int

	// DocGraphemeCol is the raw column a doc token renders, or the anchor
	// of a virtual token.
	DocGraphemeCol int

	Role     VirtualRole
	StyleKey string
}

type VisualLine struct {
	RawGraphemeLen int

	Tokens []VisualToken

	// DocGraphemeColToVisualCell maps raw columns to cells. Deleted columns
	// map to the next visible column (or EOL).
	DocGraphemeColToVisualCell []int

	cells int
}

// BuildVisualLine lays out rawLine with vt applied.
func BuildVisualLine(rawLine string, vt VirtualText) VisualLine {
	raw := grapheme.Split(rawLine)
	rawLen := len(raw)
	vt = normalizeVirtualText(vt, rawLen)

	deleted := make([]bool, rawLen)
	for _, d := range vt.Deletions {
		for i := d.StartGraphemeCol; i < d.EndGraphemeCol; i++ {
			deleted[i] = true
		}
	}

	vl := VisualLine{RawGraphemeLen: rawLen}
	docToVisual := make([]int, rawLen+1)
	for i := range docToVisual {
		docToVisual[i] = -1
	}

	add := func(tok VisualToken) {
		if tok.CellWidth < 1 {
			tok.CellWidth = 1
		}
		tok.StartCell = vl.cells
		vl.Tokens = append(vl.Tokens, tok)
		vl.cells += tok.CellWidth
	}
	insert := func(in VirtualInsertion) {
		for _, g := range grapheme.Split(in.Text) {
			add(VisualToken{
				Kind:           VisualTokenVirtual,
				Text:           g,
				CellWidth:      runewidth.StringWidth(g),
				DocGraphemeCol: in.GraphemeCol,
				Role:           in.Role,
				StyleKey:       in.StyleKey,
			})
		}
	}

	ins := vt.Insertions
	visible := 0
	for col, g := range raw {
		for len(ins) > 0 && ins[0].GraphemeCol <= col {
			insert(ins[0])
			ins = ins[1:]
		}
		if deleted[col] {
			continue
		}
		docToVisual[col] = vl.cells
		text, width := g, runewidth.StringWidth(g)
		if g == "\t" {
			width = tabWidth - vl.cells%tabWidth
			text = strings.Repeat(" ", width)
		}
		add(VisualToken{
			Kind:               VisualTokenDoc,
			Text:               text,
			CellWidth:          width,
			VisibleGraphemeCol: visible,
			DocGraphemeCol:     col,
		})
		visible++
	}
	for _, in := range ins {
		insert(in)
	}

	docToVisual[rawLen] = vl.cells
	for c := rawLen - 1; c >= 0; c-- {
		if docToVisual[c] < 0 {
			docToVisual[c] = docToVisual[c+1]
		}
	}
	vl.DocGraphemeColToVisualCell = docToVisual
	return vl
}

func (vl VisualLine) VisualLen() int { return vl.cells }

// VisibleText is the line text after deletions, without insertions.
func (vl VisualLine) VisibleText(rawLine string) string {
	raw := grapheme.Split(rawLine)
	var sb strings.Builder
	for _, tok := range vl.Tokens {
		if tok.Kind == VisualTokenDoc && tok.DocGraphemeCol < len(raw) {
			sb.WriteString(raw[tok.DocGraphemeCol])
		}
	}
	return sb.String()
}

// VisibleCol maps a raw column to its column in the visible text.
func (vl VisualLine) VisibleCol(docCol int) int {
	n := 0
	for _, tok := range vl.Tokens {
		if tok.Kind != VisualTokenDoc {
			continue
		}
		if tok.DocGraphemeCol >= docCol {
			return tok.VisibleGraphemeCol
		}
		n = tok.VisibleGraphemeCol + 1
	}
	return n
}
