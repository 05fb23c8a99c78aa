package table

import "github.com/iw2rmb/livemd/internal/grapheme"

// Session is the handle of an active cell edit. Hosts use it to learn which
// table and cell have focus; only the Grid mutates it.
type Session struct {
	Model *Model
	Row   int
	Col   int

	// text is the cell content as typed, including trailing spaces the
	// model trims away; caret is a grapheme index into it.
	text  string
	caret int
}

func (s *Session) Pos() GridPos { return GridPos{Row: s.Row, Col: s.Col} }

// Caret returns the grapheme index of the in-cell cursor.
func (s *Session) Caret() int { return s.caret }

// Text returns the content being edited.
func (s *Session) Text() string { return s.text }

// load resets the edit text from the model and puts the caret at the end.
func (s *Session) load() {
	s.text, _ = s.Model.Cell(s.Row, s.Col)
	s.caret = grapheme.Count(s.text)
}

func (s *Session) insert(text string) {
	clusters := grapheme.Split(s.text)
	ins := grapheme.Split(lineBreaks.Replace(text))
	out := make([]string, 0, len(clusters)+len(ins))
	out = append(out, clusters[:s.caret]...)
	out = append(out, ins...)
	out = append(out, clusters[s.caret:]...)
	s.text = grapheme.Join(out)
	s.caret += len(ins)
}

func (s *Session) deleteBefore() bool {
	if s.caret == 0 {
		return false
	}
	clusters := grapheme.Split(s.text)
	s.text = grapheme.Join(append(clusters[:s.caret-1:s.caret-1], clusters[s.caret:]...))
	s.caret--
	return true
}

func (s *Session) deleteAfter() bool {
	clusters := grapheme.Split(s.text)
	if s.caret >= len(clusters) {
		return false
	}
	s.text = grapheme.Join(append(clusters[:s.caret:s.caret], clusters[s.caret+1:]...))
	return true
}

func (s *Session) moveCaret(to int) {
	s.caret = clamp(to, 0, grapheme.Count(s.text))
}
