package syntax

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// delimiterRE matches a table delimiter row, also inside a blockquote.
var delimiterRE = regexp.MustCompile(`^[ \t>]*\|?[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)

var hrRE = regexp.MustCompile(`^ {0,3}(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)

// Goldmark is a Tree backed by a goldmark parser.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a Tree that recognizes GFM tables, task list items,
// thematic breaks, block quote markers and ||spoiler|| spans.
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.TaskList,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithInlineParsers(util.Prioritized(&spoilerParser{}, 600)),
		),
	)
	return &Goldmark{md: md}
}

// Nodes parses src and returns every recognized node in document order.
func (g *Goldmark) Nodes(src []byte) []Node {
	doc := g.md.Parser().Parse(text.NewReader(src))

	w := walker{src: src, quotes: make(map[int]bool)}
	_ = ast.Walk(doc, w.visit)
	sortNodes(w.out)
	return w.out
}

func (g *Goldmark) Iterate(src []byte, from, to int, fn func(Node) bool) {
	for _, n := range g.Nodes(src) {
		if !n.Intersects(from, to) {
			continue
		}
		if !fn(n) {
			return
		}
	}
}

type walker struct {
	src []byte
	out []Node

	// cursor is the furthest byte covered by a segment seen so far; it
	// locates thematic breaks, which carry no segments of their own.
	cursor int
	quotes map[int]bool
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch n.Kind() {
	case east.KindTable:
		from, to, ok := segmentBounds(n)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		from, to = lineStart(w.src, from), lineEnd(w.src, to)
		// The delimiter row has no segment; a table without body rows
		// would otherwise end at its header.
		if to < len(w.src) && bytes.IndexByte(w.src[from:to], '\n') < 0 {
			if next := lineEnd(w.src, to+1); isDelimiterRow(w.src[to+1 : next]) {
				to = next
			}
		}
		w.out = append(w.out, Node{Name: NameTable, From: from, To: to})
		w.advance(to)
		return ast.WalkSkipChildren, nil

	case ast.KindThematicBreak:
		if from, to, ok := w.findRule(); ok {
			w.out = append(w.out, Node{Name: NameHorizontalRule, From: from, To: to})
			w.advance(to)
		}
		return ast.WalkContinue, nil

	case east.KindTaskCheckBox:
		parent := n.Parent()
		if parent != nil && parent.Type() == ast.TypeBlock && parent.Lines().Len() > 0 {
			start := parent.Lines().At(0).Start
			w.out = append(w.out, Node{Name: NameTask, From: start, To: start + 3})
		}
		return ast.WalkContinue, nil

	case KindSpoiler:
		sp := n.(*spoilerNode)
		w.out = append(w.out, Node{Name: NameSpoiler, From: sp.Segment.Start, To: sp.Segment.Stop})
		return ast.WalkSkipChildren, nil
	}

	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if inBlockquote(n) {
				w.quoteMarks(seg.Start)
			}
			w.advance(seg.Stop)
		}
	}
	return ast.WalkContinue, nil
}

func (w *walker) advance(to int) {
	if to > w.cursor {
		w.cursor = to
	}
}

// quoteMarks records every '>' between the start of the line and the
// content start of a quoted line.
func (w *walker) quoteMarks(contentStart int) {
	for i := lineStart(w.src, contentStart); i < contentStart && i < len(w.src); i++ {
		if w.src[i] != '>' || w.quotes[i] {
			continue
		}
		w.quotes[i] = true
		w.out = append(w.out, Node{Name: NameQuoteMark, From: i, To: i + 1})
	}
}

// findRule scans forward from the cursor for the next thematic break line.
func (w *walker) findRule() (int, int, bool) {
	pos := w.cursor
	if pos > 0 && pos <= len(w.src) && w.src[pos-1] != '\n' {
		pos = lineEnd(w.src, pos) + 1
	}
	for pos < len(w.src) {
		end := lineEnd(w.src, pos)
		if hrRE.Match(bytes.TrimRight(w.src[pos:end], " \t\r")) {
			return pos, end, true
		}
		pos = end + 1
	}
	return 0, 0, false
}

func inBlockquote(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindBlockquote {
			return true
		}
	}
	return false
}

// segmentBounds returns the smallest span covering every line segment in the
// subtree rooted at n.
func segmentBounds(n ast.Node) (from, to int, ok bool) {
	from, to = -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if from < 0 || seg.Start < from {
				from = seg.Start
			}
			if seg.Stop > to {
				to = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return from, to, from >= 0
}

func isDelimiterRow(line []byte) bool {
	return bytes.IndexByte(line, '|') >= 0 && delimiterRE.Match(line)
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(src)
}
