package syntax

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// KindSpoiler is the goldmark node kind of a ||spoiler|| span.
var KindSpoiler = ast.NewNodeKind("Spoiler")

type spoilerNode struct {
	ast.BaseInline
	Segment text.Segment
}

func (n *spoilerNode) Kind() ast.NodeKind { return KindSpoiler }

func (n *spoilerNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

var spoilerRE = regexp.MustCompile(`^\|\|([^|]+)\|\|`)

type spoilerParser struct{}

func (p *spoilerParser) Trigger() []byte { return []byte{'|'} }

func (p *spoilerParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	m := spoilerRE.FindIndex(line)
	if m == nil {
		return nil
	}
	block.Advance(m[1])
	return &spoilerNode{Segment: text.NewSegment(seg.Start, seg.Start+m[1])}
}
