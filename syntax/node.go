package syntax

import "sort"

// Node names emitted by the trees in this package.
const (
	NameTable          = "Table"
	NameHorizontalRule = "HorizontalRule"
	NameQuoteMark      = "QuoteMark"
	NameTask           = "Task"
	NameSpoiler        = "Spoiler"
)

// Node is a named half-open byte span [From, To) in a document snapshot.
type Node struct {
	Name string
	From int
	To   int
}

// Intersects reports whether n overlaps [from, to]. Touching spans count,
// so an edit right at a table boundary still hits the table.
func (n Node) Intersects(from, to int) bool {
	return n.From <= to && from <= n.To
}

// Tree walks the nodes of a snapshot in document order.
//
// Iterate calls fn for every node that intersects [from, to]; pass
// 0, len(src) for the whole document. Iteration stops when fn returns false.
type Tree interface {
	Iterate(src []byte, from, to int, fn func(Node) bool)
}

// Nodes is a precomputed Tree that ignores the snapshot. Hosts with their own
// parser (or tests) can hand the tracker a fixed node list.
type Nodes []Node

func (ns Nodes) Iterate(_ []byte, from, to int, fn func(Node) bool) {
	sorted := append(Nodes(nil), ns...)
	sortNodes(sorted)
	for _, n := range sorted {
		if !n.Intersects(from, to) {
			continue
		}
		if !fn(n) {
			return
		}
	}
}

func sortNodes(ns []Node) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].From != ns[j].From {
			return ns[i].From < ns[j].From
		}
		return ns[i].To < ns[j].To
	})
}
