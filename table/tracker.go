package table

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/internal/logging"
	"github.com/iw2rmb/livemd/syntax"
)

// Tracker turns Table nodes of a syntax tree into Regions.
//
// While a region is locked (its grid has an edit session) rescans hand the
// same *Region back for whatever table node overlaps it, so the session's
// model survives the document change it caused.
type Tracker struct {
	tree   syntax.Tree
	log    logrus.FieldLogger
	locked *Region
}

type TrackerOption func(*Tracker)

// WithTrackerLogger sets the logger used for scan diagnostics.
func WithTrackerLogger(l logrus.FieldLogger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

func NewTracker(tree syntax.Tree, opts ...TrackerOption) *Tracker {
	t := &Tracker{tree: tree, log: logging.Discard()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Lock(r *Region) { t.locked = r }
func (t *Tracker) Unlock()        { t.locked = nil }

// Locked returns the region under edit, or nil.
func (t *Tracker) Locked() *Region { return t.locked }

// Scan rebuilds every region of src.
func (t *Tracker) Scan(src []byte) []*Region {
	out := t.build(src, 0, len(src))
	t.log.WithFields(logrus.Fields{"regions": len(out), "bytes": len(src)}).Debug("table scan")
	return out
}

// ScanRange rebuilds the regions touched by a change and reuses the rest.
//
// [from, to] is the changed range in src and delta the change in document
// length. Regions of prev that end before the change are kept as they are;
// regions that start after it are shifted by delta in place. Everything
// else, including a kept region that a rebuilt table now overlaps, comes
// fresh from the tree.
func (t *Tracker) ScanRange(src []byte, from, to, delta int, prev []*Region) []*Region {
	oldTo := to - delta
	var kept []*Region
	for _, r := range prev {
		switch {
		case r.To < from:
			kept = append(kept, r)
		case r.From > oldTo:
			r.shift(delta)
			kept = append(kept, r)
		}
	}

	rebuilt := t.build(src, from, to)
	out := rebuilt
	for _, r := range kept {
		if !overlapsAny(r, rebuilt) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].From < out[j].From })

	t.log.WithFields(logrus.Fields{
		"regions": len(out),
		"rebuilt": len(rebuilt),
		"from":    from,
		"to":      to,
	}).Debug("table rescan")
	return out
}

// build creates regions for the table nodes intersecting [from, to].
func (t *Tracker) build(src []byte, from, to int) []*Region {
	var out []*Region
	lockUsed := false
	t.tree.Iterate(src, from, to, func(n syntax.Node) bool {
		if n.Name != syntax.NameTable {
			return true
		}
		if t.locked != nil && !lockUsed && t.locked.overlaps(n.From, n.To) {
			lockUsed = true
			out = append(out, t.locked)
			return true
		}
		if n.From < 0 || n.To > len(src) || n.From >= n.To {
			t.log.WithFields(logrus.Fields{"from": n.From, "to": n.To}).Warn("table node out of range")
			return true
		}
		m := Parse(string(src[n.From:n.To]))
		out = append(out, &Region{From: n.From, To: m.EndOffset(n.From), Model: m})
		return true
	})
	return out
}

func overlapsAny(r *Region, others []*Region) bool {
	for _, o := range others {
		if o.overlaps(r.From, r.To) {
			return true
		}
	}
	return false
}
