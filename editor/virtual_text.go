package editor

import (
	"sort"
	"strings"
)

type VirtualRole int

const (
	VirtualRoleOverlay VirtualRole = iota // generic inserted text (dim/annotation)
	VirtualRoleMark                       // rendered Markdown marks (checkboxes, spoiler blocks)
)

// VirtualDeletion hides a half-open grapheme range [StartGraphemeCol, EndGraphemeCol)
// within a single logical line.
//
// Columns are grapheme indices in the raw buffer line (before any deletions).
type VirtualDeletion struct {
	StartGraphemeCol int
	EndGraphemeCol   int
}

// VirtualInsertion inserts view-only text at a grapheme column within a single
// logical line.
type VirtualInsertion struct {
	GraphemeCol int
	Text        string
	Role        VirtualRole
	// StyleKey selects a keyed style via Config.VirtualStyleForKey.
	StyleKey string
}

type VirtualText struct {
	Insertions []VirtualInsertion
	Deletions  []VirtualDeletion
}

type VirtualTextContext struct {
	Row      int
	LineText string // raw buffer line text

	CursorGraphemeCol int
	HasCursor         bool

	SelectionStartGraphemeCol int
	SelectionEndGraphemeCol   int
	HasSelection              bool

	DocVersion uint64
}

type VirtualTextProvider func(ctx VirtualTextContext) VirtualText

func mergeVirtualText(a, b VirtualText) VirtualText {
	if len(b.Insertions) == 0 && len(b.Deletions) == 0 {
		return a
	}
	return VirtualText{
		Insertions: append(append([]VirtualInsertion(nil), a.Insertions...), b.Insertions...),
		Deletions:  append(append([]VirtualDeletion(nil), a.Deletions...), b.Deletions...),
	}
}

func normalizeVirtualText(vt VirtualText, rawLineLen int) VirtualText {
	rawLineLen = maxInt(rawLineLen, 0)

	// Deletions: clamp, drop empty, sort, merge.
	if len(vt.Deletions) > 0 {
		dels := make([]VirtualDeletion, 0, len(vt.Deletions))
		for _, d := range vt.Deletions {
			start := clampInt(d.StartGraphemeCol, 0, rawLineLen)
			end := clampInt(d.EndGraphemeCol, 0, rawLineLen)
			if end < start {
				start, end = end, start
			}
			if start == end {
				continue
			}
			dels = append(dels, VirtualDeletion{StartGraphemeCol: start, EndGraphemeCol: end})
		}
		sort.Slice(dels, func(i, j int) bool {
			if dels[i].StartGraphemeCol != dels[j].StartGraphemeCol {
				return dels[i].StartGraphemeCol < dels[j].StartGraphemeCol
			}
			return dels[i].EndGraphemeCol < dels[j].EndGraphemeCol
		})
		merged := make([]VirtualDeletion, 0, len(dels))
		for _, d := range dels {
			if len(merged) == 0 {
				merged = append(merged, d)
				continue
			}
			last := &merged[len(merged)-1]
			if d.StartGraphemeCol <= last.EndGraphemeCol {
				last.EndGraphemeCol = maxInt(last.EndGraphemeCol, d.EndGraphemeCol)
				continue
			}
			merged = append(merged, d)
		}
		vt.Deletions = merged
	}

	if len(vt.Insertions) > 0 {
		ins := make([]VirtualInsertion, 0, len(vt.Insertions))
		for _, in := range vt.Insertions {
			text := sanitizeSingleLine(in.Text)
			if text == "" {
				continue
			}
			in.GraphemeCol = clampInt(in.GraphemeCol, 0, rawLineLen)
			in.Text = text
			ins = append(ins, in)
		}

		// An anchor inside a deleted range moves to the range start.
		for i := range ins {
			for _, d := range vt.Deletions {
				if ins[i].GraphemeCol >= d.StartGraphemeCol && ins[i].GraphemeCol < d.EndGraphemeCol {
					ins[i].GraphemeCol = d.StartGraphemeCol
					break
				}
			}
		}

		sort.SliceStable(ins, func(i, j int) bool {
			return ins[i].GraphemeCol < ins[j].GraphemeCol
		})
		vt.Insertions = ins
	}

	return vt
}

func sanitizeSingleLine(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
