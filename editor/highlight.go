package editor

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// HighlightSpan styles the half-open grapheme range [StartGraphemeCol,
// EndGraphemeCol) of the visible line text (after virtual deletions).
type HighlightSpan struct {
	StartGraphemeCol int
	EndGraphemeCol   int
	Style            lipgloss.Style
}

type LineContext struct {
	Row int

	// RawText is the buffer line before virtual deletions.
	RawText string
	// Text is the visible line after virtual deletions.
	Text string

	// CursorGraphemeCol indexes Text, or is -1 without a cursor on the row.
	CursorGraphemeCol int
	// RawCursorGraphemeCol indexes RawText, or is -1.
	RawCursorGraphemeCol int
	HasCursor            bool
}

type Highlighter interface {
	HighlightLine(ctx LineContext) ([]HighlightSpan, error)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(ctx LineContext) ([]HighlightSpan, error)

func (f HighlighterFunc) HighlightLine(ctx LineContext) ([]HighlightSpan, error) { return f(ctx) }

// normalizeHighlightSpans clamps spans to the line, sorts them and drops any
// span that overlaps an earlier one.
func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = maxInt(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartGraphemeCol, 0, lineLen)
		end := clampInt(sp.EndGraphemeCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartGraphemeCol: start, EndGraphemeCol: end, Style: sp.Style})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartGraphemeCol != out[j].StartGraphemeCol {
			return out[i].StartGraphemeCol < out[j].StartGraphemeCol
		}
		return out[i].EndGraphemeCol < out[j].EndGraphemeCol
	})

	merged := make([]HighlightSpan, 0, len(out))
	for _, sp := range out {
		if n := len(merged); n > 0 && sp.StartGraphemeCol < merged[n-1].EndGraphemeCol {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
