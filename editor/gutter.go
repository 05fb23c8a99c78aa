package editor

import (
	"strconv"
	"strings"
)

// gutterDigits is the width of the widest line number.
func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(strconv.Itoa(lineCount))
}

// gutterWidth is the number of cells the gutter takes, including the
// separating space, or 0 when line numbers are off.
func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

// gutter renders the line number of row. Continuation lines of a block
// (the extra lines of a grid) pass row < 0 and get a blank gutter.
func (m Model) gutter(row int, active bool) string {
	if !m.cfg.ShowLineNums {
		return ""
	}
	digits := gutterDigits(m.buf.LineCount())
	num := strings.Repeat(" ", digits)
	if row >= 0 {
		num = strconv.Itoa(row + 1)
		num = strings.Repeat(" ", digits-len(num)) + num
	}
	st := m.cfg.Style.LineNum
	if active && m.focused {
		st = m.cfg.Style.LineNumActive
	}
	return st.Render(num) + m.cfg.Style.Gutter.Render(" ")
}
