package table

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	blankCell     = "   "
	separatorCell = "---"
)

var separatorRE = regexp.MustCompile(`^[|\s\-:]+$`)

// IsSeparatorLine reports whether line is a header separator row such as
// "|---|:---:|".
func IsSeparatorLine(line string) bool {
	t := strings.TrimSpace(line)
	return separatorRE.MatchString(t) && strings.Contains(t, "-") && strings.Contains(t, "|")
}

// IsTableLine reports whether line can be part of a table body. Only lines
// whose first byte is a pipe qualify.
func IsTableLine(line string) bool {
	return len(line) > 0 && line[0] == '|'
}

type row struct {
	// lead and trail are the text before the first and after the last
	// pipe; cells are the segments between pipes, untrimmed.
	lead  string
	trail string
	cells []string
	// pipes is the number of structural pipes, capped at 2. Rows with
	// fewer than two pipes have no cells.
	pipes     int
	separator bool
	raw       string
}

func parseRow(line string) *row {
	parts := splitPipes(line)
	// A quote marker may precede the separator of a table inside a quote.
	r := &row{raw: line, separator: IsSeparatorLine(strings.TrimLeft(line, " >"))}
	switch len(parts) {
	case 1:
		r.lead = parts[0]
	case 2:
		r.lead, r.trail = parts[0], parts[1]
		r.pipes = 1
	default:
		r.lead, r.trail = parts[0], parts[len(parts)-1]
		r.cells = append([]string(nil), parts[1:len(parts)-1]...)
		r.pipes = 2
	}
	return r
}

// splitPipes splits line on every pipe that is not escaped as `\|`.
func splitPipes(line string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if i+1 < len(line) && line[i+1] == '|' {
				i++
			}
		case '|':
			parts = append(parts, line[start:i])
			start = i + 1
		}
	}
	return append(parts, line[start:])
}

// render regenerates raw from the row's parts.
func (r *row) render() {
	switch r.pipes {
	case 0:
		r.raw = r.lead
	case 1:
		r.raw = r.lead + "|" + r.trail
	default:
		r.raw = r.lead + "|" + strings.Join(r.cells, "|") + "|" + r.trail
	}
}

// promote turns a row with too few pipes into a closed row so cells can be
// added to it.
func (r *row) promote() {
	if r.pipes == 2 {
		return
	}
	if r.pipes == 1 {
		r.cells = []string{r.trail}
		r.trail = ""
	}
	r.pipes = 2
}

func (r *row) clone() *row {
	c := *r
	c.cells = append([]string(nil), r.cells...)
	return &c
}

// Row is a read-only view of one source row.
type Row struct {
	// Cells holds the trimmed, unescaped content of every cell.
	Cells     []string
	Separator bool
	Raw       string
}

// Model is the parsed form of one Markdown table.
//
// Mutators report whether they changed anything. Indices that are out of
// range, or that point at the separator where a content row is required,
// leave the model untouched and return false.
type Model struct {
	rows    []*row
	columns int
	trimmed int
}

// Parse splits source into rows. Trailing lines that do not start with a
// pipe are dropped; if no line starts with a pipe every line is kept.
func Parse(source string) *Model {
	lines := strings.Split(source, "\n")

	last := len(lines) - 1
	for i := len(lines) - 1; i >= 0; i-- {
		if IsTableLine(lines[i]) {
			last = i
			break
		}
	}
	lines = lines[:last+1]

	m := &Model{rows: make([]*row, 0, len(lines))}
	for i, line := range lines {
		m.rows = append(m.rows, parseRow(line))
		m.trimmed += len(line)
		if i < len(lines)-1 {
			m.trimmed++
		}
	}
	if len(m.rows) > 0 {
		m.columns = len(m.rows[0].cells)
	}
	return m
}

// Blank returns the source of a new table with a "Column N" header, a
// separator and rows empty body rows.
func Blank(rows, cols int) string {
	if cols < 1 {
		cols = 1
	}
	if rows < 0 {
		rows = 0
	}

	header := make([]string, cols)
	sep := make([]string, cols)
	body := make([]string, cols)
	for c := 0; c < cols; c++ {
		header[c] = " Column " + strconv.Itoa(c+1) + " "
		sep[c] = separatorCell
		body[c] = blankCell
	}

	lines := []string{
		"|" + strings.Join(header, "|") + "|",
		"|" + strings.Join(sep, "|") + "|",
	}
	for r := 0; r < rows; r++ {
		lines = append(lines, "|"+strings.Join(body, "|")+"|")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) RowCount() int    { return len(m.rows) }
func (m *Model) ColumnCount() int { return m.columns }

// TrimmedLength is the byte length of the parsed source after trailing
// non-table lines were dropped. It does not change with later edits.
func (m *Model) TrimmedLength() int { return m.trimmed }

// EndOffset returns the document offset where the table ends when its
// source starts at from.
func (m *Model) EndOffset(from int) int { return from + m.trimmed }

func (m *Model) validRow(i int) bool { return i >= 0 && i < len(m.rows) }

func (m *Model) indexOf(r *row) int {
	if r == nil {
		return -1
	}
	for i, x := range m.rows {
		if x == r {
			return i
		}
	}
	return -1
}

// nearestContentRow clamps i into the table and steps off the separator,
// preferring the row above.
func (m *Model) nearestContentRow(i int) int {
	if len(m.rows) == 0 {
		return 0
	}
	i = clamp(i, 0, len(m.rows)-1)
	if !m.rows[i].separator {
		return i
	}
	if i > 0 {
		return i - 1
	}
	if len(m.rows) > 1 {
		return 1
	}
	return 0
}

// IsSeparator reports whether row i is a separator line.
func (m *Model) IsSeparator(i int) bool {
	return m.validRow(i) && m.rows[i].separator
}

// Row returns a copy of row i.
func (m *Model) Row(i int) (Row, bool) {
	if !m.validRow(i) {
		return Row{}, false
	}
	r := m.rows[i]
	cells := make([]string, len(r.cells))
	for c, s := range r.cells {
		cells[c] = unescapeCell(s)
	}
	return Row{Cells: cells, Separator: r.separator, Raw: r.raw}, true
}

// ContentRows returns the source indices of every non-separator row.
func (m *Model) ContentRows() []int {
	out := make([]int, 0, len(m.rows))
	for i, r := range m.rows {
		if !r.separator {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := &Model{rows: make([]*row, len(m.rows)), columns: m.columns, trimmed: m.trimmed}
	for i, r := range m.rows {
		c.rows[i] = r.clone()
	}
	return c
}

// String serializes the table: every row's text joined by newlines.
func (m *Model) String() string {
	var b strings.Builder
	for i, r := range m.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.raw)
	}
	return b.String()
}

// Cell returns the trimmed content of a cell.
func (m *Model) Cell(row, col int) (string, bool) {
	if !m.validRow(row) {
		return "", false
	}
	r := m.rows[row]
	if col < 0 || col >= len(r.cells) {
		return "", false
	}
	return unescapeCell(r.cells[col]), true
}

// UpdateCell replaces a cell's text with content padded by one space on
// each side. Line breaks become spaces and pipes are escaped, so the row
// keeps its shape.
func (m *Model) UpdateCell(row, col int, content string) bool {
	if !m.validRow(row) || m.rows[row].separator {
		return false
	}
	r := m.rows[row]
	if col < 0 || col >= len(r.cells) {
		return false
	}
	r.cells[col] = " " + escapeCell(content) + " "
	r.render()
	return true
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func escapeCell(s string) string {
	s = lineBreaks.Replace(s)
	return strings.ReplaceAll(s, "|", `\|`)
}

func unescapeCell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `\|`, "|")
}

// AddRow inserts a blank row before index, clamped to [0, RowCount]. When
// the row lands above the separator the two are swapped so the separator
// stays at index 1. The new row keeps the header's line prefix, such as a
// quote marker or list indentation.
func (m *Model) AddRow(index int) bool {
	index = clamp(index, 0, len(m.rows))

	r := &row{pipes: 2, cells: make([]string, m.columns)}
	if len(m.rows) > 0 {
		r.lead = m.rows[0].lead
	}
	for c := range r.cells {
		r.cells[c] = blankCell
	}
	r.render()

	m.rows = append(m.rows, nil)
	copy(m.rows[index+1:], m.rows[index:])
	m.rows[index] = r

	if index <= 1 && len(m.rows) >= 3 {
		m.rows[1], m.rows[2] = m.rows[2], m.rows[1]
	}
	return true
}

// AddColumn inserts a blank column before index, clamped to
// [0, ColumnCount]. Separator rows get a "---" cell.
func (m *Model) AddColumn(index int) bool {
	index = clamp(index, 0, m.columns)
	for _, r := range m.rows {
		r.promote()
		cell := blankCell
		if r.separator {
			cell = separatorCell
		}
		at := clamp(index, 0, len(r.cells))
		r.cells = append(r.cells, "")
		copy(r.cells[at+1:], r.cells[at:])
		r.cells[at] = cell
		r.render()
	}
	m.columns++
	return true
}

// DeleteRow removes a content row. Deleting the header promotes the first
// body row, so it is refused when there is no body row.
func (m *Model) DeleteRow(index int) bool {
	if !m.validRow(index) || m.rows[index].separator {
		return false
	}
	if index == 0 && len(m.rows) < 3 {
		return false
	}

	m.rows = append(m.rows[:index], m.rows[index+1:]...)
	if index == 0 {
		m.rows[0], m.rows[1] = m.rows[1], m.rows[0]
	}
	return true
}

// DeleteColumn removes a column from every row. The last column cannot be
// deleted.
func (m *Model) DeleteColumn(index int) bool {
	if index < 0 || index >= m.columns || m.columns <= 1 {
		return false
	}
	for _, r := range m.rows {
		if index < len(r.cells) {
			r.cells = append(r.cells[:index], r.cells[index+1:]...)
			r.render()
		}
	}
	m.columns--
	return true
}

// MoveRowUp swaps a content row with the one above it, jumping over the
// separator (row 2 moves to 0).
func (m *Model) MoveRowUp(index int) bool {
	if index <= 0 || index >= len(m.rows) || m.rows[index].separator {
		return false
	}
	dest := index - 1
	if index == 2 {
		dest = 0
	}
	m.rows[index], m.rows[dest] = m.rows[dest], m.rows[index]
	return true
}

// MoveRowDown swaps a content row with the one below it, jumping over the
// separator (row 0 moves to 2).
func (m *Model) MoveRowDown(index int) bool {
	if index < 0 || index >= len(m.rows)-1 || m.rows[index].separator {
		return false
	}
	dest := index + 1
	if index == 0 {
		dest = 2
	}
	if dest >= len(m.rows) {
		return false
	}
	m.rows[index], m.rows[dest] = m.rows[dest], m.rows[index]
	return true
}

func (m *Model) MoveColumnLeft(index int) bool {
	if index <= 0 || index >= m.columns {
		return false
	}
	m.swapColumns(index, index-1)
	return true
}

func (m *Model) MoveColumnRight(index int) bool {
	if index < 0 || index >= m.columns-1 {
		return false
	}
	m.swapColumns(index, index+1)
	return true
}

func (m *Model) swapColumns(a, b int) {
	for _, r := range m.rows {
		if a >= len(r.cells) || b >= len(r.cells) {
			continue
		}
		r.cells[a], r.cells[b] = r.cells[b], r.cells[a]
		r.render()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
