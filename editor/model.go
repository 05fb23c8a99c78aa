package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/livemd/buffer"
	"github.com/iw2rmb/livemd/internal/logging"
	"github.com/iw2rmb/livemd/syntax"
	"github.com/iw2rmb/livemd/table"
)

// Model is a Bubble Tea component that renders and edits a Markdown buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	log logrus.FieldLogger

	tracker *table.Tracker
	regions []*table.Region
	grids   []*table.Grid
	active  *table.Grid
	// marks holds the non-table nodes of the last scan.
	marks   []syntax.Node
	scanned bool

	focused bool

	viewport viewport.Model
	// rowStarts[row] is the first rendered line of a logical row.
	rowStarts []int

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if len(cfg.KeyMap.Table.Tab.Keys()) == 0 {
		cfg.KeyMap.Table = table.DefaultKeyMap()
	}
	if cfg.Style.Table.Border == (lipgloss.Border{}) {
		cfg.Style.Table = table.DefaultStyle()
	}
	if cfg.Tree == nil {
		cfg.Tree = syntax.NewGoldmark()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		log:      cfg.Logger,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.tracker = table.NewTracker(cfg.Tree, table.WithTrackerLogger(cfg.Logger))
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.rescan()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Regions returns the table regions of the current document.
func (m Model) Regions() []*table.Region { return m.regions }

// Grids returns one grid per region, in document order.
func (m Model) Grids() []*table.Grid { return m.grids }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

// Blur removes keyboard focus. An active table cell keeps its session so
// focus returns to the same cell.
func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// FocusContext returns the edit session of the focused table cell.
func (m Model) FocusContext() (*table.Session, bool) {
	if m.active == nil || !m.active.Editing() {
		return nil, false
	}
	return m.active.Session(), true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
		if m.syncFromBuffer() {
			m.followCursor()
			return m, nil
		}
		// Cell navigation changes the view without touching the buffer.
		m.rebuildContent()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.syncFromBuffer()
		return m, cmd
	default:
		// Hosts may mutate the buffer directly (or run a context menu
		// action) and then pass any message through Update.
		if m.syncFromBuffer() {
			m.followCursor()
		}
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer rescans tables after text changes, redraws and notifies
// OnChange. It reports whether the buffer version moved.
func (m *Model) syncFromBuffer() bool {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	if tv := m.buf.TextVersion(); tv != m.lastTextVersion {
		m.rescan()
		m.lastTextVersion = tv
	}
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls so the cursor row, or the focused table, is visible.
func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	row := m.buf.Cursor().Row
	if g := m.active; g != nil {
		row = m.rowOf(g.Region().From)
	}
	y := row
	if row >= 0 && row < len(m.rowStarts) {
		y = m.rowStarts[row]
	}

	top := m.viewport.YOffset
	switch {
	case y < top:
		m.viewport.SetYOffset(y)
	case y >= top+h:
		m.viewport.SetYOffset(y - h + 1)
	default:
		return
	}
	// Highlighting only covers visible rows; redraw for the new window.
	m.rebuildContent()
}

// rowOf returns the logical row holding byte offset off.
func (m Model) rowOf(off int) int {
	p, ok := m.buf.PosFromByteOffset(off, buffer.OffsetClamp)
	if !ok {
		return 0
	}
	return p.Row
}
