package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snapfix/assets"
	"snapfix/feed"
)

// Options wires a Model to its collaborators
type Options struct {
	Thumbnailer   *assets.Thumbnailer
	Refresher     Refresher
	BackendURL    string
	MarkdownStyle string
}

// Model represents the viewer state. Feed data arrives through messages; the
// model never fetches the feed itself.
type Model struct {
	Feed feed.State

	thumbnailer *assets.Thumbnailer
	refresher   Refresher
	backendURL  string
	markdown    *MarkdownRenderer

	// Thumbnails by filename. Placeholders live here too; records are never touched.
	thumbs  map[string]assets.Thumbnail
	pending map[string]bool

	section   int
	detail    viewport.Model
	detailKey string
	spinner   spinner.Model

	width  int
	height int

	now func() time.Time
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	return Model{
		Feed:        feed.NewState(),
		thumbnailer: opts.Thumbnailer,
		refresher:   opts.Refresher,
		backendURL:  opts.BackendURL,
		markdown:    NewMarkdownRenderer(opts.MarkdownStyle),
		thumbs:      make(map[string]assets.Thumbnail),
		pending:     make(map[string]bool),
		detail:      viewport.New(80, 20),
		spinner:     sp,
		width:       120,
		height:      40,
		now:         time.Now,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Section returns the title of the analysis text shown in the detail pane
func (m Model) Section() string {
	return sections[m.section].Title
}

// Thumbnail returns the loaded thumbnail for filename, if any
func (m Model) Thumbnail(filename string) (assets.Thumbnail, bool) {
	t, ok := m.thumbs[filename]
	return t, ok
}

// layout splits the screen between the thumbnail grid and the detail pane
func (m Model) layout() (gridWidth, detailWidth, bodyHeight int) {
	gridWidth = m.width / 2
	detailWidth = m.width - gridWidth - 1
	// title, status line, footer and the pane header
	bodyHeight = m.height - 7
	if m.Feed.Err != nil {
		bodyHeight -= 4
	}
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	return gridWidth, detailWidth, bodyHeight
}

// cellSize returns the outer size of one thumbnail cell
func (m Model) cellSize() (int, int) {
	w, h := 16, 8
	if m.thumbnailer != nil {
		w, h = m.thumbnailer.Size()
	}
	// art plus filename, date, clock and relative time lines, and the border
	return lipgloss.Width(CellStyle.Render("")) + w, h + 6
}

// columns returns how many cells fit across the grid pane
func (m Model) columns() int {
	gridWidth, _, _ := m.layout()
	cellW, _ := m.cellSize()
	if cols := gridWidth / cellW; cols > 0 {
		return cols
	}
	return 1
}

// refreshDetail re-renders the detail pane when the selection, section,
// content or size changed.
func (m *Model) refreshDetail() {
	_, detailWidth, bodyHeight := m.layout()
	contentWidth := detailWidth - 4
	m.detail.Width = detailWidth
	m.detail.Height = bodyHeight - 3

	var key, content string
	switch sel := m.Feed.Selected; {
	case sel == nil:
		key = "none"
		content = InfoStyle.Render(TextSelectPrompt)
	default:
		text := sections[m.section].Text(*sel)
		key = sel.Filename + "\x00" + sections[m.section].Title + "\x00" + text
		if text == "" {
			content = InfoStyle.Render(TextNoAnalysis)
		} else {
			content = m.markdown.Render(text, contentWidth)
		}
	}
	key += "\x00" + strconv.Itoa(contentWidth)

	if key == m.detailKey {
		return
	}
	m.detailKey = key
	m.detail.SetContent(content)
	m.detail.GotoTop()
}
