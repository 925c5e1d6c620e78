package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case FetchStartedMsg:
		m.Feed = m.Feed.BeginFetch()
		return m, nil
	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case ThumbnailLoadedMsg:
		return m.handleThumbnailLoaded(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "R":
		if m.refresher != nil {
			return m, triggerRefresh(m.refresher)
		}
		return m, nil
	case "left", "h":
		return m.moveSelection(-1), nil
	case "right", "l":
		return m.moveSelection(1), nil
	case "up", "k":
		return m.moveSelection(-m.columns()), nil
	case "down", "j":
		return m.moveSelection(m.columns()), nil
	case "home", "g":
		return m.selectIndex(0), nil
	case "end", "G":
		return m.selectIndex(len(m.Feed.Records) - 1), nil
	case "tab":
		m.section = (m.section + 1) % len(sections)
		m.refreshDetail()
		return m, nil
	case "shift+tab":
		m.section = (m.section + len(sections) - 1) % len(sections)
		m.refreshDetail()
		return m, nil
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveSelection moves the selection by delta cells. A selection that has
// left the feed restarts from the newest record.
func (m Model) moveSelection(delta int) Model {
	if len(m.Feed.Records) == 0 {
		return m
	}
	idx := m.Feed.SelectedIndex()
	if idx < 0 {
		return m.selectIndex(0)
	}
	next := idx + delta
	if next < 0 || next >= len(m.Feed.Records) {
		return m
	}
	return m.selectIndex(next)
}

// selectIndex is the user's "select filename" action for the cell at i
func (m Model) selectIndex(i int) Model {
	if len(m.Feed.Records) == 0 {
		return m
	}
	m.Feed = m.Feed.SelectIndex(i)
	m.refreshDetail()
	return m
}

// SelectFilename selects a record by filename, overriding auto-selection
func (m Model) SelectFilename(filename string) Model {
	m.Feed = m.Feed.Select(filename)
	m.refreshDetail()
	return m
}

// handleResize lays the panes out for the new terminal size
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.refreshDetail()
	return m, nil
}

// handleFeedLoaded applies a poll result and starts loading new thumbnails
func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	m.Feed = m.Feed.Apply(msg.Result)
	m.refreshDetail()

	if msg.Result.Err != nil {
		return m, nil
	}

	var cmds []tea.Cmd
	for _, r := range m.Feed.Records {
		if _, done := m.thumbs[r.Filename]; done || m.pending[r.Filename] {
			continue
		}
		if m.thumbnailer == nil {
			continue
		}
		m.pending[r.Filename] = true
		cmds = append(cmds, loadThumbnail(m.thumbnailer, r.Filename))
	}
	return m, tea.Batch(cmds...)
}

// handleThumbnailLoaded stores a thumbnail. Load failures only get logged.
func (m Model) handleThumbnailLoaded(msg ThumbnailLoadedMsg) (tea.Model, tea.Cmd) {
	t := msg.Thumbnail
	delete(m.pending, t.Filename)
	m.thumbs[t.Filename] = t
	if t.Err != nil {
		log.Printf("🖼️  thumbnail %s: %v", t.Filename, t.Err)
	}
	return m, nil
}
