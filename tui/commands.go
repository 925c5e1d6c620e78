package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"snapfix/assets"
)

// Refresher runs an out-of-band poll. *feed.Poller implements it.
type Refresher interface {
	Trigger()
}

// loadThumbnail creates a command that fetches and renders one screenshot
func loadThumbnail(th *assets.Thumbnailer, filename string) tea.Cmd {
	return func() tea.Msg {
		return ThumbnailLoadedMsg{Thumbnail: th.Load(context.Background(), filename)}
	}
}

// triggerRefresh creates a command that asks the poller for an immediate fetch
func triggerRefresh(r Refresher) tea.Cmd {
	return func() tea.Msg {
		r.Trigger()
		return nil
	}
}
