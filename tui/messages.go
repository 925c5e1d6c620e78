package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"snapfix/assets"
	"snapfix/feed"
)

// Messages for the tea program. Feed messages arrive from the poller through
// tea.Program.Send; thumbnail messages come back from commands.

// FetchStartedMsg is sent when a poll tick begins
type FetchStartedMsg struct {
	TickID string
}

// FeedLoadedMsg is sent when a poll tick finishes, successfully or not
type FeedLoadedMsg struct {
	Result feed.Result
}

// ThumbnailLoadedMsg carries a rendered thumbnail or its placeholder
type ThumbnailLoadedMsg struct {
	Thumbnail assets.Thumbnail
}

// Handler forwards poller events into a running program. It satisfies
// feed.Handler.
type Handler struct {
	Send func(msg tea.Msg)
}

// PollStarted implements feed.Handler
func (h Handler) PollStarted(tickID string) {
	h.Send(FetchStartedMsg{TickID: tickID})
}

// PollFinished implements feed.Handler
func (h Handler) PollFinished(res feed.Result) {
	h.Send(FeedLoadedMsg{Result: res})
}
