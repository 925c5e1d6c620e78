package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders analysis Markdown for the terminal and keeps one
// glamour renderer per wrap width.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer using a glamour standard style
// ("dark", "light", "notty", ...).
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render formats src wrapped to width. If glamour fails the source is
// returned unformatted.
func (r *MarkdownRenderer) Render(src string, width int) string {
	if width < 20 {
		width = 20
	}

	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Printf("⚠️  markdown renderer (style %q): %v", r.style, err)
			return src
		}
		r.renderers[width] = tr
	}

	out, err := tr.Render(src)
	if err != nil {
		log.Printf("⚠️  markdown render: %v", err)
		return src
	}
	return strings.TrimRight(out, "\n")
}
