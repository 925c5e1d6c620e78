package assets

import (
	"github.com/charmbracelet/lipgloss"
)

// PlaceholderSVG is shown in place of an image that failed to load.
const PlaceholderSVG = `data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" width="320" height="180" viewBox="0 0 320 180">` +
	`<rect width="320" height="180" fill="%23f3f4f6"/>` +
	`<rect x="120" y="55" width="80" height="60" rx="6" fill="none" stroke="%239ca3af" stroke-width="4"/>` +
	`<circle cx="142" cy="75" r="7" fill="%239ca3af"/>` +
	`<path d="M124 111 L152 88 L170 102 L184 92 L196 111 Z" fill="%239ca3af"/>` +
	`<text x="160" y="145" font-family="sans-serif" font-size="14" fill="%236b7280" text-anchor="middle">Image not available</text>` +
	`</svg>`

var placeholderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#626262"))

// Placeholder returns the fixed terminal graphic for a missing image, sized
// to width x height cells.
func Placeholder(width, height int) string {
	art := "▢\nno image"
	if height < 2 {
		art = "no image"
	}
	return placeholderStyle.Render(
		lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, art),
	)
}
