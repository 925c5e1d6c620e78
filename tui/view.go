package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"snapfix/assets"
	"snapfix/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	// Error banner sits above whatever else is shown
	if m.Feed.Err != nil {
		b.WriteString(BannerStyle.Render(TextErrorBanner + "\n" + m.Feed.Err.Error()))
		b.WriteString("\n")
	}

	switch {
	case m.Feed.ShowLoading():
		b.WriteString(BoxStyle.Render(m.spinner.View() + " " + TextLoading))
		b.WriteString("\n")
	case m.Feed.ShowEmpty():
		b.WriteString(m.emptyView())
		b.WriteString("\n")
	case len(m.Feed.Records) > 0:
		b.WriteString(m.bodyView())
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(TextFooter))

	return b.String()
}

// emptyView explains how to produce the first capture
func (m Model) emptyView() string {
	var b strings.Builder
	b.WriteString(HighlightStyle.Render(TextEmptyTitle))
	b.WriteString("\n\n")
	b.WriteString(TextEmptyIntro)
	b.WriteString("\n\n")
	for i, step := range TextEmptySteps {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// bodyView lays the thumbnail grid and the detail pane side by side
func (m Model) bodyView() string {
	gridWidth, detailWidth, bodyHeight := m.layout()

	gridHeader := InfoStyle.Render(fmt.Sprintf("%s (%d)", TextScreenshots, len(m.Feed.Records)))
	if m.Feed.ShowRefreshing() {
		gridHeader += " " + StatusStyle.Render(m.spinner.View()+" "+TextRefreshing)
	}
	grid := lipgloss.NewStyle().
		Width(gridWidth).
		MaxHeight(bodyHeight + 1).
		Render(gridHeader + "\n" + m.gridView(bodyHeight))

	detail := lipgloss.NewStyle().
		Width(detailWidth).
		MaxHeight(bodyHeight + 1).
		Render(m.detailHeader() + "\n" + m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", detail)
}

// gridView renders the rows of thumbnail cells that fit, keeping the
// selected cell in view.
func (m Model) gridView(height int) string {
	cols := m.columns()
	_, cellH := m.cellSize()
	visible := height / cellH
	if visible < 1 {
		visible = 1
	}

	total := (len(m.Feed.Records) + cols - 1) / cols
	first := 0
	if idx := m.Feed.SelectedIndex(); idx >= 0 {
		if row := idx / cols; row >= visible {
			first = row - visible + 1
		}
	}
	last := first + visible
	if last > total {
		last = total
	}

	rows := make([]string, 0, last-first)
	for row := first; row < last; row++ {
		start := row * cols
		end := start + cols
		if end > len(m.Feed.Records) {
			end = len(m.Feed.Records)
		}
		cells := make([]string, 0, cols)
		for _, rec := range m.Feed.Records[start:end] {
			cells = append(cells, m.cellView(rec))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cellView renders one thumbnail with its filename, the localized capture
// time split over two lines, and how long ago that was.
func (m Model) cellView(rec types.AnalysisRecord) string {
	w, h := 16, 8
	if m.thumbnailer != nil {
		w, h = m.thumbnailer.Size()
	}

	art := assets.Placeholder(w, h)
	if t, ok := m.thumbs[rec.Filename]; ok {
		art = t.Art
	}

	name := truncate(rec.Filename, w)

	date, clock, ok := rec.LocalDateClock()
	ago := ""
	if ok {
		at, _ := types.ParseTimestamp(rec.Timestamp)
		ago = humanize.RelTime(at, m.now(), "ago", "from now")
	} else {
		date = rec.Timestamp
	}
	when := strings.Join([]string{
		truncate(date, w),
		truncate(clock, w),
		InfoStyle.Render(truncate(ago, w)),
	}, "\n")

	style := CellStyle
	if m.Feed.IsSelected(rec.Filename) {
		style = SelectedCellStyle
		name = lipgloss.NewStyle().Bold(true).Render(name)
	}
	return style.Render(art + "\n" + name + "\n" + when)
}

// detailHeader shows the selected record and which section is open
func (m Model) detailHeader() string {
	title := TitleStyle.UnsetMarginBottom().Render(TextDetailHeader)
	sel := m.Feed.Selected
	if sel == nil {
		return title
	}
	if _, ok := m.Feed.Find(sel.Filename); !ok && len(m.Feed.Records) > 0 {
		title += " " + ErrorStyle.Render("(no longer in feed)")
	}

	tab := ActiveSectionTabStyle.Render(sections[m.section].Title) +
		SectionTabStyle.Render(fmt.Sprintf("%d/%d", m.section+1, len(sections)))

	return strings.Join([]string{
		title,
		InfoStyle.Render(truncate(sel.Filename+" · "+sel.LocalTime(), m.detail.Width)),
		tab,
	}, "\n")
}

// statusLine summarizes the feed: record count, freshness and backend
func (m Model) statusLine() string {
	parts := []string{fmt.Sprintf("📊 %d analyses", len(m.Feed.Records))}
	if !m.Feed.LastUpdated.IsZero() {
		parts = append(parts, "updated "+humanize.RelTime(m.Feed.LastUpdated, m.now(), "ago", "from now"))
	}
	if m.backendURL != "" {
		parts = append(parts, "🌐 "+m.backendURL)
	}
	return InfoStyle.Render(strings.Join(parts, " | "))
}

// truncate shortens s to at most width cells
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
