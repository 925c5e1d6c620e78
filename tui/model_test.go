package tui

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snapfix/assets"
	"snapfix/feed"
	"snapfix/types"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

type countingRefresher struct{ n atomic.Int32 }

func (c *countingRefresher) Trigger() { c.n.Add(1) }

type missingSource struct{}

func (missingSource) Open(_ context.Context, filename string) (io.ReadCloser, string, error) {
	return nil, "", &assets.AssetLoadError{Filename: filename, StatusCode: 404}
}

var fixedNow = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func newTestModel() Model {
	m := NewModel(Options{BackendURL: "http://backend", MarkdownStyle: "notty"})
	m.now = func() time.Time { return fixedNow }
	return m
}

func records(names ...string) []types.AnalysisRecord {
	out := make([]types.AnalysisRecord, 0, len(names))
	for i, n := range names {
		out = append(out, types.AnalysisRecord{
			Filename:      n,
			Timestamp:     fixedNow.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
			FinalSolution: "# Fix for " + n + "\n\nRestart the service.",
		})
	}
	return out
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func loaded(recs []types.AnalysisRecord) FeedLoadedMsg {
	return FeedLoadedMsg{Result: feed.Result{Records: recs, At: fixedNow}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialViewShowsLoading(t *testing.T) {
	m := newTestModel()
	out := plain(m.View())
	if !strings.Contains(out, TextLoading) {
		t.Fatalf("expected loading indicator, got:\n%s", out)
	}
	if strings.Contains(out, TextEmptyTitle) {
		t.Fatal("empty state must not show while loading")
	}
}

func TestFeedLoadedSelectsNewest(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, FetchStartedMsg{TickID: "t1"})
	m, _ = update(t, m, loaded(records("shot2.png", "shot1.png")))

	if !m.Feed.IsSelected("shot2.png") {
		t.Fatalf("selected = %+v; want shot2.png", m.Feed.Selected)
	}
	out := plain(m.View())
	if !strings.Contains(out, "Fix for shot2.png") {
		t.Fatalf("detail pane should render the final solution:\n%s", out)
	}
	if !strings.Contains(out, "2 analyses") {
		t.Fatalf("status line missing count:\n%s", out)
	}
}

func TestGridCellShowsLocalizedTime(t *testing.T) {
	m := newTestModel()
	recs := records("shot2.png", "shot1.png")
	m, _ = update(t, m, loaded(recs))

	date, clock, ok := recs[1].LocalDateClock()
	if !ok {
		t.Fatal("fixture timestamp should parse")
	}
	if date+" "+clock != recs[1].LocalTime() {
		t.Fatalf("date and clock do not make up LocalTime %q", recs[1].LocalTime())
	}

	cell := plain(m.cellView(recs[1]))
	for _, want := range []string{date, clock, "1 minute ago"} {
		if !strings.Contains(cell, want) {
			t.Fatalf("unselected cell missing %q:\n%s", want, cell)
		}
	}
	// shot1 is not selected, so its clock can only come from the grid
	if !strings.Contains(plain(m.View()), clock) {
		t.Fatalf("grid should show %q:\n%s", clock, plain(m.View()))
	}
}

func TestGridCellUnparsableTimestampShowsRaw(t *testing.T) {
	m := newTestModel()
	rec := types.AnalysisRecord{Filename: "odd.png", Timestamp: "someday"}
	m, _ = update(t, m, loaded([]types.AnalysisRecord{rec}))

	if cell := plain(m.cellView(rec)); !strings.Contains(cell, "someday") {
		t.Fatalf("raw timestamp missing:\n%s", cell)
	}
}

func TestEmptyFeedShowsInstructions(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, loaded(nil))

	out := plain(m.View())
	if !strings.Contains(out, TextEmptyTitle) {
		t.Fatalf("expected empty state:\n%s", out)
	}
	for _, step := range TextEmptySteps {
		if !strings.Contains(out, step) {
			t.Fatalf("missing step %q", step)
		}
	}
}

func TestFetchErrorShowsBannerAndKeepsRecords(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, loaded(records("shot1.png")))
	m, _ = update(t, m, FetchStartedMsg{})
	m, _ = update(t, m, FeedLoadedMsg{Result: feed.Result{Err: errors.New("HTTP error! status: 500")}})

	out := plain(m.View())
	if !strings.Contains(out, TextErrorBanner) {
		t.Fatalf("expected error banner:\n%s", out)
	}
	if len(m.Feed.Records) != 1 || !m.Feed.IsSelected("shot1.png") {
		t.Fatal("error must keep records and selection")
	}

	m, _ = update(t, m, loaded(records("shot1.png")))
	if strings.Contains(plain(m.View()), TextErrorBanner) {
		t.Fatal("banner should clear after a successful fetch")
	}
}

func TestErrorBeforeFirstLoadShowsOnlyBanner(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, FeedLoadedMsg{Result: feed.Result{Err: errors.New("down")}})

	out := plain(m.View())
	if !strings.Contains(out, TextErrorBanner) {
		t.Fatal("expected banner")
	}
	if strings.Contains(out, TextEmptyTitle) || strings.Contains(out, TextLoading) {
		t.Fatalf("only the banner should show:\n%s", out)
	}
}

func TestSelectionIsStickyAcrossRefresh(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, loaded(records("shot2.png", "shot1.png")))
	m, _ = update(t, m, key("right"))
	if !m.Feed.IsSelected("shot1.png") {
		t.Fatalf("right should select shot1.png, got %+v", m.Feed.Selected)
	}

	m, _ = update(t, m, loaded(records("shot3.png", "shot2.png", "shot1.png")))
	if !m.Feed.IsSelected("shot1.png") {
		t.Fatal("selection must survive a refresh that adds newer records")
	}

	m, _ = update(t, m, key("left"))
	if !m.Feed.IsSelected("shot2.png") {
		t.Fatalf("left should select shot2.png, got %+v", m.Feed.Selected)
	}
}

func TestStaleSelectionKeepsShowing(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, loaded(records("shot2.png", "shot1.png")))
	m = m.SelectFilename("shot1.png")
	m, _ = update(t, m, loaded(records("shot3.png")))

	if !m.Feed.IsSelected("shot1.png") {
		t.Fatal("stale selection should be kept")
	}
	if !strings.Contains(plain(m.View()), "no longer in feed") {
		t.Fatal("stale selection should be marked")
	}

	m, _ = update(t, m, key("right"))
	if !m.Feed.IsSelected("shot3.png") {
		t.Fatal("moving from a stale selection restarts at the newest record")
	}
}

func TestSectionCycling(t *testing.T) {
	m := newTestModel()
	recs := records("shot1.png")
	recs[0].AIResult = "Raw model output"
	m, _ = update(t, m, loaded(recs))

	if m.Section() != sections[0].Title {
		t.Fatalf("default section = %q", m.Section())
	}
	m, _ = update(t, m, key("tab"))
	if m.Section() != "AI result" {
		t.Fatalf("section = %q", m.Section())
	}
	if !strings.Contains(plain(m.View()), "Raw model output") {
		t.Fatal("detail pane should show the AI result")
	}

	m, _ = update(t, m, key("tab"))
	if !strings.Contains(plain(m.View()), TextNoAnalysis) {
		t.Fatal("missing section text should show the no-analysis message")
	}
}

func TestRefreshKeyTriggersPoller(t *testing.T) {
	r := &countingRefresher{}
	m := NewModel(Options{Refresher: r, MarkdownStyle: "notty"})

	_, cmd := update(t, m, key("r"))
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
	cmd()
	if r.n.Load() != 1 {
		t.Fatalf("Trigger called %d times", r.n.Load())
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestFeedLoadedRequestsThumbnailsOnce(t *testing.T) {
	th := assets.NewThumbnailer(missingSource{}, 8, 4)
	m := NewModel(Options{Thumbnailer: th, MarkdownStyle: "notty"})

	m, cmd := update(t, m, loaded(records("shot1.png")))
	if cmd == nil {
		t.Fatal("expected thumbnail load")
	}
	msg := cmd()
	tm, ok := msg.(ThumbnailLoadedMsg)
	if !ok {
		t.Fatalf("got %T; want ThumbnailLoadedMsg", msg)
	}

	_, again := update(t, m, loaded(records("shot1.png")))
	if again != nil {
		t.Fatal("a pending thumbnail must not be requested twice")
	}

	m, _ = update(t, m, tm)
	thumb, ok := m.Thumbnail("shot1.png")
	if !ok || !thumb.Placeholder() {
		t.Fatal("failed load should store the placeholder")
	}
	if m.Feed.Err != nil {
		t.Fatal("image failures never reach the feed error")
	}
	if !strings.Contains(plain(m.View()), "no image") {
		t.Fatal("grid should show the placeholder")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"shot.png", 10, "shot.png"},
		{"screenshot_2024.png", 8, "screens…"},
		{"abc", 1, "…"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", c.in, c.width, got, c.want)
		}
	}
}
