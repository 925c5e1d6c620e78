package api

import (
	"embed"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"snapfix/assets"
	"snapfix/feed"
	"snapfix/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Cell is one thumbnail in the grid
type Cell struct {
	Filename string
	ImageURL string
	Href     string
	Time     string
	Ago      string
	Selected bool
}

// Section is an analysis text rendered to HTML
type Section struct {
	Title string
	HTML  template.HTML
}

// Detail is the selected record
type Detail struct {
	Filename string
	Time     string
	Stale    bool
	Final    template.HTML
	Sections []Section
}

// Page is the data behind index.html
type Page struct {
	RefreshSeconds int
	RefreshURL     string
	Placeholder    string
	Error          string
	Loading        bool
	Refreshing     bool
	Empty          bool
	Cells          []Cell
	Detail         *Detail
	Updated        string
}

type viewer struct {
	store    *feed.Store
	opts     Options
	markdown *markdown
	now      func() time.Time
}

// RegisterViewerRoutes registers the HTML viewer. The viewer's selection
// travels in the selected query parameter.
func RegisterViewerRoutes(r *gin.Engine, store *feed.Store, opts Options) {
	v := &viewer{store: store, opts: opts, markdown: newMarkdown(), now: time.Now}
	r.GET("/", v.handleIndex)
}

func (v *viewer) handleIndex(c *gin.Context) {
	st := v.store.ViewFor(c.Query("selected"))
	c.HTML(http.StatusOK, "index.html", v.page(st))
}

func (v *viewer) page(st feed.State) Page {
	now := v.now()
	p := Page{
		RefreshSeconds: int(math.Ceil(v.opts.PollInterval.Seconds())),
		RefreshURL:     "/",
		Placeholder:    assets.PlaceholderSVG,
		Loading:        st.ShowLoading(),
		Refreshing:     st.ShowRefreshing(),
		Empty:          st.ShowEmpty(),
	}
	if st.Err != nil {
		p.Error = st.Err.Error()
	}
	if !st.LastUpdated.IsZero() {
		p.Updated = humanize.RelTime(st.LastUpdated, now, "ago", "from now")
	}

	for _, rec := range st.Records {
		p.Cells = append(p.Cells, Cell{
			Filename: rec.Filename,
			ImageURL: assets.Path(v.opts.AssetRoot, rec.Filename),
			Href:     selectURL(rec.Filename),
			Time:     rec.LocalTime(),
			Ago:      ago(rec, now),
			Selected: st.IsSelected(rec.Filename),
		})
	}

	if sel := st.Selected; sel != nil {
		_, current := st.Find(sel.Filename)
		d := &Detail{
			Filename: sel.Filename,
			Time:     sel.LocalTime(),
			Stale:    !current,
		}
		if sel.FinalSolution != "" {
			d.Final = v.markdown.render(sel.FinalSolution)
		}
		for _, s := range []struct{ title, text string }{
			{"AI result", sel.AIResult},
			{"Vision analysis", sel.VisionAnalysis},
			{"Text analysis", sel.TextAnalysis},
			{"Engineered prompt", sel.EngineeredPrompt},
		} {
			if s.text != "" {
				d.Sections = append(d.Sections, Section{Title: s.title, HTML: v.markdown.render(s.text)})
			}
		}
		p.Detail = d
		// Pin the selection so a refresh does not fall back to auto-select
		p.RefreshURL = selectURL(sel.Filename)
	}
	return p
}

func selectURL(filename string) string {
	return "/?" + url.Values{"selected": {filename}}.Encode()
}

func ago(rec types.AnalysisRecord, now time.Time) string {
	at, ok := types.ParseTimestamp(rec.Timestamp)
	if !ok {
		return ""
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
