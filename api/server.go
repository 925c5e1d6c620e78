package api

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"snapfix/assets"
	"snapfix/feed"
)

// Options configures the web viewer
type Options struct {
	AssetRoot    string
	PollInterval time.Duration
	Verbose      bool
}

// NewRouter constructs a Gin engine serving the viewer page, the screenshot
// passthrough and the health check.
func NewRouter(store *feed.Store, source assets.Source, opts Options) *gin.Engine {
	if opts.AssetRoot == "" {
		opts.AssetRoot = assets.DefaultRoot
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = feed.DefaultInterval
	}

	r := gin.New()
	// Recovery always; request logging only when verbose
	r.Use(gin.Recovery())
	if opts.Verbose {
		r.Use(gin.Logger())
	}
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	// Register resource routers
	RegisterViewerRoutes(r, store, opts)
	RegisterScreenshotRoutes(r, source, opts.AssetRoot)
	RegisterHealthRoutes(r, store)
	return r
}
