package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"snapfix/assets"
)

// RegisterScreenshotRoutes serves images from the configured asset source
// under /<root>/.
func RegisterScreenshotRoutes(r *gin.Engine, source assets.Source, root string) {
	prefix := "/" + strings.Trim(root, "/")
	r.GET(prefix+"/*filename", func(c *gin.Context) {
		handleScreenshot(c, source)
	})
}

func handleScreenshot(c *gin.Context, source assets.Source) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")
	if filename == "" || strings.Contains(filename, "..") {
		c.Status(http.StatusNotFound)
		return
	}

	body, contentType, err := source.Open(c.Request.Context(), filename)
	if err != nil {
		var loadErr *assets.AssetLoadError
		if !errors.As(err, &loadErr) || !loadErr.NotFound() {
			log.Printf("🖼️  screenshot %s: %v", filename, err)
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
