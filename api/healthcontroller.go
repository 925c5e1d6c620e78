package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snapfix/feed"
)

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine, store *feed.Store) {
	r.GET("/api/health", func(c *gin.Context) {
		handleHealth(c, store)
	})
}

func handleHealth(c *gin.Context, store *feed.Store) {
	st := store.Snapshot()
	body := gin.H{
		"status":   "ok",
		"analyses": len(st.Records),
		"loading":  st.Loading,
	}
	if !st.LastUpdated.IsZero() {
		body["last_updated"] = st.LastUpdated.UTC().Format(time.RFC3339)
	}
	if st.Err != nil {
		body["error"] = st.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}
