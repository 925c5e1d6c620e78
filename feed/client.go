package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"snapfix/types"
)

// DefaultPath is where the backend serves the analysis mapping.
const DefaultPath = "/api/analyses"

// Client is a thin HTTP client for the analysis feed endpoint
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// NewClient creates a feed client. An empty path falls back to DefaultPath and
// a zero timeout leaves the transport default in place.
func NewClient(baseURL, path string, timeout time.Duration) *Client {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       path,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend origin the client talks to
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAnalyses fetches the feed and returns it newest first.
func (c *Client) FetchAnalyses(ctx context.Context) ([]types.AnalysisRecord, error) {
	var list recordList
	if err := c.doJSONRequest(ctx, http.MethodGet, c.path, &list); err != nil {
		return nil, err
	}
	return Normalize(list), nil
}
