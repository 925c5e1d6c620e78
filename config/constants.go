package config

import "time"

// Backend Constants
const (
	// DefaultBackendURL is where the capture service listens by default
	DefaultBackendURL = "http://127.0.0.1:5000"

	// DefaultFeedPath serves the filename -> analysis mapping
	DefaultFeedPath = "/api/analyses"

	// DefaultAssetRoot is the path segment screenshots are served under
	DefaultAssetRoot = "screenshots"

	// DefaultHTTPTimeout bounds a single feed or image request
	DefaultHTTPTimeout = 30 * time.Second
)

// Polling Constants
const (
	// DefaultPollInterval is the fixed delay between feed fetches
	DefaultPollInterval = 5 * time.Second
)

// Asset Source Constants
const (
	// AssetSourceHTTP loads screenshots from the backend's asset endpoint
	AssetSourceHTTP = "http"

	// AssetSourceS3 loads screenshots from an S3 bucket
	AssetSourceS3 = "s3"
)

// Display Constants
const (
	// DefaultThumbnailWidth is the terminal thumbnail width in cells
	DefaultThumbnailWidth = 16

	// DefaultThumbnailHeight is the terminal thumbnail height in cells
	DefaultThumbnailHeight = 8

	// DefaultMarkdownStyle is the glamour style for the detail pane
	DefaultMarkdownStyle = "dark"
)

// Server Constants
const (
	// DefaultServeAddr is the web viewer listen address
	DefaultServeAddr = ":8080"

	// DefaultLogFile receives log output while the terminal UI owns the screen
	DefaultLogFile = "snapfix.log"
)
