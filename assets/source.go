package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapfix/common"
)

// DefaultRoot is the path segment images are served under.
const DefaultRoot = "screenshots"

// Source opens screenshot images by filename.
type Source interface {
	Open(ctx context.Context, filename string) (io.ReadCloser, string, error)
}

// AssetLoadError reports that an image could not be loaded. It never leaves
// the thumbnail it belongs to.
type AssetLoadError struct {
	Filename   string
	StatusCode int
	Err        error
}

func (e *AssetLoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("image %s: status %d", e.Filename, e.StatusCode)
	}
	return fmt.Sprintf("image %s: %v", e.Filename, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// NotFound reports whether the image does not exist at the source.
func (e *AssetLoadError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Path returns the URL path an image is served under: /<root>/<filename>.
func Path(root, filename string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		root = DefaultRoot
	}
	return "/" + root + "/" + url.PathEscape(filename)
}

// HTTPSource loads images from the backend's static asset endpoint.
type HTTPSource struct {
	baseURL    string
	root       string
	httpClient *http.Client
}

// NewHTTPSource creates a source for <baseURL>/<root>/<filename>.
func NewHTTPSource(baseURL, root string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		root:       root,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the absolute image URL for filename
func (s *HTTPSource) URL(filename string) string {
	return s.baseURL + Path(s.root, filename)
}

// Open implements Source
func (s *HTTPSource) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(filename), nil)
	if err != nil {
		return nil, "", &AssetLoadError{Filename: filename, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", &AssetLoadError{Filename: filename, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", &AssetLoadError{Filename: filename, StatusCode: resp.StatusCode}
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// S3Source loads images from <prefix><filename> in an S3 bucket.
type S3Source struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewS3Source creates a bucket-backed source. A non-empty prefix always ends in "/".
func NewS3Source(s3c *common.S3, bucket, prefix string) *S3Source {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Source{s3: s3c, bucket: bucket, prefix: prefix}
}

// Key returns the object key for filename
func (s *S3Source) Key(filename string) string {
	return s.prefix + filename
}

// Open implements Source
func (s *S3Source) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	body, contentType, err := s.s3.Get(ctx, s.bucket, s.Key(filename))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, "", &AssetLoadError{Filename: filename, StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, "", &AssetLoadError{Filename: filename, Err: err}
	}
	return body, contentType, nil
}
