package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SNAPFIX_BACKEND_URL.
const EnvPrefix = "SNAPFIX"

// S3 selects the bucket screenshots are read from when assets.source is s3.
type S3 struct {
	Bucket       string
	Prefix       string
	Region       string
	Profile      string
	UsePathStyle bool
}

// Config is the resolved viewer configuration.
type Config struct {
	BackendURL   string
	FeedPath     string
	AssetRoot    string
	AssetSource  string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	S3           S3

	ServeAddr string
	LogFile   string
	Verbose   bool

	ThumbnailWidth  int
	ThumbnailHeight int
	MarkdownStyle   string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", DefaultBackendURL)
	v.SetDefault("feed.path", DefaultFeedPath)
	v.SetDefault("assets.root", DefaultAssetRoot)
	v.SetDefault("assets.source", AssetSourceHTTP)
	v.SetDefault("poll.interval", DefaultPollInterval)
	v.SetDefault("http.timeout", DefaultHTTPTimeout)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.profile", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("serve.addr", DefaultServeAddr)
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("log.verbose", false)
	v.SetDefault("thumbnail.width", DefaultThumbnailWidth)
	v.SetDefault("thumbnail.height", DefaultThumbnailHeight)
	v.SetDefault("markdown.style", DefaultMarkdownStyle)
}

// BindEnv makes every key overridable from SNAPFIX_* variables, with dots
// replaced by underscores (backend.url -> SNAPFIX_BACKEND_URL).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BackendURL:   strings.TrimRight(strings.TrimSpace(v.GetString("backend.url")), "/"),
		FeedPath:     strings.TrimSpace(v.GetString("feed.path")),
		AssetRoot:    strings.Trim(strings.TrimSpace(v.GetString("assets.root")), "/"),
		AssetSource:  strings.ToLower(strings.TrimSpace(v.GetString("assets.source"))),
		PollInterval: v.GetDuration("poll.interval"),
		HTTPTimeout:  v.GetDuration("http.timeout"),
		S3: S3{
			Bucket:       strings.TrimSpace(v.GetString("s3.bucket")),
			Prefix:       strings.TrimSpace(v.GetString("s3.prefix")),
			Region:       strings.TrimSpace(v.GetString("s3.region")),
			Profile:      strings.TrimSpace(v.GetString("s3.profile")),
			UsePathStyle: v.GetBool("s3.use_path_style"),
		},
		ServeAddr:       v.GetString("serve.addr"),
		LogFile:         v.GetString("log.file"),
		Verbose:         v.GetBool("log.verbose"),
		ThumbnailWidth:  v.GetInt("thumbnail.width"),
		ThumbnailHeight: v.GetInt("thumbnail.height"),
		MarkdownStyle:   v.GetString("markdown.style"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the viewer cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend.url %q", c.BackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url must be http or https, got %q", u.Scheme)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", c.PollInterval)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTPTimeout)
	}
	if c.ThumbnailWidth <= 0 || c.ThumbnailHeight <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got %dx%d", c.ThumbnailWidth, c.ThumbnailHeight)
	}

	switch c.AssetSource {
	case AssetSourceHTTP:
	case AssetSourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when assets.source is %q", AssetSourceS3)
		}
	default:
		return fmt.Errorf("unknown assets.source %q (want %q or %q)", c.AssetSource, AssetSourceHTTP, AssetSourceS3)
	}
	return nil
}
