package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snapfix/assets"
	"snapfix/common"
	"snapfix/config"
	"snapfix/feed"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "snapfix",
	Short: "Live viewer for SnapFix screenshot analyses",
	Long: `snapfix polls the SnapFix backend for screenshot analyses and shows
them newest first: a thumbnail grid and the selected analysis rendered
from Markdown.

  snapfix tui     # terminal viewer (default)
  snapfix serve   # web viewer`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/snapfix/config.yaml)")
	rootCmd.PersistentFlags().String("backend", config.DefaultBackendURL, "SnapFix backend base URL")
	rootCmd.PersistentFlags().Duration("interval", config.DefaultPollInterval, "poll interval")
	rootCmd.PersistentFlags().String("assets", config.AssetSourceHTTP, "screenshot source (http or s3)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")

	_ = viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("poll.interval", rootCmd.PersistentFlags().Lookup("interval"))
	_ = viper.BindPFlag("assets.source", rootCmd.PersistentFlags().Lookup("assets"))
	_ = viper.BindPFlag("log.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "snapfix"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	config.BindEnv(viper.GetViper())
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Failed to read config file:", err)
		os.Exit(1)
	}
}

// loadConfig resolves flags, environment and config file into a Config
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newFeedClient creates the feed client for cfg
func newFeedClient(cfg config.Config) *feed.Client {
	return feed.NewClient(cfg.BackendURL, cfg.FeedPath, cfg.HTTPTimeout)
}

// newAssetSource opens the configured screenshot source
func newAssetSource(ctx context.Context, cfg config.Config) (assets.Source, error) {
	switch cfg.AssetSource {
	case config.AssetSourceS3:
		s3c, err := common.NewS3(ctx, common.S3Config{
			Region:       cfg.S3.Region,
			Profile:      cfg.S3.Profile,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return assets.NewS3Source(s3c, cfg.S3.Bucket, cfg.S3.Prefix), nil
	default:
		return assets.NewHTTPSource(cfg.BackendURL, cfg.AssetRoot, cfg.HTTPTimeout), nil
	}
}
