package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snapfix/api"
	"snapfix/feed"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web viewer",
	Long: `Serve the analysis feed as a web page. The server polls the backend
itself; every page view reads the latest snapshot.

Endpoints:
  GET /                      viewer (?selected=<filename>)
  GET /screenshots/<file>    screenshot passthrough
  GET /api/health            health check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := newAssetSource(ctx, cfg)
	if err != nil {
		return err
	}

	store := feed.NewStore()
	poller := feed.NewPoller(newFeedClient(cfg), cfg.PollInterval, store)
	if err := poller.Start(); err != nil {
		return err
	}
	defer poller.Stop()

	srv := &http.Server{
		Addr: cfg.ServeAddr,
		Handler: api.NewRouter(store, source, api.Options{
			AssetRoot:    cfg.AssetRoot,
			PollInterval: cfg.PollInterval,
			Verbose:      cfg.Verbose,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 Web viewer listening on %s (backend %s)", cfg.ServeAddr, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("🛑 Shutting down web viewer...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  shutdown: %v", err)
	}
	log.Printf("👋 Web viewer stopped")
	return nil
}
