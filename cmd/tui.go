package cmd

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snapfix/assets"
	"snapfix/feed"
	"snapfix/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal viewer",
	Long: `Show the analysis feed in the terminal. Logs go to the file set by
--log-file so they do not corrupt the screen.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("log-file", "", "log file (default snapfix.log)")
	tuiCmd.Flags().String("style", "", "markdown style: dark, light, notty, ...")
	_ = viper.BindPFlag("log.file", tuiCmd.Flags().Lookup("log-file"))
	_ = viper.BindPFlag("markdown.style", tuiCmd.Flags().Lookup("style"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.LogFile, "snapfix")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	source, err := newAssetSource(context.Background(), cfg)
	if err != nil {
		return err
	}

	client := newFeedClient(cfg)
	log.Printf("🚀 Starting terminal viewer for %s (every %s)", client.BaseURL(), cfg.PollInterval)

	// The poller only sends messages into the program; it is wired after
	// the program exists.
	var poller *feed.Poller
	model := tui.NewModel(tui.Options{
		Thumbnailer:   assets.NewThumbnailer(source, cfg.ThumbnailWidth, cfg.ThumbnailHeight),
		Refresher:     refresherFunc(func() { poller.Trigger() }),
		BackendURL:    client.BaseURL(),
		MarkdownStyle: cfg.MarkdownStyle,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	poller = feed.NewPoller(client, cfg.PollInterval, tui.Handler{Send: p.Send})
	if err := poller.Start(); err != nil {
		return err
	}
	defer poller.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("👋 Terminal viewer stopped")
	return nil
}

// refresherFunc adapts a function to tui.Refresher
type refresherFunc func()

func (f refresherFunc) Trigger() { f() }
