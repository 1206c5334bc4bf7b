package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/config"
	"github.com/five82/readinglist/internal/prefs"
	"github.com/five82/readinglist/internal/ui"
)

// Options configure the readinglist application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/readinglist/prefs.toml
	OpenPath   string // route shown first, "/" when empty
}

// Run boots the readinglist TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	client, err := books.NewClient(cfg.APIURL, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init books client: %w", err)
	}
	log.Printf("readinglist starting: api=%s timeout=%s", client.BaseURL(), cfg.Timeout)

	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   client,
		Config:    &cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		StartPath: opts.OpenPath,
	})
}

// setupLogging points the standard logger at the configured log file; the
// terminal belongs to the UI while it runs.
func setupLogging(cfg config.Config) (io.Closer, error) {
	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(cfg.LogFile, "readinglist")
}
