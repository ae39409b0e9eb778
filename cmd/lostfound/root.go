package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/erazemk/lostfound/internal/clipboard"
	"github.com/erazemk/lostfound/internal/config"
	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/metrics"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/tracker"
	"github.com/erazemk/lostfound/internal/ui"
)

var (
	cfg     *config.Config
	backend kv.Store
	app     *tracker.Tracker

	closeLog = func() {}

	// Global flags
	configPath  string
	dataPath    string
	backendName string
	logPath     string
)

var rootCmd = &cobra.Command{
	Use:   "lostfound",
	Short: "Lost & found item tracker",
	Long: ui.StyleTitle.Render("Lost & Found") + "\n\n" +
		"Report lost and found items, search them, and mark them returned.\n" +
		"Run 'lostfound serve' for the web interface.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "storage backend: sqlite or bolt (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file path (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(themeCmd)
}

// execute runs the CLI with args and releases the store afterwards.
func execute(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer closeApp()
	return rootCmd.Execute()
}

// initializeApp loads the config, sets up logging and opens the store.
func initializeApp(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataPath = dataPath
	}
	if flags.Changed("backend") {
		c.Backend = backendName
	}
	if flags.Changed("log") {
		c.LogPath = logPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	// Only the server logs routine events to the terminal.
	consoleLevel := level
	if cmd != serveCmd && consoleLevel < slog.LevelWarn {
		consoleLevel = slog.LevelWarn
	}
	closeLog = setupLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.LogPath, level, consoleLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.DataPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	backend, err = kv.Open(cfg.Backend, cfg.DataPath)
	if err != nil {
		return err
	}

	app = tracker.New(backend, clipboard.System{}, metrics.New())
	app.Renderer.DateLayout = cfg.DisplayDateFormat
	app.Form.LargeImageBytes = cfg.LargeImageBytes

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	theme, err := app.Theme(ctx)
	if err != nil {
		slog.Warn("failed to load theme", "error", err)
	}
	ui.SetTheme(theme)

	out := cmd.OutOrStdout()
	cmd.SetContext(notify.WithNotifier(ctx, notify.Func(func(_ context.Context, n notify.Notice) {
		fmt.Fprintln(out, ui.FormatNotice(n))
	})))
	return nil
}

func closeApp() {
	if backend != nil {
		if err := backend.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
		backend = nil
	}
	closeLog()
	closeLog = func() {}
}
