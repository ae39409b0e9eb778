package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to
// stderr. When file is set, every enabled record is also written there.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
	file   slog.Handler
}

func (lr *levelRouter) Enabled(ctx context.Context, level slog.Level) bool {
	if lr.file != nil && lr.file.Enabled(ctx, level) {
		return true
	}
	return lr.stdout.Enabled(ctx, level)
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if lr.file != nil && lr.file.Enabled(ctx, r.Level) {
		if err := lr.file.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if r.Level >= slog.LevelError {
		if lr.stderr.Enabled(ctx, r.Level) {
			return lr.stderr.Handle(ctx, r)
		}
		return nil
	}
	if lr.stdout.Enabled(ctx, r.Level) {
		return lr.stdout.Handle(ctx, r)
	}
	return nil
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
	if lr.file != nil {
		next.file = lr.file.WithAttrs(attrs)
	}
	return next
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	next := &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
	if lr.file != nil {
		next.file = lr.file.WithGroup(name)
	}
	return next
}

// setupLogger configures structured logging. INFO/WARN go to stdout and ERROR
// goes to stderr, filtered by consoleLevel. If logPath is non-empty, records
// at level and above are also written to that file, rotated by size.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(stdout, stderr io.Writer, logPath string, level, consoleLevel slog.Level) func() {
	consoleOpts := &slog.HandlerOptions{Level: consoleLevel}
	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdout, consoleOpts),
		stderr: slog.NewTextHandler(stderr, consoleOpts),
	}

	cleanup := func() {}
	if logPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		handler.file = slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: level})
		cleanup = func() { rotator.Close() }
	}

	slog.SetDefault(slog.New(handler))
	return cleanup
}

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
