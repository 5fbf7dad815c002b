package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/cpplive/internal/broadcast"
	"github.com/specialistvlad/cpplive/internal/buffer"
	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/specialistvlad/cpplive/internal/display"
	"github.com/specialistvlad/cpplive/internal/fsutil"
	"github.com/specialistvlad/cpplive/internal/info"
	"github.com/specialistvlad/cpplive/internal/repl"
	"github.com/specialistvlad/cpplive/internal/settings"
	"github.com/specialistvlad/cpplive/internal/toolchain"
)

// Run executes one interactive session and returns when the user exits.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	stored, err := settings.LoadOrCreate(ctx, a.config.SettingsPath, a.detect)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	effective, err := settings.WithEnv(stored)
	if err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}

	workDir, cleanup, err := a.workDir()
	if err != nil {
		return err
	}
	defer cleanup()
	a.logger.Debug("Work directory ready.", "path", workDir)

	buf := buffer.New()
	if a.config.PreloadPath != "" {
		lines, err := fsutil.ReadLines(a.config.PreloadPath)
		if err != nil {
			return fmt.Errorf("failed to preload source: %w", err)
		}
		buf.Replace(lines)
		a.logger.Debug("Source preloaded.", "path", a.config.PreloadPath, "lines", len(lines))
	}

	reader := a.reader
	if reader == nil {
		reader, err = repl.NewTerminalReader(a.config.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
	}
	defer reader.Close()

	loop, err := repl.New(ctx, repl.Config{
		Reader:       reader,
		Buffer:       buf,
		Settings:     stored,
		SettingsPath: a.config.SettingsPath,
		NewToolchain: func(s *settings.Settings) (toolchain.Toolchain, error) {
			return a.newToolchain(s, workDir)
		},
		NewRenderer: func(s *settings.Settings) *display.Renderer {
			return display.New(a.outW, s, a.display)
		},
		NewPublisher: a.publisher,
		Detect:       a.detect,
		Banner:       info.Banner(info.SystemInfo(ctx, effective.Compiler)),
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	err = loop.Run(ctx)
	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

// workDir returns the configured directory, or a fresh temporary one that
// the returned cleanup removes.
func (a *App) workDir() (string, func(), error) {
	if a.config.WorkDir != "" {
		if err := os.MkdirAll(a.config.WorkDir, 0o755); err != nil {
			return "", nil, fmt.Errorf("failed to create work directory: %w", err)
		}
		return a.config.WorkDir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "cpplive-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			a.logger.Warn("Failed to remove work directory.", "path", dir, "error", err)
		}
	}, nil
}

// publisher connects to the broadcast URL. A failed connection is logged and
// the session continues without broadcasting.
func (a *App) publisher(ctx context.Context, s *settings.Settings) broadcast.Publisher {
	pub, err := a.newPublisher(ctx, s.BroadcastURL)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Broadcast disabled.", "url", s.BroadcastURL, "error", err)
		return broadcast.Nop{}
	}
	return pub
}
