package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/specialistvlad/cpplive/internal/broadcast"
	"github.com/specialistvlad/cpplive/internal/display"
	"github.com/specialistvlad/cpplive/internal/repl"
	"github.com/specialistvlad/cpplive/internal/settings"
	"github.com/specialistvlad/cpplive/internal/toolchain"
	"github.com/xyproto/env/v2"
)

// ToolchainFactory builds the toolchain for the effective settings and the
// session work directory.
type ToolchainFactory func(s *settings.Settings, workDir string) (toolchain.Toolchain, error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	reader       repl.LineReader
	newToolchain ToolchainFactory
	newPublisher func(context.Context, string) (broadcast.Publisher, error)
	detect       func(context.Context) string
	display      display.Options
}

// Option customizes an App, mostly for tests.
type Option func(*App)

// WithReader replaces the terminal line editor.
func WithReader(r repl.LineReader) Option {
	return func(a *App) { a.reader = r }
}

// WithToolchain replaces the native compiler toolchain.
func WithToolchain(f ToolchainFactory) Option {
	return func(a *App) { a.newToolchain = f }
}

// WithCompilerDetection replaces the lookup of an installed compiler.
func WithCompilerDetection(f func(context.Context) string) Option {
	return func(a *App) { a.detect = f }
}

// NewApp is the constructor for the main application. User output goes to
// outW, diagnostics to logW through an isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	a := &App{
		outW:         outW,
		logger:       newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config:       cfg,
		newToolchain: nativeToolchain,
		newPublisher: broadcast.New,
		detect: func(ctx context.Context) string {
			return toolchain.DetectCompiler(ctx)
		},
		display: terminalOptions(outW),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("App created.", "settings", cfg.SettingsPath, "color", a.display.Color, "width", a.display.Width)
	return a
}

func nativeToolchain(s *settings.Settings, workDir string) (toolchain.Toolchain, error) {
	return toolchain.NewNative(toolchain.Options{
		Compiler:       s.Compiler,
		Flags:          s.CompilerFlags,
		WorkDir:        workDir,
		CompileTimeout: s.CompileTimeoutDuration(),
		RunTimeout:     s.RunTimeoutDuration(),
	})
}

// terminalOptions enables color and measures width only when w is a terminal
// that supports it. A non-empty NO_COLOR disables color.
func terminalOptions(w io.Writer) display.Options {
	f, ok := w.(*os.File)
	if !ok {
		return display.Options{}
	}
	return display.Options{
		Color: color.Enable && color.SupportColor() && env.Str("NO_COLOR") == "",
		Width: display.TerminalWidth(f.Fd()),
	}
}
