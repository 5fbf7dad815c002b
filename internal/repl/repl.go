package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/cpplive/internal/broadcast"
	"github.com/specialistvlad/cpplive/internal/buffer"
	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/specialistvlad/cpplive/internal/display"
	"github.com/specialistvlad/cpplive/internal/fsutil"
	"github.com/specialistvlad/cpplive/internal/info"
	"github.com/specialistvlad/cpplive/internal/session"
	"github.com/specialistvlad/cpplive/internal/settings"
	"github.com/specialistvlad/cpplive/internal/toolchain"
)

const (
	cmdExit       = "exit"
	cmdHelp       = "help"
	cmdCredits    = "credits"
	cmdLicense    = "license"
	cmdVersion    = "version"
	cmdSettings   = "settings"
	cmdRun        = "run"
	cmdEnd        = "end"
	cmdPop        = "pop"
	cmdClear      = "clear"
	cmdShow       = "show"
	cmdLoad       = "load"
	cmdLoadSample = "_load_sample"

	// DefaultSample is loaded by `load` without an argument.
	DefaultSample = "sample.cpp"

	ctrlX = "\x18"
)

// Config wires a REPL. NewToolchain, NewRenderer and NewPublisher are called
// again every time settings are saved so the new values take effect.
type Config struct {
	Reader       LineReader
	Buffer       *buffer.Buffer
	Settings     *settings.Settings
	SettingsPath string
	NewToolchain func(*settings.Settings) (toolchain.Toolchain, error)
	NewRenderer  func(*settings.Settings) *display.Renderer
	NewPublisher func(context.Context, *settings.Settings) broadcast.Publisher
	Detect       func(context.Context) string
	Banner       []string
	SamplePath   string
}

// REPL is the interactive loop.
type REPL struct {
	cfg      Config
	in       LineReader
	buf      *buffer.Buffer
	sess     *session.Session
	render   *display.Renderer
	pub      broadcast.Publisher
	pubURL   string
	settings *settings.Settings
}

// New builds a REPL. cfg.Settings are the persisted values; environment
// overrides are applied on top of them before any component is created.
func New(ctx context.Context, cfg Config) (*REPL, error) {
	if cfg.SamplePath == "" {
		cfg.SamplePath = DefaultSample
	}
	if cfg.Buffer == nil {
		cfg.Buffer = buffer.New()
	}
	if cfg.NewPublisher == nil {
		cfg.NewPublisher = func(context.Context, *settings.Settings) broadcast.Publisher { return broadcast.Nop{} }
	}
	r := &REPL{cfg: cfg, in: cfg.Reader, buf: cfg.Buffer}
	if err := r.apply(ctx, cfg.Settings); err != nil {
		return nil, err
	}
	return r, nil
}

// Session returns the active session.
func (r *REPL) Session() *session.Session {
	return r.sess
}

// Run prints the banner and processes lines until exit or end of input. It
// returns an error only for failures the session cannot recover from.
func (r *REPL) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer func() { r.pub.Close() }()

	r.render.Banner(r.cfg.Banner)
	for {
		line, err := r.in.Readline()
		if errors.Is(err, ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			logger.Debug("Input closed, leaving loop.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		exit, err := r.Execute(ctx, line)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// Execute handles a single input line. It reports whether the loop should end.
func (r *REPL) Execute(ctx context.Context, line string) (bool, error) {
	if line == ctrlX {
		line = cmdExit
	}

	switch line {
	case cmdExit:
		return true, nil
	case cmdHelp, cmdCredits, cmdLicense, cmdVersion:
		return false, info.Print(r.render.Writer(), line)
	case cmdSettings:
		return false, r.settingsMenu(ctx)
	case cmdRun, "":
		return false, r.run(ctx, false)
	case cmdEnd:
		return false, r.run(ctx, true)
	case cmdPop:
		if _, err := r.buf.PopLast(); err != nil {
			r.render.Error(err)
		}
	case cmdClear:
		r.render.ClearScreen()
		r.buf.Clear()
		r.render.Banner(r.cfg.Banner)
	case cmdShow:
		if err := r.render.ShowCode(r.buf.Snapshot()); err != nil {
			r.render.Error(err)
		}
	case cmdLoadSample:
		r.load(ctx, r.cfg.SamplePath)
	default:
		if path, ok := loadArg(line); ok {
			if path == "" {
				path = r.cfg.SamplePath
			}
			r.load(ctx, path)
			return false, nil
		}
		r.buf.Append(line)
	}
	return false, nil
}

// loadArg recognizes `load` and `load <path>`.
func loadArg(line string) (string, bool) {
	if line == cmdLoad {
		return "", true
	}
	rest, ok := strings.CutPrefix(line, cmdLoad+" ")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func (r *REPL) load(ctx context.Context, path string) {
	lines, err := fsutil.ReadLines(path)
	if err != nil {
		r.render.Error(err)
		return
	}
	r.buf.Replace(lines)
	ctxlog.FromContext(ctx).Debug("Buffer loaded from file.", "path", path, "lines", len(lines))
}

// run executes the buffer; commit clears it afterwards. Compile and balance
// problems are shown to the user; only artifact I/O failures are returned.
func (r *REPL) run(ctx context.Context, commit bool) error {
	logger := ctxlog.FromContext(ctx)

	var (
		res *session.Result
		err error
	)
	if commit {
		res, err = r.sess.Commit(ctx)
	} else {
		res, err = r.sess.Run(ctx)
	}
	if err != nil {
		r.render.Error(err)
		if errors.Is(err, toolchain.ErrArtifact) {
			return err
		}
		return nil
	}

	r.render.Result(res)
	if err := r.pub.Publish(ctx, broadcast.NewEvent(res)); err != nil {
		logger.Warn("Failed to publish run result.", "error", err)
	}
	return nil
}
