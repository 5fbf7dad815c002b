package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/specialistvlad/cpplive/internal/ctxlog"
)

const (
	SourceName = "temp.cpp"
	BinaryName = "temp.exe"

	// waitDelay bounds how long Wait blocks on inherited pipes after a kill.
	waitDelay = time.Second
)

// ErrArtifact marks failures to write or remove the on-disk source and binary.
var ErrArtifact = errors.New("artifact i/o failed")

// Options configures a Native toolchain.
type Options struct {
	Compiler       string
	Flags          []string
	WorkDir        string
	CompileTimeout time.Duration // zero means unbounded
	RunTimeout     time.Duration // zero means unbounded
	Stdin          io.Reader     // nil means the program reads from the null device
}

// Native drives an external compiler process.
type Native struct {
	opts Options
}

var _ Toolchain = (*Native)(nil)

// NewNative validates opts and resolves the work directory to an absolute
// path so the produced binary is never looked up through PATH.
func NewNative(opts Options) (*Native, error) {
	if opts.Compiler == "" {
		return nil, errors.New("compiler must not be empty")
	}
	if opts.WorkDir == "" {
		return nil, errors.New("work directory must not be empty")
	}
	abs, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve work directory %s: %w", opts.WorkDir, err)
	}
	opts.WorkDir = abs
	return &Native{opts: opts}, nil
}

// SourcePath is where the assembled source is written.
func (n *Native) SourcePath() string {
	return filepath.Join(n.opts.WorkDir, SourceName)
}

// BinaryPath is where the compiler is asked to place the executable.
func (n *Native) BinaryPath() string {
	return filepath.Join(n.opts.WorkDir, BinaryName)
}

// Args returns the compiler argument list for the current artifact paths.
func (n *Native) Args() []string {
	args := make([]string, 0, len(n.opts.Flags)+3)
	args = append(args, n.opts.Flags...)
	return append(args, "-o", n.BinaryPath(), n.SourcePath())
}

// Compile implements Toolchain.
func (n *Native) Compile(ctx context.Context, source string) (*CompileResult, error) {
	logger := ctxlog.FromContext(ctx)

	if err := n.Cleanup(); err != nil {
		return nil, err
	}
	if err := os.WriteFile(n.SourcePath(), []byte(source), 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write source file: %w", ErrArtifact, err)
	}

	ctx, cancel := withOptionalTimeout(ctx, n.opts.CompileTimeout)
	defer cancel()

	args := n.Args()
	logger.Debug("Invoking compiler.", "compiler", n.opts.Compiler, "args", args)

	var diag bytes.Buffer
	cmd := exec.CommandContext(ctx, n.opts.Compiler, args...)
	cmd.Dir = n.opts.WorkDir
	cmd.Stdout = &diag
	cmd.Stderr = &diag
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	res := &CompileResult{
		Diagnostics: diag.String(),
		BinaryPath:  n.BinaryPath(),
		Duration:    time.Since(start),
	}

	code, err := exitCode(ctx, err)
	if err != nil {
		return nil, fmt.Errorf("failed to run compiler %q: %w", n.opts.Compiler, err)
	}
	res.ExitCode = code
	res.Success = code == 0
	res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
	logger.Debug("Compiler finished.", "exit_code", code, "duration", res.Duration, "timed_out", res.TimedOut)
	return res, nil
}

// Execute implements Toolchain.
func (n *Native) Execute(ctx context.Context, binaryPath string) (*ExecResult, error) {
	logger := ctxlog.FromContext(ctx)

	ctx, cancel := withOptionalTimeout(ctx, n.opts.RunTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Dir = n.opts.WorkDir
	cmd.Stdin = n.opts.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logger.Debug("Executing program.", "binary", binaryPath)
	start := time.Now()
	err := cmd.Run()
	res := &ExecResult{Duration: time.Since(start)}

	code, err := exitCode(ctx, err)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", binaryPath, err)
	}
	res.ExitCode = code
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
	logger.Debug("Program finished.", "exit_code", code, "duration", res.Duration, "timed_out", res.TimedOut)
	return res, nil
}

// Cleanup removes the source and binary artifacts if they exist.
func (n *Native) Cleanup() error {
	for _, p := range []string{n.SourcePath(), n.BinaryPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: failed to remove stale artifact %s: %w", ErrArtifact, p, err)
		}
	}
	return nil
}

// exitCode converts the error of a finished command into an exit status. A
// process killed by a signal reports the negated signal number. An
// error is returned only when the process could not be started or waited on
// for reasons other than ctx ending.
func exitCode(ctx context.Context, err error) (int, error) {
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := killSignal(exitErr); ok {
			return -sig, nil
		}
		return exitErr.ExitCode(), nil
	}
	if ctx.Err() != nil {
		return -1, nil
	}
	return 0, err
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
