package toolchain

import (
	"context"
	"time"
)

// Toolchain compiles and executes assembled programs.
type Toolchain interface {
	// Compile writes source to disk and invokes the compiler. A non-nil error
	// means the compiler could not be run at all; a failed compilation is
	// reported through CompileResult.Success.
	Compile(ctx context.Context, source string) (*CompileResult, error)

	// Execute runs a binary produced by a successful Compile.
	Execute(ctx context.Context, binaryPath string) (*ExecResult, error)
}

// CompileResult describes one compiler invocation.
type CompileResult struct {
	Success     bool
	Diagnostics string
	ExitCode    int
	BinaryPath  string
	Duration    time.Duration
	TimedOut    bool
}

// ExecResult describes one run of a compiled program.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}
