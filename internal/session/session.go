// Package session ties the line buffer to the toolchain. A run assembles the
// buffered lines into a program, refuses to compile while brackets are
// unbalanced, then compiles and executes through the configured Toolchain.
package session

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cpplive/internal/assembler"
	"github.com/specialistvlad/cpplive/internal/buffer"
	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/specialistvlad/cpplive/internal/scanner"
	"github.com/specialistvlad/cpplive/internal/toolchain"
)

// Session is one interactive session. It is not safe for concurrent use;
// runs are fully synchronous.
type Session struct {
	buf *buffer.Buffer
	tc  toolchain.Toolchain
}

// New creates a session around an existing buffer. A nil buffer starts empty.
func New(tc toolchain.Toolchain, buf *buffer.Buffer) *Session {
	if buf == nil {
		buf = buffer.New()
	}
	return &Session{buf: buf, tc: tc}
}

// Buffer exposes the session's line buffer for editing commands.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Assemble derives the program text from the current buffer.
func (s *Session) Assemble() *assembler.Source {
	return assembler.Assemble(s.buf.Snapshot())
}

// Run compiles and executes the buffer without changing it.
//
// It returns *IncompleteError when brackets are unbalanced and *CompileError
// when the compiler rejects the program; in both cases nothing is executed.
// A program that exits non-zero is not an error, see Result.Failed.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	src := s.Assemble()
	logger.Debug("Source assembled.", "lines", len(src.Lines), "synthesized_main", src.SynthesizedMain)

	if depth := scanner.Check(src.Lines); !depth.Balanced() {
		logger.Debug("Buffer is incomplete.", "parens", depth.Parens, "braces", depth.Braces)
		return nil, &IncompleteError{Depth: depth}
	}

	cres, err := s.tc.Compile(ctx, src.String())
	if err != nil {
		return nil, fmt.Errorf("compile phase: %w", err)
	}
	if !cres.Success {
		return nil, &CompileError{
			ExitCode:    cres.ExitCode,
			Diagnostics: cres.Diagnostics,
			Duration:    cres.Duration,
			TimedOut:    cres.TimedOut,
		}
	}

	eres, err := s.tc.Execute(ctx, cres.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("run phase: %w", err)
	}

	return &Result{
		Source:          src,
		ExitCode:        eres.ExitCode,
		Stdout:          eres.Stdout,
		Stderr:          eres.Stderr,
		CompileDuration: cres.Duration,
		RunDuration:     eres.Duration,
		TimedOut:        eres.TimedOut,
	}, nil
}

// Commit runs the buffer and clears it once the program has been executed,
// whatever its exit code. On an incomplete buffer or a compile failure the
// buffer is kept so the user can fix it.
func (s *Session) Commit(ctx context.Context) (*Result, error) {
	res, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.buf.Clear()
	return res, nil
}
