package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/cpplive/internal/buffer"
	"github.com/specialistvlad/cpplive/internal/scanner"
	"github.com/specialistvlad/cpplive/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolchain records what it was asked to do and answers with canned results.
type fakeToolchain struct {
	compileRes *toolchain.CompileResult
	compileErr error
	execRes    *toolchain.ExecResult

	compiled []string
	executed []string
}

func (f *fakeToolchain) Compile(ctx context.Context, source string) (*toolchain.CompileResult, error) {
	f.compiled = append(f.compiled, source)
	return f.compileRes, f.compileErr
}

func (f *fakeToolchain) Execute(ctx context.Context, binaryPath string) (*toolchain.ExecResult, error) {
	f.executed = append(f.executed, binaryPath)
	return f.execRes, nil
}

func okToolchain(stdout string) *fakeToolchain {
	return &fakeToolchain{
		compileRes: &toolchain.CompileResult{Success: true, BinaryPath: "/tmp/x/temp.exe", Duration: 40 * time.Millisecond},
		execRes:    &toolchain.ExecResult{Stdout: stdout, Duration: 2 * time.Millisecond},
	}
}

func TestRun_BareExpression(t *testing.T) {
	// --- Arrange ---
	tc := okToolchain("2\n")
	s := New(tc, buffer.New("1 + 1"))

	// --- Act ---
	res, err := s.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, tc.compiled, 1)
	assert.Contains(t, tc.compiled[0], "print(1 + 1);")
	assert.Equal(t, []string{"/tmp/x/temp.exe"}, tc.executed)
	assert.Equal(t, "2\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.Failed())
	assert.Equal(t, 40*time.Millisecond, res.CompileDuration)
	assert.Equal(t, 2*time.Millisecond, res.RunDuration)
	assert.Equal(t, 42*time.Millisecond, res.Total())
	assert.Equal(t, 1, s.Buffer().Len(), "Run must not clear the buffer")
}

func TestRun_IncompleteBuffer(t *testing.T) {
	tc := okToolchain("")
	s := New(tc, buffer.New("if (1) {"))

	res, err := s.Run(context.Background())

	require.ErrorIs(t, err, ErrIncompleteBuffer)
	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, scanner.Depth{Braces: 1}, incomplete.Depth)
	assert.Nil(t, res)
	assert.Empty(t, tc.compiled, "no compile may be attempted")
	assert.Equal(t, []string{"if (1) {"}, s.Buffer().Snapshot())
}

func TestRun_CompileFailureSkipsExecution(t *testing.T) {
	tc := &fakeToolchain{
		compileRes: &toolchain.CompileResult{Success: false, ExitCode: 1, Diagnostics: "temp.cpp:7: error: 'y' was not declared"},
	}
	s := New(tc, buffer.New("int x = y;"))

	_, err := s.Commit(context.Background())

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, 1, compileErr.ExitCode)
	assert.Contains(t, compileErr.Diagnostics, "'y' was not declared")
	assert.Empty(t, tc.executed)
	assert.Equal(t, 1, s.Buffer().Len(), "buffer is kept after a compile failure")
}

func TestRun_ToolchainError(t *testing.T) {
	tc := &fakeToolchain{compileErr: errors.New("exec: \"g++\": executable file not found in $PATH")}
	s := New(tc, buffer.New("1"))

	_, err := s.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile phase")
}

func TestCommit_ClearsAfterExecution(t *testing.T) {
	tc := okToolchain("")
	tc.execRes.ExitCode = 3
	tc.execRes.Stderr = "boom\n"
	s := New(tc, buffer.New("int x = 1;", "return 3;"))

	res, err := s.Commit(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, 0, s.Buffer().Len())
}

func TestRun_NeverWritesTemplateIntoBuffer(t *testing.T) {
	s := New(okToolchain(""), buffer.New("2 * 3"))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2 * 3"}, s.Buffer().Snapshot())
}
