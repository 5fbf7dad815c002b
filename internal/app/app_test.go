package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/cpplive/internal/settings"
	"github.com/specialistvlad/cpplive/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

type scriptReader struct {
	lines  []string
	closed bool
}

func (s *scriptReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) SetPrompt(string) {}
func (s *scriptReader) Close() error     { s.closed = true; return nil }

type echoToolchain struct {
	workDirs []string
	sources  []string
}

func (e *echoToolchain) factory(s *settings.Settings, workDir string) (toolchain.Toolchain, error) {
	e.workDirs = append(e.workDirs, workDir)
	return e, nil
}

func (e *echoToolchain) Compile(ctx context.Context, source string) (*toolchain.CompileResult, error) {
	e.sources = append(e.sources, source)
	return &toolchain.CompileResult{Success: true, BinaryPath: "temp.exe", Duration: time.Millisecond}, nil
}

func (e *echoToolchain) Execute(ctx context.Context, binaryPath string) (*toolchain.ExecResult, error) {
	return &toolchain.ExecResult{Stdout: "hello"}, nil
}

func setupApp(t *testing.T, cfg Config, lines ...string) (*App, *bytes.Buffer, *SafeBuffer, *echoToolchain, *scriptReader) {
	t.Helper()
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = filepath.Join(t.TempDir(), "settings.hcl")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &bytes.Buffer{}, &SafeBuffer{}
	tc, reader := &echoToolchain{}, &scriptReader{lines: lines}
	a := NewApp(out, logs, config,
		WithReader(reader),
		WithToolchain(tc.factory),
		WithCompilerDetection(func(context.Context) string { return "g++" }),
	)
	return a, out, logs, tc, reader
}

func TestApp_Run(t *testing.T) {
	// --- Arrange ---
	a, out, logs, tc, reader := setupApp(t, Config{}, `cout << "hello";`, "end", "exit")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "C++ Live Interpreter")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "program exited with code 0")
	require.Len(t, tc.sources, 1)
	assert.Contains(t, tc.sources[0], `cout << "hello";`)
	assert.True(t, reader.closed)
	assert.Contains(t, logs.String(), "App.Run method finished.")

	require.Len(t, tc.workDirs, 1)
	assert.NoDirExists(t, tc.workDirs[0], "temporary work directory is removed on exit")
}

func TestApp_Run_CreatesSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	a, _, _, _, _ := setupApp(t, Config{SettingsPath: path})

	require.NoError(t, a.Run(context.Background()))

	s, err := settings.Load(path, "unused")
	require.NoError(t, err)
	assert.Equal(t, "g++", s.Compiler)
}

func TestApp_Run_ExplicitWorkDirIsKept(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	a, _, _, tc, _ := setupApp(t, Config{WorkDir: dir})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, []string{dir}, tc.workDirs)
	assert.DirExists(t, dir)
}

func TestApp_Run_Preload(t *testing.T) {
	src := filepath.Join(t.TempDir(), "main.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int x = 42;\nx\n"), 0o644))
	a, _, _, tc, _ := setupApp(t, Config{PreloadPath: src}, "run")

	require.NoError(t, a.Run(context.Background()))

	require.Len(t, tc.sources, 1)
	assert.Contains(t, tc.sources[0], "int x = 42;")
	assert.Contains(t, tc.sources[0], "print(x);")
}

func TestApp_Run_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(broken, []byte("compiler = "), 0o644))

	testCases := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "bad settings file", cfg: Config{SettingsPath: broken}, want: "failed to load settings"},
		{name: "missing preload", cfg: Config{PreloadPath: filepath.Join(dir, "missing.cpp")}, want: "failed to preload source"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _, _, _ := setupApp(t, tc.cfg)

			err := a.Run(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewConfig_RequiresSettingsPath(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name   string
		level  string
		format string
		want   string
		hidden bool
	}{
		{name: "text info", level: "info", format: "text", want: "msg=hello"},
		{name: "json info", level: "info", format: "json", want: `"msg":"hello"`},
		{name: "warn hides info", level: "warn", format: "text", hidden: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}

			newLogger(tc.level, tc.format, buf).Info("hello")

			if tc.hidden {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}
