// Package settings persists the user-editable options of the interpreter in
// an HCL file. The loaded value is handed explicitly to the toolchain and
// display components; nothing reads it from global state.
package settings

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPath is the settings file used when none is given on the command line.
const DefaultPath = "settings.hcl"

// Recognized keys, in display order.
const (
	KeyCompiler        = "compiler"
	KeyCompilerFlags   = "compiler_flags"
	KeyTheme           = "theme"
	KeyLineNumbers     = "line_numbers"
	KeyWordWrap        = "word_wrap"
	KeyBackgroundColor = "background_color"
	KeyCompileTimeout  = "compile_timeout"
	KeyRunTimeout      = "run_timeout"
	KeyBroadcastURL    = "broadcast_url"
)

var Keys = []string{
	KeyCompiler,
	KeyCompilerFlags,
	KeyTheme,
	KeyLineNumbers,
	KeyWordWrap,
	KeyBackgroundColor,
	KeyCompileTimeout,
	KeyRunTimeout,
	KeyBroadcastURL,
}

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("invalid key")

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Settings is the persisted configuration.
type Settings struct {
	Compiler        string   `hcl:"compiler,optional"`
	CompilerFlags   []string `hcl:"compiler_flags,optional"`
	Theme           string   `hcl:"theme,optional"`
	LineNumbers     bool     `hcl:"line_numbers,optional"`
	WordWrap        bool     `hcl:"word_wrap,optional"`
	BackgroundColor string   `hcl:"background_color,optional"`
	CompileTimeout  string   `hcl:"compile_timeout,optional"`
	RunTimeout      string   `hcl:"run_timeout,optional"`
	BroadcastURL    string   `hcl:"broadcast_url,optional"`
}

// Defaults returns the factory settings for the given compiler.
func Defaults(compiler string) *Settings {
	return &Settings{
		Compiler:        compiler,
		CompilerFlags:   []string{},
		Theme:           "solarized-dark",
		LineNumbers:     true,
		WordWrap:        true,
		BackgroundColor: "#2E3440",
		CompileTimeout:  "0s",
		RunTimeout:      "0s",
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.CompilerFlags = append([]string{}, s.CompilerFlags...)
	return &c
}

// Validate checks every field that has a constrained format.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Compiler) == "" {
		return errors.New("compiler must not be empty")
	}
	if s.BackgroundColor != "" && !hexColor.MatchString(s.BackgroundColor) {
		return fmt.Errorf("background_color %q is not a hex color like #2E3440", s.BackgroundColor)
	}
	if _, err := parseTimeout(KeyCompileTimeout, s.CompileTimeout); err != nil {
		return err
	}
	if _, err := parseTimeout(KeyRunTimeout, s.RunTimeout); err != nil {
		return err
	}
	return nil
}

// CompileTimeoutDuration parses CompileTimeout; zero means unbounded.
func (s *Settings) CompileTimeoutDuration() time.Duration {
	d, _ := parseTimeout(KeyCompileTimeout, s.CompileTimeout)
	return d
}

// RunTimeoutDuration parses RunTimeout; zero means unbounded.
func (s *Settings) RunTimeoutDuration() time.Duration {
	d, _ := parseTimeout(KeyRunTimeout, s.RunTimeout)
	return d
}

func parseTimeout(key, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// Get returns the printable value of key.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyCompiler:
		return s.Compiler, nil
	case KeyCompilerFlags:
		return strings.Join(s.CompilerFlags, " "), nil
	case KeyTheme:
		return s.Theme, nil
	case KeyLineNumbers:
		return strconv.FormatBool(s.LineNumbers), nil
	case KeyWordWrap:
		return strconv.FormatBool(s.WordWrap), nil
	case KeyBackgroundColor:
		return s.BackgroundColor, nil
	case KeyCompileTimeout:
		return s.CompileTimeout, nil
	case KeyRunTimeout:
		return s.RunTimeout, nil
	case KeyBroadcastURL:
		return s.BroadcastURL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value for key and stores it. The receiver is left unchanged when
// the value is rejected.
func (s *Settings) Set(key, value string) error {
	next := s.Clone()
	switch key {
	case KeyCompiler:
		next.Compiler = value
	case KeyCompilerFlags:
		next.CompilerFlags = strings.Fields(value)
	case KeyTheme:
		next.Theme = value
	case KeyLineNumbers, KeyWordWrap:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects True or False, got %q", key, value)
		}
		if key == KeyLineNumbers {
			next.LineNumbers = b
		} else {
			next.WordWrap = b
		}
	case KeyBackgroundColor:
		next.BackgroundColor = value
	case KeyCompileTimeout:
		next.CompileTimeout = value
	case KeyRunTimeout:
		next.RunTimeout = value
	case KeyBroadcastURL:
		next.BroadcastURL = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = *next
	return nil
}
