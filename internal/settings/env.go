package settings

import (
	"github.com/xyproto/env/v2"
)

// Environment variables that take precedence over the settings file for the
// current process. They are never written back by Save.
const (
	EnvCompiler       = "CPPLIVE_COMPILER"
	EnvTheme          = "CPPLIVE_THEME"
	EnvCompileTimeout = "CPPLIVE_COMPILE_TIMEOUT"
	EnvRunTimeout     = "CPPLIVE_RUN_TIMEOUT"
	EnvBroadcastURL   = "CPPLIVE_BROADCAST_URL"
)

// WithEnv returns a copy of s with environment overrides applied and validated.
// The environment is re-read on every call.
func WithEnv(s *Settings) (*Settings, error) {
	env.Load()
	out := s.Clone()
	out.Compiler = env.Str(EnvCompiler, out.Compiler)
	out.Theme = env.Str(EnvTheme, out.Theme)
	out.CompileTimeout = env.Str(EnvCompileTimeout, out.CompileTimeout)
	out.RunTimeout = env.Str(EnvRunTimeout, out.RunTimeout)
	out.BroadcastURL = env.Str(EnvBroadcastURL, out.BroadcastURL)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
