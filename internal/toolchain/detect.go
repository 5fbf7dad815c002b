package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/specialistvlad/cpplive/internal/ctxlog"
)

// DefaultCompiler is used when no candidate answers --version.
const DefaultCompiler = "g++"

// Candidates lists compilers in order of preference. clang++ comes first
// because it compiles small programs faster.
var Candidates = []string{"clang++", DefaultCompiler}

// DetectCompiler returns the first candidate that is on PATH and answers
// --version successfully, falling back to DefaultCompiler.
func DetectCompiler(ctx context.Context, candidates ...string) string {
	logger := ctxlog.FromContext(ctx)
	if len(candidates) == 0 {
		candidates = Candidates
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err != nil {
			logger.Debug("Compiler candidate not found.", "compiler", c)
			continue
		}
		if err := exec.CommandContext(ctx, c, "--version").Run(); err != nil {
			logger.Debug("Compiler candidate did not answer --version.", "compiler", c, "error", err)
			continue
		}
		logger.Debug("Compiler detected.", "compiler", c)
		return c
	}
	return DefaultCompiler
}

// Version returns the last word of the first line printed by
// `compiler --version`, which is the version number for gcc and most clang
// builds.
func Version(ctx context.Context, compiler string) (string, error) {
	out, err := exec.CommandContext(ctx, compiler, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s version: %w", compiler, err)
	}
	return parseVersion(string(out)), nil
}

func parseVersion(out string) string {
	first, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
