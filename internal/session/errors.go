package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/cpplive/internal/scanner"
)

// ErrIncompleteBuffer matches every *IncompleteError.
var ErrIncompleteBuffer = errors.New("code will not run, please check brackets and curly brackets")

// IncompleteError reports unbalanced nesting left open in the buffer.
type IncompleteError struct {
	Depth scanner.Depth
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s (parens: %d, braces: %d)", ErrIncompleteBuffer, e.Depth.Parens, e.Depth.Braces)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteBuffer
}

// CompileError carries the compiler's verbatim diagnostics.
type CompileError struct {
	ExitCode    int
	Diagnostics string
	Duration    time.Duration
	TimedOut    bool
}

func (e *CompileError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("compilation timed out after %s", e.Duration.Round(time.Millisecond))
	}
	return fmt.Sprintf("compilation failed with exit code %d", e.ExitCode)
}
