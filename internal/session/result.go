package session

import (
	"time"

	"github.com/specialistvlad/cpplive/internal/assembler"
)

// Result is the outcome of one executed program.
type Result struct {
	Source          *assembler.Source
	ExitCode        int
	Stdout          string
	Stderr          string
	CompileDuration time.Duration
	RunDuration     time.Duration
	TimedOut        bool
}

// Failed reports a runtime failure: a non-zero exit, output on stderr or a
// killed program.
func (r *Result) Failed() bool {
	return r.ExitCode != 0 || r.Stderr != "" || r.TimedOut
}

// Total is the elapsed time of both phases.
func (r *Result) Total() time.Duration {
	return r.CompileDuration + r.RunDuration
}
