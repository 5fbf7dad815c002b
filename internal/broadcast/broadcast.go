// Package broadcast publishes run results to an external listener, such as a
// classroom dashboard following a live session. Publishing is best effort:
// a failed publish never affects the interactive session.
package broadcast

import (
	"context"

	"github.com/specialistvlad/cpplive/internal/session"
)

// EventName is the socket.io event carrying a run result.
const EventName = "run_result"

// Event is the payload published after each executed program.
type Event struct {
	Source    string `json:"source"`
	ExitCode  int    `json:"exit_code"`
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	CompileMS int64  `json:"compile_ms"`
	RunMS     int64  `json:"run_ms"`
	TimedOut  bool   `json:"timed_out"`
}

// NewEvent converts a session result into an Event.
func NewEvent(res *session.Result) *Event {
	e := &Event{
		ExitCode:  res.ExitCode,
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		CompileMS: res.CompileDuration.Milliseconds(),
		RunMS:     res.RunDuration.Milliseconds(),
		TimedOut:  res.TimedOut,
	}
	if res.Source != nil {
		e.Source = res.Source.String()
	}
	return e
}

// Map returns the event as a generic map, the shape socket.io serializes.
func (e *Event) Map() map[string]any {
	return map[string]any{
		"source":     e.Source,
		"exit_code":  e.ExitCode,
		"stdout":     e.Stdout,
		"stderr":     e.Stderr,
		"compile_ms": e.CompileMS,
		"run_ms":     e.RunMS,
		"timed_out":  e.TimedOut,
	}
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e *Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, *Event) error { return nil }
func (Nop) Close() error                          { return nil }

// New returns a socket.io publisher for url, or Nop when url is empty.
func New(ctx context.Context, url string) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return Dial(ctx, url, DefaultDialTimeout)
}
