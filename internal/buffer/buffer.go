// Package buffer holds the ordered lines a user has typed but not yet
// committed. It has a single owner and is not safe for concurrent use.
package buffer

import (
	"errors"
	"slices"
)

// ErrEmpty is returned when removing a line from an empty buffer.
var ErrEmpty = errors.New("no code to pop")

// Buffer is the session's line buffer. Line order is program order.
type Buffer struct {
	lines []string
}

// New creates a buffer seeded with a copy of lines.
func New(lines ...string) *Buffer {
	return &Buffer{lines: slices.Clone(lines)}
}

// Append adds a line at the end.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
}

// PopLast removes and returns the last line. The buffer is unchanged and
// ErrEmpty is returned when there is nothing to remove.
func (b *Buffer) PopLast() (string, error) {
	if len(b.lines) == 0 {
		return "", ErrEmpty
	}
	last := b.lines[len(b.lines)-1]
	b.lines = b.lines[:len(b.lines)-1]
	return last, nil
}

// Clear drops every line.
func (b *Buffer) Clear() {
	b.lines = nil
}

// Replace discards the current contents and stores a copy of lines.
func (b *Buffer) Replace(lines []string) {
	b.lines = slices.Clone(lines)
}

// Snapshot returns a copy of the lines; changing it does not affect the buffer.
func (b *Buffer) Snapshot() []string {
	return slices.Clone(b.lines)
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}
