//go:build unix

package display

import "golang.org/x/sys/unix"

// TerminalWidth returns the column count of the terminal behind fd, or
// DefaultWidth when fd is not a terminal.
func TerminalWidth(fd uintptr) int {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultWidth
	}
	return int(ws.Col)
}
