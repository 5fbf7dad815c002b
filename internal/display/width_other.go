//go:build !unix

package display

// TerminalWidth returns DefaultWidth on platforms without TIOCGWINSZ.
func TerminalWidth(fd uintptr) int {
	return DefaultWidth
}
