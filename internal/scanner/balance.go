package scanner

import "strings"

// Depth is the net nesting left open at the end of a text. Negative values
// mean more closers than openers were seen.
type Depth struct {
	Parens int
	Braces int
}

// Balanced reports whether both counters are exactly zero.
func (d Depth) Balanced() bool {
	return d.Parens == 0 && d.Braces == 0
}

// Count walks already-stripped text once and returns the net depth of
// parentheses and braces. Intermediate negative values are not special-cased.
func Count(clean string) Depth {
	var d Depth
	for _, r := range clean {
		switch r {
		case '(':
			d.Parens++
		case ')':
			d.Parens--
		case '{':
			d.Braces++
		case '}':
			d.Braces--
		}
	}
	return d
}

// Check joins lines with newlines, strips literals and comments, and counts.
func Check(lines []string) Depth {
	return Count(Strip(strings.Join(lines, "\n")))
}
