package scanner

import "strings"

const (
	quote         = '"'
	escape        = '\\'
	commentMarker = "//"
)

// Strip returns a copy of src with the contents of every double-quoted string
// literal (delimiters included) and every line comment removed. The newline
// that ends a comment is kept. An unterminated string or a comment without a
// trailing newline consumes the rest of the text.
func Strip(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	rest := src
	for {
		start := nextStart(rest)
		if start == -1 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:start])
		rest = rest[start:]

		var end int
		if rest[0] == quote {
			end = stringEnd(rest)
		} else {
			end = commentEnd(rest)
		}
		if end == -1 {
			return b.String()
		}
		rest = rest[end:]
	}
}

// nextStart finds whichever comes first: an opening quote or a comment marker.
func nextStart(s string) int {
	q := strings.IndexByte(s, quote)
	c := strings.Index(s, commentMarker)
	switch {
	case q == -1:
		return c
	case c == -1:
		return q
	default:
		return min(q, c)
	}
}

// stringEnd returns the offset just past the first unescaped closing quote of
// the literal that opens at s[0], or -1 if it never closes.
func stringEnd(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case escape:
			i++
		case quote:
			return i + 1
		}
	}
	return -1
}

// commentEnd returns the offset of the newline terminating the comment that
// starts at s[0], or -1 if the comment runs to the end of the text.
func commentEnd(s string) int {
	return strings.IndexByte(s, '\n')
}
