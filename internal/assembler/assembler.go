// Package assembler turns the lines a user has typed into a complete C++
// translation unit: includes are hoisted, bare arithmetic is wrapped in a
// print call and a main function is synthesized when the user has none.
package assembler

import "strings"

// Kind is the transient classification of a single buffered line.
type Kind int

const (
	Ordinary Kind = iota
	Include
	BareExpression
	EntryPoint
)

func (k Kind) String() string {
	switch k {
	case Include:
		return "include"
	case BareExpression:
		return "bare-expression"
	case EntryPoint:
		return "entry-point"
	default:
		return "ordinary"
	}
}

const (
	includeMarker    = "#include"
	entryPointMarker = "int main"
	bareExprChars    = "0123456789+-*/%() "

	// Header is the first line of every assembled source.
	Header = "//Auto injected code from cpplive"
	// Footer closes the injected preamble.
	Footer = "//End of auto injected code"

	StdIOInclude   = "#include <iostream>"
	UsingNamespace = "using namespace std;"
	PrintTemplate  = "template<typename T>void print(T t) {cout << t << endl;}"
	MainOpen       = "int main() {"
	MainClose      = "}"
)

// Classify returns the kind of line. It is a pure function of the text.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, includeMarker):
		return Include
	case strings.HasPrefix(line, entryPointMarker):
		return EntryPoint
	case IsBareExpression(line):
		return BareExpression
	default:
		return Ordinary
	}
}

// IsBareExpression reports whether every character of line is a digit, an
// arithmetic operator, a parenthesis or a space. Blank lines are not
// expressions.
func IsBareExpression(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune(bareExprChars, r) {
			return false
		}
	}
	return true
}

// WrapPrint rewrites an expression into a print statement.
func WrapPrint(expr string) string {
	return "print(" + expr + ");"
}

// Source is an assembled translation unit, one element per line.
type Source struct {
	Lines []string
	// SynthesizedMain is true when main was injected around the body.
	SynthesizedMain bool
}

// String joins the lines with a trailing newline after each, which is the
// layout written to disk for the compiler.
func (s *Source) String() string {
	var b strings.Builder
	for _, l := range s.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Assemble builds the full program from the buffered lines. The input slice
// is never modified.
func Assemble(lines []string) *Source {
	includes := []string{StdIOInclude}
	seen := map[string]struct{}{StdIOInclude: {}}
	body := make([]string, 0, len(lines))
	hasMain := false

	for _, line := range lines {
		switch Classify(line) {
		case Include:
			if _, ok := seen[line]; !ok {
				seen[line] = struct{}{}
				includes = append(includes, line)
			}
		case BareExpression:
			body = append(body, WrapPrint(line))
		case EntryPoint:
			hasMain = true
			body = append(body, line)
		default:
			body = append(body, line)
		}
	}

	out := make([]string, 0, len(includes)+len(body)+6)
	out = append(out, Header)
	out = append(out, includes...)
	out = append(out, UsingNamespace, PrintTemplate)
	if !hasMain {
		out = append(out, MainOpen)
	}
	out = append(out, Footer)
	out = append(out, body...)
	if !hasMain {
		out = append(out, MainClose)
	}

	return &Source{Lines: out, SynthesizedMain: !hasMain}
}
