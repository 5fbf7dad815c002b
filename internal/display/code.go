package display

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mitchellh/go-wordwrap"
)

const lexerName = "cpp"

// HasTheme reports whether name is a known highlighting theme.
func HasTheme(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Themes lists the available highlighting themes, sorted.
func Themes() []string {
	return styles.Names()
}

// ShowCode prints lines highlighted as C++, honouring the theme, background
// color, line number and word wrap settings.
func (r *Renderer) ShowCode(lines []string) error {
	text, gutters := r.layout(lines)

	var hl bytes.Buffer
	if err := r.highlight(&hl, text); err != nil {
		return fmt.Errorf("failed to highlight code: %w", err)
	}

	out := strings.Split(strings.TrimSuffix(hl.String(), "\n"), "\n")
	for i, line := range out {
		if i < len(gutters) && gutters[i] != "" {
			fmt.Fprint(r.out, gutters[i])
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

// layout wraps long lines and computes the gutter of every output line.
// Continuation lines get a blank gutter so numbering follows source lines.
func (r *Renderer) layout(lines []string) (string, []string) {
	gw := 0
	if r.cfg.LineNumbers {
		gw = len(fmt.Sprint(len(lines))) + 3
	}

	var (
		wrapped []string
		gutters []string
	)
	for i, line := range lines {
		parts := []string{line}
		if r.cfg.WordWrap {
			if limit := r.width - gw; limit > 0 {
				parts = strings.Split(wordwrap.WrapString(line, uint(limit)), "\n")
			}
		}
		for j, p := range parts {
			wrapped = append(wrapped, p)
			switch {
			case gw == 0:
				gutters = append(gutters, "")
			case j == 0:
				gutters = append(gutters, fmt.Sprintf("%*d │ ", gw-3, i+1))
			default:
				gutters = append(gutters, strings.Repeat(" ", gw-3)+" │ ")
			}
		}
	}
	return strings.Join(wrapped, "\n"), gutters
}

func (r *Renderer) highlight(buf *bytes.Buffer, text string) error {
	if !r.color {
		buf.WriteString(text)
		buf.WriteByte('\n')
		return nil
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return err
	}
	return formatters.TTY256.Format(buf, r.style(), it)
}

// style resolves the configured theme and overrides its background.
func (r *Renderer) style() *chroma.Style {
	base := styles.Get(r.cfg.Theme)
	if r.cfg.BackgroundColor == "" {
		return base
	}
	s, err := base.Builder().Add(chroma.Background, "bg:"+r.cfg.BackgroundColor).Build()
	if err != nil {
		return base
	}
	return s
}
