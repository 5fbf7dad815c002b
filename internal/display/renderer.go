package display

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/specialistvlad/cpplive/internal/buffer"
	"github.com/specialistvlad/cpplive/internal/session"
	"github.com/specialistvlad/cpplive/internal/settings"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 100

var (
	stdoutStyle = color.New(color.OpBold)
	stderrStyle = color.New(color.FgRed, color.OpBold)
	noticeStyle = color.New(color.FgYellow)
)

// Options controls terminal capabilities.
type Options struct {
	Color bool
	Width int // zero means DefaultWidth
}

// Renderer writes user-facing output.
type Renderer struct {
	out   io.Writer
	cfg   *settings.Settings
	color bool
	width int
}

// New creates a Renderer. The settings are copied.
func New(out io.Writer, s *settings.Settings, opts Options) *Renderer {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{out: out, cfg: s.Clone(), color: opts.Color, width: width}
}

// Writer returns the underlying output.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

func (r *Renderer) paint(style color.Style, s string) string {
	if !r.color || s == "" {
		return s
	}
	return style.Sprint(s)
}

// Println writes a plain line.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted plain text.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Notice writes a highlighted one-line message, used for non-fatal conditions.
func (r *Renderer) Notice(msg string) {
	fmt.Fprintln(r.out, r.paint(noticeStyle, msg))
}

// Result prints the program's output and the exit summary line.
func (r *Renderer) Result(res *session.Result) {
	fmt.Fprintln(r.out, r.paint(stdoutStyle, res.Stdout))
	if res.Stderr != "" {
		fmt.Fprintln(r.out, r.paint(stderrStyle, res.Stderr))
	}
	if res.TimedOut {
		r.Notice(fmt.Sprintf("program killed after %s run timeout", fmtSeconds(res.RunDuration, 2)))
	}
	fmt.Fprintln(r.out, Summary(res))
}

// Summary formats the exit line shown after every run. A negative code is
// the number of the signal that killed the program.
func Summary(res *session.Result) string {
	return fmt.Sprintf("program exited with code %d (%s) after %ss (compile: %ss, run: %ss)",
		res.ExitCode, hexCode(res.ExitCode),
		fmtSeconds(res.Total(), 3),
		fmtSeconds(res.CompileDuration, 2),
		fmtSeconds(res.RunDuration, 2))
}

func hexCode(code int) string {
	if code < 0 {
		return fmt.Sprintf("-0x%02X", -code)
	}
	return fmt.Sprintf("0x%02X", code)
}

func fmtSeconds(d time.Duration, prec int) string {
	return fmt.Sprintf("%.*f", prec, d.Seconds())
}

// Error reports a failed run request according to its kind.
func (r *Renderer) Error(err error) {
	var compileErr *session.CompileError
	switch {
	case errors.Is(err, session.ErrIncompleteBuffer):
		var incomplete *session.IncompleteError
		if errors.As(err, &incomplete) {
			fmt.Fprintln(r.out, incomplete.Depth.Parens, incomplete.Depth.Braces)
		}
		r.Notice("Code will not run. Please check brackets and curly brackets")
	case errors.As(err, &compileErr):
		fmt.Fprint(r.out, compileErr.Diagnostics)
		if compileErr.TimedOut {
			r.Notice(compileErr.Error())
			return
		}
		fmt.Fprintf(r.out, "Compilation failed with exit code %d\n", compileErr.ExitCode)
	case errors.Is(err, buffer.ErrEmpty):
		fmt.Fprintln(r.out, "No code to pop")
	default:
		fmt.Fprintln(r.out, r.paint(stderrStyle, "error: "+err.Error()))
	}
}

// Settings prints every key with its value, aligned.
func (r *Renderer) Settings(s *settings.Settings) {
	for _, k := range settings.Keys {
		v, _ := s.Get(k)
		fmt.Fprintf(r.out, "%-20s - %s\n", k, v)
	}
}

// Table prints two-column help style rows.
func (r *Renderer) Table(width int, rows [][2]string) {
	for _, row := range rows {
		fmt.Fprintf(r.out, "%-*s - %s\n", width, row[0], row[1])
	}
}

// Heading prints a section title.
func (r *Renderer) Heading(title string) {
	fmt.Fprintln(r.out, r.paint(stdoutStyle, "## "+title))
}

// ClearScreen moves the cursor home and erases the terminal.
func (r *Renderer) ClearScreen() {
	if r.color {
		fmt.Fprint(r.out, "\033[H\033[2J")
	}
}

// Banner prints the start message.
func (r *Renderer) Banner(lines []string) {
	fmt.Fprintln(r.out, strings.Join(lines, "\n"))
}
