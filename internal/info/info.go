// Package info holds the static texts of the interpreter: help, credits,
// license, version and the start banner.
package info

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/specialistvlad/cpplive/internal/toolchain"
)

const (
	Name    = "C++ Live Interpreter"
	Version = "r0.1-alpha"
	Date    = "2023-11-28"
)

// Topics can be printed without entering the interactive loop.
var Topics = []string{"help", "credits", "license", "version"}

// Commands lists the interactive commands. Entries marked * are also topics.
var Commands = [][2]string{
	{"help*", "Show this help message"},
	{"credits*", "Show credits"},
	{"license*", "Show license"},
	{"version*", "Show version"},
	{"exit", "Exit the interpreter"},
	{"settings", "Show and edit settings"},
	{"end", "End the code input and run the code"},
	{"run", "Run the code without ending the code input (eg. variables will be saved)"},
	{"pop", "Delete the last line of code"},
	{"clear", "Clear the screen and delete all code"},
	{"show", "Show the current code with syntax highlighting"},
	{"load [file]", "Replace the code with the lines of a file (default sample.cpp)"},
}

var credits = []string{
	"cpplive runs short C++ snippets through the compiler installed on this machine.",
	"It wraps what you type into a small program, compiles it and shows the output.",
	"Contributions, questions and suggestions are welcome on the project's issue tracker.",
}

var license = []string{
	"This project is open source and licensed under the Apache License 2.0",
	"For more info see:",
	"http://www.apache.org/licenses/LICENSE-2.0",
	"or ./LICENSE.md",
}

// VersionLine is the text printed by the version topic.
func VersionLine() string {
	return Version + " / " + Date
}

// IsTopic reports whether name can be printed with Print.
func IsTopic(name string) bool {
	for _, t := range Topics {
		if t == name {
			return true
		}
	}
	return false
}

// Print writes the text of a topic.
func Print(w io.Writer, topic string) error {
	switch topic {
	case "help":
		Help(w)
	case "credits":
		fmt.Fprintln(w, strings.Join(credits, "\n"))
	case "license":
		fmt.Fprintln(w, strings.Join(license, "\n"))
	case "version":
		fmt.Fprintln(w, VersionLine())
	default:
		return fmt.Errorf("unknown topic %q", topic)
	}
	return nil
}

// Help writes the command table.
func Help(w io.Writer) {
	fmt.Fprintln(w, "Commands with * are also available as command line arguments")
	fmt.Fprintln(w)
	for _, c := range Commands {
		fmt.Fprintf(w, "%-10s - %s\n", c[0], c[1])
	}
}

// SystemInfo describes the host and the compiler in one line.
func SystemInfo(ctx context.Context, compiler string) string {
	version, err := toolchain.Version(ctx, compiler)
	if err != nil || version == "" {
		version = "unknown"
	}
	return fmt.Sprintf("%s - %s - %s - %s v%s", runtime.GOOS, runtime.GOARCH, runtime.Version(), compiler, version)
}

// Banner returns the start message lines.
func Banner(sysInfo string) []string {
	return []string{
		fmt.Sprintf("%s (v:%s / %s)", Name, Version, Date),
		sysInfo,
		`Type "help", "credits" or "license" for more information.`,
		`Type "exit" to exit.`,
	}
}
