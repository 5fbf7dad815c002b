package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/cpplive/internal/app"
	"github.com/specialistvlad/cpplive/internal/info"
	"github.com/specialistvlad/cpplive/internal/settings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// A topic argument such as "help" or "version" is printed to output and
// reported as a clean exit.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cpplive", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cpplive - An interactive C++ interpreter built on a native compiler.

Usage:
  cpplive [options] [FILE]
  cpplive help|credits|license|version

Arguments:
  FILE
    C++ source file whose lines are loaded into the buffer at start.

Options:
`)
		flagSet.PrintDefaults()
	}

	settingsFlag := flagSet.String("settings", settings.DefaultPath, "Path to the HCL settings file. Created with defaults if missing.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workDirFlag := flagSet.String("workdir", "", "Directory for temp.cpp and temp.exe. Empty uses a fresh temporary directory.")
	historyFlag := flagSet.String("history", "", "File to persist input history to. Empty keeps history in memory.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: expected at most one FILE or topic"}
	}

	preload := ""
	if flagSet.NArg() == 1 {
		arg := flagSet.Arg(0)
		if info.IsTopic(arg) {
			slog.Debug("Topic requested, printing and exiting.", "topic", arg)
			if err := info.Print(output, arg); err != nil {
				return nil, false, &ExitError{Code: 1, Message: err.Error()}
			}
			return nil, true, nil
		}
		preload = arg
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		SettingsPath: *settingsFlag,
		PreloadPath:  preload,
		WorkDir:      *workDirFlag,
		HistoryFile:  *historyFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
