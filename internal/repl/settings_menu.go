package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/specialistvlad/cpplive/internal/display"
	"github.com/specialistvlad/cpplive/internal/session"
	"github.com/specialistvlad/cpplive/internal/settings"
)

const (
	setHelp  = "help"
	setSave  = "save"
	setReset = "reset"
	setExit  = "exit"
	setShow  = "show"
	setSet   = "set"

	ctrlS = "\x13"
	ctrlR = "\x12"
)

var settingsCommands = [][2]string{
	{"help", "Show this help message"},
	{"save", "Save the current settings"},
	{"reset", "Reset the settings to default"},
	{"exit", "Exit the settings menu"},
	{"set [key] [value]", "Set a setting to a value"},
}

var settingsShortcuts = map[string]string{
	ctrlX: setExit,
	ctrlS: setSave,
	ctrlR: setReset,
}

// settingValues describes the accepted values of every key for the help page.
func settingValues(key string) string {
	switch key {
	case settings.KeyCompiler:
		return "clang++, g++ or any compiler accepting -o OUT SRC"
	case settings.KeyCompilerFlags:
		return "space separated flags, e.g. -std=c++17 -O2"
	case settings.KeyTheme:
		return strings.Join(display.Themes(), ", ")
	case settings.KeyLineNumbers, settings.KeyWordWrap:
		return "True, False"
	case settings.KeyBackgroundColor:
		return "any hex color code"
	case settings.KeyCompileTimeout, settings.KeyRunTimeout:
		return "a duration such as 10s; 0s waits forever"
	case settings.KeyBroadcastURL:
		return "socket.io URL such as http://localhost:3000/socket.io/, empty to disable"
	}
	return ""
}

// settingsMenu edits a working copy of the settings. Changes take effect
// only when saved; leaving the menu discards unsaved edits.
func (r *REPL) settingsMenu(ctx context.Context) error {
	cur := r.settings.Clone()

	r.render.Heading("Current settings")
	r.render.Settings(cur)
	r.render.Heading("Commands")
	r.render.Table(20, settingsCommands)

	r.in.SetPrompt(SettingsPrompt)
	defer r.in.SetPrompt(Prompt)

	for {
		line, err := r.in.Readline()
		if errors.Is(err, ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if mapped, ok := settingsShortcuts[line]; ok {
			line = mapped
		}

		switch {
		case line == setExit:
			return nil
		case line == setShow:
		case line == setHelp:
			r.render.Heading("Available settings")
			for _, k := range settings.Keys {
				r.render.Printf("%s\n  %s\n\n", k, settingValues(k))
			}
			r.render.Heading("Commands")
			r.render.Table(20, settingsCommands)
		case line == setSave:
			if err := r.saveSettings(ctx, cur); err != nil {
				r.render.Error(err)
				break
			}
			r.render.Println("Settings saved")
		case line == setReset:
			cur = settings.Defaults(r.cfg.Detect(ctx))
			if err := r.saveSettings(ctx, cur); err != nil {
				r.render.Error(err)
				break
			}
			r.render.Println("Settings reset to default")
		case line == setSet || strings.HasPrefix(line, setSet+" "):
			if err := setFromLine(cur, line); err != nil {
				r.render.Notice(err.Error())
			}
		default:
			r.render.Println("Invalid command")
		}

		r.render.Println("Current settings:")
		r.render.Settings(cur)
	}
}

// setFromLine applies `set <key> <value...>` to s.
func setFromLine(s *settings.Settings, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return errors.New("usage: set [key] [value]")
	}
	key, value := fields[1], strings.Join(fields[2:], " ")
	if key == settings.KeyTheme && !display.HasTheme(value) {
		return fmt.Errorf("unknown theme %q, see help for the list", value)
	}
	return s.Set(key, value)
}

// saveSettings persists s and rebuilds every component configured from it.
func (r *REPL) saveSettings(ctx context.Context, s *settings.Settings) error {
	if err := settings.Save(r.cfg.SettingsPath, s); err != nil {
		return err
	}
	return r.apply(ctx, s)
}

// apply rebuilds the toolchain, session, renderer and publisher from s.
func (r *REPL) apply(ctx context.Context, s *settings.Settings) error {
	effective, err := settings.WithEnv(s)
	if err != nil {
		return err
	}
	tc, err := r.cfg.NewToolchain(effective)
	if err != nil {
		return err
	}

	if r.pub == nil || effective.BroadcastURL != r.pubURL {
		if r.pub != nil {
			r.pub.Close()
		}
		r.pub = r.cfg.NewPublisher(ctx, effective)
		r.pubURL = effective.BroadcastURL
	}
	r.sess = session.New(tc, r.buf)
	r.render = r.cfg.NewRenderer(effective)
	r.settings = s.Clone()

	ctxlog.FromContext(ctx).Debug("Settings applied.", "compiler", effective.Compiler, "theme", effective.Theme)
	return nil
}
