package repl

import (
	"github.com/chzyer/readline"
)

const (
	Prompt         = ">>> "
	SettingsPrompt = "s>> "
)

// ErrInterrupt is returned by a LineReader when the user presses Ctrl-C.
var ErrInterrupt = readline.ErrInterrupt

// LineReader supplies input lines. Readline returns io.EOF when input ends.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// NewTerminalReader creates a line editor with history persisted to
// historyFile (empty disables persistence) and completion of command names.
func NewTerminalReader(historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(cmdHelp),
		readline.PcItem(cmdCredits),
		readline.PcItem(cmdLicense),
		readline.PcItem(cmdVersion),
		readline.PcItem(cmdExit),
		readline.PcItem(cmdSettings),
		readline.PcItem(cmdEnd),
		readline.PcItem(cmdRun),
		readline.PcItem(cmdPop),
		readline.PcItem(cmdClear),
		readline.PcItem(cmdShow),
		readline.PcItem(cmdLoad),
		readline.PcItem("#include"),
		readline.PcItem("int main() {"),
	)
}
