// Package repl implements the interactive command loop. Every input line is
// either a command (run, end, pop, show, settings, ...) or a line of code that
// is appended to the session buffer. Commands are handled synchronously: a
// run blocks until the compiler and the program have both finished.
package repl
