//go:build unix

package toolchain

import (
	"os/exec"
	"syscall"
)

// killSignal returns the number of the signal that terminated the process.
func killSignal(exitErr *exec.ExitError) (int, bool) {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
