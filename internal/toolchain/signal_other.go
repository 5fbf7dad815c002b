//go:build !unix

package toolchain

import "os/exec"

func killSignal(*exec.ExitError) (int, bool) {
	return 0, false
}
