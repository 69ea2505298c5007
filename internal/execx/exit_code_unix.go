//go:build !windows

package execx

import (
	"errors"
	"os/exec"
	"syscall"
)

// exitCode maps a Wait error to a shell-style status: 128+signal for a
// killed child, 1 when the process never ran.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return 1
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ee.ExitCode()
}
