//go:build !windows

package execx

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

func runPTY(ctx context.Context, c Cmd) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Exe, c.Args...)
	cmd.Env = c.Env

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return Result{ExitCode: 1, Mode: "pty"}, err
	}
	defer func() { _ = ptmx.Close() }()

	if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
		_ = err // best-effort
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	defer signal.Stop(ch)
	go func() {
		for range ch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				_ = err // best-effort
			}
		}
	}()

	combined := NewTail(tailBytes)

	// The importer is not interactive, so stdin is not forwarded.
	outputDone := make(chan struct{})
	go func() {
		if _, err := io.Copy(io.MultiWriter(c.stdout(), combined), ptmx); err != nil {
			_ = err // EIO once the child exits
		}
		close(outputDone)
	}()

	err = cmd.Wait()
	<-outputDone

	return Result{
		ExitCode:     exitCode(err),
		Mode:         "pty",
		CombinedTail: combined.String(),
	}, err
}
