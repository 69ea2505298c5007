package execx

import (
	"context"
	"io"
	"os/exec"
)

func runPipes(ctx context.Context, c Cmd) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Exe, c.Args...)
	cmd.Env = c.Env

	outTail := NewTail(tailBytes)
	errTail := NewTail(tailBytes)

	cmd.Stdout = io.MultiWriter(c.stdout(), outTail)
	cmd.Stderr = io.MultiWriter(c.stderr(), errTail)

	err := cmd.Run()
	code := exitCode(err)

	return Result{
		ExitCode:   code,
		Mode:       "pipes",
		StdoutTail: outTail.String(),
		StderrTail: errTail.String(),
	}, err
}
