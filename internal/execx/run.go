// Package execx runs external tools (the atuin importer) and keeps the tail
// of their output for error reports.
package execx

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

const tailBytes = 64 * 1024

func IsTTY() bool {
	stdinFd := int(os.Stdin.Fd())
	stdoutFd := int(os.Stdout.Fd())

	if !term.IsTerminal(stdinFd) || !term.IsTerminal(stdoutFd) {
		return false
	}
	// A detached terminal reports IsTerminal but fails GetState.
	if _, err := term.GetState(stdinFd); err != nil {
		return false
	}
	return true
}

// Cmd describes one external invocation. Nil Stdout/Stderr default to the
// process's own streams; Env nil inherits the current environment.
type Cmd struct {
	Exe    string
	Args   []string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

type Result struct {
	ExitCode     int
	Mode         string // "pty" or "pipes"
	StdoutTail   string
	StderrTail   string
	CombinedTail string
}

// Output is the most useful captured output for a failure message.
func (r Result) Output() string {
	if r.CombinedTail != "" {
		return r.CombinedTail
	}
	if r.StderrTail != "" {
		return r.StderrTail
	}
	return r.StdoutTail
}

// Run executes c, under a PTY when attached to a terminal so progress
// output renders, and with pipes otherwise.
func Run(ctx context.Context, c Cmd) (Result, error) {
	if IsTTY() {
		return runPTY(ctx, c)
	}
	return runPipes(ctx, c)
}

func (c Cmd) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c Cmd) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}
