package execx

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunPipes_Success(t *testing.T) {
	var out bytes.Buffer
	res, err := runPipes(context.Background(), Cmd{Exe: "echo", Args: []string{"hello"}, Stdout: &out})
	if err != nil {
		t.Fatalf("runPipes failed: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", res.ExitCode)
	}
	if !strings.Contains(res.StdoutTail, "hello") {
		t.Errorf("expected output to contain 'hello', got %q", res.StdoutTail)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("expected output to be streamed, got %q", out.String())
	}
	if res.Mode != "pipes" {
		t.Errorf("expected mode 'pipes', got %q", res.Mode)
	}
}

func TestRunPipes_FailureKeepsStderr(t *testing.T) {
	var errOut bytes.Buffer
	res, err := runPipes(context.Background(), Cmd{
		Exe:    "sh",
		Args:   []string{"-c", "echo 'no such table' >&2; exit 3"},
		Stderr: &errOut,
	})
	if err == nil {
		t.Error("expected error from non-zero exit, got nil")
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Output(), "no such table") {
		t.Errorf("expected stderr tail, got %q", res.Output())
	}
}

func TestRunPipes_PassesEnv(t *testing.T) {
	var out bytes.Buffer
	res, err := runPipes(context.Background(), Cmd{
		Exe:    "sh",
		Args:   []string{"-c", `printf %s "$HISTDB_FILE"`},
		Env:    EnvWith(nil, "HISTDB_FILE", "/abs/zsh-history.db"),
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("runPipes: %v", err)
	}
	if res.StdoutTail != "/abs/zsh-history.db" {
		t.Fatalf("HISTDB_FILE not passed, got %q", res.StdoutTail)
	}
}

func TestRunPipes_MissingExecutable(t *testing.T) {
	res, err := runPipes(context.Background(), Cmd{Exe: "definitely-not-a-real-binary-zhistdb"})
	if err == nil {
		t.Fatal("expected error")
	}
	if res.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", res.ExitCode)
	}
}

func TestRun_FallsBackToPipesWhenNotTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("running in a TTY")
	}

	var out bytes.Buffer
	res, err := Run(context.Background(), Cmd{Exe: "echo", Args: []string{"hello"}, Stdout: &out})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Mode != "pipes" {
		t.Errorf("unexpected mode: %q", res.Mode)
	}
}
