package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joelklabo/zhistdb/internal/execx"
	"github.com/joelklabo/zhistdb/internal/ui"
)

// histdbEnv is how atuin's zsh-hist-db importer is told where the store is.
const histdbEnv = "HISTDB_FILE"

var importArgs = []string{"import", "zsh-hist-db"}

func importHint(atuin, dbPath string) string {
	return histdbEnv + "=" + execx.ShellJoin([]string{dbPath}) + " " +
		execx.ShellJoin(append([]string{atuin}, importArgs...))
}

// importToAtuin runs the importer against dbPath. On a terminal the
// importer's output is shown live; otherwise it is only kept for the error
// report. A failed import leaves the store in place.
func importToAtuin(ctx context.Context, u ui.UI, atuin, dbPath string) int {
	exe, err := execx.Which(atuin)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Failed("cannot import into atuin: "+err.Error()))
		fmt.Fprintln(os.Stderr, "zhistdb: the database is ready; import it later with:")
		fmt.Fprintln(os.Stderr, "  "+importHint(atuin, dbPath))
		return 1
	}

	fmt.Println("Importing into atuin...")

	cmd := execx.Cmd{
		Exe:    exe,
		Args:   importArgs,
		Env:    execx.EnvWith(nil, histdbEnv, dbPath),
		Stdout: io.Discard,
		Stderr: io.Discard,
	}
	if execx.IsTTY() {
		cmd.Stdout = os.Stdout
	}

	res, err := execx.Run(ctx, cmd)
	if err == nil && res.ExitCode == 0 {
		fmt.Println(u.Done("imported into atuin"))
		return 0
	}

	fmt.Fprintln(os.Stderr, u.Failed(fmt.Sprintf("atuin import failed (exit %d)", res.ExitCode)))
	if res.Mode != "pty" {
		if out := strings.TrimSpace(res.Output()); out != "" {
			fmt.Fprintln(os.Stderr, out)
		}
	}
	return 1
}
