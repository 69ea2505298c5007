package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func RunCLI(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version":
			printVersion()
			return 0
		case "help":
			usage(os.Stdout)
			return 0
		}
	}
	return convertCmd(args)
}

func usage(w io.Writer) {
	fmt.Fprint(w, `zhistdb - convert zsh history into a zsh-histdb database for atuin

Usage:
  zhistdb [flags] [history-file]    (default history file: ~/.histfile)
  zhistdb version

Flags:
  -o, --output <name>    output database file name (default zsh-history.db)
  --data-dir <dir>       directory for the database (default data)
  -n, --count <n>        convert only the n most recent entries (default: all)
  --import               run "atuin import zsh-hist-db" after converting
  --atuin <path>         atuin binary (default atuin)
  --host <name>          host recorded for every entry (default: this machine)
  --dir <path>           directory recorded for every entry (default: cwd)
  --session <id>         session id recorded for every entry (default 1)
  --redact               mask secret-looking values in commands
  --config <file>        defaults file (default ~/.config/zhistdb/config.toml)

Every entry is stored with exit_status 0: zsh history does not record it.
`)
}

// flagAliases maps short flag names to the long name they share a value with.
var flagAliases = map[string]string{
	"o": "output",
	"n": "count",
}

// parseInterspersed parses fs allowing flags after positional arguments,
// which the standard flag package stops at.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		// Everything after a literal -- is positional.
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// setFlags returns the long names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		set[name] = true
	})
	return set
}

func isHelp(err error) bool { return errors.Is(err, flag.ErrHelp) }
