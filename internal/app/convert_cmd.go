package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joelklabo/zhistdb/internal/config"
	"github.com/joelklabo/zhistdb/internal/convert"
	"github.com/joelklabo/zhistdb/internal/histfile"
	"github.com/joelklabo/zhistdb/internal/place"
	"github.com/joelklabo/zhistdb/internal/redact"
	"github.com/joelklabo/zhistdb/internal/ui"
)

func convertCmd(args []string) int {
	def := config.Default()

	fset := flag.NewFlagSet("zhistdb", flag.ContinueOnError)
	fset.Usage = func() { usage(os.Stderr) }

	flags := def
	fset.StringVar(&flags.Output, "output", def.Output, "output database file name")
	fset.StringVar(&flags.Output, "o", def.Output, "alias for --output")
	fset.StringVar(&flags.DataDir, "data-dir", def.DataDir, "directory for the database")
	fset.IntVar(&flags.Count, "count", def.Count, "number of recent entries (0 = all)")
	fset.IntVar(&flags.Count, "n", def.Count, "alias for --count")
	fset.BoolVar(&flags.Import, "import", def.Import, "import into atuin afterwards")
	fset.StringVar(&flags.Atuin, "atuin", def.Atuin, "atuin binary")
	fset.StringVar(&flags.Host, "host", def.Host, "host recorded for every entry")
	fset.StringVar(&flags.Dir, "dir", def.Dir, "directory recorded for every entry")
	fset.Int64Var(&flags.Session, "session", def.Session, "session id recorded for every entry")
	fset.BoolVar(&flags.Redact, "redact", def.Redact, "mask secret-looking values")
	configPath := fset.String("config", "", "defaults file")

	positional, err := parseInterspersed(fset, args)
	if err != nil {
		if isHelp(err) {
			return 0
		}
		return 2
	}
	if len(positional) > 1 {
		fmt.Fprintf(os.Stderr, "zhistdb: expected at most one history file, got %d\n", len(positional))
		return 2
	}
	set := setFlags(fset)

	cfg, err := loadConfig(*configPath, set["config"])
	if err != nil {
		fmt.Fprintln(os.Stderr, "zhistdb:", err)
		return 2
	}
	s := merge(cfg, flags, set)
	if len(positional) == 1 {
		s.HistoryFile = positional[0]
	}

	if s.Count < 0 {
		fmt.Fprintln(os.Stderr, "zhistdb: --count must not be negative")
		return 2
	}
	if s.Session < 0 {
		fmt.Fprintln(os.Stderr, "zhistdb: --session must not be negative")
		return 2
	}
	if s.Output == "" {
		fmt.Fprintln(os.Stderr, "zhistdb: --output must not be empty")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runConvert(ctx, s)
}

// loadConfig reads the defaults file. A missing file is only an error when
// it was asked for explicitly.
func loadConfig(path string, explicit bool) (config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return config.Default(), nil
		}
		return config.Default(), err
	}
	return cfg, nil
}

// merge applies command-line flags over the config file values.
func merge(cfg, flags config.Config, set map[string]bool) config.Config {
	out := cfg
	if set["output"] {
		out.Output = flags.Output
	}
	if set["data-dir"] {
		out.DataDir = flags.DataDir
	}
	if set["count"] {
		out.Count = flags.Count
	}
	if set["import"] {
		out.Import = flags.Import
	}
	if set["atuin"] {
		out.Atuin = flags.Atuin
	}
	if set["host"] {
		out.Host = flags.Host
	}
	if set["dir"] {
		out.Dir = flags.Dir
	}
	if set["session"] {
		out.Session = flags.Session
	}
	if set["redact"] {
		out.Redact = flags.Redact
	}
	return out
}

func runConvert(ctx context.Context, s config.Config) int {
	u := ui.New(os.Stdout)

	opts := convert.Options{
		HistoryFile: config.Expand(s.HistoryFile),
		Limit:       s.Count,
		Place:       place.Resolve(s.Host, config.Expand(s.Dir)),
		Session:     s.Session,
	}
	if s.Redact {
		opts.Redactor = redact.Default()
	}

	if opts.HistoryFile == "-" {
		opts.Input = os.Stdin
	} else if _, err := os.Stat(opts.HistoryFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "zhistdb: history file %q not found\n", opts.HistoryFile)
		} else {
			fmt.Fprintln(os.Stderr, "zhistdb:", err)
		}
		return 1
	}

	dataDir := config.Expand(s.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "zhistdb: create data dir:", err)
		return 1
	}
	opts.DBPath = filepath.Join(dataDir, s.Output)

	fmt.Println(u.Field("input", opts.HistoryFile))
	fmt.Println(u.Field("output", opts.DBPath))
	if s.Count > 0 {
		fmt.Println(u.Field("entries", fmt.Sprintf("last %d", s.Count)))
	} else {
		fmt.Println(u.Field("entries", "all"))
	}
	fmt.Println(u.Field("place", opts.Place.Host+":"+opts.Place.Dir))

	res, err := convert.Convert(ctx, opts)
	if err != nil {
		if errors.Is(err, histfile.ErrHistoryNotFound) {
			fmt.Fprintf(os.Stderr, "zhistdb: history file %q not found\n", opts.HistoryFile)
			return 1
		}
		fmt.Fprintln(os.Stderr, u.Failed(fmt.Sprintf("conversion failed after %d of %d entries: %v", res.Written, res.Read, err)))
		return 1
	}

	fmt.Println(u.Done(fmt.Sprintf("converted %d entries (%d commands, %d places, %d history rows in store)",
		res.Written, res.Counts.Commands, res.Counts.Places, res.Counts.History)))
	fmt.Println(u.Dim("note: exit_status is stored as 0 for every entry; zsh history does not record it"))

	abs, err := filepath.Abs(opts.DBPath)
	if err != nil {
		abs = opts.DBPath
	}
	if s.Import {
		return importToAtuin(ctx, u, s.Atuin, abs)
	}
	fmt.Println("To import into atuin, run:")
	fmt.Println("  " + importHint(s.Atuin, abs))
	return 0
}
