// Package convert turns a zsh history file into a zsh-histdb store.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/joelklabo/zhistdb/internal/histfile"
	"github.com/joelklabo/zhistdb/internal/redact"
	"github.com/joelklabo/zhistdb/internal/store"
)

type Options struct {
	HistoryFile string
	DBPath      string
	Place       store.Place
	Session     int64 // 0 means session 1

	// Input, when set, is read instead of HistoryFile.
	Input io.Reader

	// Limit caps the number of most recent entries; <= 0 converts everything.
	Limit int

	// Redactor, when set, scrubs each command before it is stored.
	Redactor *redact.Redactor
}

type Result struct {
	Read    int
	Written int
	Counts  store.Counts
}

// Convert reads the history file and appends its entries to the store at
// DBPath, most recent first, so the newest command gets the lowest id.
// The history file is read before the store is touched: a missing input
// never creates a store. The first failed append stops the run; entries
// appended before it stay committed.
func Convert(ctx context.Context, opts Options) (Result, error) {
	var res Result

	var (
		recs []histfile.Record
		err  error
	)
	if opts.Input != nil {
		recs, err = histfile.ParseRecent(opts.Input, opts.Limit)
	} else {
		recs, err = histfile.ReadRecent(opts.HistoryFile, opts.Limit)
	}
	if err != nil {
		return res, err
	}
	res.Read = len(recs)

	if opts.Redactor != nil {
		for i := range recs {
			recs[i].Command = opts.Redactor.RedactCommand(recs[i].Command)
		}
	}

	session := opts.Session
	if session == 0 {
		session = 1
	}

	if err := store.Init(opts.DBPath); err != nil {
		return res, fmt.Errorf("create store %s: %w", opts.DBPath, err)
	}

	err = store.WithDB(opts.DBPath, func(db *store.DB) error {
		n, err := db.AppendBatch(ctx, recs, opts.Place, session)
		res.Written = n
		if err != nil {
			return fmt.Errorf("append entry %d of %d: %w", n+1, len(recs), err)
		}
		res.Counts, err = db.Counts(ctx)
		return err
	})
	return res, err
}
