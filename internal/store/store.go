package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/joelklabo/zhistdb/internal/histfile"
)

type DB struct{ *sql.DB }

// Place is the (host, dir) pair a command ran in.
type Place struct {
	Host string
	Dir  string
}

type Counts struct {
	Commands int
	Places   int
	History  int
}

// Open opens (creating if needed) the store at path and applies the schema.
func Open(path string) (*DB, error) {
	if err := checkOwnership(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single writer; keeps every statement on the one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{db}, nil
}

// Init creates the store at path. Existing rows are left alone.
func Init(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	return db.Close()
}

func WithDB(path string, fn func(*DB) error) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// Append opens the store at path and appends a single record.
func Append(path string, rec histfile.Record, p Place, session int64) error {
	return WithDB(path, func(db *DB) error {
		_, err := db.Append(context.Background(), rec, p, session)
		return err
	})
}

// Append writes rec as one history row, reusing existing commands/places
// rows. All three writes commit together or not at all.
func (db *DB) Append(ctx context.Context, rec histfile.Record, p Place, session int64) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cmdID, err := insertOrLookup(ctx, tx,
		`INSERT OR IGNORE INTO commands (argv) VALUES (?)`,
		`SELECT id FROM commands WHERE argv = ?`,
		rec.Command,
	)
	if err != nil {
		return 0, fmt.Errorf("command %q: %w", rec.Command, err)
	}

	placeID, err := insertOrLookup(ctx, tx,
		`INSERT OR IGNORE INTO places (host, dir) VALUES (?, ?)`,
		`SELECT id FROM places WHERE host = ? AND dir = ?`,
		p.Host, p.Dir,
	)
	if err != nil {
		return 0, fmt.Errorf("place %s:%s: %w", p.Host, p.Dir, err)
	}

	// The history format has no exit status; zsh-histdb readers expect 0.
	res, err := tx.ExecContext(ctx, `
INSERT INTO history (session, command_id, place_id, exit_status, start_time, duration)
VALUES (?, ?, ?, 0, ?, ?)`,
		session, cmdID, placeID, int64(rec.Timestamp), int64(rec.Duration),
	)
	if err != nil {
		return 0, fmt.Errorf("history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// AppendBatch appends recs in order and stops at the first failure. It
// returns how many records were committed.
func (db *DB) AppendBatch(ctx context.Context, recs []histfile.Record, p Place, session int64) (int, error) {
	for i, rec := range recs {
		if _, err := db.Append(ctx, rec, p, session); err != nil {
			return i, err
		}
	}
	return len(recs), nil
}

func insertOrLookup(ctx context.Context, tx *sql.Tx, insert, lookup string, args ...any) (int64, error) {
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRowContext(ctx, lookup, args...).Scan(&id)
	return id, err
}

func (db *DB) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := db.QueryRowContext(ctx, `
SELECT
  (SELECT COUNT(*) FROM commands),
  (SELECT COUNT(*) FROM places),
  (SELECT COUNT(*) FROM history)`).Scan(&c.Commands, &c.Places, &c.History)
	return c, err
}

func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v)
	return v, err
}

// CommandsByID lists command texts in insertion order.
func (db *DB) CommandsByID(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT argv FROM commands ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
