package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelklabo/zhistdb/internal/histfile"
	"github.com/joelklabo/zhistdb/internal/redact"
	"github.com/joelklabo/zhistdb/internal/store"
)

const threeEntries = ": 1609459200:0;ls -la\n: 1609459210:5;cd /tmp\n: 1609459220:1;pwd\n"

var testPlace = store.Place{Host: "testhost", Dir: "/tmp"}

func setup(t *testing.T, history string) (histPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	histPath = filepath.Join(dir, "histfile")
	require.NoError(t, os.WriteFile(histPath, []byte(history), 0o600))
	return histPath, filepath.Join(dir, "data", "zsh-history.db")
}

func readBack(t *testing.T, dbPath string) ([]string, store.Counts) {
	t.Helper()

	var (
		cmds   []string
		counts store.Counts
	)
	require.NoError(t, store.WithDB(dbPath, func(db *store.DB) error {
		var err error
		if cmds, err = db.CommandsByID(context.Background()); err != nil {
			return err
		}
		counts, err = db.Counts(context.Background())
		return err
	}))
	return cmds, counts
}

func TestConvert_RecentTwo(t *testing.T) {
	hist, db := setup(t, threeEntries)

	res, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Limit: 2, Place: testPlace})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Read)
	assert.Equal(t, 2, res.Written)
	assert.Equal(t, store.Counts{Commands: 2, Places: 1, History: 2}, res.Counts)

	cmds, counts := readBack(t, db)
	assert.Equal(t, []string{"pwd", "cd /tmp"}, cmds)
	assert.Equal(t, res.Counts, counts)
}

func TestConvert_All(t *testing.T) {
	hist, db := setup(t, threeEntries)

	res, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Place: testPlace})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Written)

	cmds, counts := readBack(t, db)
	assert.Equal(t, []string{"pwd", "cd /tmp", "ls -la"}, cmds)
	assert.Equal(t, store.Counts{Commands: 3, Places: 1, History: 3}, counts)
}

func TestConvert_HistoryRowsKeepTimestampsAndSession(t *testing.T) {
	hist, db := setup(t, threeEntries)

	_, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Place: testPlace, Session: 4})
	require.NoError(t, err)

	require.NoError(t, store.WithDB(db, func(d *store.DB) error {
		rows, err := d.Query(`SELECT session, start_time, duration, exit_status FROM history ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		var got []string
		for rows.Next() {
			var session, start, dur, exit int64
			if err := rows.Scan(&session, &start, &dur, &exit); err != nil {
				return err
			}
			got = append(got, strings.Join([]string{
				itoa(session), itoa(start), itoa(dur), itoa(exit),
			}, ","))
		}
		assert.Equal(t, []string{
			"4,1609459220,1,0",
			"4,1609459210,5,0",
			"4,1609459200,0,0",
		}, got)
		return rows.Err()
	}))
}

func TestConvert_RepeatedCommandsShareRows(t *testing.T) {
	hist, db := setup(t, ": 1:0;make\n: 2:0;make test\n: 3:0;make\n")

	res, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Place: testPlace})
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Commands: 2, Places: 1, History: 3}, res.Counts)
}

func TestConvert_RunningTwiceAppends(t *testing.T) {
	hist, db := setup(t, threeEntries)
	opts := Options{HistoryFile: hist, DBPath: db, Place: testPlace}

	_, err := Convert(context.Background(), opts)
	require.NoError(t, err)
	res, err := Convert(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Commands: 3, Places: 1, History: 6}, res.Counts)
}

func TestConvert_MissingHistoryDoesNotCreateStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "out.db")

	_, err := Convert(context.Background(), Options{
		HistoryFile: filepath.Join(dir, "missing"),
		DBPath:      db,
		Place:       testPlace,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, histfile.ErrHistoryNotFound))

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "store should not exist, stat err=%v", statErr)
}

func TestConvert_EmptyHistoryStillCreatesStore(t *testing.T) {
	hist, db := setup(t, "\n\nnot history\n")

	res, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Place: testPlace})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Written)
	assert.Equal(t, store.Counts{}, res.Counts)

	_, err = os.Stat(db)
	assert.NoError(t, err)
}

func TestConvert_Redacts(t *testing.T) {
	hist, db := setup(t, ": 1:0;gh auth login --token s3cr3t\n")

	_, err := Convert(context.Background(), Options{
		HistoryFile: hist,
		DBPath:      db,
		Place:       testPlace,
		Redactor:    redact.Default(),
	})
	require.NoError(t, err)

	cmds, _ := readBack(t, db)
	assert.Equal(t, []string{"gh auth login --token <redacted>"}, cmds)
}

func TestConvert_StoreErrorIsReported(t *testing.T) {
	hist, _ := setup(t, threeEntries)

	// A directory where the store file should be cannot be opened as a database.
	db := t.TempDir()

	_, err := Convert(context.Background(), Options{HistoryFile: hist, DBPath: db, Place: testPlace})
	assert.Error(t, err)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestConvert_ReadsInputInsteadOfFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "out.db")

	res, err := Convert(context.Background(), Options{
		HistoryFile: "-",
		Input:       strings.NewReader(threeEntries),
		DBPath:      db,
		Limit:       1,
		Place:       testPlace,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)

	cmds, _ := readBack(t, db)
	assert.Equal(t, []string{"pwd"}, cmds)
}
