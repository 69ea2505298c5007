// Package histfile reads zsh extended-history files.
//
// Each entry is a single physical line of the form
//
//	: <start>:<elapsed>;<command>
//
// Backslash-continued entries (multi-line commands) are not joined: only the
// first physical line of such an entry parses, the continuation lines do not
// match the grammar and are dropped.
package histfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrHistoryNotFound is returned when the history file does not exist.
var ErrHistoryNotFound = errors.New("history file not found")

// Record is one command execution parsed from a history line.
type Record struct {
	Timestamp uint64 // seconds since epoch
	Duration  uint64 // seconds
	Command   string
}

var lineRe = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

// Parse parses a single history line. ok is false for anything that is not
// an extended-history entry.
func Parse(line string) (rec Record, ok bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	// 63 bits so values always fit an SQLite INTEGER.
	ts, err := strconv.ParseUint(m[1], 10, 63)
	if err != nil {
		return Record{}, false
	}
	dur, err := strconv.ParseUint(m[2], 10, 63)
	if err != nil {
		return Record{}, false
	}
	return Record{Timestamp: ts, Duration: dur, Command: m[3]}, true
}

// ReadRecent returns up to limit entries from the file at path, most recent
// first. A limit <= 0 returns every entry.
func ReadRecent(path string, limit int) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrHistoryNotFound, path)
		}
		return nil, err
	}
	return recent(b, limit), nil
}

// ParseRecent is ReadRecent over an arbitrary reader.
func ParseRecent(r io.Reader, limit int) ([]Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return recent(b, limit), nil
}

func recent(b []byte, limit int) []Record {
	lines := bytes.Split(b, []byte("\n"))

	var out []Record
	for i := len(lines) - 1; i >= 0; i-- {
		// zsh writes metafied bytes; invalid sequences are dropped, not fatal.
		line := strings.TrimSpace(strings.ToValidUTF8(string(lines[i]), ""))
		if line == "" {
			continue
		}
		rec, ok := Parse(line)
		if !ok {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
