// Package place resolves the host and directory recorded for converted
// history entries. It is resolved once per run so the store never reads the
// environment itself.
package place

import (
	"os"
	"strings"

	"github.com/joelklabo/zhistdb/internal/store"
)

// Detect returns the current hostname and working directory.
func Detect() store.Place {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return store.Place{Host: host, Dir: cwd}
}

// Resolve returns Detect() with any non-blank override applied.
func Resolve(host, dir string) store.Place {
	p := Detect()
	if h := strings.TrimSpace(host); h != "" {
		p.Host = h
	}
	if d := strings.TrimSpace(dir); d != "" {
		p.Dir = d
	}
	return p
}
