// Package config loads zhistdb defaults from an optional TOML file.
//
// Example ~/.config/zhistdb/config.toml:
//
//	history_file = "~/.zsh_history"
//	data_dir = "~/.local/share/zhistdb"
//	host = "laptop"
//	redact = true
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

type Config struct {
	HistoryFile string `toml:"history_file"`
	Output      string `toml:"output"`
	DataDir     string `toml:"data_dir"`
	Count       int    `toml:"count"`
	Host        string `toml:"host"`
	Dir         string `toml:"dir"`
	Session     int64  `toml:"session"`
	Redact      bool   `toml:"redact"`
	Import      bool   `toml:"import"`
	Atuin       string `toml:"atuin"`
}

func Default() Config {
	return Config{
		HistoryFile: "~/.histfile",
		Output:      "zsh-history.db",
		DataDir:     "data",
		Session:     1,
		Atuin:       "atuin",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/zhistdb/config.toml, falling back to
// ~/.config/zhistdb/config.toml.
func DefaultPath() string {
	if x := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); x != "" {
		return filepath.Join(x, "zhistdb", "config.toml")
	}
	return filepath.Join(Expand("~"), ".config", "zhistdb", "config.toml")
}

// Load reads path on top of Default(). A missing file returns an error
// matching os.ErrNotExist together with the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	path = Expand(path)
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Session < 0 {
		return Default(), fmt.Errorf("config %s: session must not be negative", path)
	}
	return cfg, nil
}

// Expand resolves a leading ~ to the user's home directory. Paths it cannot
// expand are returned unchanged.
func Expand(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		return expanded
	}
	return path
}
