package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTempHome(t *testing.T) string {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.MkdirAll(home, 0o755))
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	// go-homedir caches the home directory.
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
history_file = "/var/tmp/hist"
count = 25
host = "laptop"
redact = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.HistoryFile = "/var/tmp/hist"
	want.Count = 25
	want.Host = "laptop"
	want.Redact = true
	assert.Equal(t, want, cfg)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "outptu = \"typo.db\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outptu")
}

func TestLoad_RejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "count = \"many\"\n")

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RejectsNegativeSession(t *testing.T) {
	path := writeConfig(t, "session = -3\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestExpand_Home(t *testing.T) {
	home := setTempHome(t)

	assert.Equal(t, filepath.Join(home, ".histfile"), Expand("~/.histfile"))
	assert.Equal(t, "/abs/path", Expand("/abs/path"))
	assert.Equal(t, "relative", Expand("relative"))
}

func TestDefaultPath(t *testing.T) {
	home := setTempHome(t)
	assert.Equal(t, filepath.Join(home, ".config", "zhistdb", "config.toml"), DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "zhistdb", "config.toml"), DefaultPath())
}
