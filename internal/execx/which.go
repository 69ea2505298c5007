package execx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Which finds tool on PATH. A tool containing a path separator is checked
// directly.
func Which(tool string) (string, error) {
	if strings.ContainsRune(tool, os.PathSeparator) || strings.Contains(tool, "/") {
		if found, ok := findExecutable(filepath.Dir(tool), filepath.Base(tool)); ok {
			return found, nil
		}
		return "", errors.New(tool + " is not an executable file")
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		if found, ok := findExecutable(filepath.Clean(dir), tool); ok {
			return found, nil
		}
	}
	return "", errors.New(tool + " not found in PATH")
}
