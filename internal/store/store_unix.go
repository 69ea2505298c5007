//go:build !windows

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// checkOwnership refuses, when running as root, to write a store into a file
// or directory owned by another user.
func checkOwnership(path string) error {
	if os.Geteuid() != 0 {
		return nil
	}

	target := path
	if _, err := os.Stat(target); os.IsNotExist(err) {
		target = filepath.Dir(path)
	}
	info, err := os.Stat(target)
	if err != nil {
		// Open reports the real error.
		return nil
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	if stat.Uid != 0 {
		return fmt.Errorf("refusing to write store %s as root: %s is owned by uid %d", path, target, stat.Uid)
	}
	return nil
}
