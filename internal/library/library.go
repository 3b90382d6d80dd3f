// Package library manages the local sounds directory.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/zjrosen/soundfetch/internal/log"
)

// DirPermissions is the mode used when creating the sounds directory.
const DirPermissions = 0755

// EnsureDir creates dir and any missing parents. Calling it on an existing
// directory is a no-op.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating sounds directory: %w", err)
	}
	log.Debug(log.CatLibrary, "Sounds directory ready", "dir", dir)
	return nil
}

// Existing returns the regular files in dir whose names appear in
// fileNames, sorted by name. Symlinks count when they resolve to a regular
// file. A missing directory has no files.
func Existing(dir string, fileNames []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sounds directory: %w", err)
	}

	known := make(map[string]struct{}, len(fileNames))
	for _, name := range fileNames {
		known[name] = struct{}{}
	}

	var found []string
	for _, entry := range entries {
		if _, ok := known[entry.Name()]; !ok {
			continue
		}
		if isRegular(dir, entry) {
			found = append(found, entry.Name())
		}
	}
	sort.Strings(found)
	log.Debug(log.CatLibrary, "Scanned sounds directory", "dir", dir, "found", len(found))
	return found, nil
}

func isRegular(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		log.Debug(log.CatLibrary, "Skipping unresolvable link", "name", entry.Name(), "error", err)
		return false
	}
	return info.Mode().IsRegular()
}
