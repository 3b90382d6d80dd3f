// Package paths resolves filesystem locations used by soundfetch.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSoundsDir is the sounds directory relative to the project root.
const DefaultSoundsDir = "public/sounds"

// ResolveSoundsDir normalizes the configured sounds directory.
// An empty value yields DefaultSoundsDir and a leading "~" expands to the
// user's home directory. The result is cleaned but not made absolute.
func ResolveSoundsDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return filepath.FromSlash(DefaultSoundsDir)
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Clean(dir)
}

// ConfigFileName is the project-local config file looked up in the
// working directory.
const ConfigFileName = ".soundfetch.yaml"

// UserConfigPath returns the per-user config file location, or "" if the
// user config directory cannot be determined.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "soundfetch", "config.yaml")
}
