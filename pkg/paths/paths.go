// Package paths resolves where omniharness keeps state, caches and scratch
// workspaces. Directories follow the XDG base directory layout and can be
// overridden per kind through the environment.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/omniharness/pkg/env"
)

const (
	// DirName is the subdirectory used under each XDG base directory
	DirName = "omniharness"
	// LogFileName is the CLI log file inside the state directory
	LogFileName = "omniharness.log"

	EnvStateDir = "OMNIHARNESS_STATE_DIR"
	EnvCacheDir = "OMNIHARNESS_CACHE_DIR"
)

// StateDir returns the directory for logs and other persistent state
func StateDir() string {
	if dir := env.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, DirName)
}

// CacheDir returns the directory scratch workspaces are created under
func CacheDir() string {
	if dir := env.Getenv(EnvCacheDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.CacheHome, DirName)
}

// LogFilePath returns the CLI log file path
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = env.Getenv("HOME")
		if home == "" {
			return path
		}
	}

	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~user is left alone
	return path
}
