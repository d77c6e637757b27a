package testharness

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/logging"
	"github.com/arthur-debert/omniharness/pkg/paths"
)

var (
	rootMu sync.Mutex
	root   string
	// managed is set while Main owns root and will remove it
	managed bool
)

// processRoot returns the directory workspaces live under for this process.
// Main creates a unique one; without Main it is derived from the pid.
func processRoot() string {
	rootMu.Lock()
	defer rootMu.Unlock()

	if root == "" {
		root = filepath.Join(rootBase(), fmt.Sprintf("run-%d", os.Getpid()))
	}
	return root
}

func rootManaged() bool {
	rootMu.Lock()
	defer rootMu.Unlock()
	return managed
}

// removeUnmanagedRoot deletes the pid-derived root when no Main will. The
// next harness recreates it.
func removeUnmanagedRoot() {
	if rootManaged() {
		return
	}
	dir := processRoot()
	if err := os.RemoveAll(dir); err != nil {
		logger := logging.GetLogger("testharness")
		logger.Warn().Err(err).Str("path", dir).Msg("Failed to remove workspace root")
	}
}

func rootBase() string {
	return paths.CacheDir()
}

// Main is a TestMain helper:
//
//	func TestMain(m *testing.M) { testharness.Main(m) }
//
// It gives the package a private workspace root, runs the tests and removes
// the root afterwards.
func Main(m *testing.M) {
	os.Exit(run(m))
}

func run(m interface{ Run() int }) int {
	logger := logging.GetLogger("testharness")

	base := rootBase()
	if err := os.MkdirAll(base, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "testharness: failed to create %s: %v\n", base, err)
		return 1
	}
	dir, err := os.MkdirTemp(base, "run-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "testharness: failed to create workspace root: %v\n", err)
		return 1
	}

	rootMu.Lock()
	previous, previousManaged := root, managed
	root, managed = dir, true
	rootMu.Unlock()

	defer func() {
		rootMu.Lock()
		root, managed = previous, previousManaged
		rootMu.Unlock()

		if err := os.RemoveAll(dir); err != nil {
			logger.Warn().Err(err).Str("path", dir).Msg("Failed to remove workspace root")
		}
	}()

	return m.Run()
}
