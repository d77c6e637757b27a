// Package workspace owns the scratch directory tests write into.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/logging"
)

// Workspace is a directory the harness removes and recreates between tests
type Workspace struct {
	path string
}

// New returns a workspace rooted at path. Nothing is created until Reset.
func New(path string) (*Workspace, error) {
	if path == "" {
		return nil, errors.New(errors.ErrWorkspace, "workspace path must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWorkspace, "failed to get absolute path for %s", path)
	}
	if abs == filepath.Dir(abs) {
		return nil, errors.Newf(errors.ErrWorkspace, "refusing to use filesystem root %s as workspace", abs)
	}
	return &Workspace{path: abs}, nil
}

// Path returns the absolute workspace directory
func (w *Workspace) Path() string {
	return w.path
}

// Join returns a path inside the workspace
func (w *Workspace) Join(elem ...string) string {
	return filepath.Join(append([]string{w.path}, elem...)...)
}

// Reset recursively deletes the directory, if present, and creates it again
// empty. Removal rather than emptying guarantees no stale descendants.
func (w *Workspace) Reset() error {
	logger := logging.GetLogger("workspace")
	done := logging.LogOperationStart(logger, "reset-workspace")

	if err := os.RemoveAll(w.path); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspace, "failed to remove %s", w.path).
			WithDetail("path", w.path)
	}
	if err := os.MkdirAll(w.path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspace, "failed to create %s", w.path).
			WithDetail("path", w.path)
	}

	logger.Trace().Str("path", w.path).Msg("Workspace reset")
	done()
	return nil
}

// Remove deletes the workspace directory
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.path); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspace, "failed to remove %s", w.path)
	}
	return nil
}

// IsEmpty reports whether the workspace exists and has no entries
func (w *Workspace) IsEmpty() (bool, error) {
	entries, err := os.ReadDir(w.path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
