package workspace_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/logging"
	"github.com/arthur-debert/omniharness/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset_CreatesMissingDirectory(t *testing.T) {
	ws, err := workspace.New(filepath.Join(t.TempDir(), "tmp"))
	require.NoError(t, err)

	require.NoError(t, ws.Reset())

	info, err := os.Stat(ws.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	empty, err := ws.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestReset_RemovesDescendants(t *testing.T) {
	ws, err := workspace.New(filepath.Join(t.TempDir(), "tmp"))
	require.NoError(t, err)
	require.NoError(t, ws.Reset())

	nested := ws.Join("a", "b", "c.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0755))
	require.NoError(t, os.WriteFile(nested, []byte("stale"), 0644))
	require.NoError(t, os.WriteFile(ws.Join("top.txt"), []byte("stale"), 0644))

	require.NoError(t, ws.Reset())

	assert.NoFileExists(t, nested)
	assert.NoFileExists(t, ws.Join("top.txt"))
	assert.NoDirExists(t, ws.Join("a"))

	empty, err := ws.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestReset_FailsWhenParentIsAFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

	ws, err := workspace.New(filepath.Join(parent, "tmp"))
	require.NoError(t, err)

	err = ws.Reset()
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspace))
}

func TestNew_Validation(t *testing.T) {
	_, err := workspace.New("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspace))

	_, err = workspace.New(string(filepath.Separator))
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspace))

	ws, err := workspace.New("relative/tmp")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(ws.Path()))
}

func TestRemove(t *testing.T) {
	ws, err := workspace.New(filepath.Join(t.TempDir(), "tmp"))
	require.NoError(t, err)
	require.NoError(t, ws.Reset())

	require.NoError(t, ws.Remove())
	assert.NoDirExists(t, ws.Path())

	_, err = ws.IsEmpty()
	assert.Error(t, err)
}

func TestReset_LogsOperation(t *testing.T) {
	var buf bytes.Buffer
	previous := logging.Set(logging.New(&buf))
	t.Cleanup(func() { logging.Set(previous) })

	ws, err := workspace.New(filepath.Join(t.TempDir(), "tmp"))
	require.NoError(t, err)
	require.NoError(t, ws.Reset())

	out := buf.String()
	assert.Contains(t, out, "operation=reset-workspace")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "component=workspace")
}
