package testharness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeM struct {
	code int
	seen string
}

func (m *fakeM) Run() int {
	m.seen = processRoot()
	_ = os.WriteFile(filepath.Join(m.seen, "marker"), nil, 0644)
	return m.code
}

func TestRunCreatesAndRemovesRoot(t *testing.T) {
	before := processRoot()

	m := &fakeM{code: 3}
	assert.Equal(t, 3, run(m))

	require.NotEmpty(t, m.seen)
	assert.NotEqual(t, before, m.seen, "each run gets its own root")
	assert.Equal(t, rootBase(), filepath.Dir(m.seen))
	assert.NoDirExists(t, m.seen)
	assert.Equal(t, before, processRoot())
}

func TestNewWithoutMainRemovesRoot(t *testing.T) {
	rootMu.Lock()
	previous, previousManaged := root, managed
	root, managed = filepath.Join(t.TempDir(), "run-unmanaged"), false
	rootMu.Unlock()
	t.Cleanup(func() {
		rootMu.Lock()
		root, managed = previous, previousManaged
		rootMu.Unlock()
	})

	settings := Settings{FactsPlatform: "ubuntu", FactsVersion: "12.04"}
	var tmp string
	for i := 0; i < 2; i++ {
		t.Run("harness", func(t *testing.T) {
			h := New(t, WithSettings(settings))
			tmp = h.TmpPath()
			assert.DirExists(t, tmp)
			assert.Equal(t, processRoot(), filepath.Dir(tmp))
		})
		assert.NoDirExists(t, tmp)
		assert.NoDirExists(t, processRoot())
	}
}

func TestNewUnderMainKeepsRoot(t *testing.T) {
	m := &harnessM{t: t}
	assert.Equal(t, 0, run(m))

	assert.True(t, m.rootSurvived, "Main removes its root, not the harness")
	assert.NoDirExists(t, m.root)
}

type harnessM struct {
	t            *testing.T
	root         string
	rootSurvived bool
}

func (m *harnessM) Run() int {
	m.root = processRoot()
	m.t.Run("harness", func(t *testing.T) {
		New(t, WithSettings(Settings{FactsPlatform: "ubuntu", FactsVersion: "12.04"}))
	})
	_, err := os.Stat(m.root)
	m.rootSurvived = err == nil
	return 0
}
