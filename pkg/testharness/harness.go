package testharness

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/omniharness/pkg/config"
	"github.com/arthur-debert/omniharness/pkg/env"
	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/facts"
	"github.com/arthur-debert/omniharness/pkg/logging"
	"github.com/arthur-debert/omniharness/pkg/workspace"
	"github.com/rs/zerolog"
)

// Harness is the per-test isolation state
type Harness struct {
	t        TB
	settings Settings

	workspacePath string
	workspace     *workspace.Workspace
	defaultFacts  facts.Descriptor

	// ownsRoot is set when the workspace lives under an unmanaged root
	ownsRoot bool

	envStub    *env.Stub
	restoreEnv func()
	facts      facts.Mash
}

// Option customizes a Harness before the before hook runs
type Option func(*Harness)

// WithWorkspace pins the scratch directory
func WithWorkspace(path string) Option {
	return func(h *Harness) {
		h.workspacePath = path
	}
}

// WithDefaultFacts replaces the facts installed before the test
func WithDefaultFacts(desc facts.Descriptor) Option {
	return func(h *Harness) {
		h.defaultFacts = desc
	}
}

// WithSettings bypasses the process environment
func WithSettings(s Settings) Option {
	return func(h *Harness) {
		h.settings = s
		h.defaultFacts = s.DefaultFacts()
	}
}

// New runs the before hook for t and registers the after hook with
// t.Cleanup. Any setup failure is fatal.
func New(t TB, opts ...Option) *Harness {
	t.Helper()

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("failed to load harness settings: %v", err)
		return nil
	}

	h := &Harness{
		t:            t,
		settings:     settings,
		defaultFacts: settings.DefaultFacts(),
	}
	for _, opt := range opts {
		opt(h)
	}

	t.Cleanup(h.after)
	h.before()
	return h
}

func (h *Harness) before() {
	h.t.Helper()

	logging.SetLevel(zerolog.Disabled)
	config.Reset()

	ws, err := workspace.New(h.resolveWorkspacePath())
	if err != nil {
		h.t.Fatalf("failed to prepare workspace: %v", err)
		return
	}
	if err := ws.Reset(); err != nil {
		h.t.Fatalf("failed to reset workspace: %v", err)
		return
	}
	h.workspace = ws

	h.installFacts(h.defaultFacts)
}

func (h *Harness) after() {
	config.Reset()

	if h.restoreEnv != nil {
		h.restoreEnv()
		h.restoreEnv = nil
	}
	h.envStub = nil
	env.Reset()
	facts.Reset()

	if h.ownsRoot {
		removeUnmanagedRoot()
	}
}

func (h *Harness) resolveWorkspacePath() string {
	switch {
	case h.workspacePath != "":
		return h.workspacePath
	case h.settings.TmpPath != "":
		return h.settings.TmpPath
	default:
		h.ownsRoot = !rootManaged()
		return filepath.Join(processRoot(), "tmp")
	}
}

// TmpPath returns the scratch directory, empty at the start of every test
func (h *Harness) TmpPath() string {
	return h.workspace.Path()
}

// Workspace returns the scratch directory handle
func (h *Harness) Workspace() *workspace.Workspace {
	return h.workspace
}

// FixturesPath returns the absolute testdata directory of the package under test
func (h *Harness) FixturesPath() string {
	return h.testdataPath()
}

// OverridesPath returns testdata/overrides/<name>.overrides
func (h *Harness) OverridesPath(name string) string {
	return h.testdataPath("overrides", name+".overrides")
}

// ComplicatedPath returns testdata/complicated, the multi-project fixture tree
func (h *Harness) ComplicatedPath() string {
	return h.testdataPath("complicated")
}

func (h *Harness) testdataPath(elem ...string) string {
	h.t.Helper()
	p, err := filepath.Abs(filepath.Join(append([]string{"testdata"}, elem...)...))
	if err != nil {
		h.t.Fatalf("failed to resolve testdata path: %v", err)
	}
	return p
}

// Settings returns the settings the harness was built with
func (h *Harness) Settings() Settings {
	return h.settings
}

// StubEnv makes key resolve to value for the rest of the test. Every other
// key still resolves to the real environment. Values are formatted with
// fmt.Sprint; nil becomes the empty string.
func (h *Harness) StubEnv(key string, value any) {
	h.t.Helper()
	if key == "" {
		h.t.Fatalf("StubEnv: %v", errors.New(errors.ErrInvalidInput, "environment key must not be empty"))
		return
	}

	if h.envStub == nil {
		h.envStub = env.NewStub(env.OS{})
		h.restoreEnv = env.Install(h.envStub)
	}

	s := ""
	if value != nil {
		s = fmt.Sprint(value)
	}
	h.envStub.Set(key, s)
}

// Options describe a facts fixture: platform, version and path
type Options map[string]any

// StubOhai replaces the system facts with the fixture described by opts,
// then applies customize in order. The tree is returned and installed.
func (h *Harness) StubOhai(opts Options, customize ...func(*facts.Builder)) facts.Mash {
	h.t.Helper()

	desc, err := facts.ParseOptions(opts)
	if err != nil {
		h.t.Fatalf("StubOhai: %v", err)
		return nil
	}
	return h.installFacts(desc, customize...)
}

// StubFacts is StubOhai with a typed descriptor
func (h *Harness) StubFacts(desc facts.Descriptor, customize ...func(*facts.Builder)) facts.Mash {
	h.t.Helper()
	return h.installFacts(desc, customize...)
}

// Facts returns the tree installed for this test
func (h *Harness) Facts() facts.Mash {
	return h.facts
}

func (h *Harness) installFacts(desc facts.Descriptor, customize ...func(*facts.Builder)) facts.Mash {
	h.t.Helper()

	m, err := facts.Mock(desc, customize...)
	if err != nil {
		h.t.Fatalf("failed to mock system facts: %v", err)
		return nil
	}
	facts.Install(m)
	h.facts = m
	return m
}

// CaptureLogging runs fn and returns everything logged while it ran,
// regardless of the suppressed level. A block that leaves a different logger
// installed fails the test.
func (h *Harness) CaptureLogging(fn func()) string {
	h.t.Helper()

	out, err := logging.Capture(func() error {
		fn()
		return nil
	})
	if err != nil {
		h.t.Fatalf("CaptureLogging: %v", err)
	}
	return out
}

// CaptureLoggingE is CaptureLogging for blocks that fail. The block's error is
// returned with empty output.
func (h *Harness) CaptureLoggingE(fn func() error) (string, error) {
	h.t.Helper()

	out, err := logging.Capture(fn)
	if errors.IsErrorCode(err, errors.ErrLoggerRestore) {
		h.t.Fatalf("CaptureLogging: %v", err)
	}
	return out, err
}
