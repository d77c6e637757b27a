package selection_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/logging"
	"github.com/arthur-debert/omniharness/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cases []selection.Case) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.Name)
	}
	return out
}

func registry(t *testing.T, cases ...selection.Case) *selection.Registry {
	t.Helper()
	reg := &selection.Registry{}
	for _, c := range cases {
		require.NoError(t, reg.Add(c))
	}
	return reg
}

func TestPlatformPredicates(t *testing.T) {
	tests := []struct {
		platform string
		windows  bool
		mac      bool
	}{
		{"windows", true, false},
		{"x64-mingw32", true, false},
		{"i386-mswin32", true, false},
		{"darwin", false, true},
		{"x86_64-darwin13", false, true},
		{"linux", false, false},
		{"freebsd", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			assert.Equal(t, tt.windows, selection.IsWindows(tt.platform))
			assert.Equal(t, tt.mac, selection.IsMac(tt.platform))
		})
	}
}

func TestPlan_PlatformTags(t *testing.T) {
	reg := registry(t,
		selection.Case{Name: "everywhere"},
		selection.Case{Name: "msi", Tags: []string{selection.TagWindowsOnly}},
		selection.Case{Name: "pkg", Tags: []string{selection.TagMacOnly}},
		selection.Case{Name: "appx", Tags: []string{"windows-only"}},
		selection.Case{Name: "dmg", Tags: []string{"mac-only"}},
	)

	tests := []struct {
		platform string
		want     []string
		skipped  []string
	}{
		{"linux", []string{"everywhere"}, []string{"msi", "pkg", "appx", "dmg"}},
		{"windows", []string{"everywhere", "msi", "appx"}, []string{"pkg", "dmg"}},
		{"darwin", []string{"everywhere", "pkg", "dmg"}, []string{"msi", "appx"}},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			plan := reg.Plan(selection.Policy{Platform: tt.platform, Ordering: selection.Declared{}})
			assert.Equal(t, tt.want, names(plan.Selected))

			var skipped []string
			for _, s := range plan.Skipped {
				skipped = append(skipped, s.Case.Name)
				assert.NotEmpty(t, s.Reason)
			}
			assert.Equal(t, tt.skipped, skipped)
		})
	}
}

func TestPlan_Focus(t *testing.T) {
	t.Run("focused_cases_take_over", func(t *testing.T) {
		reg := registry(t,
			selection.Case{Name: "a"},
			selection.Case{Name: "b", Tags: []string{selection.TagFocus}},
			selection.Case{Name: "c"},
		)
		plan := reg.Plan(selection.Policy{Platform: "linux", Ordering: selection.Declared{}})
		assert.Equal(t, []string{"b"}, names(plan.Selected))
		assert.Len(t, plan.Skipped, 2)
	})

	t.Run("no_focus_runs_everything", func(t *testing.T) {
		reg := registry(t, selection.Case{Name: "a"}, selection.Case{Name: "b"})
		plan := reg.Plan(selection.Policy{Platform: "linux", Ordering: selection.Declared{}})
		assert.Equal(t, []string{"a", "b"}, names(plan.Selected))
		assert.Empty(t, plan.Skipped)
	})

	t.Run("focus_excluded_by_platform_falls_back_to_all", func(t *testing.T) {
		reg := registry(t,
			selection.Case{Name: "a"},
			selection.Case{Name: "msi", Tags: []string{selection.TagFocus, selection.TagWindowsOnly}},
		)
		plan := reg.Plan(selection.Policy{Platform: "linux", Ordering: selection.Declared{}})
		assert.Equal(t, []string{"a"}, names(plan.Selected))
	})
}

func TestRandomOrdering(t *testing.T) {
	var cases []selection.Case
	for _, n := range strings.Split("a b c d e f g h i j k l", " ") {
		cases = append(cases, selection.Case{Name: n})
	}

	first := selection.Random{Seed: 42}.Order(cases)
	second := selection.Random{Seed: 42}.Order(cases)
	assert.Equal(t, names(first), names(second), "same seed replays the same order")
	assert.ElementsMatch(t, names(cases), names(first))
	assert.Equal(t, "a", cases[0].Name, "input is not reordered in place")

	other := selection.Random{Seed: 7}.Order(cases)
	assert.NotEqual(t, names(first), names(other))
}

func TestCaseHasTagIgnoresSeparator(t *testing.T) {
	c := selection.Case{Name: "installer", Tags: []string{"windows-only", "focus"}}
	assert.True(t, c.HasTag(selection.TagWindowsOnly))
	assert.True(t, c.HasTag("windows-only"))
	assert.True(t, c.HasTag(selection.TagFocus))
	assert.False(t, c.HasTag(selection.TagMacOnly))
}

func TestPlan_LogsOperation(t *testing.T) {
	var buf bytes.Buffer
	previous := logging.Set(logging.New(&buf))
	t.Cleanup(func() { logging.Set(previous) })

	reg := registry(t, selection.Case{Name: "a"})
	reg.Plan(selection.Policy{Platform: "linux"})

	out := buf.String()
	assert.Contains(t, out, "operation=plan")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "component=selection")
	assert.Contains(t, out, "platform=linux")
	assert.Contains(t, out, "Planned run")
}

func TestPlan_SeedIsRecorded(t *testing.T) {
	reg := registry(t, selection.Case{Name: "a"}, selection.Case{Name: "b"})

	plan := reg.Plan(selection.NewPolicy("linux", 1234))
	assert.Equal(t, uint64(1234), plan.Seed)
	assert.Contains(t, plan.Ordering, "1234")

	generated := reg.Plan(selection.NewPolicy("linux", 0))
	assert.NotZero(t, generated.Seed, "a zero seed is replaced and reported")

	declared := reg.Plan(selection.Policy{Platform: "linux"})
	assert.Zero(t, declared.Seed)
	assert.Equal(t, "declared", declared.Ordering)
}

func TestNewPolicyDefaultsToHost(t *testing.T) {
	p := selection.NewPolicy("", 1)
	assert.Equal(t, selection.HostPlatform(), p.Platform)
}

func TestRegistryRejectsInvalidCases(t *testing.T) {
	reg := &selection.Registry{}
	require.NoError(t, reg.Add(selection.Case{Name: "a"}))

	err := reg.Add(selection.Case{Name: "a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Add(selection.Case{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 1, reg.Len())
}

func TestParseManifest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		reg, err := selection.ParseManifest(strings.NewReader(`
cases:
  - name: builds a deb
  - name: builds an msi
    tags: [windows_only]
`))
		require.NoError(t, err)
		cases := reg.Cases()
		require.Len(t, cases, 2)
		assert.True(t, cases[1].HasTag(selection.TagWindowsOnly))
	})

	t.Run("empty", func(t *testing.T) {
		reg, err := selection.ParseManifest(strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, reg.Len())
	})

	t.Run("unknown_field", func(t *testing.T) {
		_, err := selection.ParseManifest(strings.NewReader("cases:\n  - name: a\n    labels: [x]\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := selection.ParseManifest(strings.NewReader("cases:\n  - name: a\n  - name: a\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := selection.LoadManifest("/nonexistent/cases.yaml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
	})
}
