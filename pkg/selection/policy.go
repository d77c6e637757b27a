package selection

import (
	"math/rand/v2"

	"github.com/arthur-debert/omniharness/pkg/logging"
)

// Policy filters and orders cases
type Policy struct {
	// Platform is matched against platform-restricted tags
	Platform string
	Ordering Ordering
}

// NewPolicy builds the default policy: a seeded shuffle on platform.
// A zero seed picks a fresh one; an empty platform means the host.
func NewPolicy(platform string, seed uint64) Policy {
	if platform == "" {
		platform = HostPlatform()
	}
	return Policy{Platform: platform, Ordering: Random{Seed: seed}}
}

// Skip records why a case was excluded
type Skip struct {
	Case   Case   `json:"case" yaml:"case"`
	Reason string `json:"reason" yaml:"reason"`
}

// Plan is the outcome of applying a policy
type Plan struct {
	Selected []Case `json:"selected" yaml:"selected"`
	Skipped  []Skip `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Platform string `json:"platform" yaml:"platform"`
	Ordering string `json:"ordering" yaml:"ordering"`
	// Seed is zero for non-random orderings
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Plan filters and orders cases
func (p Policy) Plan(cases []Case) Plan {
	logger := logging.WithFields(map[string]interface{}{
		"component": "selection",
		"platform":  p.Platform,
	})
	done := logging.LogOperationStart(logger, "plan")
	defer done()

	ordering := p.Ordering
	if ordering == nil {
		ordering = Declared{}
	}
	if r, ok := ordering.(Random); ok && r.Seed == 0 {
		ordering = Random{Seed: rand.Uint64() | 1}
	}

	plan := Plan{Platform: p.Platform, Ordering: ordering.String()}
	if r, ok := ordering.(Random); ok {
		plan.Seed = r.Seed
	}

	var runnable []Case
	for _, c := range cases {
		if reason, skip := p.platformExclusion(c); skip {
			plan.Skipped = append(plan.Skipped, Skip{Case: c, Reason: reason})
			continue
		}
		runnable = append(runnable, c)
	}

	focused := filter(runnable, Tagged(TagFocus))
	if len(focused) > 0 {
		for _, c := range runnable {
			if !c.HasTag(TagFocus) {
				plan.Skipped = append(plan.Skipped, Skip{Case: c, Reason: "not focused"})
			}
		}
		runnable = focused
	}

	plan.Selected = ordering.Order(runnable)

	logger.Info().
		Str("ordering", plan.Ordering).
		Int("selected", len(plan.Selected)).
		Int("skipped", len(plan.Skipped)).
		Msg("Planned run")
	return plan
}

func (p Policy) platformExclusion(c Case) (string, bool) {
	if c.HasTag(TagWindowsOnly) && !IsWindows(p.Platform) {
		return "windows only", true
	}
	if c.HasTag(TagMacOnly) && !IsMac(p.Platform) {
		return "mac only", true
	}
	return "", false
}

func filter(cases []Case, pred Predicate) []Case {
	var out []Case
	for _, c := range cases {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
