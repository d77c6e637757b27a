package testharness

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/selection"
)

// Body is a test run inside a fresh harness
type Body func(t *testing.T, h *Harness)

// Suite is a registry of harness-driven tests
type Suite struct {
	registry selection.Registry
	bodies   map[string]Body
	opts     []Option
	policy   *selection.Policy
}

// NewSuite returns an empty suite; opts apply to every test's harness
func NewSuite(opts ...Option) *Suite {
	return &Suite{
		bodies: make(map[string]Body),
		opts:   opts,
	}
}

// It registers body under name. Names must be unique within the suite.
func (s *Suite) It(name string, body Body, tags ...string) *Suite {
	if err := s.registry.Add(selection.Case{Name: name, Tags: tags}); err != nil {
		panic(fmt.Sprintf("testharness: %v", err))
	}
	s.bodies[name] = body
	return s
}

// WithPolicy replaces the policy derived from settings
func (s *Suite) WithPolicy(p selection.Policy) *Suite {
	s.policy = &p
	return s
}

// Cases lists registered cases in declaration order
func (s *Suite) Cases() []selection.Case {
	return s.registry.Cases()
}

// RunSuite plans the suite and runs every selected case as a subtest with
// its own harness. Excluded cases show up as skipped subtests.
func RunSuite(t *testing.T, s *Suite) selection.Plan {
	t.Helper()

	var policy selection.Policy
	if s.policy != nil {
		policy = *s.policy
	} else {
		settings, err := LoadSettings()
		if err != nil {
			t.Fatalf("failed to load harness settings: %v", err)
		}
		policy = selection.NewPolicy(settings.Platform, settings.Seed)
	}

	plan := s.registry.Plan(policy)
	if plan.Seed != 0 {
		t.Logf("Randomized with seed %d", plan.Seed)
	}

	for _, skip := range plan.Skipped {
		reason := skip.Reason
		t.Run(skip.Case.Name, func(t *testing.T) {
			t.Skip(reason)
		})
	}

	for _, c := range plan.Selected {
		body := s.bodies[c.Name]
		t.Run(c.Name, func(t *testing.T) {
			h := New(t, s.opts...)
			body(t, h)
		})
	}
	return plan
}
