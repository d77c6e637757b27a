package testharness

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/errors"
)

// Evaluator runs a snippet of the project-definition DSL in a fresh context
type Evaluator interface {
	Evaluate(snippet string) error
}

// EvaluatorFunc adapts a function to Evaluator
type EvaluatorFunc func(snippet string) error

func (f EvaluatorFunc) Evaluate(snippet string) error { return f(snippet) }

// Example is a single generated conformance check
type Example struct {
	Name string
	Run  func(t TB)
}

// CleanroomSetter checks that snippet, which exercises the setter id,
// evaluates without error. The result is never inspected.
func CleanroomSetter(subject Evaluator, id, snippet string) Example {
	return Example{
		Name: exampleName(id),
		Run: func(t TB) {
			t.Helper()
			if err := evaluate(subject, snippet); err != nil {
				t.Errorf("expected %q to evaluate without error: %v", snippet, err)
			}
		},
	}
}

// CleanroomGetter checks that the getter id evaluates without error
func CleanroomGetter(subject Evaluator, id string) Example {
	return Example{
		Name: exampleName(id),
		Run: func(t TB) {
			t.Helper()
			if err := evaluate(subject, id); err != nil {
				t.Errorf("expected %q to evaluate without error: %v", id, err)
			}
		},
	}
}

func exampleName(id string) string {
	return fmt.Sprintf("for `%s'", id)
}

// evaluate turns a panicking evaluator into an error
func evaluate(subject Evaluator, snippet string) (err error) {
	if subject == nil {
		return errors.New(errors.ErrEvaluate, "no evaluator")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrEvaluate, "evaluation panicked: %v", r)
		}
	}()
	return subject.Evaluate(snippet)
}

// ItBehavesLike runs examples as subtests grouped under group
func ItBehavesLike(t *testing.T, group string, examples ...Example) {
	t.Helper()
	t.Run(group, func(t *testing.T) {
		for _, ex := range examples {
			t.Run(ex.Name, func(t *testing.T) {
				ex.Run(t)
			})
		}
	})
}
