package testharness_test

import (
	"fmt"
	"strings"
)

// recorder is a TB that records failures instead of stopping the test
type recorder struct {
	name     string
	errors   []string
	fatals   []string
	logs     []string
	cleanups []func()
}

func newRecorder(name string) *recorder {
	return &recorder{name: name}
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recorder) Logf(format string, args ...interface{}) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func (r *recorder) Cleanup(fn func()) {
	r.cleanups = append(r.cleanups, fn)
}

func (r *recorder) Name() string { return r.name }

// finish runs cleanups last-in first-out, like testing.T
func (r *recorder) finish() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
	r.cleanups = nil
}

func (r *recorder) failed() bool {
	return len(r.errors) > 0 || len(r.fatals) > 0
}

func (r *recorder) String() string {
	return strings.Join(append(append([]string{}, r.fatals...), r.errors...), "\n")
}
