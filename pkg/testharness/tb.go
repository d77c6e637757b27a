package testharness

// TB is the subset of testing.TB the harness reports through. *testing.T
// satisfies it; tests of the harness itself use a recorder.
type TB interface {
	Helper()
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Cleanup(func())
	Name() string
}
