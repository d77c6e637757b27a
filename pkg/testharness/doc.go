// Package testharness isolates tests of the packaging tool from one another.
//
// New is the before hook: it silences logging, resets the global
// configuration, recreates the scratch workspace and installs a default facts
// tree. The after hook it registers with t.Cleanup resets configuration again
// and drops any environment or facts interception, so a test never sees what
// a previous test stubbed.
//
// Within a test the harness offers three interception points:
//   - StubEnv: override single environment keys, delegating the rest
//   - StubOhai: replace the system facts tree with a fixture
//   - CaptureLogging: collect exactly the log output of a block
//
// Suites that need tag filtering and shuffled order register their cases on a
// Suite and hand it to RunSuite.
//
// Harness-driven tests share process-wide state and must not call t.Parallel.
package testharness
