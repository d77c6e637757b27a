// Package env abstracts environment-variable lookups behind a Provider so
// tests can layer overrides on top of the real process environment.
//
// Code that should honour stubs reads through Getenv (or a Provider taken
// from a context) instead of calling os.Getenv directly.
package env
