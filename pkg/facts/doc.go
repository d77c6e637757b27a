// Package facts models the system-facts tree (platform, version, kernel and
// other host attributes) consumed by platform-specific code, and holds the
// single process-wide provider of that tree.
//
// Mock builds deterministic trees from embedded per-platform fixtures so
// tests never inspect the real host.
package facts
