// Package selection decides which tests run and in what order.
//
// Platform-restricted cases (windows_only, mac_only) are dropped unless the
// host matches, focus-tagged cases take over the run when any survive, and the
// remaining cases are ordered by a pluggable Ordering, normally a seeded shuffle
// so order-dependent isolation bugs surface and can be replayed.
package selection
