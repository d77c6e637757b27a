package selection

import (
	"regexp"
	"runtime"
)

var (
	windowsPattern = regexp.MustCompile(`mswin|mingw|windows`)
	macPattern     = regexp.MustCompile(`darwin`)
)

// HostPlatform returns the identifier of the executing operating system
func HostPlatform() string {
	return runtime.GOOS
}

// IsWindows reports whether platform names a Windows host
func IsWindows(platform string) bool {
	return windowsPattern.MatchString(platform)
}

// IsMac reports whether platform names a macOS host
func IsMac(platform string) bool {
	return macPattern.MatchString(platform)
}
