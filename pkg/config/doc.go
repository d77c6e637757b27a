// Package config holds the process-wide build configuration.
// Defaults are embedded TOML; Load layers a user file and OMNIBUS_*
// environment overrides on top, and Reset goes back to the defaults alone.
package config
