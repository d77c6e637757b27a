package config

import "sync"

var (
	mu           sync.RWMutex
	globalConfig *Config
)

// Initialize sets up the global configuration; nil means defaults
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = Default()
	}
	mu.Lock()
	globalConfig = cfg
	mu.Unlock()
}

// Get returns the current configuration
func Get() *Config {
	mu.RLock()
	cfg := globalConfig
	mu.RUnlock()
	if cfg == nil {
		Initialize(nil)
		return Get()
	}
	return cfg
}

// Reset discards every change and reinstalls a fresh copy of the defaults.
// Calling it repeatedly is harmless.
func Reset() {
	Initialize(Default())
}
