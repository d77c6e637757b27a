package facts

import (
	"os"
	"runtime"
	"sync"
)

// Provider supplies the active facts tree
type Provider interface {
	Facts() Mash
}

// Static serves a fixed tree
type Static Mash

func (s Static) Facts() Mash { return Mash(s) }

// hostProvider describes the machine the process runs on. Detection runs once.
type hostProvider struct {
	once sync.Once
	data Mash
}

func (h *hostProvider) Facts() Mash {
	h.once.Do(func() {
		hostname, _ := os.Hostname()
		b := NewBuilder(nil).
			Set("platform", hostPlatform(runtime.GOOS)).
			Set("os", runtime.GOOS).
			Set("hostname", hostname).
			Set("kernel.machine", runtime.GOARCH).
			Set("cpu.total", runtime.NumCPU())
		h.data = b.Build()
	})
	return h.data
}

func hostPlatform(goos string) string {
	switch goos {
	case "darwin":
		return "mac_os_x"
	default:
		return goos
	}
}

var host = &hostProvider{}

var (
	mu      sync.RWMutex
	current Provider = host
)

// Current returns the installed facts tree. Last writer wins.
func Current() Mash {
	mu.RLock()
	p := current
	mu.RUnlock()
	return p.Facts()
}

// SetProvider installs p and returns a func restoring the previous provider
func SetProvider(p Provider) (restore func()) {
	if p == nil {
		p = host
	}
	mu.Lock()
	previous := current
	current = p
	mu.Unlock()

	return func() {
		mu.Lock()
		current = previous
		mu.Unlock()
	}
}

// Install replaces the active tree with m
func Install(m Mash) (restore func()) {
	return SetProvider(Static(m))
}

// Reset reinstalls the real host provider
func Reset() {
	mu.Lock()
	current = host
	mu.Unlock()
}
