package env

import (
	"context"
	"os"
	"sync"
)

// Provider resolves environment keys
type Provider interface {
	Get(key string) string
	Lookup(key string) (string, bool)
	// Environ returns KEY=value pairs, like os.Environ
	Environ() []string
}

// OS forwards every lookup to the operating system
type OS struct{}

func (OS) Get(key string) string            { return os.Getenv(key) }
func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (OS) Environ() []string                { return os.Environ() }

var _ Provider = OS{}

var (
	mu      sync.RWMutex
	current Provider = OS{}
)

// Current returns the process-wide provider
func Current() Provider {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Install makes p the process-wide provider and returns a func that puts the
// previous one back.
func Install(p Provider) (restore func()) {
	if p == nil {
		p = OS{}
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

// Reset reinstalls the real OS provider
func Reset() {
	mu.Lock()
	current = OS{}
	mu.Unlock()
}

// Getenv looks key up through the process-wide provider
func Getenv(key string) string {
	return Current().Get(key)
}

// LookupEnv looks key up through the process-wide provider
func LookupEnv(key string) (string, bool) {
	return Current().Lookup(key)
}

type ctxKeyType struct{}

var ctxKey ctxKeyType

// WithProvider stores p on ctx.
func WithProvider(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext returns the provider stored on ctx, or Current().
func FromContext(ctx context.Context) Provider {
	if ctx != nil {
		if p, ok := ctx.Value(ctxKey).(Provider); ok && p != nil {
			return p
		}
	}
	return Current()
}
