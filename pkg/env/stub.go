package env

import (
	"sort"
	"strings"
	"sync"
)

// Stub overrides selected keys and delegates everything else.
// Overrides only accumulate; there is no way to remove one short of
// discarding the Stub.
type Stub struct {
	mu        sync.RWMutex
	delegate  Provider
	overrides map[string]string
}

// NewStub layers an empty override set over delegate (OS when nil).
func NewStub(delegate Provider) *Stub {
	if delegate == nil {
		delegate = OS{}
	}
	return &Stub{
		delegate:  delegate,
		overrides: make(map[string]string),
	}
}

// Set overrides key with value
func (s *Stub) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = value
}

// Get returns the override for key or the delegate's value
func (s *Stub) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the override for key or defers to the delegate
func (s *Stub) Lookup(key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.overrides[key]
	s.mu.RUnlock()
	if ok {
		return v, true
	}
	return s.delegate.Lookup(key)
}

// Environ returns the delegate's environment with overrides applied
func (s *Stub) Environ() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.overrides))
	for _, kv := range s.delegate.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := s.overrides[key]; overridden {
			continue
		}
		out = append(out, kv)
	}
	for _, key := range s.keysLocked() {
		out = append(out, key+"="+s.overrides[key])
	}
	return out
}

// Keys returns the overridden keys in sorted order
func (s *Stub) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keysLocked()
}

func (s *Stub) keysLocked() []string {
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Provider = (*Stub)(nil)
