package facts

import (
	"fmt"
	"sort"
	"strings"
)

// Mash is a nested facts tree. Nested nodes are map[string]any.
type Mash map[string]any

// Get walks a dotted path such as "kernel.machine"
func (m Mash) Get(path string) (any, bool) {
	return lookup(map[string]any(m), path)
}

// String returns the value at path formatted as a string, or "" when absent
func (m Mash) String(path string) string {
	v, ok := m.Get(path)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Platform returns the platform name, e.g. "ubuntu"
func (m Mash) Platform() string { return m.String("platform") }

// Version returns the platform version, e.g. "12.04"
func (m Mash) Version() string { return m.String("platform_version") }

// Clone returns a deep copy
func (m Mash) Clone() Mash {
	return Mash(deepCopyMap(m))
}

// Leaf is a scalar fact addressed by its dotted path
type Leaf struct {
	Path  string
	Value any
}

// Flatten lists every scalar fact sorted by path. Lists are leaves.
func (m Mash) Flatten() []Leaf {
	var out []Leaf
	flatten("", map[string]any(m), &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func flatten(prefix string, node map[string]any, out *[]Leaf) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if child, ok := asMap(v); ok {
			flatten(path, child, out)
			continue
		}
		*out = append(*out, Leaf{Path: path, Value: v})
	}
}

func lookup(node map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur any = node
	for _, part := range parts {
		next, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = next[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Mash:
		return map[string]any(m), true
	}
	return nil, false
}

func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case Mash:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
