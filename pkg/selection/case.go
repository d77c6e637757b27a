package selection

import "strings"

// Well-known tags. Hyphenated spellings (windows-only) are accepted too.
const (
	TagFocus       = "focus"
	TagWindowsOnly = "windows_only"
	TagMacOnly     = "mac_only"
)

// Case is a test known to the registry
type Case struct {
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the case carries tag. Hyphens and underscores
// compare equal.
func (c Case) HasTag(tag string) bool {
	want := normalizeTag(tag)
	for _, t := range c.Tags {
		if normalizeTag(t) == want {
			return true
		}
	}
	return false
}

func normalizeTag(tag string) string {
	return strings.ReplaceAll(tag, "-", "_")
}

// Predicate matches cases
type Predicate func(Case) bool

// Tagged matches cases carrying tag
func Tagged(tag string) Predicate {
	return func(c Case) bool { return c.HasTag(tag) }
}
