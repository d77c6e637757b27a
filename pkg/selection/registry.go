package selection

import (
	"io"
	"os"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Registry holds cases in declaration order. Names are unique.
type Registry struct {
	cases []Case
	names map[string]struct{}
}

// Add registers c
func (r *Registry) Add(c Case) error {
	if c.Name == "" {
		return errors.New(errors.ErrInvalidInput, "case name must not be empty")
	}
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, dup := r.names[c.Name]; dup {
		return errors.Newf(errors.ErrInvalidInput, "duplicate case %q", c.Name)
	}
	r.names[c.Name] = struct{}{}
	r.cases = append(r.cases, c)
	return nil
}

// Cases returns the registered cases in declaration order
func (r *Registry) Cases() []Case {
	return append([]Case(nil), r.cases...)
}

// Len returns the number of registered cases
func (r *Registry) Len() int {
	return len(r.cases)
}

// Plan applies p to the registered cases
func (r *Registry) Plan(p Policy) Plan {
	return p.Plan(r.cases)
}

// manifest is the on-disk list of cases
type manifest struct {
	Cases []Case `yaml:"cases"`
}

// LoadManifest reads a YAML manifest into a registry
func LoadManifest(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifest, "failed to open manifest %s", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseManifest(f)
}

// ParseManifest decodes a manifest of the form
//
//	cases:
//	  - name: builds on windows
//	    tags: [windows_only]
func ParseManifest(r io.Reader) (*Registry, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrManifest, "failed to parse manifest")
	}

	reg := &Registry{}
	for _, c := range m.Cases {
		if err := reg.Add(c); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifest, "invalid manifest")
		}
	}
	return reg, nil
}
