package facts

import (
	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Descriptor names the fixture a mock tree is built from
type Descriptor struct {
	Platform string `mapstructure:"platform"`
	Version  string `mapstructure:"version"`
	// Path points at a YAML or JSON facts file used instead of an embedded fixture
	Path string `mapstructure:"path"`
}

// DefaultDescriptor is the tree installed before every harness-driven test
var DefaultDescriptor = Descriptor{Platform: "ubuntu", Version: "12.04"}

// ParseOptions decodes loosely typed options into a Descriptor. Unknown keys
// and values of the wrong type are rejected.
func ParseOptions(opts map[string]any) (Descriptor, error) {
	var d Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &d,
		ErrorUnused: true,
	})
	if err != nil {
		return Descriptor{}, errors.Wrap(err, errors.ErrInternal, "failed to create descriptor decoder")
	}
	if err := decoder.Decode(opts); err != nil {
		return Descriptor{}, errors.Wrap(err, errors.ErrDescriptorInvalid, "invalid facts options").
			WithDetail("options", opts)
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate checks that the descriptor identifies a source of facts
func (d Descriptor) Validate() error {
	if d.Path != "" {
		return nil
	}
	if d.Platform == "" {
		return errors.New(errors.ErrDescriptorInvalid, "platform is required unless path is given").
			WithDetail("version", d.Version)
	}
	return nil
}
