package testharness

import (
	"strings"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/facts"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	koanfenv "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// SettingsEnvPrefix prefixes every harness setting in the process environment
const SettingsEnvPrefix = "OMNIHARNESS_"

// Settings tune a harness run from the outside, e.g.
//
//	OMNIHARNESS_SEED=1234 go test ./...
type Settings struct {
	// Seed for the shuffled order; zero picks a fresh one
	Seed uint64 `koanf:"seed"`
	// TmpPath pins the workspace directory
	TmpPath string `koanf:"tmp_path"`
	// Platform overrides the host identifier used for tag filtering
	Platform string `koanf:"platform"`
	// FactsPlatform and FactsVersion pick the default facts fixture
	FactsPlatform string `koanf:"facts_platform"`
	FactsVersion  string `koanf:"facts_version"`
}

// DefaultFacts returns the descriptor installed before every test
func (s Settings) DefaultFacts() facts.Descriptor {
	return facts.Descriptor{Platform: s.FactsPlatform, Version: s.FactsVersion}
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"seed":           0,
		"tmp_path":       "",
		"platform":       "",
		"facts_platform": facts.DefaultDescriptor.Platform,
		"facts_version":  facts.DefaultDescriptor.Version,
	}
}

// LoadSettings reads OMNIHARNESS_* variables from the real process
// environment over built-in defaults. Stubbed environments never apply here.
func LoadSettings() (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load harness defaults")
	}

	transform := func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, SettingsEnvPrefix))
	}
	if err := k.Load(koanfenv.Provider(SettingsEnvPrefix, ".", transform), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read harness environment")
	}

	var s Settings
	err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "invalid harness settings")
	}
	return s, nil
}
