package config

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/omniharness/pkg/env"
	harnesserrors "github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment keys that override configuration.
// A double underscore separates section from key: OMNIBUS_BUILD__RETRIES.
const EnvPrefix = "OMNIBUS_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultsContent returns the embedded defaults file
func DefaultsContent() string {
	return string(defaultConfig)
}

// Default returns a fresh copy of the documented defaults
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load merges defaults, the file at path (TOML or YAML by extension, skipped
// when path is empty) and OMNIBUS_* overrides from the env provider.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, harnesserrors.Wrap(err, harnesserrors.ErrConfigLoad, "failed to load defaults")
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, harnesserrors.Wrapf(err, harnesserrors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	if err := k.Load(confmap.Provider(envOverrides(env.Current()), "."), nil); err != nil {
		return nil, harnesserrors.Wrap(err, harnesserrors.ErrConfigLoad, "failed to load env overrides")
	}

	return unmarshal(k)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, harnesserrors.Newf(harnesserrors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// envOverrides maps OMNIBUS_SECTION__KEY=value to section.key
func envOverrides(p env.Provider) map[string]interface{} {
	out := make(map[string]interface{})
	for _, kv := range p.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		section, field, ok := strings.Cut(name, "__")
		if !ok || section == "" || field == "" {
			continue
		}
		out[section+"."+field] = value
	}
	return out
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, harnesserrors.Wrap(err, harnesserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcessConfig(&cfg)
	return &cfg, nil
}
