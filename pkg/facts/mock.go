package facts

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/logging"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures
var fixtureFS embed.FS

// Fixture identifies one embedded facts file
type Fixture struct {
	Platform string `json:"platform" yaml:"platform"`
	Version  string `json:"version" yaml:"version"`
}

// Mock builds a facts tree for desc and applies customize in order.
// The descriptor's platform and version always win over the fixture's.
func Mock(desc Descriptor, customize ...func(*Builder)) (Mash, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	var (
		base map[string]any
		err  error
	)
	if desc.Path != "" {
		base, err = loadFile(desc.Path)
	} else {
		base, err = loadFixture(desc.Platform, desc.Version)
	}
	if err != nil {
		return nil, err
	}

	b := NewBuilder(base)
	if desc.Platform != "" {
		b.Set("platform", desc.Platform)
	}
	if desc.Version != "" {
		b.Set("platform_version", desc.Version)
	}
	for _, fn := range customize {
		if fn != nil {
			fn(b)
		}
	}

	m := b.Build()
	logger := logging.GetLogger("facts")
	logger.Debug().
		Str("platform", m.Platform()).
		Str("version", m.Version()).
		Msg("Built mock facts")
	return m, nil
}

// Platforms lists the embedded fixtures sorted by platform then version
func Platforms() []Fixture {
	var out []Fixture
	platforms, err := fixtureFS.ReadDir("fixtures")
	if err != nil {
		return nil
	}
	for _, p := range platforms {
		if !p.IsDir() {
			continue
		}
		versions, err := fixtureFS.ReadDir(path.Join("fixtures", p.Name()))
		if err != nil {
			continue
		}
		for _, v := range versions {
			if v.IsDir() || path.Ext(v.Name()) != ".yaml" {
				continue
			}
			out = append(out, Fixture{
				Platform: p.Name(),
				Version:  strings.TrimSuffix(v.Name(), ".yaml"),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Platform != out[j].Platform {
			return out[i].Platform < out[j].Platform
		}
		return compareVersions(out[i].Version, out[j].Version) < 0
	})
	return out
}

// LatestVersion returns the newest embedded version for platform
func LatestVersion(platform string) (string, bool) {
	latest := ""
	for _, f := range Platforms() {
		if f.Platform == platform {
			latest = f.Version
		}
	}
	return latest, latest != ""
}

func loadFixture(platform, version string) (map[string]any, error) {
	if version == "" {
		latest, ok := LatestVersion(platform)
		if !ok {
			return nil, errors.Newf(errors.ErrFixtureNotFound, "no fixtures for platform %q", platform).
				WithDetail("platform", platform)
		}
		version = latest
	}

	data, err := fs.ReadFile(fixtureFS, path.Join("fixtures", platform, version+".yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFixtureNotFound, "no fixture for %s %s", platform, version).
			WithDetails(map[string]interface{}{"platform": platform, "version": version})
	}
	return parseFacts(data, platform+"/"+version)
}

func loadFile(p string) (map[string]any, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFixtureNotFound, "cannot read facts file %s", p).
			WithDetail("path", p)
	}
	return parseFacts(data, p)
}

// parseFacts accepts YAML, and therefore JSON too.
func parseFacts(data []byte, source string) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDescriptorInvalid, "malformed facts in %s", source)
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// compareVersions orders dotted versions numerically where both parts are
// numbers and lexically otherwise.
func compareVersions(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		switch {
		case errA == nil && errB == nil:
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
		case pa[i] != pb[i]:
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return len(pa) - len(pb)
}
