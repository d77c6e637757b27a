package config

import (
	"path/filepath"
	"time"

	gotoml "github.com/pelletier/go-toml/v2"
)

// Paths holds the directories a build works in
type Paths struct {
	BaseDir     string `koanf:"base_dir" toml:"base_dir"`
	CacheDir    string `koanf:"cache_dir" toml:"cache_dir"`
	GitCacheDir string `koanf:"git_cache_dir" toml:"git_cache_dir"`
	SourceDir   string `koanf:"source_dir" toml:"source_dir"`
	BuildDir    string `koanf:"build_dir" toml:"build_dir"`
	PackageDir  string `koanf:"package_dir" toml:"package_dir"`
	ProjectRoot string `koanf:"project_root" toml:"project_root"`
}

// Cache holds artifact caching switches
type Cache struct {
	UseGitCaching bool   `koanf:"use_git_caching" toml:"use_git_caching"`
	UseS3Caching  bool   `koanf:"use_s3_caching" toml:"use_s3_caching"`
	S3Bucket      string `koanf:"s3_bucket" toml:"s3_bucket"`
	S3Region      string `koanf:"s3_region" toml:"s3_region"`
}

// Build holds build behaviour
type Build struct {
	Retries         int  `koanf:"retries" toml:"retries"`
	AppendTimestamp bool `koanf:"append_timestamp" toml:"append_timestamp"`
	Workers         int  `koanf:"workers" toml:"workers"`
}

// Fetcher holds source download settings
type Fetcher struct {
	Retries     int           `koanf:"retries" toml:"retries"`
	ReadTimeout time.Duration `koanf:"read_timeout" toml:"read_timeout"`
}

// Software holds where software definitions come from
type Software struct {
	Gems      []string `koanf:"gems" toml:"gems"`
	LocalDirs []string `koanf:"local_dirs" toml:"local_dirs"`
}

// Config is the main configuration structure
type Config struct {
	Paths    Paths    `koanf:"paths" toml:"paths"`
	Cache    Cache    `koanf:"cache" toml:"cache"`
	Build    Build    `koanf:"build" toml:"build"`
	Fetcher  Fetcher  `koanf:"fetcher" toml:"fetcher"`
	Software Software `koanf:"software" toml:"software"`
}

// Dump renders the configuration as TOML
func (c *Config) Dump() ([]byte, error) {
	return gotoml.Marshal(c)
}

// postProcessConfig fills directories left empty from base_dir
func postProcessConfig(cfg *Config) {
	p := &cfg.Paths
	if p.CacheDir == "" {
		p.CacheDir = filepath.Join(p.BaseDir, "cache")
	}
	if p.GitCacheDir == "" {
		p.GitCacheDir = filepath.Join(p.CacheDir, "git_cache")
	}
	if p.SourceDir == "" {
		p.SourceDir = filepath.Join(p.BaseDir, "src")
	}
	if p.BuildDir == "" {
		p.BuildDir = filepath.Join(p.BaseDir, "build")
	}
	if cfg.Software.Gems == nil {
		cfg.Software.Gems = []string{}
	}
	if cfg.Software.LocalDirs == nil {
		cfg.Software.LocalDirs = []string{}
	}
}
