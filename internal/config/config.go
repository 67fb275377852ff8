package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// TomlFile is the preferred project configuration file
	TomlFile = "cssmin.toml"
	// PropertiesFile is the key=value fallback
	PropertiesFile = "cssmin.properties"
	// DefaultSuffix replaces ".css" in the name of a minified file
	DefaultSuffix = ".min.css"
)

// Config represents a cssmin project configuration
type Config struct {
	Minify MinifyConfig `toml:"minify"`
	Build  BuildConfig  `toml:"build"`

	// Path is the file the configuration came from; empty for defaults
	Path string `toml:"-"`
	// Root is the directory include patterns are relative to
	Root string `toml:"-"`
}

// MinifyConfig holds the options passed to the minifier
type MinifyConfig struct {
	// Wrap breaks output lines after a rule once they reach this length (0 = never)
	Wrap int `toml:"wrap"`
}

// BuildConfig describes which files a build minifies and where output goes
type BuildConfig struct {
	// Files to minify (supports wildcards: *.css, **/*.css)
	Include []string `toml:"include"`

	// Files/directories to skip (supports wildcards)
	Exclude []string `toml:"exclude"`

	// Suffix of minified files, replacing ".css"
	Suffix string `toml:"suffix"`

	// OutDir receives minified files; empty writes them next to the source
	OutDir string `toml:"out-dir"`

	// Jobs bounds parallel minification (0 = GOMAXPROCS)
	Jobs int `toml:"jobs"`

	// Cache enables the output cache (default true)
	Cache *bool `toml:"cache"`
}

// Default returns the configuration used when no file is found
func Default(root string) *Config {
	cfg := &Config{Root: root}
	cfg.applyDefaults()
	return cfg
}

// CacheEnabled reports whether build outputs may be cached
func (c *Config) CacheEnabled() bool {
	return c.Build.Cache == nil || *c.Build.Cache
}

func (c *Config) applyDefaults() {
	if len(c.Build.Include) == 0 {
		c.Build.Include = []string{"**/*.css"}
	}
	if len(c.Build.Exclude) == 0 {
		c.Build.Exclude = []string{"node_modules/**", ".git/**"}
	}
	if c.Build.Suffix == "" {
		c.Build.Suffix = DefaultSuffix
	}
}

// Validate checks values that would make a build unsafe or meaningless
func (c *Config) Validate() error {
	if c.Minify.Wrap < 0 {
		return fmt.Errorf("wrap must not be negative: %d", c.Minify.Wrap)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative: %d", c.Build.Jobs)
	}
	if !strings.HasSuffix(c.Build.Suffix, ".css") || c.Build.Suffix == ".css" {
		return fmt.Errorf("suffix %q must end in .css and differ from it", c.Build.Suffix)
	}
	return nil
}

// Find walks up from startDir looking for cssmin.toml, then cssmin.properties
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TomlFile, PropertiesFile} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and loads the configuration for dir, falling back to defaults
func Load(dir string) (*Config, error) {
	path, ok, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		return Default(root), nil
	}
	return LoadFile(path)
}

// LoadFile loads a configuration file, choosing the format by extension
func LoadFile(path string) (*Config, error) {
	var cfg *Config
	var err error
	if strings.HasSuffix(path, ".toml") {
		cfg, err = loadToml(path)
	} else {
		cfg, err = loadProperties(path)
	}
	if err != nil {
		return nil, err
	}

	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadToml(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func loadProperties(path string) (*Config, error) {
	props, err := ParseProperties(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if cfg.Minify.Wrap, err = props.GetInt("wrap"); err != nil {
		return nil, err
	}
	if cfg.Build.Jobs, err = props.GetInt("jobs"); err != nil {
		return nil, err
	}
	cfg.Build.Include = props.GetList("include")
	cfg.Build.Exclude = props.GetList("exclude")
	cfg.Build.Suffix = props.GetWithDefault("suffix", DefaultSuffix)
	cfg.Build.OutDir = props.Get("out-dir")
	if props.Has("cache") {
		cache := props.GetBool("cache")
		cfg.Build.Cache = &cache
	}
	return cfg, nil
}
