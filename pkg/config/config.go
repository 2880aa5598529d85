// Package config loads pipviz settings from an optional TOML file.
//
// The file is looked up in order: an explicit path, ./pipviz.toml, then
// $XDG_CONFIG_HOME/pipviz/config.toml. A missing file means defaults.
// Fields left out of the file keep their default values.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipviz/pkg/errors"
	pipio "github.com/matzehuels/pipviz/pkg/io"
	"github.com/matzehuels/pipviz/pkg/render/nodelink"
)

// FileName is the per-project config file looked up in the working directory.
const FileName = "pipviz.toml"

// Config holds every setting the CLI reads from file.
type Config struct {
	Pip     string      `toml:"pip"`
	Workers int         `toml:"workers"`
	Formats []string    `toml:"formats"`
	LogFile string      `toml:"log_file"`
	Cache   CacheConfig `toml:"cache"`
	Graph   GraphConfig `toml:"graph"`

	path string
}

// CacheConfig selects and tunes the detail cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Dir      string `toml:"dir"`
	TTL      string `toml:"ttl"`
	RedisURL string `toml:"redis_url"`
}

// GraphConfig holds the Graphviz attributes.
type GraphConfig struct {
	RankDir   string `toml:"rankdir"`
	Splines   string `toml:"splines"`
	MCLimit   string `toml:"mclimit"`
	RankSep   string `toml:"ranksep"`
	NodeShape string `toml:"node_shape"`
}

// Default returns the built-in configuration.
func Default() *Config {
	a := nodelink.DefaultAttrs()
	return &Config{
		Workers: 1,
		Formats: []string{nodelink.FormatSVG},
		LogFile: "pipviz.log",
		Cache:   CacheConfig{Enabled: true, TTL: "24h"},
		Graph: GraphConfig{
			RankDir:   a.RankDir,
			Splines:   a.Splines,
			MCLimit:   a.MCLimit,
			RankSep:   a.RankSep,
			NodeShape: a.NodeShape,
		},
	}
}

// Load reads the config file at path, or the first discovered file when
// path is empty. A discovered file that does not exist is skipped; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return loadFile(p)
		}
	}
	return Default(), nil
}

// SearchPaths lists the locations Load tries when no path is given.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "pipviz", "config.toml"))
	}
	return paths
}

func loadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.path = path
	return cfg, nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string { return c.path }

// Validate checks formats, workers and the cache TTL.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if len(c.Formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range c.Formats {
		if !ValidFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: %s)",
				f, strings.Join(Formats(), ", "))
		}
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// Formats lists every output format, image and data.
func Formats() []string {
	return append(nodelink.Formats(), pipio.FormatJSON)
}

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats(), f)
}

// CacheTTL parses Cache.TTL. An empty TTL never expires.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache ttl %q", c.Cache.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache ttl %q is negative", c.Cache.TTL)
	}
	return d, nil
}

// Attrs converts the graph section to Graphviz attributes.
func (c *Config) Attrs() nodelink.Attrs {
	return nodelink.Attrs{
		RankDir:   c.Graph.RankDir,
		Splines:   c.Graph.Splines,
		MCLimit:   c.Graph.MCLimit,
		RankSep:   c.Graph.RankSep,
		NodeShape: c.Graph.NodeShape,
	}
}
