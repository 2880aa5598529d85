package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/pipviz/pkg/errors"
	"github.com/matzehuels/pipviz/pkg/render/nodelink"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if diff := cmp.Diff(nodelink.DefaultAttrs(), cfg.Attrs()); diff != "" {
		t.Errorf("Attrs() mismatch (-want +got):\n%s", diff)
	}
	ttl, _ := cfg.CacheTTL()
	if ttl != 24*time.Hour {
		t.Errorf("CacheTTL() = %v, want 24h", ttl)
	}
}

func TestLoadExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.toml", `
pip = "python3 -m pip"
workers = 8
formats = ["png", "json"]

[cache]
enabled = false
ttl = "1h30m"

[graph]
rankdir = "TB"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := Default()
	want.Pip = "python3 -m pip"
	want.Workers = 8
	want.Formats = []string{"png", "json"}
	want.Cache.Enabled = false
	want.Cache.TTL = "1h30m"
	want.Graph.RankDir = "TB"
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `workers = [`},
		{"unknown key", "colour = \"red\"\n"},
		{"unknown nested key", "[cache]\nbackend = \"s3\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "c.toml", tt.body)
			if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadDiscovery(t *testing.T) {
	work := t.TempDir()
	xdg := t.TempDir()
	t.Chdir(work)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want defaults", cfg.Path())
	}

	writeConfig(t, xdg, filepath.Join("pipviz", "config.toml"), "workers = 3\n")
	cfg, _ = Load("")
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from user config", cfg.Workers)
	}

	writeConfig(t, work, FileName, "workers = 5\n")
	cfg, _ = Load("")
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want 5 from project config", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }, errors.ErrCodeInvalidConfig},
		{"no formats", func(c *Config) { c.Formats = nil }, errors.ErrCodeInvalidFormat},
		{"unknown format", func(c *Config) { c.Formats = []string{"svg", "pdf"} }, errors.ErrCodeInvalidFormat},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "tomorrow" }, errors.ErrCodeInvalidConfig},
		{"negative ttl", func(c *Config) { c.Cache.TTL = "-1h" }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEmptyTTLNeverExpires(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTL = ""
	if ttl, err := cfg.CacheTTL(); err != nil || ttl != 0 {
		t.Errorf("CacheTTL() = %v, %v; want 0, nil", ttl, err)
	}
}

func TestFormats(t *testing.T) {
	if diff := cmp.Diff([]string{"jpg", "png", "svg", "json"}, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
}
