// Package cli implements the pipviz command-line interface.
//
// The single root command lists the packages installed in a pip
// environment, resolves their declared dependencies and renders the graph:
//
//	pipviz deps            # deps.gv and deps.gv.svg
//	pipviz -f png,json out # out.gv, out.gv.png and out.json
//
// Diagnostics are appended to a log file (pipviz.log by default); --verbose
// mirrors them to stderr. Terminal output is limited to progress, a summary
// and the written files.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/pipviz/pkg/cache"
	"github.com/matzehuels/pipviz/pkg/config"
	"github.com/matzehuels/pipviz/pkg/pip"
	"github.com/matzehuels/pipviz/pkg/registry"
)

// appName is the application name used for directories and display.
const appName = "pipviz"

// progressEvery is how often, in listing entries, progress is printed.
const progressEvery = 5

// Cache states shown in the summary line.
const (
	cacheOff   = "no cache"
	cacheFile  = "file cache"
	cacheRedis = "redis cache"
)

// Source lists installed packages and describes each of them.
type Source interface {
	registry.Lister
	registry.Describer
}

// CLI holds shared state for the root command.
type CLI struct {
	stdout io.Writer
	stderr io.Writer

	// newSource creates the package source for a pip command.
	newSource func(cmd string, opts pip.Options) Source
	// which discovers a pip command when none is configured.
	which func(ctx context.Context, candidates ...string) (string, error)
	// spinner enables the render spinner on stderr.
	spinner bool
}

// New creates a CLI that talks to the real pip and writes to the given
// streams.
func New(stdout, stderr io.Writer) *CLI {
	return &CLI{
		stdout: stdout,
		stderr: stderr,
		newSource: func(cmd string, opts pip.Options) Source {
			return pip.NewClient(cmd, opts)
		},
		which:   pip.Which,
		spinner: isTerminal(stderr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// openCache selects the detail cache backend. Failures fall back to no
// caching and are logged.
func openCache(ctx context.Context, cfg *config.Config, noCache bool, logger *log.Logger) (cache.Cache, string) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), cacheOff
	}

	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("redis cache unavailable", "err", err)
			return cache.NewNullCache(), cacheOff
		}
		logger.Debug("using redis cache")
		return rc, cacheRedis
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			logger.Warn("no cache directory", "err", err)
			return cache.NewNullCache(), cacheOff
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache(), cacheOff
	}
	logger.Debug("using file cache", "dir", dir)
	return fc, cacheFile
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pipviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
