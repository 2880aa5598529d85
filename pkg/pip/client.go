package pip

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipviz/pkg/cache"
	"github.com/matzehuels/pipviz/pkg/errors"
	"github.com/matzehuels/pipviz/pkg/observability"
	"github.com/matzehuels/pipviz/pkg/registry"
)

// detailKeyPrefix namespaces cached `pip show` results.
const detailKeyPrefix = "pip-show"

// Options configures a Client.
type Options struct {
	// Cache stores detail lookups. Nil disables caching.
	Cache cache.Cache
	// TTL is the lifetime of cached details. Zero never expires.
	TTL time.Duration
	// Refresh skips cache reads but still writes fresh results.
	Refresh bool
	// Logger receives command and cache diagnostics (default: discard).
	Logger *log.Logger
}

// Client runs a pip executable.
type Client struct {
	cmd  string
	argv []string
	opts Options
}

// NewClient creates a client for cmd, which may include leading arguments
// such as "python3 -m pip".
func NewClient(cmd string, opts Options) *Client {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Client{cmd: cmd, argv: strings.Fields(cmd), opts: opts}
}

// Cmd returns the pip command the client runs.
func (c *Client) Cmd() string { return c.cmd }

func (c *Client) command(args ...string) ([]string, error) {
	if len(c.argv) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no pip command configured")
	}
	return append(append([]string{}, c.argv...), args...), nil
}

// List runs `pip list --format json` and returns the entries in pip's order.
func (c *Client) List(ctx context.Context) ([]registry.Listing, error) {
	argv, err := c.command("list", "--format", "json")
	if err != nil {
		return nil, err
	}
	start := time.Now()
	listings, err := c.list(ctx, argv)
	observability.Lookup().OnList(ctx, len(listings), time.Since(start), err)
	return listings, err
}

func (c *Client) list(ctx context.Context, argv []string) ([]registry.Listing, error) {
	res, err := run(ctx, c.opts.Logger, argv)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeExec, err, "%s list: %s", c.cmd, res.output())
	}

	var listings []registry.Listing
	if err := json.Unmarshal([]byte(res.stdout), &listings); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode %s list output", c.cmd)
	}
	return listings, nil
}

// Describe runs `pip show <name>` for a listed package. A package pip
// reports as not found yields an empty Detail.
func (c *Client) Describe(ctx context.Context, l registry.Listing) (registry.Detail, error) {
	if err := errors.ValidatePackageName(l.Name); err != nil {
		return registry.Detail{}, err
	}

	key := cache.Key(detailKeyPrefix, c.cmd, l.Name, l.Version)
	if d, ok := c.cached(ctx, key); ok {
		return d, nil
	}

	argv, err := c.command("show", l.Name)
	if err != nil {
		return registry.Detail{}, err
	}
	start := time.Now()
	res, err := run(ctx, c.opts.Logger, argv)
	observability.Lookup().OnDescribe(ctx, l.Name, time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return registry.Detail{}, err
		}
		if !notFound(res) {
			return registry.Detail{}, errors.Wrap(errors.ErrCodeExec, err, "%s show %s: %s", c.cmd, l.Name, res.output())
		}
		c.opts.Logger.Warn("package not found", "package", l.Name)
		return registry.Detail{}, nil
	}

	d := ParseShow(res.stdout)
	c.store(ctx, key, d)
	return d, nil
}

type cachedDetail struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires,omitempty"`
}

func (c *Client) cached(ctx context.Context, key string) (registry.Detail, bool) {
	if c.opts.Refresh {
		return registry.Detail{}, false
	}
	data, ok, err := c.opts.Cache.Get(ctx, key)
	if err != nil {
		c.opts.Logger.Warn("cache read failed", "key", key, "err", err)
		return registry.Detail{}, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, detailKeyPrefix)
		return registry.Detail{}, false
	}
	var cd cachedDetail
	if err := json.Unmarshal(data, &cd); err != nil {
		c.opts.Logger.Warn("cache entry corrupt", "key", key, "err", err)
		return registry.Detail{}, false
	}
	observability.Cache().OnCacheHit(ctx, detailKeyPrefix)
	c.opts.Logger.Debug("cache hit", "key", key, "name", cd.Name)
	return registry.Detail{Name: cd.Name, Requires: cd.Requires}, true
}

func (c *Client) store(ctx context.Context, key string, d registry.Detail) {
	data, err := json.Marshal(cachedDetail{Name: d.Name, Requires: d.Requires})
	if err != nil {
		return
	}
	if err := c.opts.Cache.Set(ctx, key, data, c.opts.TTL); err != nil {
		c.opts.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, detailKeyPrefix, len(data))
}

// Ensure Client implements the registry source interfaces.
var (
	_ registry.Lister    = (*Client)(nil)
	_ registry.Describer = (*Client)(nil)
)
