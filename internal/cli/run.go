package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matzehuels/pipviz/pkg/config"
	"github.com/matzehuels/pipviz/pkg/errors"
	pipio "github.com/matzehuels/pipviz/pkg/io"
	"github.com/matzehuels/pipviz/pkg/observability"
	"github.com/matzehuels/pipviz/pkg/pip"
	"github.com/matzehuels/pipviz/pkg/registry"
	"github.com/matzehuels/pipviz/pkg/render"
	"github.com/matzehuels/pipviz/pkg/render/nodelink"
)

// run builds the registry from pip and renders it under root.
func (c *CLI) run(ctx context.Context, root string, cfg *config.Config, f flags) error {
	if err := errors.ValidateFilenameRoot(root); err != nil {
		return err
	}

	var mirror io.Writer
	if f.verbose {
		mirror = c.stderr
	}
	logger, closer, err := openLog(cfg.LogFile, mirror)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", cfg.LogFile)
	}
	defer closer.Close()
	ctx = withLogger(ctx, logger)
	logger.Info("starting", "root", root, "config", cfg.Path(), "formats", cfg.Formats, "workers", cfg.Workers)

	if err := c.execute(ctx, root, cfg, f); err != nil {
		logger.Error("run failed", "err", err)
		return err
	}
	return nil
}

func (c *CLI) execute(ctx context.Context, root string, cfg *config.Config, f flags) error {
	logger := loggerFromContext(ctx)
	stats := &runStats{}
	defer stats.register()()

	pipCmd := strings.TrimSpace(cfg.Pip)
	if pipCmd == "" {
		var err error
		if pipCmd, err = c.which(ctx); err != nil {
			return err
		}
	}
	logger.Debug("using pip", "cmd", pipCmd)

	store, cacheState := openCache(ctx, cfg, f.noCache, logger)
	defer store.Close()
	if cacheState == cacheOff && cfg.Cache.Enabled && !f.noCache {
		say(c.stdout, statusWarn, "Detail cache unavailable, see %s", cfg.LogFile)
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return err
	}
	src := c.newSource(pipCmd, pip.Options{Cache: store, TTL: ttl, Refresh: f.refresh, Logger: logger})

	say(c.stdout, statusInfo, "Listing packages with %s", pipCmd)
	prog := newProgress(logger)
	reg, err := registry.NewBuilder(src, src, registry.Options{
		Workers:  cfg.Workers,
		Logger:   logger,
		Progress: c.reportProgress,
	}).Build(ctx)
	if err != nil {
		return err
	}
	edges := len(reg.Edges())
	prog.done("built registry", "packages", reg.Len(), "edges", edges,
		"pip_show_runs", stats.lookups.Load(), "cache_hits", stats.hits.Load())
	saySummary(c.stdout, reg.Len(), edges, stats.cacheLabel(cacheState))

	files, err := c.render(ctx, reg, cfg.Formats, sinks(root, cfg))
	if err != nil {
		return err
	}
	say(c.stdout, statusOK, "Rendered dependency graph")
	for _, path := range files {
		sayFile(c.stdout, path)
	}
	return nil
}

// reportProgress prints a line every progressEvery listing entries.
func (c *CLI) reportProgress(done, total int) {
	if done%progressEvery == 0 {
		say(c.stdout, statusInfo, "%d packages processed", done)
	}
}

func (c *CLI) render(ctx context.Context, reg *registry.Registry, formats []string, sink render.Sink) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	start := time.Now()
	observability.Render().OnRenderStart(ctx, formats)

	if c.spinner {
		defer startSpinner(ctx, c.stderr, "Rendering graph...")()
	}

	files, err := render.Graph(ctx, reg, sink)
	observability.Render().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	files = dedupe(files)
	prog.done("rendered", "files", files)
	return files, nil
}

// sinks creates one sink per configured format. Image formats share the
// DOT source file, which is written once per format with identical content.
func sinks(root string, cfg *config.Config) render.Sink {
	attrs := cfg.Attrs()
	var out []render.Sink
	for _, format := range cfg.Formats {
		if format == pipio.FormatJSON {
			out = append(out, pipio.NewJSON(root))
			continue
		}
		out = append(out, nodelink.New(nodelink.Options{Root: root, Format: format, Attrs: &attrs}))
	}
	return render.Multi(out...)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitCancelled = 130 // shell convention for SIGINT
)

// ExitCode maps the error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCancelled
	}
	return ExitFailure
}

// PrintError writes err to w the way the CLI reports failures.
func PrintError(w io.Writer, err error) {
	msg := errors.UserMessage(err)
	if code := errors.CodeOf(err); code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, code)
	}
	say(w, statusFail, "%s", msg)
	if hint := errors.HintFor(err); hint != "" {
		say(w, statusInfo, "%s", hint)
	}
}
