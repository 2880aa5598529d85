package registry

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Listing is one entry of the installed-package listing. Either field may be
// empty when the package manager omits it.
type Listing struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Detail is the result of a per-package lookup. A zero Detail means nothing
// useful was found: no display name change and no dependencies.
type Detail struct {
	Name     string   // Canonical spelling reported by the package manager
	Requires []string // Declared dependency names
}

// Lister returns the installed packages in the package manager's order.
type Lister interface {
	List(ctx context.Context) ([]Listing, error)
}

// Describer looks up the canonical name and declared dependencies of a
// listed package.
type Describer interface {
	Describe(ctx context.Context, pkg Listing) (Detail, error)
}

// Options configures a Builder.
type Options struct {
	// Workers bounds concurrent detail lookups. Values below 2 run the
	// lookups sequentially, one per listing entry.
	Workers int

	// Logger receives diagnostics such as skipped entries. Defaults to a
	// logger that discards everything.
	Logger *log.Logger

	// Progress, if set, is called after each listing entry is handled,
	// whether it was processed or skipped.
	Progress func(done, total int)
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Progress == nil {
		o.Progress = func(int, int) {}
	}
	return o
}

// Builder assembles a Registry from a Lister and a Describer.
type Builder struct {
	lister    Lister
	describer Describer
	opts      Options
}

// NewBuilder creates a Builder. The same value often implements both
// interfaces.
func NewBuilder(l Lister, d Describer, opts Options) *Builder {
	return &Builder{lister: l, describer: d, opts: opts.withDefaults()}
}

// Build lists the installed packages, looks up each one and merges the
// results into a new Registry.
//
// Entries with an empty name or version are logged and skipped. Errors from
// the Lister or Describer abort the build.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	listings, err := b.lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	b.opts.Logger.Debug("listed packages", "count", len(listings))

	var details []Detail
	if b.opts.Workers > 1 {
		if details, err = b.describeAll(ctx, listings); err != nil {
			return nil, err
		}
	}

	reg := New()
	for i, l := range listings {
		if !b.valid(i, l) {
			b.opts.Progress(i+1, len(listings))
			continue
		}

		var d Detail
		if details != nil {
			d = details[i]
		} else if d, err = b.describe(ctx, l); err != nil {
			return nil, err
		}

		if err := merge(reg, l, d); err != nil {
			return nil, fmt.Errorf("merge %s: %w", l.Name, err)
		}
		b.opts.Progress(i+1, len(listings))
	}

	b.opts.Logger.Info("built registry", "packages", reg.Len(), "listed", len(listings))
	return reg, nil
}

func (b *Builder) valid(i int, l Listing) bool {
	switch {
	case l.Name == "":
		b.opts.Logger.Error("no name found", "index", i, "version", l.Version)
		return false
	case l.Version == "":
		b.opts.Logger.Error("no version found", "package", l.Name)
		return false
	}
	return true
}

func (b *Builder) describe(ctx context.Context, l Listing) (Detail, error) {
	d, err := b.describer.Describe(ctx, l)
	if err != nil {
		return Detail{}, fmt.Errorf("describe %s: %w", l.Name, err)
	}
	b.opts.Logger.Debug("described package", "package", l.Name, "name", d.Name, "requires", d.Requires)
	return d, nil
}

// describeAll looks up every valid listing concurrently. Results are indexed
// like listings so that merging can follow listing order.
func (b *Builder) describeAll(ctx context.Context, listings []Listing) ([]Detail, error) {
	details := make([]Detail, len(listings))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.Workers)
	for i, l := range listings {
		if l.Name == "" || l.Version == "" {
			continue
		}
		eg.Go(func() error {
			d, err := b.describe(egCtx, l)
			if err != nil {
				return err
			}
			details[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

// merge applies one listed package and its detail to reg.
func merge(reg *Registry, l Listing, d Detail) error {
	pkg, err := reg.Upsert(l.Name, l.Version)
	if err != nil {
		return err
	}
	if d.Name != "" {
		pkg.DisplayName = d.Name
	}
	for _, name := range d.Requires {
		if name == "" {
			continue
		}
		dep, err := reg.Ensure(name)
		if err != nil {
			return err
		}
		pkg.addDependency(dep)
	}
	return nil
}
