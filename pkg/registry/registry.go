package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned by [Registry.Ensure] and [Registry.Upsert] when
	// the package name is empty.
	ErrEmptyName = errors.New("package name must not be empty")

	// ErrDanglingDependency is returned by [Registry.Validate] when a package
	// depends on an object that is not the registry's entry for that key.
	ErrDanglingDependency = errors.New("dependency is not a registry member")
)

// Edge is a directed package → dependency relation, by key.
type Edge struct {
	From string
	To   string
}

// Registry maps normalized keys to packages. It holds at most one Package
// per key and remembers the order in which keys were first seen.
//
// The zero value is not usable; use New. A Registry is not safe for
// concurrent use.
type Registry struct {
	pkgs  map[string]*Package
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{pkgs: make(map[string]*Package)}
}

// Get returns the package stored under key.
func (r *Registry) Get(key string) (*Package, bool) {
	p, ok := r.pkgs[key]
	return p, ok
}

// Lookup returns the package for name, normalizing it first.
func (r *Registry) Lookup(name string) (*Package, bool) {
	return r.Get(Normalize(name))
}

// Ensure returns the package for name, creating a placeholder with an empty
// version if the key is not yet present. An existing package is returned
// unchanged.
func (r *Registry) Ensure(name string) (*Package, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if p, ok := r.pkgs[Normalize(name)]; ok {
		return p, nil
	}
	return r.insert(newPackage(name, "")), nil
}

// Upsert returns the package for a listed entry. If the key already exists
// (as a placeholder or an earlier duplicate) the same object is reused and
// its display name and version are taken from the listing; otherwise a new
// package is inserted.
func (r *Registry) Upsert(name, version string) (*Package, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if p, ok := r.pkgs[Normalize(name)]; ok {
		p.DisplayName = name
		if version != "" {
			p.Version = version
		}
		return p, nil
	}
	return r.insert(newPackage(name, version)), nil
}

func (r *Registry) insert(p *Package) *Package {
	r.pkgs[p.Key] = p
	r.order = append(r.order, p.Key)
	return p
}

// Len returns the number of packages.
func (r *Registry) Len() int { return len(r.pkgs) }

// Keys returns all keys in first-seen order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Packages returns all packages in first-seen order. The pointers refer to
// the registry's packages.
func (r *Registry) Packages() []*Package {
	pkgs := make([]*Package, len(r.order))
	for i, k := range r.order {
		pkgs[i] = r.pkgs[k]
	}
	return pkgs
}

// Edges returns every package → dependency edge. Packages are visited in
// first-seen order and dependencies in sorted key order.
func (r *Registry) Edges() []Edge {
	var edges []Edge
	for _, p := range r.Packages() {
		for _, dep := range p.DependencyKeys() {
			edges = append(edges, Edge{From: p.Key, To: dep})
		}
	}
	return edges
}

// Validate checks that every dependency of every package is the registry's
// own object for that key.
func (r *Registry) Validate() error {
	for _, p := range r.pkgs {
		for key, dep := range p.Dependencies {
			if member, ok := r.pkgs[key]; !ok || member != dep {
				return fmt.Errorf("%s -> %s: %w", p.Key, key, ErrDanglingDependency)
			}
		}
	}
	return nil
}
