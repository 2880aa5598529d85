package registry

import (
	"maps"
	"slices"
	"strings"
)

// Normalize derives the identity key for a package name. It lower-cases the
// name and maps hyphens to underscores, so "A-b" and "a_B" share the key "a_b".
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// Package is one distinct installed or referenced package.
//
// Key is fixed when the package is created and is the only notion of
// identity; DisplayName and Version may change while the registry is built.
type Package struct {
	Key         string // Normalized identity (see Normalize)
	DisplayName string // Last-seen human readable spelling
	Version     string // Installed version, empty for placeholders

	// Dependencies maps a dependency's key to the registry's Package for it.
	// The pointed-to packages are shared with the registry, never copies.
	Dependencies map[string]*Package
}

func newPackage(name, version string) *Package {
	return &Package{
		Key:          Normalize(name),
		DisplayName:  name,
		Version:      version,
		Dependencies: make(map[string]*Package),
	}
}

// Label returns the node label used when rendering: display name and version
// separated by a space.
func (p *Package) Label() string {
	return p.DisplayName + " " + p.Version
}

// IsPlaceholder reports whether the package is only known as a dependency
// and has no installed version.
func (p *Package) IsPlaceholder() bool { return p.Version == "" }

// DependencyKeys returns the keys of the package's dependencies in sorted order.
func (p *Package) DependencyKeys() []string {
	return slices.Sorted(maps.Keys(p.Dependencies))
}

func (p *Package) addDependency(dep *Package) {
	p.Dependencies[dep.Key] = dep
}
