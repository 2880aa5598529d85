// Package registry builds the deduplicated package graph for a Python
// environment.
//
// # Overview
//
// Package managers report the same package under different spellings: pip
// list may print "Jinja2" while another package's Requires line says
// "jinja2", and "typing-extensions" shows up next to "typing_extensions".
// This package collapses those spellings into one [Package] per normalized
// key (see [Normalize]) and wires dependency edges between them.
//
// # Registry
//
// A [Registry] is an arena: every [Package] lives in it exactly once and
// every dependency edge is a pointer into it. Packages are created with
// get-or-create semantics, so a package first seen as someone else's
// dependency (a placeholder with no version) is the same object that is
// later filled in when the listing reaches it.
//
// # Building
//
// A [Builder] combines a [Lister] (the installed packages, in order) with a
// [Describer] (canonical name and declared requirements for one package):
//
//	b := registry.NewBuilder(client, client, registry.Options{Workers: 4})
//	reg, err := b.Build(ctx)
//
// With Workers greater than one, detail lookups run concurrently but are
// merged in listing order, so the resulting registry never depends on
// completion order.
package registry
