// Package pip queries an installed pip for packages and their declared
// dependencies.
//
// [Client] implements registry.Lister with `pip list --format json` and
// registry.Describer with `pip show <name>`:
//
//	cmd, err := pip.Which(ctx, "pip", "pip3")
//	client := pip.NewClient(cmd, pip.Options{Cache: c, TTL: 24 * time.Hour})
//	reg, err := registry.NewBuilder(client, client, registry.Options{}).Build(ctx)
//
// The pip command may carry leading arguments, e.g. "python3 -m pip".
//
// Detail lookups are cached when a cache is configured. Cache failures are
// logged and the lookup proceeds against pip.
package pip
