package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipviz/pkg/buildinfo"
	"github.com/matzehuels/pipviz/pkg/config"
)

// flags holds the root command's flag values.
type flags struct {
	configPath string
	pip        string
	formats    string
	workers    int
	noCache    bool
	refresh    bool
	logFile    string
	verbose    bool
}

// RootCommand creates the pipviz command.
func (c *CLI) RootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   appName + " FILENAME_ROOT",
		Short: "Pipviz renders the dependency graph of installed pip packages",
		Long: `Pipviz lists the packages installed in the current pip environment, resolves
their declared requirements and renders the dependency graph with Graphviz.

Two files are written by default: FILENAME_ROOT.gv (the DOT source) and
FILENAME_ROOT.gv.svg (the rendered image).`,
		Args:          cobra.ExactArgs(1),
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], cfg, f)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	fs := root.Flags()
	fs.StringVar(&f.configPath, "config", "", "config file (default: ./pipviz.toml, then user config dir)")
	fs.StringVar(&f.pip, "pip", "", `pip command, e.g. "python3 -m pip" (default: pip, then pip3)`)
	fs.StringVarP(&f.formats, "format", "f", "", "output formats, comma-separated: svg, png, jpg, json (default: svg)")
	fs.IntVar(&f.workers, "workers", 1, "concurrent pip show lookups")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the detail cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached details but store fresh ones")
	fs.StringVar(&f.logFile, "log-file", "", "diagnostic log file (default: pipviz.log)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "mirror the diagnostic log to stderr")

	return root
}

// loadConfig reads the config file and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("pip") {
		cfg.Pip = f.pip
	}
	if changed("format") {
		cfg.Formats = parseFormats(f.formats)
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFormats parses a comma-separated format list, dropping blanks and
// repeats.
func parseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
