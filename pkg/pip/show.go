package pip

import (
	"strings"

	"github.com/matzehuels/pipviz/pkg/registry"
)

// ParseShow extracts the canonical name and requirements from `pip show`
// output. The name is taken only from a leading "Name:" line. Parsing stops
// at a "---" separator, so only the first package of a multi-package report
// is read.
func ParseShow(out string) registry.Detail {
	var d registry.Detail
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "---" {
			break
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch field {
		case "Name":
			if i == 0 {
				d.Name = value
			}
		case "Requires":
			d.Requires = splitRequires(value)
		}
	}
	return d
}

func splitRequires(value string) []string {
	var reqs []string
	for _, r := range strings.Split(value, ",") {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

// notFound reports whether pip output says the package is not installed.
func notFound(res result) bool {
	return strings.Contains(strings.ToLower(res.stdout+res.stderr), "not found")
}
