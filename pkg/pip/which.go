package pip

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipviz/pkg/errors"
)

// DefaultCandidates are tried in order when no pip command is configured.
var DefaultCandidates = []string{"pip", "pip3"}

// Which returns the first candidate for which `<candidate> --version`
// succeeds. With no candidates, DefaultCandidates are tried.
func Which(ctx context.Context, candidates ...string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	discard := log.New(io.Discard)

	var tried []string
	for _, c := range candidates {
		argv := strings.Fields(c)
		if len(argv) == 0 {
			continue
		}
		tried = append(tried, c)
		if _, err := run(ctx, discard, append(argv, "--version")); err == nil {
			return c, nil
		} else if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", errors.New(errors.ErrCodeNotFound, "no working pip executable (tried %s)", strings.Join(tried, ", "))
}
