package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/matzehuels/pipviz/pkg/observability"
)

// runStats counts pip invocations and detail cache traffic for the summary.
type runStats struct {
	lookups atomic.Int64
	hits    atomic.Int64
	misses  atomic.Int64
}

// register starts counting events and returns a function that stops it.
func (s *runStats) register() func() {
	return observability.Register(observability.Hooks{
		Lookup: observability.LookupFuncs{
			Describe: func(context.Context, string, time.Duration, error) { s.lookups.Add(1) },
		},
		Cache: observability.CacheFuncs{
			Hit:  func(context.Context, string) { s.hits.Add(1) },
			Miss: func(context.Context, string) { s.misses.Add(1) },
		},
	})
}

// cacheLabel describes the cache state for the summary line.
func (s *runStats) cacheLabel(state string) string {
	if state == cacheOff {
		return state
	}
	hits := s.hits.Load()
	return fmt.Sprintf("%s %d/%d hits", state, hits, hits+s.misses.Load())
}
