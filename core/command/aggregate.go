package command

import (
	"context"
	"strings"
	"sync"
)

// Check produces one independently derived fact fragment. Implementations
// must catch their own failures and degrade to a textual error fragment; the
// aggregator never blocks one fact on another's failure.
type Check func(ctx context.Context) string

// Aggregate launches every check concurrently, waits for all of them and joins
// their fragments with a single space in the caller-specified order. Wall
// clock time is bounded by the slowest check, not the sum, which is what keeps
// multi-fact intents inside the voice channel's latency budget.
func Aggregate(ctx context.Context, checks ...Check) string {
	frags := make([]string, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frags[i] = check(ctx)
		}()
	}
	wg.Wait()

	parts := frags[:0:0]
	for _, f := range frags {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
