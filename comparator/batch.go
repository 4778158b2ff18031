package comparator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds concurrent comparisons when the caller
// does not pick a limit.
const DefaultBatchConcurrency = 4

// BatchResult pairs one request with its outcome.
type BatchResult struct {
	// Request is the comparison that produced this result
	Request Request
	// Result is the pipeline output; nil when Err is set before any
	// rendering happened
	Result *Result
	// Err is the per-item failure, if any
	Err error
}

// CompareBatch runs independent comparisons concurrently, at most
// concurrency at a time (DefaultBatchConcurrency when <= 0). Results
// keep the input order, and one failed comparison never cancels its
// siblings.
func (c *Comparator) CompareBatch(ctx context.Context, reqs []Request, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := c.Compare(ctx, req)
			results[i] = BatchResult{Request: req, Result: res, Err: err}
			// Failures stay in their slot; returning nil keeps the
			// group from cancelling anything.
			return nil
		})
	}
	_ = g.Wait()

	c.log().Info("batch comparison complete", "requests", len(reqs), "concurrency", concurrency)
	return results
}
