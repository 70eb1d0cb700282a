// Package router implements the Market Router: concurrent multi-venue
// fetch, cross-reference fuzzy matching, merge, filter, and priority
// scoring, producing a single market list for the cycle.
package router

import (
	"context"
	"sync"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/platform"
	"github.com/rs/zerolog"
)

// venueFetchJob and venueFetchResult are index-tagged so the fan-in
// preserves per-venue ordering deterministically.
type venueFetchJob struct {
	index int
	venue platform.Venue
}

type venueFetchResult struct {
	index   int
	venue   platform.Venue
	markets []domain.Market
	err     error
}

// fetchAll issues FetchMarkets on every venue concurrently and returns the
// per-venue results in the same order venues were given, so callers can
// distinguish executable from informational venues positionally. A single
// venue's failure is isolated: it appears in its slot with a non-nil err
// and an empty market slice, never aborting the others; partial-failure
// tolerance is a correctness property here.
func fetchAll(ctx context.Context, venues []platform.Venue, log zerolog.Logger) []venueFetchResult {
	n := len(venues)
	if n == 0 {
		return nil
	}

	jobs := make(chan venueFetchJob, n)
	results := make(chan venueFetchResult, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				markets, err := job.venue.FetchMarkets(ctx)
				if err != nil {
					log.Warn().Err(err).Str("venue", job.venue.Name()).Msg("venue fetch failed, degrading")
				}
				results <- venueFetchResult{index: job.index, venue: job.venue, markets: markets, err: err}
			}
		}()
	}

	for i, v := range venues {
		jobs <- venueFetchJob{index: i, venue: v}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]venueFetchResult, n)
	for r := range results {
		ordered[r.index] = r
	}
	return ordered
}
