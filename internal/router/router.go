package router

import (
	"context"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/platform"
	"github.com/rs/zerolog"
)

// Router is the Market Router: one configured set of venues producing a
// single filtered, prioritised market list per cycle.
type Router struct {
	venues []platform.Venue
	filter FilterConfig
	log    zerolog.Logger
	now    func() time.Time
}

// New builds a Router over venues, using cfg to bound the filter stage.
func New(venues []platform.Venue, cfg FilterConfig, log zerolog.Logger) *Router {
	return &Router{
		venues: venues,
		filter: cfg,
		log:    log.With().Str("component", "router").Logger(),
		now:    time.Now,
	}
}

// ScanAll runs the full pipeline: concurrent fetch, cross-reference,
// merge, filter, prioritize. Errors from any single venue are downgraded
// to a warning; the cycle proceeds with whichever venues succeeded.
func (r *Router) ScanAll(ctx context.Context) []domain.Market {
	results := fetchAll(ctx, r.venues, r.log)
	if len(results) == 0 {
		return []domain.Market{}
	}

	var executable, informational []domain.Market
	for i, result := range results {
		if result.err != nil {
			continue
		}
		if r.venues[i].IsExecutable() {
			executable = append(executable, result.markets...)
		} else {
			informational = append(informational, result.markets...)
		}
	}

	matched := attachCrossReferences(executable, informational)

	merged := make([]domain.Market, 0, len(executable)+len(informational))
	merged = append(merged, executable...)
	for j, m := range informational {
		if !matched[j] {
			merged = append(merged, m)
		}
	}

	filtered := filterMarkets(merged, r.filter, r.now())
	return prioritize(filtered)
}
