// Package enricher produces a DataContext per market while minimising
// external API cost. Category dispatch routes each market to the
// matching Provider; a TTL-indexed topic cache means every market
// sharing a topic within the TTL window pays for only one external call.
package enricher

import (
	"context"
	"time"

	"github.com/oracle-trading/oracle/internal/dataprovider"
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TTLByCategory is the category-specific cache lifetime: Weather markets
// move slowly (60 min), political/culture news moves fast (15 min),
// everything else defaults to 30 min.
func TTLByCategory(category domain.Category) time.Duration {
	switch category {
	case domain.CategoryWeather:
		return 60 * time.Minute
	case domain.CategoryPolitics, domain.CategoryCulture:
		return 15 * time.Minute
	default:
		return 30 * time.Minute
	}
}

// MarketContext pairs a Market with its enrichment.
type MarketContext struct {
	Market  domain.Market
	Context domain.DataContext
}

// Counters tracks the Enricher's running cost-accounting state: total
// cost, total calls, and cache hits.
type Counters struct {
	TotalCost  decimal.Decimal
	TotalCalls int
	CacheHits  int
}

// Service is the Enricher, driven by the main loop. Its cache is also
// swept by Evict from the scheduler's goroutine, so every cache access
// goes through the cache's mutex. The counters are updated only by
// EnrichBatch.
type Service struct {
	cache     *topicCache
	providers map[domain.Category]dataprovider.Provider
	counters  Counters
	log       zerolog.Logger
	now       func() time.Time
}

// New builds an Enricher dispatching each Category to its Provider.
// providers should have an entry for every domain.Category the Router can
// hand it; a category with no registered provider falls back to
// domain.EmptyDataContext.
func New(providers map[domain.Category]dataprovider.Provider, log zerolog.Logger) *Service {
	return &Service{
		cache:     newTopicCache(),
		providers: providers,
		log:       log.With().Str("component", "enricher").Logger(),
		now:       time.Now,
	}
}

// EnrichBatch produces a (Market, DataContext) pair for every market.
// Never fails the batch as a whole: a per-market provider failure yields
// domain.EmptyDataContext instead of propagating an error.
func (s *Service) EnrichBatch(ctx context.Context, markets []domain.Market) []MarketContext {
	now := s.now()
	evicted := s.cache.EvictExpired(now)
	if evicted > 0 {
		s.log.Debug().Int("evicted", evicted).Msg("evicted expired cache entries")
	}

	results := make([]MarketContext, 0, len(markets))
	for _, market := range markets {
		results = append(results, MarketContext{Market: market, Context: s.enrichOne(ctx, market, now)})
	}
	return results
}

func (s *Service) enrichOne(ctx context.Context, market domain.Market, now time.Time) domain.DataContext {
	key := Key(market.Category, market.Question)

	if cached, ok := s.cache.Get(key, now); ok {
		s.counters.CacheHits++
		clone := cached.Clone()
		clone.CrossRefs = market.CrossRefs
		return clone
	}

	provider, ok := s.providers[market.Category]
	if !ok {
		s.log.Warn().Str("category", string(market.Category)).Msg("no provider registered for category")
		return domain.EmptyDataContext(market.Category)
	}

	dataCtx, err := provider.FetchContext(ctx, market)
	if err != nil {
		s.log.Warn().Err(err).Str("market_id", market.ID).Msg("provider fetch failed, using empty context")
		return domain.EmptyDataContext(market.Category)
	}

	s.counters.TotalCalls++
	s.counters.TotalCost = s.counters.TotalCost.Add(dataCtx.Cost)

	dataCtx.CrossRefs = market.CrossRefs
	s.cache.Put(key, dataCtx, TTLByCategory(market.Category), now)
	return dataCtx
}

// Metrics returns a snapshot of the running cost-accounting counters.
func (s *Service) Metrics() Counters {
	return s.counters
}

// CacheSize reports the number of live cache entries.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}

// Evict sweeps expired cache entries without running a batch, for the
// scheduler's periodic maintenance job.
func (s *Service) Evict() int {
	return s.cache.EvictExpired(s.now())
}

// SaveSnapshot persists the cache to path (msgpack), for warm restarts.
func (s *Service) SaveSnapshot(path string) error {
	return s.cache.SaveSnapshot(path)
}

// LoadSnapshot restores unexpired cache entries from path.
func (s *Service) LoadSnapshot(path string) error {
	return s.cache.LoadSnapshot(path, s.now())
}
