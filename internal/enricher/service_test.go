package enricher

import (
	"context"
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/dataprovider"
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherMarket(id, question string) domain.Market {
	return domain.Market{
		ID:       id,
		Category: domain.CategoryWeather,
		Question: question,
	}
}

func TestEnrichBatchSharesFetchAcrossSameTopic(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, m domain.Market) (map[string]interface{}, string, error) {
		calls++
		return map[string]interface{}{"temp_c": 21.0}, "rain expected", nil
	}
	providers := map[domain.Category]dataprovider.Provider{
		domain.CategoryWeather: dataprovider.NewWeatherProvider("key", decimal.NewFromFloat(0.05), fetch),
	}

	svc := New(providers, zerolog.Nop())
	markets := []domain.Market{
		weatherMarket("m1", "Will Sydney see rainfall this week?"),
		weatherMarket("m2", "Will Sydney see rainfall this week? (duplicate listing)"),
	}

	results := svc.EnrichBatch(context.Background(), markets)

	require.Len(t, results, 2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, svc.Metrics().TotalCalls)
	assert.Equal(t, 1, svc.Metrics().CacheHits)
	assert.Equal(t, "rain expected", results[0].Context.Summary)
	assert.Equal(t, "rain expected", results[1].Context.Summary)
}

func TestEnrichBatchDegradesOnProviderError(t *testing.T) {
	fetch := func(_ context.Context, m domain.Market) (map[string]interface{}, string, error) {
		return nil, "", assert.AnError
	}
	providers := map[domain.Category]dataprovider.Provider{
		domain.CategoryWeather: dataprovider.NewWeatherProvider("key", decimal.NewFromFloat(0.05), fetch),
	}
	svc := New(providers, zerolog.Nop())

	results := svc.EnrichBatch(context.Background(), []domain.Market{weatherMarket("m1", "Will it snow in Denver?")})

	require.Len(t, results, 1)
	assert.Equal(t, "no enrichment data available", results[0].Context.Summary)
	assert.True(t, results[0].Context.Cost.IsZero())
}

func TestEnrichBatchMissingProviderFallsBackToEmptyContext(t *testing.T) {
	svc := New(map[domain.Category]dataprovider.Provider{}, zerolog.Nop())

	results := svc.EnrichBatch(context.Background(), []domain.Market{
		{ID: "m1", Category: domain.CategorySports, Question: "Will the Lakers win?"},
	})

	require.Len(t, results, 1)
	assert.Equal(t, "none", results[0].Context.Source)
}

func TestCacheEntryExpiresAfterTTL(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, m domain.Market) (map[string]interface{}, string, error) {
		calls++
		return map[string]interface{}{}, "summary", nil
	}
	providers := map[domain.Category]dataprovider.Provider{
		domain.CategoryWeather: dataprovider.NewWeatherProvider("key", decimal.NewFromFloat(0.01), fetch),
	}
	svc := New(providers, zerolog.Nop())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := base
	svc.now = func() time.Time { return tick }

	market := weatherMarket("m1", "Will it rain in Austin?")
	svc.EnrichBatch(context.Background(), []domain.Market{market})
	assert.Equal(t, 1, calls)

	tick = base.Add(TTLByCategory(domain.CategoryWeather) + time.Minute)
	svc.EnrichBatch(context.Background(), []domain.Market{market})
	assert.Equal(t, 2, calls)
}

func TestTTLByCategory(t *testing.T) {
	assert.Equal(t, 60*time.Minute, TTLByCategory(domain.CategoryWeather))
	assert.Equal(t, 15*time.Minute, TTLByCategory(domain.CategoryPolitics))
	assert.Equal(t, 15*time.Minute, TTLByCategory(domain.CategoryCulture))
	assert.Equal(t, 30*time.Minute, TTLByCategory(domain.CategorySports))
}
