package dataprovider

import (
	"context"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// Fetcher is the shape of a real backend call: given a market, return the
// raw payload (already shaped for this provider's Category) and a
// prompt-ready summary. Concrete providers are constructed with a Fetcher
// so the real Open-Meteo/FRED/NewsAPI wire calls (out of core scope) can be
// swapped in without changing provider dispatch or caching logic.
type Fetcher func(ctx context.Context, market domain.Market) (raw map[string]interface{}, summary string, err error)

// genericProvider implements Provider for a single Category, degrading to
// KeywordSummary when either no API key is configured or fetch is nil.
type genericProvider struct {
	category domain.Category
	apiKey   string
	cost     decimal.Decimal
	fetch    Fetcher
}

// NewWeatherProvider builds the Weather-category provider (Open-Meteo in
// production). apiKey empty => keyword-only, zero-cost.
func NewWeatherProvider(apiKey string, costPerCall decimal.Decimal, fetch Fetcher) Provider {
	return &genericProvider{category: domain.CategoryWeather, apiKey: apiKey, cost: costPerCall, fetch: fetch}
}

// NewSportsProvider builds the Sports-category provider.
func NewSportsProvider(apiKey string, costPerCall decimal.Decimal, fetch Fetcher) Provider {
	return &genericProvider{category: domain.CategorySports, apiKey: apiKey, cost: costPerCall, fetch: fetch}
}

// NewEconomicsProvider builds the Economics-category provider (FRED in
// production).
func NewEconomicsProvider(apiKey string, costPerCall decimal.Decimal, fetch Fetcher) Provider {
	return &genericProvider{category: domain.CategoryEconomics, apiKey: apiKey, cost: costPerCall, fetch: fetch}
}

// NewNewsProvider builds a news provider (NewsAPI in production) for one
// of the Politics/Culture/Other categories. Each call returns a separate
// instance reporting the given category; the main loop builds one per
// category for the Enricher's dispatch table.
func NewNewsProvider(apiKey string, costPerCall decimal.Decimal, fetch Fetcher, category domain.Category) Provider {
	return &genericProvider{category: category, apiKey: apiKey, cost: costPerCall, fetch: fetch}
}

func (p *genericProvider) Category() domain.Category {
	return p.category
}

func (p *genericProvider) CostPerCall() decimal.Decimal {
	return p.cost
}

func (p *genericProvider) FetchContext(ctx context.Context, market domain.Market) (domain.DataContext, error) {
	if p.apiKey == "" || p.fetch == nil {
		return domain.DataContext{
			Category:  p.category,
			RawData:   map[string]interface{}{},
			Summary:   KeywordSummary(market),
			Freshness: time.Now().UTC(),
			Source:    string(p.category) + "-keyword-only",
			Cost:      decimal.Zero,
		}, nil
	}

	raw, summary, err := p.fetch(ctx, market)
	if err != nil {
		return domain.DataContext{}, err
	}

	return domain.DataContext{
		Category:  p.category,
		RawData:   raw,
		Summary:   summary,
		Freshness: time.Now().UTC(),
		Source:    string(p.category),
		Cost:      p.cost,
	}, nil
}
