// Package dataprovider defines the capability contract every enrichment
// data source implements. Concrete wire protocols (Open-Meteo, FRED,
// NewsAPI) stay out of scope; this package only fixes the interface
// every provider (real or stub) must satisfy, plus a keyword-only
// fallback every provider degrades to when it has no API key.
package dataprovider

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// Provider fetches a DataContext for one market. Providers are dispatched
// by Category: Weather, Sports, Economics each have a
// dedicated provider; Politics, Culture, and Other share a news provider.
type Provider interface {
	FetchContext(ctx context.Context, market domain.Market) (domain.DataContext, error)
	Category() domain.Category
	CostPerCall() decimal.Decimal
}

// KeywordSummary builds the zero-cost, no-API-key fallback summary every
// provider must produce when it cannot reach its real backend: a short,
// prompt-ready sentence built only from the market's own text, so the LLM
// estimator still has *something* besides the raw question.
func KeywordSummary(market domain.Market) string {
	if market.Description == "" {
		return "No external context available for: " + market.Question
	}
	return "No external context available. Market description: " + market.Description
}
