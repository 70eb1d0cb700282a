// Package testing provides sample-data builders shared across ORACLE's
// package test suites.
package testing

import (
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// NewMarketFixtures returns four markets (weather, economics, sports,
// politics), suitable for router/strategy tests that need realistic
// variety.
func NewMarketFixtures() []domain.Market {
	now := time.Now()
	return []domain.Market{
		{
			ID:          "manifold-will-it-rain-nyc",
			Platform:    "manifold",
			Question:    "Will it rain in New York City tomorrow?",
			Category:    domain.CategoryWeather,
			PriceYes:    decimal.NewFromFloat(0.35),
			PriceNo:     decimal.NewFromFloat(0.65),
			Liquidity:   decimal.NewFromFloat(500),
			Created:     now.Add(-time.Hour),
			Deadline:    now.Add(18 * time.Hour),
		},
		{
			ID:          "polymarket-fed-rate-cut-2026",
			Platform:    "polymarket",
			Question:    "Will the Fed cut rates at the next FOMC meeting?",
			Category:    domain.CategoryEconomics,
			PriceYes:    decimal.NewFromFloat(0.62),
			PriceNo:     decimal.NewFromFloat(0.38),
			Liquidity:   decimal.NewFromFloat(12000),
			Created:     now.Add(-time.Hour),
			Deadline:    now.Add(30 * 24 * time.Hour),
		},
		{
			ID:          "manifold-super-bowl-winner",
			Platform:    "manifold",
			Question:    "Will the Kansas City Chiefs win the Super Bowl?",
			Category:    domain.CategorySports,
			PriceYes:    decimal.NewFromFloat(0.18),
			PriceNo:     decimal.NewFromFloat(0.82),
			Liquidity:   decimal.NewFromFloat(3000),
			Created:     now.Add(-time.Hour),
			Deadline:    now.Add(90 * 24 * time.Hour),
		},
		{
			ID:          "metaculus-election-outcome",
			Platform:    "metaculus",
			Question:    "Will the incumbent party win the next general election?",
			Category:    domain.CategoryPolitics,
			PriceYes:    decimal.NewFromFloat(0.48),
			PriceNo:     decimal.NewFromFloat(0.52),
			Liquidity:   decimal.NewFromFloat(0),
			Created:     now.Add(-time.Hour),
			Deadline:    now.Add(200 * 24 * time.Hour),
			Forecasters: forecasterCount(812),
		},
	}
}

func forecasterCount(n int) *int {
	return &n
}

// NewDataContextFixture returns a plausible DataContext for category,
// suitable as an Estimator input in tests.
func NewDataContextFixture(category domain.Category) domain.DataContext {
	return domain.DataContext{
		Category:  category,
		Summary:   "sample enrichment summary",
		Freshness: time.Now(),
		Cost:      decimal.NewFromFloat(0.002),
	}
}

// NewAgentStateFixture returns a fresh AgentState seeded with a $1000
// bankroll, for tests that need a realistic starting point rather than a
// zero-value struct.
func NewAgentStateFixture() domain.AgentState {
	return domain.NewAgentState(decimal.NewFromFloat(1000), time.Now())
}

// NewEstimateFixture returns a plausible Estimate: probability 0.55, above
// the PriceYes of every fixture market except the 0.62 economics one.
func NewEstimateFixture() domain.Estimate {
	return domain.Estimate{
		Probability: decimal.NewFromFloat(0.55),
		Confidence:  decimal.NewFromFloat(0.8),
		Reasoning:   "sample model reasoning",
		TokensUsed:  120,
		Cost:        decimal.NewFromFloat(0.001),
	}
}
