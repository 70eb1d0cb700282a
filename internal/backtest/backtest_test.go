package backtest

import (
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/strategy"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedMarket(id string, category domain.Category, priceYes, estimate float64, resolvedYes bool, tradeTime time.Time) ResolvedMarket {
	return ResolvedMarket{
		Market: domain.Market{
			ID:       id,
			Category: category,
			PriceYes: decimal.NewFromFloat(priceYes),
			PriceNo:  decimal.NewFromFloat(1 - priceYes),
		},
		Estimate:    domain.Estimate{Probability: decimal.NewFromFloat(estimate), Confidence: decimal.NewFromFloat(0.8)},
		ResolvedYes: resolvedYes,
		TradeTime:   tradeTime,
	}
}

func newEngine() *Engine {
	return NewEngine(strategy.DefaultEdgeConfig(), strategy.DefaultKellyConfig(), strategy.DefaultRiskConfig(), zerolog.Nop())
}

func TestBacktestRunProducesTradesForGenuineEdges(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	markets := []ResolvedMarket{
		resolvedMarket("m1", domain.CategorySports, 0.40, 0.65, true, base),
		resolvedMarket("m2", domain.CategorySports, 0.50, 0.52, true, base.Add(time.Hour)), // edge too small, skipped
	}

	report := newEngine().Run(markets, decimal.NewFromFloat(1000))

	require.Len(t, report.Trades, 1)
	assert.Equal(t, "m1", report.Trades[0].MarketID)
	assert.True(t, report.Trades[0].Won)
	assert.True(t, report.FinalBankroll.GreaterThan(report.InitialBankroll))
}

func TestBacktestBrierIncludesSkippedMarkets(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	markets := []ResolvedMarket{
		resolvedMarket("m1", domain.CategorySports, 0.50, 0.51, true, base), // no real edge, skipped for trading
	}

	report := newEngine().Run(markets, decimal.NewFromFloat(1000))
	assert.Empty(t, report.Trades)
	assert.InDelta(t, (0.51-1.0)*(0.51-1.0), report.Brier, 1e-9)
}

func TestBacktestHaltsOnZeroBankroll(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var markets []ResolvedMarket
	for i := 0; i < 20; i++ {
		markets = append(markets, resolvedMarket("m", domain.CategorySports, 0.40, 0.70, false, base.Add(time.Duration(i)*time.Hour)))
	}

	// Caps opened up so a single lost bet stakes, and loses, the whole
	// bankroll; the default 6% bet cap and drawdown halt never reach zero.
	kelly := strategy.DefaultKellyConfig()
	kelly.Multiplier = decimal.NewFromInt(4)
	kelly.MaxBetPct = decimal.NewFromInt(1)
	risk := strategy.DefaultRiskConfig()
	risk.MaxExposurePct = decimal.NewFromInt(1)
	risk.MaxCategoryExposurePct = decimal.NewFromInt(1)
	engine := NewEngine(strategy.DefaultEdgeConfig(), kelly, risk, zerolog.Nop())

	report := engine.Run(markets, decimal.NewFromFloat(50))
	assert.True(t, report.Died)
	assert.True(t, report.FinalBankroll.LessThanOrEqual(decimal.Zero))
}

func TestBacktestIsDeterministicAcrossRuns(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	markets := []ResolvedMarket{
		resolvedMarket("m1", domain.CategorySports, 0.40, 0.65, true, base.Add(2*time.Hour)),
		resolvedMarket("m2", domain.CategoryWeather, 0.30, 0.50, false, base),
	}

	r1 := newEngine().Run(markets, decimal.NewFromFloat(1000))
	r2 := newEngine().Run(markets, decimal.NewFromFloat(1000))

	assert.True(t, r1.FinalBankroll.Equal(r2.FinalBankroll))
	require.Len(t, r1.Trades, 2)
	assert.Equal(t, "m2", r1.Trades[0].MarketID) // earlier trade_time replays first
	assert.Equal(t, r1.Trades[0].MarketID, r2.Trades[0].MarketID)
}
