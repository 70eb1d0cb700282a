package strategy

import (
	"testing"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yesEdge(priceYes, estimate float64) domain.Edge {
	m := market(domain.CategorySports, priceYes)
	return domain.Edge{
		Market:   m,
		Estimate: domain.Estimate{Probability: decimal.NewFromFloat(estimate), Confidence: decimal.NewFromFloat(0.8)},
		Side:     domain.SideYes,
		AbsEdge:  decimal.NewFromFloat(estimate - priceYes).Abs(),
	}
}

func TestKellySizerProducesPositiveBetForGenuineEdge(t *testing.T) {
	k := NewKellySizer(DefaultKellyConfig())
	edge := yesEdge(0.40, 0.65)

	bet, ok := k.Size(edge, decimal.NewFromFloat(1000))
	require.True(t, ok)
	assert.True(t, bet.BetAmount.GreaterThan(decimal.Zero))
	assert.True(t, bet.BetFraction.LessThanOrEqual(DefaultKellyConfig().MaxBetPct))
}

func TestKellySizerRejectsNegativeEdge(t *testing.T) {
	k := NewKellySizer(DefaultKellyConfig())
	edge := yesEdge(0.60, 0.55) // fair < price for a "Yes" side is a losing proposition once commission is added
	edge.Side = domain.SideYes

	_, ok := k.Size(edge, decimal.NewFromFloat(1000))
	assert.False(t, ok)
}

func TestKellySizerRejectsBelowMinimumBetSize(t *testing.T) {
	cfg := DefaultKellyConfig()
	cfg.MinBetSize = decimal.NewFromFloat(1000) // unreachable floor
	k := NewKellySizer(cfg)
	edge := yesEdge(0.40, 0.65)

	_, ok := k.Size(edge, decimal.NewFromFloat(1000))
	assert.False(t, ok)
}

func TestKellySizerCapsAtMaxBetPct(t *testing.T) {
	cfg := DefaultKellyConfig()
	cfg.MaxBetPct = decimal.NewFromFloat(0.01)
	k := NewKellySizer(cfg)
	edge := yesEdge(0.20, 0.80) // large genuine edge would otherwise exceed the cap

	bet, ok := k.Size(edge, decimal.NewFromFloat(10000))
	require.True(t, ok)
	assert.True(t, bet.BetFraction.Equal(cfg.MaxBetPct))
}
