package router

import (
	"math"
	"sort"

	"github.com/oracle-trading/oracle/internal/domain"
)

// priorityScore computes the composite prioritisation score.
func priorityScore(m domain.Market) float64 {
	score := 0.0

	if m.CrossRefs.HasAny() {
		score += 50
	}
	if m.CrossRefs.MetaculusForecasters != nil {
		forecasters := float64(*m.CrossRefs.MetaculusForecasters)
		if forecasters > 100 {
			forecasters = 100
		}
		score += 0.5 * forecasters
	}
	if m.CrossRefs.ManifoldProb != nil {
		score += 20
	}

	liquidity, _ := m.Liquidity.Float64()
	volume, _ := m.Volume24h.Float64()
	score += 5*math.Log(liquidity+1) + 3*math.Log(volume+1)

	priceYes, _ := m.PriceYes.Float64()
	score += 10 * (1 - math.Abs(2*priceYes-1))

	return score
}

// prioritize sorts markets descending by priorityScore, stably (ties keep
// their incoming merge order).
func prioritize(markets []domain.Market) []domain.Market {
	sort.SliceStable(markets, func(i, j int) bool {
		return priorityScore(markets[i]) > priorityScore(markets[j])
	})
	return markets
}
