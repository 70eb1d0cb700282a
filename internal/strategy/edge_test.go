package strategy

import (
	"testing"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estimate(prob, conf float64) domain.Estimate {
	return domain.Estimate{Probability: decimal.NewFromFloat(prob), Confidence: decimal.NewFromFloat(conf)}
}

func market(category domain.Category, priceYes float64) domain.Market {
	return domain.Market{Category: category, PriceYes: decimal.NewFromFloat(priceYes), PriceNo: decimal.NewFromFloat(1 - priceYes)}
}

func TestFindEdgesDropsBelowCategoryThreshold(t *testing.T) {
	d := NewEdgeDetector(DefaultEdgeConfig())
	pairs := []MarketEstimate{
		{Market: market(domain.CategoryWeather, 0.50), Estimate: estimate(0.53, 0.8)}, // 0.03 edge < 0.06 weather threshold
	}
	edges := d.FindEdges(pairs)
	assert.Empty(t, edges)
}

func TestFindEdgesKeepsAboveThresholdAndAssignsSide(t *testing.T) {
	d := NewEdgeDetector(DefaultEdgeConfig())
	pairs := []MarketEstimate{
		{Market: market(domain.CategoryWeather, 0.50), Estimate: estimate(0.60, 0.8)},
	}
	edges := d.FindEdges(pairs)
	require.Len(t, edges, 1)
	assert.Equal(t, domain.SideYes, edges[0].Side)
	assert.True(t, edges[0].AbsEdge.Equal(decimal.NewFromFloat(0.10)))
}

func TestFindEdgesLowConfidenceGuardRequiresDoubleThreshold(t *testing.T) {
	d := NewEdgeDetector(DefaultEdgeConfig())
	// Sports threshold 0.08: edge of 0.10 clears the base threshold but not
	// the low-confidence guard (needs >= 0.16).
	pairs := []MarketEstimate{
		{Market: market(domain.CategorySports, 0.50), Estimate: estimate(0.60, 0.20)},
	}
	assert.Empty(t, d.FindEdges(pairs))

	pairs = []MarketEstimate{
		{Market: market(domain.CategorySports, 0.40), Estimate: estimate(0.60, 0.20)},
	}
	assert.Len(t, d.FindEdges(pairs), 1)
}

func TestFindEdgesSortsDescendingByAbsEdge(t *testing.T) {
	d := NewEdgeDetector(DefaultEdgeConfig())
	pairs := []MarketEstimate{
		{Market: market(domain.CategoryOther, 0.50), Estimate: estimate(0.65, 0.8)},
		{Market: market(domain.CategoryOther, 0.50), Estimate: estimate(0.80, 0.8)},
	}
	edges := d.FindEdges(pairs)
	require.Len(t, edges, 2)
	assert.True(t, edges[0].AbsEdge.GreaterThan(edges[1].AbsEdge))
}
