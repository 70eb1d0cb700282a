// Package strategy implements the decision pipeline: EdgeDetector,
// KellySizer, RiskManager, wired together by Orchestrator.
package strategy

import (
	"sort"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// EdgeConfig holds the EdgeDetector's thresholds.
type EdgeConfig struct {
	MinEdge            decimal.Decimal // noise floor, default 0.03
	CategoryThresholds map[domain.Category]decimal.Decimal
	LowConfidence      decimal.Decimal // default 0.30
}

// DefaultEdgeConfig returns the spec-documented default thresholds.
func DefaultEdgeConfig() EdgeConfig {
	return EdgeConfig{
		MinEdge: decimal.NewFromFloat(0.03),
		CategoryThresholds: map[domain.Category]decimal.Decimal{
			domain.CategoryWeather:   decimal.NewFromFloat(0.06),
			domain.CategorySports:    decimal.NewFromFloat(0.08),
			domain.CategoryEconomics: decimal.NewFromFloat(0.10),
			domain.CategoryPolitics:  decimal.NewFromFloat(0.12),
			domain.CategoryCulture:   decimal.NewFromFloat(0.10),
			domain.CategoryOther:     decimal.NewFromFloat(0.10),
		},
		LowConfidence: decimal.NewFromFloat(0.30),
	}
}

// EdgeDetector turns (Market, Estimate) pairs into sorted, surviving Edges.
type EdgeDetector struct {
	cfg EdgeConfig
}

// NewEdgeDetector builds an EdgeDetector from cfg.
func NewEdgeDetector(cfg EdgeConfig) *EdgeDetector {
	return &EdgeDetector{cfg: cfg}
}

// MarketEstimate pairs a Market with the LLM's Estimate for it.
type MarketEstimate struct {
	Market   domain.Market
	Estimate domain.Estimate
}

// FindEdges drops pairs whose mispricing doesn't clear the noise floor or
// category threshold (with a stricter bar under low confidence), and
// returns the survivors sorted descending by absolute edge (stable).
func (d *EdgeDetector) FindEdges(pairs []MarketEstimate) []domain.Edge {
	edges := make([]domain.Edge, 0, len(pairs))

	for _, pair := range pairs {
		signed := pair.Estimate.Probability.Sub(pair.Market.PriceYes)
		absEdge := signed.Abs()

		threshold := d.cfg.CategoryThresholds[pair.Market.Category]
		if threshold.IsZero() {
			threshold = d.cfg.CategoryThresholds[domain.CategoryOther]
		}

		if absEdge.LessThan(d.cfg.MinEdge) || absEdge.LessThan(threshold) {
			continue
		}

		if pair.Estimate.Confidence.LessThan(d.cfg.LowConfidence) {
			if absEdge.LessThan(threshold.Mul(decimal.NewFromInt(2))) {
				continue
			}
		}

		side := domain.SideNo
		if signed.GreaterThan(decimal.Zero) {
			side = domain.SideYes
		}

		edges = append(edges, domain.Edge{
			Market:     pair.Market,
			Estimate:   pair.Estimate,
			Side:       side,
			AbsEdge:    absEdge,
			SignedEdge: signed,
		})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].AbsEdge.GreaterThan(edges[j].AbsEdge)
	})

	return edges
}
