package strategy

import (
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RiskConfig holds the RiskManager's limits and their defaults.
type RiskConfig struct {
	MaxExposurePct         decimal.Decimal // default 0.60
	MaxCategoryExposurePct decimal.Decimal // default 0.25
	MaxPositions           int             // default 20
	MaxBetsPerCycle        int             // default 5
	DrawdownWarning        decimal.Decimal // default 0.20
	DrawdownHalt           decimal.Decimal // default 0.40
}

// DefaultRiskConfig returns the spec-documented defaults.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		MaxExposurePct:         decimal.NewFromFloat(0.60),
		MaxCategoryExposurePct: decimal.NewFromFloat(0.25),
		MaxPositions:           20,
		MaxBetsPerCycle:        5,
		DrawdownWarning:        decimal.NewFromFloat(0.20),
		DrawdownHalt:           decimal.NewFromFloat(0.40),
	}
}

// RiskManager is the final gate on every bet. It maintains exposure
// counters across cycles (position count, total exposure, per-category
// exposure) and a per-cycle bet counter reset at the start of every cycle.
// Counters are runtime bookkeeping, not persisted state: the live
// exposure picture is rebuilt each cycle from the venues' own position
// lists via Sync, since AgentState is the only object this system
// persists across restarts.
type RiskManager struct {
	cfg RiskConfig
	log zerolog.Logger

	positionCount    int
	totalExposure    decimal.Decimal
	categoryExposure map[domain.Category]decimal.Decimal
	cycleBets        int
}

// NewRiskManager builds a RiskManager from cfg.
func NewRiskManager(cfg RiskConfig, log zerolog.Logger) *RiskManager {
	return &RiskManager{
		cfg:              cfg,
		log:              log.With().Str("component", "risk_manager").Logger(),
		categoryExposure: make(map[domain.Category]decimal.Decimal),
	}
}

// Sync rebuilds the exposure counters from the venues' current positions,
// at the start of every cycle before any Approve call.
func (r *RiskManager) Sync(positions []domain.Position) {
	r.positionCount = len(positions)
	r.totalExposure = decimal.Zero
	r.categoryExposure = make(map[domain.Category]decimal.Decimal)
	for _, p := range positions {
		r.totalExposure = r.totalExposure.Add(p.Amount)
		r.categoryExposure[p.Category] = r.categoryExposure[p.Category].Add(p.Amount)
	}
}

// ResetCycle zeroes the per-cycle bet counter. Called once at the start
// of every cycle.
func (r *RiskManager) ResetCycle() {
	r.cycleBets = 0
}

// Approve checks bet against every limit in order and, if it survives,
// returns the drawdown-tapered amount to actually place.
func (r *RiskManager) Approve(bet domain.SizedBet, state domain.AgentState) (decimal.Decimal, *domain.RejectionReason) {
	dd := state.Drawdown()
	category := bet.Edge.Market.Category
	amount := bet.BetAmount

	if dd.GreaterThanOrEqual(r.cfg.DrawdownHalt) {
		return decimal.Zero, &domain.RejectionReason{Kind: domain.RejectionDrawdownHalt, DrawdownPct: dd}
	}

	if r.positionCount >= r.cfg.MaxPositions {
		return decimal.Zero, &domain.RejectionReason{
			Kind: domain.RejectionMaxPositionsReached, Current: r.positionCount, Limit: r.cfg.MaxPositions,
		}
	}

	if r.cycleBets >= r.cfg.MaxBetsPerCycle {
		return decimal.Zero, &domain.RejectionReason{
			Kind: domain.RejectionMaxBetsPerCycleReached, Current: r.cycleBets, Limit: r.cfg.MaxBetsPerCycle,
		}
	}

	maxExposure := state.Bankroll.Mul(r.cfg.MaxExposurePct)
	if r.totalExposure.Add(amount).GreaterThan(maxExposure) {
		return decimal.Zero, &domain.RejectionReason{
			Kind:              domain.RejectionExposureLimitExceeded,
			AttemptedExposure: r.totalExposure.Add(amount),
			AllowedExposure:   maxExposure,
		}
	}

	maxCategoryExposure := state.Bankroll.Mul(r.cfg.MaxCategoryExposurePct)
	if r.categoryExposure[category].Add(amount).GreaterThan(maxCategoryExposure) {
		return decimal.Zero, &domain.RejectionReason{
			Kind:              domain.RejectionCategoryLimitExceeded,
			Category:          category,
			AttemptedExposure: r.categoryExposure[category].Add(amount),
			AllowedExposure:   maxCategoryExposure,
		}
	}

	adjusted := r.taper(amount, dd)
	return adjusted, nil
}

// taper applies the drawdown-adjusted amount formula.
func (r *RiskManager) taper(amount, dd decimal.Decimal) decimal.Decimal {
	if dd.LessThanOrEqual(decimal.Zero) {
		return amount
	}

	half := decimal.NewFromFloat(0.5)
	if dd.LessThan(r.cfg.DrawdownWarning) {
		factor := decimal.NewFromInt(1).Sub(half.Mul(dd).Div(r.cfg.DrawdownWarning))
		return amount.Mul(factor)
	}

	// warning <= dd < halt
	span := r.cfg.DrawdownHalt.Sub(r.cfg.DrawdownWarning)
	factor := decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.4).Mul(r.cfg.DrawdownHalt.Sub(dd)).Div(span))
	return amount.Mul(factor)
}

// RecordApproval increments the cross-cycle and per-cycle counters for a
// bet that was actually approved. Must only be called after a successful
// Approve, with the adjusted amount Approve returned.
func (r *RiskManager) RecordApproval(category domain.Category, adjustedAmount decimal.Decimal) {
	r.positionCount++
	r.cycleBets++
	r.totalExposure = r.totalExposure.Add(adjustedAmount)
	r.categoryExposure[category] = r.categoryExposure[category].Add(adjustedAmount)
}
