package strategy

import (
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// KellyConfig holds the KellySizer's tunables and their defaults.
type KellyConfig struct {
	Multiplier         decimal.Decimal // quarter-Kelly default: 0.25
	MaxBetPct          decimal.Decimal // default 0.06
	MinBetSize         decimal.Decimal // default 1.0
	CommissionPerTrade decimal.Decimal // default 0.50
}

// DefaultKellyConfig returns the spec-documented defaults.
func DefaultKellyConfig() KellyConfig {
	return KellyConfig{
		Multiplier:         decimal.NewFromFloat(0.25),
		MaxBetPct:          decimal.NewFromFloat(0.06),
		MinBetSize:         decimal.NewFromFloat(1.0),
		CommissionPerTrade: decimal.NewFromFloat(0.50),
	}
}

// KellySizer converts Edges into SizedBets, or rejects them.
type KellySizer struct {
	cfg KellyConfig
}

// NewKellySizer builds a KellySizer from cfg.
func NewKellySizer(cfg KellyConfig) *KellySizer {
	return &KellySizer{cfg: cfg}
}

// winProbAndPrice resolves (win_prob, market_price) for edge's side.
func winProbAndPrice(edge domain.Edge) (decimal.Decimal, decimal.Decimal) {
	if edge.Side == domain.SideNo {
		return decimal.NewFromInt(1).Sub(edge.Estimate.Probability), edge.Market.PriceNo
	}
	return edge.Estimate.Probability, edge.Market.PriceYes
}

// PayoutRatio computes the commission-adjusted payout ratio for edge at
// the given bankroll, the same formula Size uses internally. The
// backtest replay engine reuses this to compute PnL with
// the identical effective price Size sized the bet against.
func (k *KellySizer) PayoutRatio(edge domain.Edge, bankroll decimal.Decimal) (decimal.Decimal, bool) {
	if bankroll.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	_, marketPrice := winProbAndPrice(edge)

	commissionRate := k.cfg.CommissionPerTrade.Div(bankroll)
	effectivePrice := marketPrice.Add(commissionRate)
	cap99 := decimal.NewFromFloat(0.99)
	if effectivePrice.GreaterThan(cap99) {
		effectivePrice = cap99
	}
	if effectivePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}

	payoutRatio := decimal.NewFromInt(1).Sub(effectivePrice).Div(effectivePrice)
	if payoutRatio.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return payoutRatio, true
}

// Size runs the fractional Kelly formula against edge and the current
// bankroll. Returns ok=false when the edge doesn't survive any step of
// the formula.
func (k *KellySizer) Size(edge domain.Edge, bankroll decimal.Decimal) (domain.SizedBet, bool) {
	winProb, _ := winProbAndPrice(edge)

	payoutRatio, ok := k.PayoutRatio(edge, bankroll)
	if !ok {
		return domain.SizedBet{}, false
	}

	rawKelly := payoutRatio.Mul(winProb).Sub(decimal.NewFromInt(1).Sub(winProb)).Div(payoutRatio)
	if rawKelly.LessThanOrEqual(decimal.Zero) {
		return domain.SizedBet{}, false
	}

	betFraction := rawKelly.Mul(k.cfg.Multiplier)
	if betFraction.GreaterThan(k.cfg.MaxBetPct) {
		betFraction = k.cfg.MaxBetPct
	}

	betAmount := betFraction.Mul(bankroll)
	if betAmount.LessThan(k.cfg.MinBetSize) {
		return domain.SizedBet{}, false
	}

	return domain.SizedBet{
		Edge:          edge,
		KellyFraction: rawKelly,
		BetFraction:   betFraction,
		BetAmount:     betAmount,
		ExpectedValue: edge.AbsEdge.Mul(betAmount),
	}, true
}
