package domain

import "github.com/shopspring/decimal"

// Side is which outcome a bet backs.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// Edge is a detected mispricing: the market + estimate that produced it,
// which side to back, and the magnitude of the gap between fair value and
// the quoted market price.
type Edge struct {
	Market     Market
	Estimate   Estimate
	Side       Side
	AbsEdge    decimal.Decimal // |fair - market_price|
	SignedEdge decimal.Decimal // fair - market_price_yes
}

// SizedBet is an Edge after the Kelly sizer has run.
type SizedBet struct {
	Edge           Edge
	KellyFraction  decimal.Decimal // raw f*
	BetFraction    decimal.Decimal // capped fraction of bankroll
	BetAmount      decimal.Decimal
	ExpectedValue  decimal.Decimal // abs_edge * bet_amount
}

// RejectionReason is the closed set of ways RiskManager.Approve can refuse
// a bet. Each variant carries the payload needed to explain the rejection
// in the decision log.
type RejectionReason struct {
	Kind               RejectionKind
	DrawdownPct        decimal.Decimal
	Current            int
	Limit              int
	Category           Category
	AttemptedExposure  decimal.Decimal
	AllowedExposure    decimal.Decimal
	Detail             string
}

// RejectionKind enumerates the RiskManager's rejection variants plus a
// catch-all for Strategy-taxonomy misconfiguration errors.
type RejectionKind string

const (
	RejectionDrawdownHalt           RejectionKind = "drawdown_halt"
	RejectionMaxPositionsReached    RejectionKind = "max_positions_reached"
	RejectionMaxBetsPerCycleReached RejectionKind = "max_bets_per_cycle_reached"
	RejectionExposureLimitExceeded  RejectionKind = "exposure_limit_exceeded"
	RejectionCategoryLimitExceeded  RejectionKind = "category_limit_exceeded"
	RejectionMisconfigured          RejectionKind = "misconfigured"
)

// DecisionRecord is a tagged union of the three shapes a cycle's strategy
// pipeline can emit for a single candidate. Exactly one of Selected,
// KellyRejected, or RiskRejected is populated; Kind says which.
type DecisionRecord struct {
	Kind DecisionKind

	// Selected
	Bet            SizedBet
	AdjustedAmount decimal.Decimal

	// KellyRejected
	RejectedEdge Edge

	// RiskRejected
	RiskRejectedBet SizedBet
	Reason          RejectionReason
}

// DecisionKind distinguishes the three DecisionRecord shapes.
type DecisionKind string

const (
	DecisionSelected      DecisionKind = "selected"
	DecisionKellyRejected DecisionKind = "kelly_rejected"
	DecisionRiskRejected  DecisionKind = "risk_rejected"
)

// NewSelected builds a Selected decision record, enforcing that the
// adjusted amount never exceeds the original bet amount.
func NewSelected(bet SizedBet, adjusted decimal.Decimal) DecisionRecord {
	if adjusted.GreaterThan(bet.BetAmount) {
		adjusted = bet.BetAmount
	}
	return DecisionRecord{Kind: DecisionSelected, Bet: bet, AdjustedAmount: adjusted}
}

// NewKellyRejected builds a KellyRejected decision record.
func NewKellyRejected(edge Edge) DecisionRecord {
	return DecisionRecord{Kind: DecisionKellyRejected, RejectedEdge: edge}
}

// NewRiskRejected builds a RiskRejected decision record.
func NewRiskRejected(bet SizedBet, reason RejectionReason) DecisionRecord {
	return DecisionRecord{Kind: DecisionRiskRejected, RiskRejectedBet: bet, Reason: reason}
}
