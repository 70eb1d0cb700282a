package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeReceipt is returned by a venue after a successful (or dry-run)
// PlaceBet call.
type TradeReceipt struct {
	ID        string
	MarketID  string
	Side      Side
	Amount    decimal.Decimal
	FillPrice decimal.Decimal
	Timestamp time.Time
	// DryRun marks receipts produced by a venue stub whose execution
	// mechanics (e.g. Polymarket's EIP-712 order signing) are out of
	// scope: the receipt records what would have been sent, not a
	// confirmed on-chain fill.
	DryRun bool
}

// Position is an open position on a venue, as reported by GetPositions.
type Position struct {
	MarketID string
	Side     Side
	Amount   decimal.Decimal
	Category Category
}

// LiquidityInfo is the result of CheckLiquidity for one market.
type LiquidityInfo struct {
	MarketID  string
	Liquidity decimal.Decimal
	BestBid   decimal.Decimal
	BestAsk   decimal.Decimal
}

// ResolutionEvent is an out-of-band notification that a previously placed
// bet has settled. Produced by a resolution.Handler and consumed by
// AgentState.RecordResolution via the main loop.
type ResolutionEvent struct {
	TradeID string
	PnL     decimal.Decimal
	Won     bool
}
