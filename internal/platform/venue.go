// Package platform defines the capability contract every trading venue
// implements. The set of concrete venues is closed at build time
// (Manifold, Metaculus, Polymarket, Betfair, ...), so Venue is a plain
// interface rather than a runtime-registered vtable: new venues are
// added by writing a new implementation, not by registering a plugin.
package platform

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// Venue is the capability every trading venue exposes. Read-only venues
// (informational sources like Metaculus) implement every method but
// PlaceBet always fails with ErrReadOnly, GetPositions always returns an
// empty slice, and GetBalance always returns zero.
type Venue interface {
	// FetchMarkets returns all currently open markets on this venue.
	FetchMarkets(ctx context.Context) ([]domain.Market, error)

	// PlaceBet attempts to back `side` on `marketID` with `amount`. Fails
	// with ErrReadOnly on read-only venues; ErrInsufficientBalance,
	// ErrMarketNotFound, or ErrTransport otherwise.
	PlaceBet(ctx context.Context, marketID string, side domain.Side, amount decimal.Decimal) (domain.TradeReceipt, error)

	GetPositions(ctx context.Context) ([]domain.Position, error)
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	CheckLiquidity(ctx context.Context, marketID string) (domain.LiquidityInfo, error)

	// IsExecutable reports whether PlaceBet can ever succeed on this venue.
	IsExecutable() bool
	// Name returns the venue's stable identifier (e.g. "manifold").
	Name() string
}
