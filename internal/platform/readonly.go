package platform

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// ReadOnlyBase implements the non-executable half of Venue for
// informational-only venues (e.g. Metaculus): PlaceBet always fails with
// ErrReadOnly, positions are always empty, and balance is always zero.
// Concrete read-only venues embed this and only need to implement
// FetchMarkets, CheckLiquidity, and Name.
type ReadOnlyBase struct{}

func (ReadOnlyBase) PlaceBet(_ context.Context, _ string, _ domain.Side, _ decimal.Decimal) (domain.TradeReceipt, error) {
	return domain.TradeReceipt{}, ErrReadOnly
}

func (ReadOnlyBase) GetPositions(_ context.Context) ([]domain.Position, error) {
	return []domain.Position{}, nil
}

func (ReadOnlyBase) GetBalance(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (ReadOnlyBase) IsExecutable() bool {
	return false
}
