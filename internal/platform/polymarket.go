package platform

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PolymarketStub is the dry-run venue: real-money execution requires
// EIP-712 order signing, which this repository does not implement.
// PlaceBet returns ErrInsufficientBalance when the amount exceeds the
// reported balance and otherwise a receipt flagged DryRun, so the
// Accountant and decision log can tell a stubbed fill from a confirmed
// on-chain one; it never actually moves funds.
type PolymarketStub struct {
	fetch   func(ctx context.Context) ([]domain.Market, error)
	balance decimal.Decimal
}

// NewPolymarketStub builds a dry-run venue seeded with a reported balance.
func NewPolymarketStub(fetch func(ctx context.Context) ([]domain.Market, error), balance decimal.Decimal) *PolymarketStub {
	return &PolymarketStub{fetch: fetch, balance: balance}
}

func (p *PolymarketStub) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	if p.fetch == nil {
		return nil, nil
	}
	return p.fetch(ctx)
}

func (p *PolymarketStub) PlaceBet(_ context.Context, marketID string, side domain.Side, amount decimal.Decimal) (domain.TradeReceipt, error) {
	if amount.GreaterThan(p.balance) {
		return domain.TradeReceipt{}, ErrInsufficientBalance
	}
	return domain.TradeReceipt{
		ID:       uuid.NewString(),
		MarketID: marketID,
		Side:     side,
		Amount:   amount,
		DryRun:   true,
	}, nil
}

func (p *PolymarketStub) GetPositions(_ context.Context) ([]domain.Position, error) {
	return []domain.Position{}, nil
}

func (p *PolymarketStub) GetBalance(_ context.Context) (decimal.Decimal, error) {
	return p.balance, nil
}

func (p *PolymarketStub) CheckLiquidity(_ context.Context, marketID string) (domain.LiquidityInfo, error) {
	return domain.LiquidityInfo{MarketID: marketID}, nil
}

func (p *PolymarketStub) IsExecutable() bool {
	return true
}

func (p *PolymarketStub) Name() string {
	return "polymarket"
}
