package platform

import (
	"context"
	"sync"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManifoldStub is an illustrative executable venue. Manifold's real REST
// and auth protocol stays out of scope; this stub tracks an in-memory
// balance and position book so the Strategy pipeline and
// Executor can be exercised end-to-end against a realistic executable
// venue without a live HTTP dependency.
type ManifoldStub struct {
	mu        sync.Mutex
	fetch     func(ctx context.Context) ([]domain.Market, error)
	balance   decimal.Decimal
	positions []domain.Position
	liquidity func(ctx context.Context, marketID string) (domain.LiquidityInfo, error)
}

// NewManifoldStub builds an executable venue seeded with startingBalance.
func NewManifoldStub(fetch func(ctx context.Context) ([]domain.Market, error), startingBalance decimal.Decimal) *ManifoldStub {
	return &ManifoldStub{fetch: fetch, balance: startingBalance}
}

func (m *ManifoldStub) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	if m.fetch == nil {
		return nil, nil
	}
	return m.fetch(ctx)
}

func (m *ManifoldStub) PlaceBet(_ context.Context, marketID string, side domain.Side, amount decimal.Decimal) (domain.TradeReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount.GreaterThan(m.balance) {
		return domain.TradeReceipt{}, ErrInsufficientBalance
	}

	m.balance = m.balance.Sub(amount)
	m.positions = append(m.positions, domain.Position{MarketID: marketID, Side: side, Amount: amount})

	return domain.TradeReceipt{
		ID:       uuid.NewString(),
		MarketID: marketID,
		Side:     side,
		Amount:   amount,
	}, nil
}

func (m *ManifoldStub) GetPositions(_ context.Context) ([]domain.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Position, len(m.positions))
	copy(out, m.positions)
	return out, nil
}

func (m *ManifoldStub) GetBalance(_ context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance, nil
}

func (m *ManifoldStub) CheckLiquidity(ctx context.Context, marketID string) (domain.LiquidityInfo, error) {
	if m.liquidity != nil {
		return m.liquidity(ctx, marketID)
	}
	return domain.LiquidityInfo{MarketID: marketID}, nil
}

func (m *ManifoldStub) IsExecutable() bool {
	return true
}

func (m *ManifoldStub) Name() string {
	return "manifold"
}
