package platform

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
)

// MetaculusStub is an illustrative, read-only venue implementation.
// Metaculus's actual wire protocol stays out of scope; this stub
// satisfies the Venue capability with an injectable market
// fetcher so the Router can be exercised end-to-end in tests without a
// live HTTP dependency. A production build would replace fetch with a
// real REST client following the same signature.
type MetaculusStub struct {
	ReadOnlyBase
	fetch func(ctx context.Context) ([]domain.Market, error)
}

// NewMetaculusStub builds a read-only venue backed by fetch.
func NewMetaculusStub(fetch func(ctx context.Context) ([]domain.Market, error)) *MetaculusStub {
	return &MetaculusStub{fetch: fetch}
}

func (m *MetaculusStub) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	if m.fetch == nil {
		return nil, nil
	}
	return m.fetch(ctx)
}

func (m *MetaculusStub) CheckLiquidity(_ context.Context, marketID string) (domain.LiquidityInfo, error) {
	// Metaculus has no order book; liquidity is meaningless for an
	// informational-only venue.
	return domain.LiquidityInfo{MarketID: marketID}, nil
}

func (m *MetaculusStub) Name() string {
	return "metaculus"
}
