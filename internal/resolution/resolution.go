// Package resolution observes out-of-band settlement of previously placed
// bets. Resolution is never inferred from venue state within the main
// cycle; a Handler is polled once per cycle, at the start of the cycle,
// ahead of the strategy pipeline and the Accountant's reconciliation.
package resolution

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
)

// Handler produces ResolutionEvents for trades that have settled since
// the last poll.
type Handler interface {
	Poll(ctx context.Context) ([]domain.ResolutionEvent, error)
}

// StubHandler is a Handler that never observes a resolution. It is the
// main loop's default until a venue exposes a real settlement feed (e.g.
// Polymarket's on-chain resolution oracle, Manifold's /v0/market/:id
// polling for isResolved): no concrete resolution wire format is named
// anywhere, and inventing one without a venue to back it would be fiction.
type StubHandler struct{}

// NewStubHandler builds a StubHandler.
func NewStubHandler() *StubHandler {
	return &StubHandler{}
}

// Poll always returns no events, successfully.
func (h *StubHandler) Poll(ctx context.Context) ([]domain.ResolutionEvent, error) {
	return nil, nil
}
