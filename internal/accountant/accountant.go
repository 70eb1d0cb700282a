// Package accountant implements the Accountant: the sole writer of
// AgentState at cycle end, reconciling the cycle's costs and trade
// counts into the persistent bankroll.
package accountant

import (
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// CycleCosts is the accumulated cost of one cycle, broken down by source.
type CycleCosts struct {
	LLMCost       decimal.Decimal
	DataCost      decimal.Decimal
	OtherCost     decimal.Decimal
	IBCommissions decimal.Decimal
}

// Total returns the combined api_cost (llm + data + other).
func (c CycleCosts) Total() decimal.Decimal {
	return c.LLMCost.Add(c.DataCost).Add(c.OtherCost)
}

// Accountant is stateless: it mutates the AgentState handed to it and
// returns a report describing what changed.
type Accountant struct {
	now func() time.Time
}

// New builds an Accountant.
func New() *Accountant {
	return &Accountant{now: time.Now}
}

// Reconcile deducts the cycle's costs from bankroll, kills the agent if
// bankroll falls to or below zero, bumps trade/cycle counters, and
// advances peak_bankroll. Resolution of placed bets is handled out of
// band by domain.AgentState.RecordResolution, never by Reconcile.
func (a *Accountant) Reconcile(state *domain.AgentState, tradesExecuted int, costs CycleCosts) domain.CycleReport {
	before := state.Bankroll

	state.DeductCosts(costs.Total(), costs.IBCommissions)
	state.RecordCycle(tradesExecuted)

	return domain.CycleReport{
		BankrollBefore: before,
		BankrollAfter:  state.Bankroll,
		TradesExecuted: tradesExecuted,
		APICost:        costs.Total(),
		IBCommissions:  costs.IBCommissions,
		Status:         state.Status,
		Timestamp:      a.now(),
	}
}
