package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentStatus is the lifecycle state of the agent's bankroll.
type AgentStatus string

const (
	StatusAlive  AgentStatus = "alive"
	StatusPaused AgentStatus = "paused"
	StatusDied   AgentStatus = "died"
)

// AgentState is the only mutable, persistent object in the system. It is
// created once from the configured initial bankroll and thereafter
// mutated only by the Accountant at cycle end (and by the out-of-band
// resolution handler). It is never destroyed, only persisted atomically
// after every cycle.
type AgentState struct {
	Bankroll           decimal.Decimal
	TotalPnL           decimal.Decimal
	CycleCount         int
	TradesPlaced       int
	TradesWon          int
	TradesLost         int
	TotalAPICosts      decimal.Decimal
	TotalIBCommissions decimal.Decimal
	StartTime          time.Time
	PeakBankroll       decimal.Decimal
	Status             AgentStatus
}

// NewAgentState creates the initial state for a brand-new agent, as seeded
// from `agent.initial_bankroll` in configuration.
func NewAgentState(initialBankroll decimal.Decimal, now time.Time) AgentState {
	return AgentState{
		Bankroll:     initialBankroll,
		PeakBankroll: initialBankroll,
		StartTime:    now,
		Status:       StatusAlive,
	}
}

// applyStatus enforces AgentState's invariants: bankroll <= 0 implies
// Died, and peak_bankroll is never below bankroll.
func (s *AgentState) applyStatus() {
	if s.Bankroll.LessThanOrEqual(decimal.Zero) {
		s.Status = StatusDied
	}
	if s.PeakBankroll.LessThan(s.Bankroll) {
		s.PeakBankroll = s.Bankroll
	}
}

// DeductCosts subtracts api and commission costs from the bankroll and
// re-checks the survival invariant. Called by the Accountant exactly once
// per cycle.
func (s *AgentState) DeductCosts(apiCost, ibCommissions decimal.Decimal) {
	s.Bankroll = s.Bankroll.Sub(apiCost).Sub(ibCommissions)
	s.TotalAPICosts = s.TotalAPICosts.Add(apiCost)
	s.TotalIBCommissions = s.TotalIBCommissions.Add(ibCommissions)
	s.applyStatus()
}

// RecordResolution applies the out-of-band outcome of a previously placed
// bet: it updates total PnL, the bankroll, the win/loss counters, and the
// peak. This is never invoked by the Accountant itself; the resolution
// handler calls it once per observed settlement.
func (s *AgentState) RecordResolution(pnl decimal.Decimal, won bool) {
	s.TotalPnL = s.TotalPnL.Add(pnl)
	s.Bankroll = s.Bankroll.Add(pnl)
	if won {
		s.TradesWon++
	} else {
		s.TradesLost++
	}
	s.applyStatus()
}

// RecordCycle increments the per-cycle counters the Accountant maintains:
// trades placed this cycle and the total cycle count.
func (s *AgentState) RecordCycle(tradesExecuted int) {
	s.TradesPlaced += tradesExecuted
	s.CycleCount++
	s.applyStatus()
}

// Alive reports whether the agent has not died; a Paused agent counts as
// alive.
func (s AgentState) Alive() bool {
	return s.Status != StatusDied
}

// Drawdown returns max(0, 1 - bankroll/peak_bankroll), the fraction the
// bankroll has fallen from its historical peak. Returns 0 if there is no
// peak to measure against yet.
func (s AgentState) Drawdown() decimal.Decimal {
	if s.PeakBankroll.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ratio := s.Bankroll.Div(s.PeakBankroll)
	dd := decimal.NewFromInt(1).Sub(ratio)
	if dd.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return dd
}

// CycleReport is the Accountant's per-cycle reconciliation output.
type CycleReport struct {
	BankrollBefore decimal.Decimal
	BankrollAfter  decimal.Decimal
	TradesExecuted int
	APICost        decimal.Decimal
	IBCommissions  decimal.Decimal
	Status         AgentStatus
	Timestamp      time.Time
}
