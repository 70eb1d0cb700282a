package accountant

import (
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconcileDeductsCostsAndAdvancesCounters(t *testing.T) {
	a := New()
	state := domain.NewAgentState(decimal.NewFromFloat(1000), time.Now())

	report := a.Reconcile(&state, 2, CycleCosts{
		LLMCost:       decimal.NewFromFloat(0.50),
		DataCost:      decimal.NewFromFloat(0.10),
		IBCommissions: decimal.NewFromFloat(1.00),
	})

	assert.True(t, report.BankrollBefore.Equal(decimal.NewFromFloat(1000)))
	assert.True(t, state.Bankroll.Equal(decimal.NewFromFloat(998.40)))
	assert.Equal(t, 2, state.TradesPlaced)
	assert.Equal(t, 1, state.CycleCount)
	assert.Equal(t, domain.StatusAlive, state.Status)
}

func TestReconcileKillsAgentWhenBankrollHitsZero(t *testing.T) {
	a := New()
	state := domain.NewAgentState(decimal.NewFromFloat(5), time.Now())

	report := a.Reconcile(&state, 0, CycleCosts{OtherCost: decimal.NewFromFloat(10)})

	assert.Equal(t, domain.StatusDied, state.Status)
	assert.Equal(t, domain.StatusDied, report.Status)
}

func TestReconcileAdvancesPeakBankroll(t *testing.T) {
	a := New()
	state := domain.NewAgentState(decimal.NewFromFloat(1000), time.Now())
	state.Bankroll = decimal.NewFromFloat(1200) // simulate a resolved win before this cycle's reconcile

	a.Reconcile(&state, 1, CycleCosts{})
	assert.True(t, state.PeakBankroll.Equal(decimal.NewFromFloat(1200)))
}
