package strategy

import (
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedBet(category domain.Category, amount float64) domain.SizedBet {
	return domain.SizedBet{
		Edge:      domain.Edge{Market: domain.Market{Category: category}},
		BetAmount: decimal.NewFromFloat(amount),
	}
}

func agentState(bankroll, peak float64) domain.AgentState {
	s := domain.NewAgentState(decimal.NewFromFloat(bankroll), time.Now())
	s.PeakBankroll = decimal.NewFromFloat(peak)
	return s
}

func TestRiskManagerRejectsOnDrawdownHalt(t *testing.T) {
	r := NewRiskManager(DefaultRiskConfig(), zerolog.Nop())
	state := agentState(580, 1000) // 42% drawdown > 40% halt

	_, reason := r.Approve(sizedBet(domain.CategorySports, 10), state)
	require.NotNil(t, reason)
	assert.Equal(t, domain.RejectionDrawdownHalt, reason.Kind)
}

func TestRiskManagerRejectsOnMaxPositions(t *testing.T) {
	cfg := DefaultRiskConfig()
	cfg.MaxPositions = 1
	r := NewRiskManager(cfg, zerolog.Nop())
	r.Sync([]domain.Position{{MarketID: "m1", Amount: decimal.NewFromFloat(10)}})

	_, reason := r.Approve(sizedBet(domain.CategorySports, 10), agentState(1000, 1000))
	require.NotNil(t, reason)
	assert.Equal(t, domain.RejectionMaxPositionsReached, reason.Kind)
}

func TestRiskManagerRejectsOnExposureLimit(t *testing.T) {
	r := NewRiskManager(DefaultRiskConfig(), zerolog.Nop())
	state := agentState(1000, 1000)
	// max_exposure_pct = 0.60 -> cap is 600
	r.Sync([]domain.Position{{MarketID: "m1", Amount: decimal.NewFromFloat(590)}})

	_, reason := r.Approve(sizedBet(domain.CategorySports, 50), state)
	require.NotNil(t, reason)
	assert.Equal(t, domain.RejectionExposureLimitExceeded, reason.Kind)
}

func TestRiskManagerTapersAmountDuringWarningDrawdown(t *testing.T) {
	r := NewRiskManager(DefaultRiskConfig(), zerolog.Nop())
	state := agentState(900, 1000) // dd = 0.10, within warning (0.20)

	adjusted, reason := r.Approve(sizedBet(domain.CategorySports, 100), state)
	require.Nil(t, reason)
	// factor = 1 - 0.5*0.10/0.20 = 0.75
	assert.True(t, adjusted.Equal(decimal.NewFromFloat(75)))
}

func TestRiskManagerCycleCounterResetsEachCycle(t *testing.T) {
	cfg := DefaultRiskConfig()
	cfg.MaxBetsPerCycle = 1
	r := NewRiskManager(cfg, zerolog.Nop())
	state := agentState(1000, 1000)

	adjusted, reason := r.Approve(sizedBet(domain.CategorySports, 10), state)
	require.Nil(t, reason)
	r.RecordApproval(domain.CategorySports, adjusted)

	_, reason = r.Approve(sizedBet(domain.CategorySports, 10), state)
	require.NotNil(t, reason)
	assert.Equal(t, domain.RejectionMaxBetsPerCycleReached, reason.Kind)

	r.ResetCycle()
	_, reason = r.Approve(sizedBet(domain.CategorySports, 10), state)
	assert.Nil(t, reason)
}
