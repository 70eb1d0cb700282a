package strategy

import (
	"testing"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorRunSelectsSurvivingBetsInROIOrder(t *testing.T) {
	edgeDetector := NewEdgeDetector(DefaultEdgeConfig())
	kelly := NewKellySizer(DefaultKellyConfig())
	risk := NewRiskManager(DefaultRiskConfig(), zerolog.Nop())
	orchestrator := NewOrchestrator(edgeDetector, kelly, risk)

	state := agentState(1000, 1000)
	pairs := []MarketEstimate{
		{Market: market(domain.CategorySports, 0.40), Estimate: estimate(0.65, 0.9)},
		{Market: market(domain.CategoryWeather, 0.50), Estimate: estimate(0.60, 0.9)},
	}

	result := orchestrator.Run(pairs, state)

	require.Len(t, result.Selected, 2)
	for _, rec := range result.Selected {
		assert.Equal(t, domain.DecisionSelected, rec.Kind)
	}
	// Sports (edge 0.25) out-ranks weather (edge 0.10) on EV·confidence.
	assert.Equal(t, domain.CategorySports, result.Selected[0].Bet.Edge.Market.Category)
	assert.NotEmpty(t, result.Log)
}

func TestOrchestratorRunRespectsMaxBetsPerCycle(t *testing.T) {
	cfg := DefaultRiskConfig()
	cfg.MaxBetsPerCycle = 1
	edgeDetector := NewEdgeDetector(DefaultEdgeConfig())
	kelly := NewKellySizer(DefaultKellyConfig())
	risk := NewRiskManager(cfg, zerolog.Nop())
	orchestrator := NewOrchestrator(edgeDetector, kelly, risk)

	state := agentState(1000, 1000)
	pairs := []MarketEstimate{
		{Market: market(domain.CategorySports, 0.40), Estimate: estimate(0.70, 0.9)},
		{Market: market(domain.CategoryWeather, 0.50), Estimate: estimate(0.65, 0.9)},
	}

	result := orchestrator.Run(pairs, state)
	assert.Len(t, result.Selected, 1)

	var rejected int
	for _, rec := range result.Log {
		if rec.Kind == domain.DecisionRiskRejected {
			rejected++
		}
	}
	assert.Equal(t, 1, rejected)
}

func TestOrchestratorResetsCycleCounterEachRun(t *testing.T) {
	cfg := DefaultRiskConfig()
	cfg.MaxBetsPerCycle = 1
	edgeDetector := NewEdgeDetector(DefaultEdgeConfig())
	kelly := NewKellySizer(DefaultKellyConfig())
	risk := NewRiskManager(cfg, zerolog.Nop())
	orchestrator := NewOrchestrator(edgeDetector, kelly, risk)

	state := agentState(1000, 1000)
	pairs := []MarketEstimate{
		{Market: market(domain.CategorySports, 0.40), Estimate: estimate(0.70, 0.9)},
	}

	first := orchestrator.Run(pairs, state)
	require.Len(t, first.Selected, 1)

	second := orchestrator.Run(pairs, state)
	assert.Len(t, second.Selected, 1)
}
