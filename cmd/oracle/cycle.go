package main

import (
	"context"
	"fmt"
	"time"

	"github.com/oracle-trading/oracle/internal/accountant"
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/enricher"
	"github.com/oracle-trading/oracle/internal/llm"
	"github.com/oracle-trading/oracle/internal/platform"
	"github.com/oracle-trading/oracle/internal/resolution"
	"github.com/oracle-trading/oracle/internal/router"
	"github.com/oracle-trading/oracle/internal/storage"
	"github.com/oracle-trading/oracle/internal/storage/decisionlog"
	"github.com/oracle-trading/oracle/internal/strategy"
	"github.com/oracle-trading/oracle/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cycleLoop holds every collaborator one cycle touches. It is owned
// exclusively by the ticker goroutine in main: nothing outside a single
// run call ever mutates its fields.
type cycleLoop struct {
	log               zerolog.Logger
	router            *router.Router
	enricher          *enricher.Service
	estimator         llm.Estimator
	orchestrator      *strategy.Orchestrator
	risk              *strategy.RiskManager
	accountant        *accountant.Accountant
	resolver          resolution.Handler
	venues            []platform.Venue
	decisionStore     *decisionlog.Store
	stateStore        *storage.StateStore
	survivalThreshold decimal.Decimal

	cycleNum int
}

// run executes one full cycle: resolution polling, venue sync, market
// scan, enrichment, estimation, the strategy pipeline, execution, and
// accounting reconciliation, ending with an atomic state save. Each cycle
// runs to completion before the next tick.
func (c *cycleLoop) run(ctx context.Context) {
	c.cycleNum++
	cycleID := fmt.Sprintf("cycle-%d-%d", c.cycleNum, time.Now().UTC().Unix())
	log := c.log.With().Str("cycle_id", cycleID).Logger()
	log.Info().Msg("cycle starting")
	defer utils.OperationTimer("cycle", log)()

	state := c.stateStore.Current()

	if err := c.pollResolutions(ctx, &state); err != nil {
		log.Warn().Err(err).Msg("resolution poll failed")
	}

	c.risk.Sync(c.collectPositions(ctx, log))

	var (
		selected []domain.DecisionRecord
		allLog   []domain.DecisionRecord
		dataCost decimal.Decimal
		llmCost  decimal.Decimal
	)

	if !state.Alive() {
		log.Warn().Msg("agent is dead, skipping strategy pipeline")
	} else if state.Status == domain.StatusPaused && state.Bankroll.LessThan(c.survivalThreshold) {
		log.Warn().Str("bankroll", state.Bankroll.String()).Msg("bankroll below survival threshold, skipping new bets this cycle")
	} else {
		markets := c.router.ScanAll(ctx)
		log.Info().Int("markets", len(markets)).Msg("market scan complete")

		enriched := c.enricher.EnrichBatch(ctx, markets)
		pairs := make([]strategy.MarketEstimate, 0, len(enriched))
		for _, mc := range enriched {
			dataCost = dataCost.Add(mc.Context.Cost)

			estimate, err := c.estimator.Estimate(ctx, mc.Market, mc.Context)
			if err != nil {
				log.Warn().Err(err).Str("market_id", mc.Market.ID).Msg("estimation failed, skipping market")
				continue
			}
			llmCost = llmCost.Add(estimate.Cost)
			pairs = append(pairs, strategy.MarketEstimate{Market: mc.Market, Estimate: estimate})
		}

		result := c.orchestrator.Run(pairs, state)
		selected = result.Selected
		allLog = result.Log
	}

	executed := c.executeSelected(ctx, log, selected)

	costs := accountant.CycleCosts{
		LLMCost:  llmCost,
		DataCost: dataCost,
	}
	report := c.accountant.Reconcile(&state, executed, costs)
	c.applySurvivalPolicy(&state, log)

	if err := c.decisionStore.RecordDecisions(ctx, cycleID, allLog); err != nil {
		log.Error().Err(err).Msg("failed to persist decision log")
	}
	if err := c.decisionStore.RecordCycleReport(ctx, cycleID, report, state.PeakBankroll); err != nil {
		log.Error().Err(err).Msg("failed to persist cycle report")
	}
	if err := c.stateStore.Save(state); err != nil {
		log.Error().Err(err).Msg("failed to persist agent state")
	}

	log.Info().
		Str("status", string(state.Status)).
		Str("bankroll", state.Bankroll.String()).
		Int("trades_executed", executed).
		Msg("cycle complete")
}

// applySurvivalPolicy toggles Alive<->Paused around the configured
// survival threshold. Died, once set by the Accountant's hard
// bankroll<=0 rule, is never reversed here.
func (c *cycleLoop) applySurvivalPolicy(state *domain.AgentState, log zerolog.Logger) {
	if state.Status == domain.StatusDied {
		return
	}
	switch {
	case state.Bankroll.LessThan(c.survivalThreshold) && state.Status != domain.StatusPaused:
		state.Status = domain.StatusPaused
		log.Warn().Str("bankroll", state.Bankroll.String()).Str("threshold", c.survivalThreshold.String()).Msg("bankroll fell below survival threshold, pausing new bets")
	case state.Bankroll.GreaterThanOrEqual(c.survivalThreshold) && state.Status == domain.StatusPaused:
		state.Status = domain.StatusAlive
		log.Info().Msg("bankroll recovered above survival threshold, resuming")
	}
}

// pollResolutions asks the resolution handler for newly settled bets and
// applies each to state out of band from the Accountant.
func (c *cycleLoop) pollResolutions(ctx context.Context, state *domain.AgentState) error {
	events, err := c.resolver.Poll(ctx)
	if err != nil {
		return err
	}
	for _, ev := range events {
		state.RecordResolution(ev.PnL, ev.Won)
	}
	return nil
}

// collectPositions gathers every venue's current open positions so
// RiskManager.Sync can rebuild its exposure counters fresh each cycle;
// those counters are runtime bookkeeping, not persisted state.
func (c *cycleLoop) collectPositions(ctx context.Context, log zerolog.Logger) []domain.Position {
	var all []domain.Position
	for _, v := range c.venues {
		positions, err := v.GetPositions(ctx)
		if err != nil {
			log.Warn().Err(err).Str("venue", v.Name()).Msg("failed to fetch positions")
			continue
		}
		all = append(all, positions...)
	}
	return all
}

// executeSelected places every approved bet against its originating
// venue. A venue PlaceBet failure is logged and skipped, never aborting
// the rest of the batch; platform errors degrade locally.
func (c *cycleLoop) executeSelected(ctx context.Context, log zerolog.Logger, selected []domain.DecisionRecord) int {
	executed := 0
	for _, rec := range selected {
		market := rec.Bet.Edge.Market
		venue := c.venueFor(market.Platform)
		if venue == nil {
			log.Warn().Str("market_id", market.ID).Str("platform", market.Platform).Msg("no venue registered for platform, skipping")
			continue
		}

		receipt, err := venue.PlaceBet(ctx, market.ID, rec.Bet.Edge.Side, rec.AdjustedAmount)
		if err != nil {
			log.Warn().Err(err).Str("market_id", market.ID).Msg("bet placement failed")
			continue
		}

		executed++
		log.Info().
			Str("market_id", market.ID).
			Str("side", string(rec.Bet.Edge.Side)).
			Str("amount", rec.AdjustedAmount.String()).
			Str("receipt_id", receipt.ID).
			Bool("dry_run", receipt.DryRun).
			Msg("bet placed")
	}
	return executed
}

func (c *cycleLoop) venueFor(platformName string) platform.Venue {
	for _, v := range c.venues {
		if v.Name() == platformName {
			return v
		}
	}
	return nil
}
