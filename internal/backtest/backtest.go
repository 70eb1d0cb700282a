// Package backtest implements a deterministic replay engine: the
// identical Kelly + Risk logic as live execution, run against resolved
// historical markets, to keep backtests honest.
package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/strategy"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ResolvedMarket is one historical record with a known outcome.
type ResolvedMarket struct {
	Market      domain.Market
	Estimate    domain.Estimate
	ResolvedYes bool
	TradeTime   time.Time
}

// Engine replays resolved markets through the live strategy logic.
type Engine struct {
	edgeCfg  strategy.EdgeConfig
	kellyCfg strategy.KellyConfig
	riskCfg  strategy.RiskConfig
	log      zerolog.Logger
}

// NewEngine builds a replay Engine from the same three configs the live
// Orchestrator uses.
func NewEngine(edgeCfg strategy.EdgeConfig, kellyCfg strategy.KellyConfig, riskCfg strategy.RiskConfig, log zerolog.Logger) *Engine {
	return &Engine{edgeCfg: edgeCfg, kellyCfg: kellyCfg, riskCfg: riskCfg, log: log.With().Str("component", "backtest").Logger()}
}

// Run replays markets in trade_time order against initialBankroll,
// halting the moment the simulated bankroll reaches zero.
func (e *Engine) Run(markets []ResolvedMarket, initialBankroll decimal.Decimal) domain.BacktestReport {
	ordered := make([]ResolvedMarket, len(markets))
	copy(ordered, markets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].TradeTime.Before(ordered[j].TradeTime) })

	kelly := strategy.NewKellySizer(e.kellyCfg)
	risk := strategy.NewRiskManager(e.riskCfg, e.log)

	bankroll := initialBankroll
	peak := initialBankroll
	maxDrawdown := decimal.Zero

	var trades []domain.BacktestTrade
	var balanceHistory []domain.BalancePoint
	var returns []float64
	var sqErrSum float64
	wins, losses := 0, 0
	died := false

	for _, rm := range ordered {
		// Each resolved market is an independent trade that settles
		// immediately, unlike a live position that stays open across
		// cycles: give it a clean risk slate rather than letting prior
		// trades' exposure accumulate for the life of the whole replay.
		risk.Sync(nil)
		risk.ResetCycle()

		outcome := 0.0
		if rm.ResolvedYes {
			outcome = 1.0
		}
		estimateFloat, _ := rm.Estimate.Probability.Float64()
		sqErrSum += (estimateFloat - outcome) * (estimateFloat - outcome)

		threshold := e.edgeCfg.CategoryThresholds[rm.Market.Category]
		if threshold.IsZero() {
			threshold = e.edgeCfg.CategoryThresholds[domain.CategoryOther]
		}

		signed := rm.Estimate.Probability.Sub(rm.Market.PriceYes)
		absEdge := signed.Abs()
		if absEdge.LessThan(threshold) {
			continue
		}

		side := domain.SideNo
		if signed.GreaterThan(decimal.Zero) {
			side = domain.SideYes
		}
		edge := domain.Edge{Market: rm.Market, Estimate: rm.Estimate, Side: side, AbsEdge: absEdge, SignedEdge: signed}

		bet, ok := kelly.Size(edge, bankroll)
		if !ok {
			continue
		}

		state := domain.AgentState{Bankroll: bankroll, PeakBankroll: peak, Status: domain.StatusAlive}
		adjusted, reason := risk.Approve(bet, state)
		if reason != nil {
			continue
		}
		risk.RecordApproval(rm.Market.Category, adjusted)

		payoutRatio, ok := kelly.PayoutRatio(edge, bankroll)
		if !ok {
			continue
		}

		won := (side == domain.SideYes) == rm.ResolvedYes

		var pnl decimal.Decimal
		if won {
			pnl = adjusted.Mul(payoutRatio)
			wins++
		} else {
			pnl = adjusted.Neg()
			losses++
		}

		bankroll = bankroll.Add(pnl)
		if bankroll.GreaterThan(peak) {
			peak = bankroll
		}
		if peak.GreaterThan(decimal.Zero) {
			dd := decimal.NewFromInt(1).Sub(bankroll.Div(peak))
			if dd.GreaterThan(maxDrawdown) {
				maxDrawdown = dd
			}
		}

		retRatio, _ := pnl.Div(adjusted).Float64()
		returns = append(returns, retRatio)

		trades = append(trades, domain.BacktestTrade{
			MarketID:  rm.Market.ID,
			Category:  rm.Market.Category,
			Side:      side,
			BetAmount: adjusted,
			Won:       won,
			PnL:       pnl,
			Return:    retRatio,
			TradeTime: rm.TradeTime,
		})
		balanceHistory = append(balanceHistory, domain.BalancePoint{Time: rm.TradeTime, Balance: bankroll})

		if bankroll.LessThanOrEqual(decimal.Zero) {
			died = true
			break
		}
	}

	n := len(ordered)
	brier := 0.0
	if n > 0 {
		brier = sqErrSum / float64(n)
	}

	return domain.BacktestReport{
		InitialBankroll: initialBankroll,
		FinalBankroll:   bankroll,
		Trades:          trades,
		BalanceHistory:  balanceHistory,
		MaxDrawdown:     maxDrawdown,
		Sharpe:          sharpe(returns),
		Brier:           brier,
		Wins:            wins,
		Losses:          losses,
		Died:            died,
	}
}

// sharpe computes the annualised Sharpe ratio across a trade-return
// sequence: mean/stdev * sqrt(250*24), or 0 with fewer than two returns or
// zero variance.
func sharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := stat.Mean(returns, nil)
	stdDev := stat.StdDev(returns, nil)
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(250*24)
}
