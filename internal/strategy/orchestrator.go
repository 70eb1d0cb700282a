package strategy

import (
	"sort"

	"github.com/oracle-trading/oracle/internal/domain"
)

// Orchestrator wires EdgeDetector -> KellySizer -> RiskManager and is the
// single entry point the main loop invokes per cycle.
type Orchestrator struct {
	edges *EdgeDetector
	kelly *KellySizer
	risk  *RiskManager
}

// NewOrchestrator builds an Orchestrator from its three stages.
func NewOrchestrator(edges *EdgeDetector, kelly *KellySizer, risk *RiskManager) *Orchestrator {
	return &Orchestrator{edges: edges, kelly: kelly, risk: risk}
}

// Result is one cycle's strategy output: the bets actually approved, and
// the full decision log (selected, Kelly-rejected, and risk-rejected
// entries) for the decision-log store.
type Result struct {
	Selected []domain.DecisionRecord
	Log      []domain.DecisionRecord
}

// Run executes one cycle's decision pipeline. The caller is responsible
// for calling RiskManager.Sync with the venues' current positions before
// Run, since Run itself only resets the per-cycle bet counter.
func (o *Orchestrator) Run(pairs []MarketEstimate, state domain.AgentState) Result {
	o.risk.ResetCycle()

	edges := o.edges.FindEdges(pairs)

	type candidate struct {
		bet domain.SizedBet
	}
	var sized []candidate
	var log []domain.DecisionRecord

	for _, edge := range edges {
		bet, ok := o.kelly.Size(edge, state.Bankroll)
		if !ok {
			log = append(log, domain.NewKellyRejected(edge))
			continue
		}
		sized = append(sized, candidate{bet: bet})
	}

	// Re-sort by expected_value * confidence between Kelly and Risk: scarce
	// exposure budget goes to the highest-ROI bets, not merely the largest
	// raw edges.
	sort.SliceStable(sized, func(i, j int) bool {
		scoreI := sized[i].bet.ExpectedValue.Mul(sized[i].bet.Edge.Estimate.Confidence)
		scoreJ := sized[j].bet.ExpectedValue.Mul(sized[j].bet.Edge.Estimate.Confidence)
		return scoreI.GreaterThan(scoreJ)
	})

	var selected []domain.DecisionRecord
	for _, c := range sized {
		adjusted, reason := o.risk.Approve(c.bet, state)
		if reason != nil {
			log = append(log, domain.NewRiskRejected(c.bet, *reason))
			continue
		}
		o.risk.RecordApproval(c.bet.Edge.Market.Category, adjusted)
		rec := domain.NewSelected(c.bet, adjusted)
		selected = append(selected, rec)
		log = append(log, rec)
	}

	return Result{Selected: selected, Log: log}
}
