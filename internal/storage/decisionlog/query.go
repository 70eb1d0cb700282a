package decisionlog

import (
	"context"
	"fmt"
)

// DecisionSummary is one flattened decisions-table row, shaped for the
// dashboard's JSON responses.
type DecisionSummary struct {
	CycleID        string `json:"cycle_id"`
	RecordedAt     string `json:"recorded_at"`
	Kind           string `json:"kind"`
	MarketID       string `json:"market_id"`
	Category       string `json:"category"`
	Side           string `json:"side"`
	AbsEdge        string `json:"abs_edge"`
	BetAmount      string `json:"bet_amount"`
	AdjustedAmount string `json:"adjusted_amount"`
	ExpectedValue  string `json:"expected_value"`
	RejectionKind  string `json:"rejection_kind,omitempty"`
}

// CycleReportSummary is one cycle_reports-table row, shaped for the
// dashboard's JSON responses.
type CycleReportSummary struct {
	CycleID        string `json:"cycle_id"`
	RecordedAt     string `json:"recorded_at"`
	Bankroll       string `json:"bankroll"`
	PeakBankroll   string `json:"peak_bankroll"`
	TradesExecuted int    `json:"trades_executed"`
	TotalCosts     string `json:"total_costs"`
}

// RecentDecisions returns the most recently recorded decisions, newest
// first, capped at limit.
func (s *Store) RecentDecisions(ctx context.Context, limit int) ([]DecisionSummary, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT cycle_id, recorded_at, kind, market_id, category, side,
		       abs_edge, bet_amount, adjusted_amount, expected_value, rejection_kind
		FROM decisions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("decisionlog: query recent decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionSummary
	for rows.Next() {
		var d DecisionSummary
		if err := rows.Scan(&d.CycleID, &d.RecordedAt, &d.Kind, &d.MarketID, &d.Category, &d.Side,
			&d.AbsEdge, &d.BetAmount, &d.AdjustedAmount, &d.ExpectedValue, &d.RejectionKind); err != nil {
			return nil, fmt.Errorf("decisionlog: scan decision row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RecentCycleReports returns the most recently recorded cycle reports,
// newest first, capped at limit.
func (s *Store) RecentCycleReports(ctx context.Context, limit int) ([]CycleReportSummary, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT cycle_id, recorded_at, bankroll, peak_bankroll, trades_executed, total_costs
		FROM cycle_reports
		ORDER BY recorded_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("decisionlog: query recent cycle reports: %w", err)
	}
	defer rows.Close()

	var out []CycleReportSummary
	for rows.Next() {
		var c CycleReportSummary
		if err := rows.Scan(&c.CycleID, &c.RecordedAt, &c.Bankroll, &c.PeakBankroll, &c.TradesExecuted, &c.TotalCosts); err != nil {
			return nil, fmt.Errorf("decisionlog: scan cycle report row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
