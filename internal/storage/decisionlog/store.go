package decisionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// Store records per-cycle decisions and cycle reports into the decision
// log database.
type Store struct {
	db  *DB
	now func() time.Time
}

// NewStore builds a Store over an already-open DB.
func NewStore(db *DB) *Store {
	return &Store{db: db, now: time.Now}
}

// RecordDecisions persists every DecisionRecord from one cycle, tagged
// with cycleID.
func (s *Store) RecordDecisions(ctx context.Context, cycleID string, records []domain.DecisionRecord) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("decisionlog: begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO decisions (
			cycle_id, recorded_at, kind, market_id, category, side,
			abs_edge, bet_amount, adjusted_amount, expected_value,
			rejection_kind, rejection_detail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("decisionlog: prepare: %w", err)
	}
	defer stmt.Close()

	recordedAt := s.now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		row := rowOf(rec)
		if _, err := stmt.ExecContext(ctx,
			cycleID, recordedAt, string(rec.Kind), row.marketID, string(row.category), string(row.side),
			row.absEdge, row.betAmount, row.adjustedAmount, row.expectedValue,
			row.rejectionKind, row.rejectionDetail,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("decisionlog: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("decisionlog: commit: %w", err)
	}
	return nil
}

// RecordCycleReport persists a CycleReport's bankroll snapshot alongside
// the state's peak bankroll, tagged with cycleID.
func (s *Store) RecordCycleReport(ctx context.Context, cycleID string, report domain.CycleReport, peakBankroll decimal.Decimal) error {
	totalCosts := report.APICost.Add(report.IBCommissions)
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO cycle_reports (cycle_id, recorded_at, bankroll, peak_bankroll, trades_executed, total_costs)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cycle_id) DO UPDATE SET
			bankroll = excluded.bankroll,
			peak_bankroll = excluded.peak_bankroll,
			trades_executed = excluded.trades_executed,
			total_costs = excluded.total_costs
	`, cycleID, s.now().UTC().Format(time.RFC3339), report.BankrollAfter.String(), peakBankroll.String(),
		report.TradesExecuted, totalCosts.String())
	if err != nil {
		return fmt.Errorf("decisionlog: record cycle report: %w", err)
	}
	return nil
}

// decisionRow is the flattened tagged-union shape the decisions table
// stores one DecisionRecord as.
type decisionRow struct {
	marketID        string
	category        domain.Category
	side            domain.Side
	absEdge         string
	betAmount       string
	adjustedAmount  string
	expectedValue   string
	rejectionKind   string
	rejectionDetail string
}

func rowOf(rec domain.DecisionRecord) decisionRow {
	switch rec.Kind {
	case domain.DecisionSelected:
		return decisionRow{
			marketID:       rec.Bet.Edge.Market.ID,
			category:       rec.Bet.Edge.Market.Category,
			side:           rec.Bet.Edge.Side,
			absEdge:        rec.Bet.Edge.AbsEdge.String(),
			betAmount:      rec.Bet.BetAmount.String(),
			adjustedAmount: rec.AdjustedAmount.String(),
			expectedValue:  rec.Bet.ExpectedValue.String(),
		}
	case domain.DecisionKellyRejected:
		return decisionRow{
			marketID: rec.RejectedEdge.Market.ID,
			category: rec.RejectedEdge.Market.Category,
			side:     rec.RejectedEdge.Side,
			absEdge:  rec.RejectedEdge.AbsEdge.String(),
		}
	case domain.DecisionRiskRejected:
		return decisionRow{
			marketID:        rec.RiskRejectedBet.Edge.Market.ID,
			category:        rec.RiskRejectedBet.Edge.Market.Category,
			side:            rec.RiskRejectedBet.Edge.Side,
			absEdge:         rec.RiskRejectedBet.Edge.AbsEdge.String(),
			betAmount:       rec.RiskRejectedBet.BetAmount.String(),
			expectedValue:   rec.RiskRejectedBet.ExpectedValue.String(),
			rejectionKind:   string(rec.Reason.Kind),
			rejectionDetail: rec.Reason.Detail,
		}
	default:
		return decisionRow{}
	}
}

// CountByKind returns how many decisions of a given kind are logged for
// cycleID.
func (s *Store) CountByKind(ctx context.Context, cycleID string, kind domain.DecisionKind) (int, error) {
	var count int
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM decisions WHERE cycle_id = ? AND kind = ?`, cycleID, string(kind),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("decisionlog: count by kind: %w", err)
	}
	return count, nil
}
