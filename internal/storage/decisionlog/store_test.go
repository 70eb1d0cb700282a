package decisionlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "decisions.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sizedBet(marketID string) domain.SizedBet {
	return domain.SizedBet{
		Edge: domain.Edge{
			Market:  domain.Market{ID: marketID, Category: domain.CategorySports},
			Side:    domain.SideYes,
			AbsEdge: decimal.NewFromFloat(0.1),
		},
		BetAmount:     decimal.NewFromFloat(25),
		ExpectedValue: decimal.NewFromFloat(2.5),
	}
}

func TestRecordDecisionsPersistsAllThreeKinds(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	records := []domain.DecisionRecord{
		domain.NewSelected(sizedBet("m1"), decimal.NewFromFloat(25)),
		domain.NewKellyRejected(domain.Edge{Market: domain.Market{ID: "m2", Category: domain.CategorySports}, Side: domain.SideNo, AbsEdge: decimal.NewFromFloat(0.02)}),
		domain.NewRiskRejected(sizedBet("m3"), domain.RejectionReason{Kind: domain.RejectionMaxPositionsReached, Current: 10, Limit: 10}),
	}

	require.NoError(t, store.RecordDecisions(context.Background(), "cycle-1", records))

	selectedCount, err := store.CountByKind(context.Background(), "cycle-1", domain.DecisionSelected)
	require.NoError(t, err)
	assert.Equal(t, 1, selectedCount)

	rejectedCount, err := store.CountByKind(context.Background(), "cycle-1", domain.DecisionRiskRejected)
	require.NoError(t, err)
	assert.Equal(t, 1, rejectedCount)
}

func TestRecordDecisionsScopesCountByCycle(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.RecordDecisions(context.Background(), "cycle-1", []domain.DecisionRecord{
		domain.NewSelected(sizedBet("m1"), decimal.NewFromFloat(25)),
	}))
	require.NoError(t, store.RecordDecisions(context.Background(), "cycle-2", []domain.DecisionRecord{}))

	count, err := store.CountByKind(context.Background(), "cycle-2", domain.DecisionSelected)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecordCycleReportUpsertsOnConflict(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	store.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	report := domain.CycleReport{
		BankrollAfter:  decimal.NewFromFloat(1000),
		TradesExecuted: 2,
		APICost:        decimal.NewFromFloat(1),
		IBCommissions:  decimal.NewFromFloat(0.5),
	}
	require.NoError(t, store.RecordCycleReport(context.Background(), "cycle-1", report, decimal.NewFromFloat(1100)))

	report.TradesExecuted = 3
	require.NoError(t, store.RecordCycleReport(context.Background(), "cycle-1", report, decimal.NewFromFloat(1100)))

	var trades int
	require.NoError(t, db.conn.QueryRow(`SELECT trades_executed FROM cycle_reports WHERE cycle_id = ?`, "cycle-1").Scan(&trades))
	assert.Equal(t, 3, trades)
}

func TestHealthCheckPassesOnFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background()))
}
