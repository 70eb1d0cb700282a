package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BacktestTrade is one simulated trade in a backtest replay.
type BacktestTrade struct {
	MarketID    string
	Category    Category
	Side        Side
	BetAmount   decimal.Decimal
	Won         bool
	PnL         decimal.Decimal
	Return      float64 // PnL / BetAmount, as a plain ratio for Sharpe
	TradeTime   time.Time
}

// BalancePoint is one sample in the backtest's bankroll-over-time
// timeline.
type BalancePoint struct {
	Time    time.Time
	Balance decimal.Decimal
}

// BacktestReport is the output of the backtest replay engine.
type BacktestReport struct {
	InitialBankroll decimal.Decimal
	FinalBankroll   decimal.Decimal
	Trades          []BacktestTrade
	BalanceHistory  []BalancePoint
	MaxDrawdown     decimal.Decimal
	Sharpe          float64
	Brier           float64
	Wins            int
	Losses          int
	Died            bool
}

// CalibrationBucket is one bin of the calibration curve.
type CalibrationBucket struct {
	BinStart       float64
	BinEnd         float64
	MeanPredicted  float64
	ActualRate     float64
	Count          int
	Deviation      float64
}

// CalibrationDiagnosis is the calibrator's qualitative verdict.
type CalibrationDiagnosis string

const (
	DiagnosisOverConfident    CalibrationDiagnosis = "overconfident"
	DiagnosisUnderConfident   CalibrationDiagnosis = "underconfident"
	DiagnosisWellCalibrated   CalibrationDiagnosis = "well_calibrated"
	DiagnosisInsufficientData CalibrationDiagnosis = "insufficient_data"
)

// CalibrationReport is the calibrator's output over an accumulated stream
// of (predicted, resolved) points.
type CalibrationReport struct {
	OverallBrier   float64
	CategoryBrier  map[Category]float64
	Buckets        []CalibrationBucket
	Diagnosis      CalibrationDiagnosis
	TotalPoints    int
}
