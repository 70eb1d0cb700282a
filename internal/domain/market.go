// Package domain holds the entities and value types shared by every layer
// of ORACLE's decision pipeline. Types here are immutable where the
// pipeline allows it; the only place a Market is intentionally mutated in
// place is CrossReferences, which the Router attaches during cross-venue
// matching.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrossReferences is a weak back-reference: a probability/count snapshot
// attached to a Market because the Router found the same event, fuzzy
// matched, on another venue. It records a relation, never ownership, and
// carries no pointer back to the other venue's Market.
type CrossReferences struct {
	MetaculusProb        *decimal.Decimal
	MetaculusForecasters  *int
	ManifoldProb          *decimal.Decimal
	ForecastexPrice       *decimal.Decimal
}

// HasAny reports whether at least one cross-reference snapshot is present.
func (c CrossReferences) HasAny() bool {
	return c.MetaculusProb != nil || c.ManifoldProb != nil || c.ForecastexPrice != nil
}

// Market is a single binary question on one venue.
type Market struct {
	ID                 string // venue-unique
	Platform            string
	Question            string
	Description         string
	Category            Category
	PriceYes            decimal.Decimal // in [0,1]
	PriceNo             decimal.Decimal // in [0,1]; not required to sum to 1 with PriceYes
	Volume24h           decimal.Decimal
	Liquidity           decimal.Decimal
	Created             time.Time
	Deadline            time.Time
	ResolutionCriteria  string
	URL                 string
	Forecasters         *int // Metaculus-only: number of community forecasters
	CrossRefs           CrossReferences
}

// HoursToDeadline returns the number of hours between now and the market's
// resolution instant. Negative values mean the deadline has already passed.
func (m Market) HoursToDeadline(now time.Time) float64 {
	return m.Deadline.Sub(now).Hours()
}

// Valid enforces this market's structural invariants: price_yes in
// [0,1], deadline strictly after created, and a recognised category.
func (m Market) Valid() bool {
	if m.PriceYes.LessThan(decimal.Zero) || m.PriceYes.GreaterThan(decimal.NewFromInt(1)) {
		return false
	}
	if !m.Deadline.After(m.Created) {
		return false
	}
	return ValidCategory(m.Category)
}
