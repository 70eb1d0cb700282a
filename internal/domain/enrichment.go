package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataContext is the enrichment bundle attached to a Market before the LLM
// estimator is invoked. RawData is deliberately an opaque JSON-shaped value
// rather than a typed struct: the set of providers is closed at build time,
// but each provider's payload shape differs and only the provider itself
// needs to interpret it. Summary is the prompt-ready distillation every
// Estimator actually reads.
type DataContext struct {
	Category  Category
	RawData   map[string]interface{}
	Summary   string
	Freshness time.Time
	Source    string
	Cost      decimal.Decimal
	CrossRefs CrossReferences
}

// EmptyDataContext is what the Enricher hands back when a provider call
// fails; it keeps the pipeline moving with a zero-cost, zero-signal
// context rather than failing the whole batch.
func EmptyDataContext(category Category) DataContext {
	return DataContext{
		Category: category,
		RawData:  map[string]interface{}{},
		Summary:  "no enrichment data available",
		Source:   "none",
		Cost:     decimal.Zero,
	}
}

// Clone returns a deep-enough copy of d suitable for sharing across
// markets that hit the same cache entry: the RawData map and Summary are
// shared (read-only after creation) but CrossRefs is the caller's own zero
// value, to be overwritten with the market-specific snapshot.
func (d DataContext) Clone() DataContext {
	clone := d
	clone.CrossRefs = CrossReferences{}
	return clone
}

// Estimate is the LLM's calibrated output for one market.
type Estimate struct {
	Probability decimal.Decimal // clamped into [0.01, 0.99]
	Confidence  decimal.Decimal // clamped into [0.1, 0.99]
	Reasoning   string
	TokensUsed  int
	Cost        decimal.Decimal
}

var (
	minProbability = decimal.NewFromFloat(0.01)
	maxProbability = decimal.NewFromFloat(0.99)
	minConfidence  = decimal.NewFromFloat(0.1)
	maxConfidence  = decimal.NewFromFloat(0.99)
)

// ClampProbability clamps p into the valid estimate-probability bounds.
func ClampProbability(p decimal.Decimal) decimal.Decimal {
	return clampDecimal(p, minProbability, maxProbability)
}

// ClampConfidence clamps c into the valid estimate-confidence bounds.
func ClampConfidence(c decimal.Decimal) decimal.Decimal {
	return clampDecimal(c, minConfidence, maxConfidence)
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
