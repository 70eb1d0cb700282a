package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses one of the config's string-typed numeric fields into
// a decimal.Decimal. Numeric config values are stored as YAML strings
// (rather than float64) so that values like "0.03" round-trip exactly
// instead of picking up binary-float noise before they ever reach the
// Kelly sizer or risk manager.
func ParseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: invalid decimal for %s: %q: %w", field, value, err)
	}
	return d, nil
}

// CategoryThresholds parses the risk.category_thresholds map into
// decimal.Decimal values keyed by the raw category string.
func (r RiskConfig) CategoryThresholds() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(r.CategoryThresholds))
	for cat, raw := range r.CategoryThresholds {
		d, err := ParseDecimal("risk.category_thresholds."+cat, raw)
		if err != nil {
			return nil, err
		}
		out[cat] = d
	}
	return out, nil
}
