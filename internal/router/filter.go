package router

import (
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
)

// FilterConfig bounds what survives into the scan's output.
type FilterConfig struct {
	MinLiquidity decimal.Decimal
	MinPriceYes  decimal.Decimal
	MaxPriceYes  decimal.Decimal
	MinHours     float64
	MaxHours     float64
}

// DefaultFilterConfig returns the spec-documented defaults: liquidity >= 5,
// price_yes in [0.02, 0.98], hours_to_deadline in [1, 365*24].
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinLiquidity: decimal.NewFromInt(5),
		MinPriceYes:  decimal.NewFromFloat(0.02),
		MaxPriceYes:  decimal.NewFromFloat(0.98),
		MinHours:     1,
		MaxHours:     365 * 24,
	}
}

// filterMarkets drops markets outside the liquidity/price/deadline bounds.
func filterMarkets(markets []domain.Market, cfg FilterConfig, now time.Time) []domain.Market {
	out := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if m.Liquidity.LessThan(cfg.MinLiquidity) {
			continue
		}
		if m.PriceYes.LessThan(cfg.MinPriceYes) || m.PriceYes.GreaterThan(cfg.MaxPriceYes) {
			continue
		}
		hours := m.HoursToDeadline(now)
		if hours < cfg.MinHours || hours > cfg.MaxHours {
			continue
		}
		out = append(out, m)
	}
	return out
}
