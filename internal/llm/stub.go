package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

const (
	callTimeout = 120 * time.Second
	maxRetries  = 3
	backoffBase = time.Second
)

// StubEstimator is the illustrative Estimator: it assembles the prompt via
// BuildPrompt, calls a CompletionFunc (a real HTTP client in production,
// a canned string in tests), and parses the reply with ParseCompletion.
// Concrete provider wire formats are out of core scope; the prompt
// assembly and parsing logic around CompletionFunc is what the Strategy
// pipeline actually depends on.
type StubEstimator struct {
	complete CompletionFunc
	log      zerolog.Logger
	sleep    func(time.Duration)
}

// NewStubEstimator builds an Estimator around complete.
func NewStubEstimator(complete CompletionFunc, log zerolog.Logger) *StubEstimator {
	return &StubEstimator{
		complete: complete,
		log:      log.With().Str("component", "llm").Logger(),
		sleep:    time.Sleep,
	}
}

// Estimate assembles the prompt, calls complete with exponential backoff
// (base 1s, cap 3 retries), and parses the response. A timeout or retry
// exhaustion degrades to the echo fallback rather than returning an
// error, so the cycle keeps moving.
func (e *StubEstimator) Estimate(ctx context.Context, market domain.Market, dataCtx domain.DataContext) (domain.Estimate, error) {
	prompt := BuildPrompt(market, dataCtx)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			e.sleep(backoffBase * time.Duration(1<<uint(attempt-1)))
		}

		completion, tokens, cost, err := e.complete(callCtx, prompt)
		if err == nil {
			est := ParseCompletion(completion, market.PriceYes)
			est.TokensUsed = tokens
			est.Cost = decimalFromFloat(cost)
			return est, nil
		}
		lastErr = err
		e.log.Warn().Err(err).Int("attempt", attempt).Str("market_id", market.ID).Msg("llm completion failed")
	}

	e.log.Error().Err(lastErr).Str("market_id", market.ID).Msg("llm retries exhausted, using echo estimate")
	return domain.Estimate{
		Probability: market.PriceYes,
		Confidence:  domain.ClampConfidence(decimalFromFloat(0.1)),
		Reasoning:   fmt.Sprintf("echo fallback: %v", lastErr),
	}, nil
}

// Batch fans Estimate out over every (market, dataCtx) pair, preserving
// order. An individual market's failure never aborts the batch: Estimate
// itself never errors, so Batch's error return is reserved for a
// length-mismatch programming error.
func (e *StubEstimator) Batch(ctx context.Context, markets []domain.Market, dataCtxs []domain.DataContext) ([]domain.Estimate, error) {
	if len(markets) != len(dataCtxs) {
		return nil, fmt.Errorf("llm: markets and dataCtxs length mismatch: %d vs %d", len(markets), len(dataCtxs))
	}

	estimates := make([]domain.Estimate, len(markets))
	for i, market := range markets {
		est, err := e.Estimate(ctx, market, dataCtxs[i])
		if err != nil {
			return nil, fmt.Errorf("llm: estimate market %s: %w", market.ID, err)
		}
		estimates[i] = est
	}
	return estimates, nil
}
