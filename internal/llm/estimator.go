// Package llm implements the LLM Estimator capability: a
// provider-agnostic Estimate(market, dataContext) → Estimate contract, the
// prompt template that feeds it, and the response-parsing recovery chain.
// Concrete provider wire formats (Anthropic/OpenAI/OpenRouter) are out of
// core scope; CompletionFunc lets a real HTTP client be swapped in without
// touching prompt assembly or parsing.
package llm

import (
	"context"

	"github.com/oracle-trading/oracle/internal/domain"
)

// Estimator produces a calibrated probability estimate for one market given
// its enrichment context.
type Estimator interface {
	Estimate(ctx context.Context, market domain.Market, dataCtx domain.DataContext) (domain.Estimate, error)
	Batch(ctx context.Context, markets []domain.Market, dataCtxs []domain.DataContext) ([]domain.Estimate, error)
}

// CompletionFunc is the shape of a real provider call: given the assembled
// prompt, return the raw completion text, tokens used, and dollar cost.
type CompletionFunc func(ctx context.Context, prompt string) (completion string, tokensUsed int, cost float64, err error)
