package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubEstimatorEstimateParsesCompletion(t *testing.T) {
	complete := func(_ context.Context, prompt string) (string, int, float64, error) {
		assert.Contains(t, prompt, "Estimate the true probability")
		return "PROBABILITY: 0.66\nCONFIDENCE: 0.80\n", 120, 0.002, nil
	}
	e := NewStubEstimator(complete, zerolog.Nop())
	e.sleep = func(time.Duration) {}

	market := domain.Market{ID: "m1", Question: "Will it rain?", PriceYes: decimal.NewFromFloat(0.5)}
	est, err := e.Estimate(context.Background(), market, domain.EmptyDataContext(domain.CategoryWeather))

	require.NoError(t, err)
	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.66)))
	assert.Equal(t, 120, est.TokensUsed)
}

func TestStubEstimatorRetriesThenEchoesOnExhaustion(t *testing.T) {
	calls := 0
	complete := func(_ context.Context, prompt string) (string, int, float64, error) {
		calls++
		return "", 0, 0, errors.New("transport error")
	}
	e := NewStubEstimator(complete, zerolog.Nop())
	e.sleep = func(time.Duration) {}

	market := domain.Market{ID: "m1", PriceYes: decimal.NewFromFloat(0.42)}
	est, err := e.Estimate(context.Background(), market, domain.EmptyDataContext(domain.CategoryOther))

	require.NoError(t, err)
	assert.Equal(t, maxRetries+1, calls)
	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.42)))
	assert.Contains(t, est.Reasoning, "echo fallback")
}

func TestBatchPreservesOrderAndRejectsLengthMismatch(t *testing.T) {
	complete := func(_ context.Context, prompt string) (string, int, float64, error) {
		return "PROBABILITY: 0.50\nCONFIDENCE: 0.50\n", 10, 0.001, nil
	}
	e := NewStubEstimator(complete, zerolog.Nop())
	e.sleep = func(time.Duration) {}

	markets := []domain.Market{{ID: "m1"}, {ID: "m2"}}
	dataCtxs := []domain.DataContext{domain.EmptyDataContext(domain.CategorySports)}

	_, err := e.Batch(context.Background(), markets, dataCtxs)
	assert.Error(t, err)

	estimates, err := e.Batch(context.Background(), markets, []domain.DataContext{
		domain.EmptyDataContext(domain.CategorySports), domain.EmptyDataContext(domain.CategorySports),
	})
	require.NoError(t, err)
	assert.Len(t, estimates, 2)
}
