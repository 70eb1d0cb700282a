package dataprovider

import (
	"context"
	"testing"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericProviderDegradesWithoutAPIKey(t *testing.T) {
	p := NewWeatherProvider("", decimal.NewFromFloat(0.01), nil)
	ctx, err := p.FetchContext(context.Background(), domain.Market{Question: "Will it rain in Sydney?"})
	require.NoError(t, err)

	assert.True(t, ctx.Cost.IsZero())
	assert.Contains(t, ctx.Summary, "Sydney")
	assert.Equal(t, domain.CategoryWeather, p.Category())
}

func TestGenericProviderCallsFetchWithAPIKey(t *testing.T) {
	called := false
	fetch := func(_ context.Context, m domain.Market) (map[string]interface{}, string, error) {
		called = true
		return map[string]interface{}{"temp_c": 22.0}, "sunny", nil
	}
	p := NewWeatherProvider("key", decimal.NewFromFloat(0.02), fetch)

	ctx, err := p.FetchContext(context.Background(), domain.Market{Question: "Will it rain?"})
	require.NoError(t, err)

	assert.True(t, called)
	assert.Equal(t, "sunny", ctx.Summary)
	assert.True(t, ctx.Cost.Equal(decimal.NewFromFloat(0.02)))
}
