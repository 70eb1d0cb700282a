package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
agent:
  name: oracle-dev
  scan_interval_secs: 300
  initial_bankroll: "1000"
  survival_threshold: "10"
  currency: USD
  log_level: debug
llm:
  provider: anthropic
  model: claude-sonnet
  api_key_env: ORACLE_TEST_LLM_KEY
  max_tokens: 1024
  batch_size: 5
platforms:
  manifold:
    enabled: true
    api_key_env: ORACLE_TEST_MANIFOLD_KEY
  metaculus:
    enabled: true
risk:
  mispricing_threshold: "0.03"
  kelly_multiplier: "0.25"
  max_bet_pct: "0.06"
  max_exposure_pct: "0.60"
  max_category_exposure_pct: "0.25"
  min_liquidity_contracts: "5"
  min_bet_size: "1.0"
  commission_per_trade: "0.50"
  max_positions: 20
  max_bets_per_cycle: 5
  drawdown_warning: "0.20"
  drawdown_halt: "0.40"
  category_thresholds:
    weather: "0.06"
    sports: "0.08"
data_sources:
  open_meteo:
    enabled: true
dashboard:
  enabled: true
  port: 8080
`

func writeTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "oracle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadResolvesRequiredSecrets(t *testing.T) {
	path := writeTempConfig(t)
	t.Setenv("ORACLE_TEST_LLM_KEY", "llm-secret")
	t.Setenv("ORACLE_TEST_MANIFOLD_KEY", "manifold-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "llm-secret", cfg.LLMAPIKey)
	assert.Equal(t, "manifold-secret", cfg.PlatformAPIKeys["manifold"])
	assert.Equal(t, 300, cfg.Agent.ScanIntervalSecs)
}

func TestLoadFailsOnMissingMandatoryKey(t *testing.T) {
	path := writeTempConfig(t)
	t.Setenv("ORACLE_TEST_LLM_KEY", "")

	_, err := Load(path)
	require.Error(t, err)
}

func TestCategoryThresholdsParsesDecimals(t *testing.T) {
	path := writeTempConfig(t)
	t.Setenv("ORACLE_TEST_LLM_KEY", "llm-secret")
	t.Setenv("ORACLE_TEST_MANIFOLD_KEY", "manifold-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	thresholds, err := cfg.Risk.CategoryThresholds()
	require.NoError(t, err)
	assert.True(t, thresholds["weather"].Equal(decimal.NewFromFloat(0.06)))
}
