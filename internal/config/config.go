// Package config loads ORACLE's declarative configuration file and
// resolves API-key environment variables by name: a single load step at
// startup, environment variables read by name rather than hard-coded, and
// a hard failure for anything mandatory that's missing.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AgentConfig is the `agent` group of oracle.yaml.
type AgentConfig struct {
	Name              string `yaml:"name"`
	ScanIntervalSecs  int    `yaml:"scan_interval_secs"`
	InitialBankroll   string `yaml:"initial_bankroll"`
	SurvivalThreshold string `yaml:"survival_threshold"`
	Currency          string `yaml:"currency"`
	LogLevel          string `yaml:"log_level"`
}

// LLMConfig is the `llm` group.
type LLMConfig struct {
	Provider      string `yaml:"provider"` // anthropic | openrouter | openai
	Model         string `yaml:"model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	MaxTokens     int    `yaml:"max_tokens"`
	BatchSize     int    `yaml:"batch_size"`
	FallbackModel string `yaml:"fallback_model,omitempty"`
}

// PlatformConfig is one venue's block under `platforms`.
type PlatformConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// RiskConfig is the `risk` group: thresholds consumed by the Strategy
// pipeline (edge detector, Kelly sizer, risk manager).
type RiskConfig struct {
	MispricingThreshold   string            `yaml:"mispricing_threshold"`
	KellyMultiplier       string            `yaml:"kelly_multiplier"`
	MaxBetPct             string            `yaml:"max_bet_pct"`
	MaxExposurePct        string            `yaml:"max_exposure_pct"`
	MaxCategoryExposurePct string           `yaml:"max_category_exposure_pct"`
	MinLiquidityContracts string            `yaml:"min_liquidity_contracts"`
	MinBetSize            string            `yaml:"min_bet_size"`
	CommissionPerTrade    string            `yaml:"commission_per_trade"`
	MaxPositions          int               `yaml:"max_positions"`
	MaxBetsPerCycle       int               `yaml:"max_bets_per_cycle"`
	DrawdownWarning       string            `yaml:"drawdown_warning"`
	DrawdownHalt          string            `yaml:"drawdown_halt"`
	CategoryThresholds    map[string]string `yaml:"category_thresholds"`
}

// DataSourceConfig is one provider's block under `data_sources`.
type DataSourceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// BackupConfig controls the optional off-box state-file backup.
type BackupConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Bucket   string `yaml:"bucket,omitempty"`
	Schedule string `yaml:"schedule,omitempty"` // cron expression
}

// DashboardConfig is the `dashboard` group.
type DashboardConfig struct {
	Enabled bool         `yaml:"enabled"`
	Port    int          `yaml:"port"`
	Backup  BackupConfig `yaml:"backup,omitempty"`
}

// AlertsConfig is the optional `alerts` group.
type AlertsConfig struct {
	TelegramTokenEnv  string `yaml:"telegram_token_env,omitempty"`
	TelegramChatIDEnv string `yaml:"telegram_chat_id_env,omitempty"`
}

// Config is the fully parsed oracle.yaml, with API keys resolved from the
// environment variables it names.
type Config struct {
	Agent       AgentConfig                 `yaml:"agent"`
	LLM         LLMConfig                   `yaml:"llm"`
	Platforms   map[string]PlatformConfig   `yaml:"platforms"`
	Risk        RiskConfig                  `yaml:"risk"`
	DataSources map[string]DataSourceConfig `yaml:"data_sources"`
	Dashboard   DashboardConfig             `yaml:"dashboard"`
	Alerts      *AlertsConfig               `yaml:"alerts,omitempty"`

	// Resolved secrets, populated by resolveSecrets. Never serialized.
	LLMAPIKey         string            `yaml:"-"`
	PlatformAPIKeys   map[string]string `yaml:"-"`
	DataSourceAPIKeys map[string]string `yaml:"-"`
}

// Load reads and parses the YAML configuration file at path, then
// resolves every referenced API key from the environment (loading a
// sibling .env file first, if present). A missing mandatory key is a
// fatal startup error; a missing optional data-source key is left empty
// so the caller can degrade to a keyword-only provider.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // best-effort; absence of .env is not an error

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Agent.LogLevel == "" {
		cfg.Agent.LogLevel = "info"
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveSecrets looks up every api_key_env reference against the process
// environment. The LLM key is mandatory; a per-venue key is mandatory
// only when that venue is enabled. Data-source keys are optional: an
// unset one resolves to an empty string instead of an error.
func (c *Config) resolveSecrets() error {
	if c.LLM.APIKeyEnv == "" {
		return fmt.Errorf("config: llm.api_key_env is required")
	}
	key := os.Getenv(c.LLM.APIKeyEnv)
	if key == "" {
		return fmt.Errorf("config: required environment variable %q for llm provider %q is not set", c.LLM.APIKeyEnv, c.LLM.Provider)
	}
	c.LLMAPIKey = key

	c.PlatformAPIKeys = make(map[string]string, len(c.Platforms))
	for name, p := range c.Platforms {
		if !p.Enabled || p.APIKeyEnv == "" {
			continue
		}
		v := os.Getenv(p.APIKeyEnv)
		if v == "" {
			return fmt.Errorf("config: required environment variable %q for platform %q is not set", p.APIKeyEnv, name)
		}
		c.PlatformAPIKeys[name] = v
	}

	c.DataSourceAPIKeys = make(map[string]string, len(c.DataSources))
	for name, d := range c.DataSources {
		if !d.Enabled || d.APIKeyEnv == "" {
			continue
		}
		// Data-source keys degrade cleanly: a missing optional key just
		// means that provider falls back to a keyword-only summary.
		c.DataSourceAPIKeys[name] = os.Getenv(d.APIKeyEnv)
	}

	return nil
}
