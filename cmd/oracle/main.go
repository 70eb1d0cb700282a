// Package main is the entry point for ORACLE, an autonomous trading agent
// for binary prediction markets. It wires configuration, storage, venues,
// data providers, the LLM estimator, and the decision pipeline, then runs
// the main cycle loop on a fixed ticker until a shutdown signal arrives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oracle-trading/oracle/internal/accountant"
	"github.com/oracle-trading/oracle/internal/config"
	"github.com/oracle-trading/oracle/internal/dataprovider"
	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/oracle-trading/oracle/internal/enricher"
	"github.com/oracle-trading/oracle/internal/llm"
	"github.com/oracle-trading/oracle/internal/logging"
	"github.com/oracle-trading/oracle/internal/platform"
	"github.com/oracle-trading/oracle/internal/resolution"
	"github.com/oracle-trading/oracle/internal/router"
	"github.com/oracle-trading/oracle/internal/scheduler"
	"github.com/oracle-trading/oracle/internal/server"
	"github.com/oracle-trading/oracle/internal/storage"
	"github.com/oracle-trading/oracle/internal/storage/backup"
	"github.com/oracle-trading/oracle/internal/storage/decisionlog"
	"github.com/oracle-trading/oracle/internal/strategy"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Illustrative per-call costs for enrichment providers. No config key
// covers these; real pricing would come from the provider's billing
// plan, not agent configuration.
var (
	weatherCostPerCall   = decimal.NewFromFloat(0.001)
	sportsCostPerCall    = decimal.NewFromFloat(0.001)
	economicsCostPerCall = decimal.NewFromFloat(0.002)
	newsCostPerCall      = decimal.NewFromFloat(0.001)
)

func main() {
	configPath := getEnv("ORACLE_CONFIG", "oracle.yaml")

	cfg, err := config.Load(configPath)
	if err != nil {
		fallback := logging.New(logging.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	log := logging.New(logging.FromEnv(cfg.Agent.LogLevel))
	logging.SetGlobalLogger(log)
	log.Info().Str("agent", cfg.Agent.Name).Msg("starting oracle")

	initialBankroll, err := config.ParseDecimal("agent.initial_bankroll", cfg.Agent.InitialBankroll)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid initial bankroll")
	}
	survivalThreshold, err := config.ParseDecimal("agent.survival_threshold", cfg.Agent.SurvivalThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid survival threshold")
	}

	dataDir := getEnv("ORACLE_DATA_DIR", ".")

	stateStore, err := storage.LoadOrCreate(dataDir+"/agent_state.json", func() domain.AgentState {
		return domain.NewAgentState(initialBankroll, time.Now())
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load agent state")
	}

	decisionDB, err := decisionlog.Open(decisionlog.Config{Path: dataDir + "/decisions.db"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open decision log")
	}
	defer decisionDB.Close()
	decisionStore := decisionlog.NewStore(decisionDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backupSvc, err := backup.New(ctx, backup.Config{
		Enabled:         cfg.Dashboard.Backup.Enabled,
		Bucket:          cfg.Dashboard.Backup.Bucket,
		Endpoint:        os.Getenv("ORACLE_BACKUP_ENDPOINT"),
		Region:          getEnv("ORACLE_BACKUP_REGION", "auto"),
		AccessKeyID:     os.Getenv("ORACLE_BACKUP_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("ORACLE_BACKUP_SECRET_ACCESS_KEY"),
		StagingDir:      dataDir,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init backup service")
	}

	venues := buildVenues(cfg, initialBankroll)
	providers := buildProviders(cfg)
	orchestrator, riskManager := buildStrategy(cfg, log)

	rt := router.New(venues, buildFilterConfig(cfg, log), log)
	enrich := enricher.New(providers, log)
	estimator := llm.NewStubEstimator(echoCompletion, log)
	acct := accountant.New()
	resolver := resolution.NewStubHandler()

	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Dashboard.Port,
		DevMode:     getEnv("ORACLE_ENV", "production") != "production",
		State:       stateStore,
		DecisionLog: decisionStore,
	})

	sched := scheduler.New(log)
	if err := sched.AddJob("@every 10m", scheduler.NewCacheEvictionJob(enrich)); err != nil {
		log.Fatal().Err(err).Msg("failed to register cache eviction job")
	}
	if cfg.Dashboard.Backup.Enabled {
		backupJob := scheduler.NewBackupJob(backupAdapter{
			svc:             backupSvc,
			ctx:             ctx,
			statePath:       dataDir + "/agent_state.json",
			decisionLogPath: decisionDB.Path(),
		})
		schedule := cfg.Dashboard.Backup.Schedule
		if schedule == "" {
			schedule = "@every 6h"
		}
		if err := sched.AddJob(schedule, backupJob); err != nil {
			log.Fatal().Err(err).Msg("failed to register backup job")
		}
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Dashboard.Enabled {
		go func() {
			if err := srv.Start(); err != nil {
				log.Error().Err(err).Msg("dashboard server stopped")
			}
		}()
		log.Info().Int("port", cfg.Dashboard.Port).Msg("dashboard started")
	}

	scanInterval := time.Duration(cfg.Agent.ScanIntervalSecs) * time.Second
	if scanInterval <= 0 {
		scanInterval = 5 * time.Minute
	}
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	loop := &cycleLoop{
		log:               log,
		router:            rt,
		enricher:          enrich,
		estimator:         estimator,
		orchestrator:      orchestrator,
		risk:              riskManager,
		accountant:        acct,
		resolver:          resolver,
		venues:            venues,
		decisionStore:     decisionStore,
		stateStore:        stateStore,
		survivalThreshold: survivalThreshold,
	}

	log.Info().Dur("interval", scanInterval).Msg("entering main loop")
	for {
		select {
		case <-ticker.C:
			loop.run(ctx)
		case <-quit:
			log.Info().Msg("shutdown signal received, finishing in-flight work")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
			if cfg.Dashboard.Enabled {
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("dashboard shutdown error")
				}
			}
			shutdownCancel()
			if err := stateStore.Save(stateStore.Current()); err != nil {
				log.Error().Err(err).Msg("failed to persist agent state on shutdown")
			}
			log.Info().Msg("oracle stopped")
			return
		}
	}
}

// buildVenues wires one stub per enabled platform in cfg. Concrete wire
// protocols stay out of scope; every venue is constructed with a nil
// fetch closure and degrades to an empty market list until a real
// per-venue HTTP client is supplied. Executable venues are seeded with
// startingBalance since config carries no per-venue balance; a real
// deployment would replace this with the venue's reported account
// balance on first connect.
func buildVenues(cfg *config.Config, startingBalance decimal.Decimal) []platform.Venue {
	var venues []platform.Venue

	if p, ok := cfg.Platforms["manifold"]; ok && p.Enabled {
		venues = append(venues, platform.NewManifoldStub(nil, startingBalance))
	}
	if p, ok := cfg.Platforms["metaculus"]; ok && p.Enabled {
		venues = append(venues, platform.NewMetaculusStub(nil))
	}
	if p, ok := cfg.Platforms["polymarket"]; ok && p.Enabled {
		venues = append(venues, platform.NewPolymarketStub(nil, startingBalance))
	}

	return venues
}

// buildProviders wires the Enricher's category dispatch table. A
// provider is only given its API key when its data_sources entry is
// enabled and the key resolved; otherwise genericProvider degrades to a
// keyword-only summary at zero cost.
func buildProviders(cfg *config.Config) map[domain.Category]dataprovider.Provider {
	key := func(name string) string { return cfg.DataSourceAPIKeys[name] }

	news := dataprovider.NewNewsProvider(key("news_api"), newsCostPerCall, nil, domain.CategoryPolitics)

	return map[domain.Category]dataprovider.Provider{
		domain.CategoryWeather:   dataprovider.NewWeatherProvider(key("open_meteo"), weatherCostPerCall, nil),
		domain.CategorySports:    dataprovider.NewSportsProvider(key("sports"), sportsCostPerCall, nil),
		domain.CategoryEconomics: dataprovider.NewEconomicsProvider(key("fred"), economicsCostPerCall, nil),
		domain.CategoryPolitics:  news,
		domain.CategoryCulture:   dataprovider.NewNewsProvider(key("news_api"), newsCostPerCall, nil, domain.CategoryCulture),
		domain.CategoryOther:     dataprovider.NewNewsProvider(key("news_api"), newsCostPerCall, nil, domain.CategoryOther),
	}
}

// buildFilterConfig applies risk.min_liquidity_contracts over the
// router's documented defaults.
func buildFilterConfig(cfg *config.Config, log zerolog.Logger) router.FilterConfig {
	filterCfg := router.DefaultFilterConfig()
	if v := cfg.Risk.MinLiquidityContracts; v != "" {
		d, err := config.ParseDecimal("risk.min_liquidity_contracts", v)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid risk config")
		}
		filterCfg.MinLiquidity = d
	}
	return filterCfg
}

// buildStrategy assembles the EdgeDetector -> KellySizer -> RiskManager
// pipeline from cfg.Risk, falling back to each stage's documented
// defaults wherever a config value is absent.
func buildStrategy(cfg *config.Config, log zerolog.Logger) (*strategy.Orchestrator, *strategy.RiskManager) {
	edgeCfg := strategy.DefaultEdgeConfig()
	kellyCfg := strategy.DefaultKellyConfig()
	riskCfg := strategy.DefaultRiskConfig()

	if v := cfg.Risk.MispricingThreshold; v != "" {
		d, err := config.ParseDecimal("risk.mispricing_threshold", v)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid risk config")
		}
		edgeCfg.MinEdge = d
	}
	if thresholds, err := cfg.Risk.CategoryThresholds(); err != nil {
		log.Fatal().Err(err).Msg("invalid category thresholds")
	} else if len(thresholds) > 0 {
		edgeCfg.CategoryThresholds = make(map[domain.Category]decimal.Decimal, len(thresholds))
		for cat, d := range thresholds {
			edgeCfg.CategoryThresholds[domain.Category(cat)] = d
		}
	}

	if v := cfg.Risk.KellyMultiplier; v != "" {
		if d, err := config.ParseDecimal("risk.kelly_multiplier", v); err == nil {
			kellyCfg.Multiplier = d
		}
	}
	if v := cfg.Risk.MaxBetPct; v != "" {
		if d, err := config.ParseDecimal("risk.max_bet_pct", v); err == nil {
			kellyCfg.MaxBetPct = d
		}
	}
	if v := cfg.Risk.MinBetSize; v != "" {
		if d, err := config.ParseDecimal("risk.min_bet_size", v); err == nil {
			kellyCfg.MinBetSize = d
		}
	}
	if v := cfg.Risk.CommissionPerTrade; v != "" {
		if d, err := config.ParseDecimal("risk.commission_per_trade", v); err == nil {
			kellyCfg.CommissionPerTrade = d
		}
	}

	if v := cfg.Risk.MaxExposurePct; v != "" {
		if d, err := config.ParseDecimal("risk.max_exposure_pct", v); err == nil {
			riskCfg.MaxExposurePct = d
		}
	}
	if v := cfg.Risk.MaxCategoryExposurePct; v != "" {
		if d, err := config.ParseDecimal("risk.max_category_exposure_pct", v); err == nil {
			riskCfg.MaxCategoryExposurePct = d
		}
	}
	if v := cfg.Risk.DrawdownWarning; v != "" {
		if d, err := config.ParseDecimal("risk.drawdown_warning", v); err == nil {
			riskCfg.DrawdownWarning = d
		}
	}
	if v := cfg.Risk.DrawdownHalt; v != "" {
		if d, err := config.ParseDecimal("risk.drawdown_halt", v); err == nil {
			riskCfg.DrawdownHalt = d
		}
	}
	if cfg.Risk.MaxPositions > 0 {
		riskCfg.MaxPositions = cfg.Risk.MaxPositions
	}
	if cfg.Risk.MaxBetsPerCycle > 0 {
		riskCfg.MaxBetsPerCycle = cfg.Risk.MaxBetsPerCycle
	}

	risk := strategy.NewRiskManager(riskCfg, log)
	return strategy.NewOrchestrator(strategy.NewEdgeDetector(edgeCfg), strategy.NewKellySizer(kellyCfg), risk), risk
}

// echoCompletion is the illustrative CompletionFunc: concrete LLM provider
// wire formats stay out of scope, so this always returns an error,
// driving the estimator straight to its echo fallback. A
// production build supplies a real Anthropic/OpenAI/OpenRouter client
// satisfying the same signature.
func echoCompletion(_ context.Context, _ string) (string, int, float64, error) {
	return "", 0, 0, fmt.Errorf("llm: no completion backend configured")
}

// backupAdapter satisfies scheduler.Backer, bridging the cron Job
// interface (no context parameter) to backup.Service.Backup (which takes
// one so it can be cancelled by the agent's own shutdown).
type backupAdapter struct {
	svc             *backup.Service
	ctx             context.Context
	statePath       string
	decisionLogPath string
}

func (b backupAdapter) Backup() error {
	return b.svc.Backup(b.ctx, b.statePath, b.decisionLogPath)
}
