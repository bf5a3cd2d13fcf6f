package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	DB           Database     `mapstructure:"database"`
	API          API          `mapstructure:"api"`
	Engine       Engine       `mapstructure:"engine"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Cache        Cache        `mapstructure:"cache"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Dashboard    Dashboard    `mapstructure:"dashboard"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port         int `mapstructure:"port"`
	RateLimitRPS int `mapstructure:"rate_limit_rps"`
}

// Engine holds the risk-engine policy knobs. Every field has a default applied
// in Load, so an empty config section yields the stock policy.
type Engine struct {
	StopATRMultiplier     float64 `mapstructure:"stop_atr_multiplier"`      // ATR fallback distance for stop-loss
	TargetATRMultiplier   float64 `mapstructure:"target_atr_multiplier"`    // ATR fallback distance for take-profit
	LevelMaxATRDistance   float64 `mapstructure:"level_max_atr_distance"`   // max distance, in ATRs, at which a support/resistance is usable
	LevelNudgeATRFraction float64 `mapstructure:"level_nudge_atr_fraction"` // buffer placed beyond a structural level
	TrailATRMultiplier    float64 `mapstructure:"trail_atr_multiplier"`     // default trailing-stop distance
	BreakevenATRTier      float64 `mapstructure:"breakeven_atr_tier"`       // profit tier suggesting a breakeven stop
	PartialProfitATRTier  float64 `mapstructure:"partial_profit_atr_tier"`  // profit tier suggesting partial profit taking
	MinRiskRewardRatio    float64 `mapstructure:"min_risk_reward_ratio"`    // warn below this RR
	MinRiskPercentage     float64 `mapstructure:"min_risk_percentage"`      // sane lower bound, fraction of account
	MaxRiskPercentage     float64 `mapstructure:"max_risk_percentage"`      // sane upper bound, fraction of account
	MinAccountSize        float64 `mapstructure:"min_account_size"`
	MaxAccountSize        float64 `mapstructure:"max_account_size"`
	DefaultAccountSize    float64 `mapstructure:"default_account_size"` // used by dashboard aggregation
	DefaultRiskPercentage float64 `mapstructure:"default_risk_percentage"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	ATRPeriod           int           `mapstructure:"atr_period"`
	LookbackDays        int           `mapstructure:"lookback_days"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	QuoteExpiration   time.Duration `mapstructure:"quote_expiration"`
}

type Scheduler struct {
	PositionRefreshCron string        `mapstructure:"position_refresh_cron"`
	MaxConcurrency      int           `mapstructure:"max_concurrency"`
	TimeoutDuration     time.Duration `mapstructure:"timeout_duration"`
}

type Dashboard struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.rate_limit_rps", 20)

	viper.SetDefault("engine.stop_atr_multiplier", 2.0)
	viper.SetDefault("engine.target_atr_multiplier", 3.0)
	viper.SetDefault("engine.level_max_atr_distance", 3.0)
	viper.SetDefault("engine.level_nudge_atr_fraction", 0.1)
	viper.SetDefault("engine.trail_atr_multiplier", 2.0)
	viper.SetDefault("engine.breakeven_atr_tier", 1.5)
	viper.SetDefault("engine.partial_profit_atr_tier", 3.0)
	viper.SetDefault("engine.min_risk_reward_ratio", 1.0)
	viper.SetDefault("engine.min_risk_percentage", 0.005)
	viper.SetDefault("engine.max_risk_percentage", 0.10)
	viper.SetDefault("engine.min_account_size", 100.0)
	viper.SetDefault("engine.max_account_size", 10000000.0)
	viper.SetDefault("engine.default_account_size", 10000.0)
	viper.SetDefault("engine.default_risk_percentage", 0.02)

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", "10s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.atr_period", 14)
	viper.SetDefault("yahoo_finance.lookback_days", 90)

	viper.SetDefault("cache.default_expiration", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.quote_expiration", "1m")

	viper.SetDefault("scheduler.position_refresh_cron", "*/15 * * * *")
	viper.SetDefault("scheduler.max_concurrency", 5)
	viper.SetDefault("scheduler.timeout_duration", "2m")

	viper.SetDefault("dashboard.max_concurrency", 5)
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
