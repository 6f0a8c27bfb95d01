package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Cache     Cache           `mapstructure:"cache"`
	FMP       FMP             `mapstructure:"fmp"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Auth      Auth            `mapstructure:"auth"`
	Referral  Referral        `mapstructure:"referral"`
	Report    Report          `mapstructure:"report"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
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
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// FMP is the Financial Modeling Prep market data API.
type FMP struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

type Gemini struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	BaseModel           string        `mapstructure:"base_model"`
	PremiumModel        string        `mapstructure:"premium_model"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

// Auth is the hosted identity provider (GoTrue-style REST API).
type Auth struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	OAuthRedirectURL string        `mapstructure:"oauth_redirect_url"`
	SessionCacheTTL  time.Duration `mapstructure:"session_cache_ttl"`
}

type Referral struct {
	RewardPoints int64 `mapstructure:"reward_points"`
}

type Report struct {
	TargetDays  int `mapstructure:"target_days"`
	NewsLimit   int `mapstructure:"news_limit"`
	HistoryDays int `mapstructure:"history_days"`
}

type EvaluatorConfig struct {
	CronExpr       string `mapstructure:"cron_expr"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
	BatchSize      int    `mapstructure:"batch_size"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments use injected env vars.
	_ = godotenv.Load()

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("cache.default_expiration", "10m")
	viper.SetDefault("cache.cleanup_interval", "15m")
	viper.SetDefault("fmp.base_url", "https://financialmodelingprep.com/stable")
	viper.SetDefault("fmp.timeout", "15s")
	viper.SetDefault("fmp.max_request_per_minute", 60)
	viper.SetDefault("fmp.cache_ttl", "10m")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.premium_model", "gemini-2.5-pro")
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("gemini.max_token_per_minute", 250000)
	viper.SetDefault("auth.timeout", "10s")
	viper.SetDefault("auth.session_cache_ttl", "1m")
	viper.SetDefault("referral.reward_points", 900)
	viper.SetDefault("report.target_days", 90)
	viper.SetDefault("report.news_limit", 5)
	viper.SetDefault("report.history_days", 30)
	viper.SetDefault("evaluator.cron_expr", "30 5 * * *")
	viper.SetDefault("evaluator.max_concurrency", 4)
	viper.SetDefault("evaluator.batch_size", 100)
}

// validate rejects a configuration that cannot possibly serve requests.
// Missing secrets abort startup, they are not recoverable at runtime.
func (c *Config) validate() error {
	missing := []string{}
	if c.FMP.APIKey == "" {
		missing = append(missing, "fmp.api_key")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "gemini.api_key")
	}
	if c.Auth.BaseURL == "" {
		missing = append(missing, "auth.base_url")
	}
	if c.Auth.APIKey == "" {
		missing = append(missing, "auth.api_key")
	}
	if c.DB.Host == "" {
		missing = append(missing, "database.host")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
