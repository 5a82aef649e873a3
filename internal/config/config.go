package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	ReminderBackendRedis  = "redis"
	ReminderBackendMemory = "memory"

	MinReminderDebounce = 5 * time.Second
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// foods
	FoodSearchRateLimitPerMin int `toml:"food_search_rate_limit_per_min"`
	FoodSearchCacheTTLSeconds int `toml:"food_search_cache_ttl_seconds"`
	FoodSearchCacheSizeMB     int `toml:"food_search_cache_size_mb"`

	// reminders
	ReminderDebounceSeconds int    `toml:"reminder_debounce_seconds"`
	ReminderBackend         string `toml:"reminder_backend"`
	NotificationServiceURL  string `toml:"notification_service_url"`

	AllowedOrigins []string `toml:"allowed_origins"`

	Secrets Secrets `toml:"-"`
}

// Secrets never live in the config file.
type Secrets struct {
	SentryDSN         string `env:"SENTRY_DSN"`
	RedisPassword     string `env:"DIETPLAN_REDIS_PASS"`
	PostgresPassword  string `env:"DIETPLAN_DB_PASS"`
	NotificationToken string `env:"DIETPLAN_NOTIFICATION_TOKEN"`
	HoneycombEnabled  bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey   string `env:"HONEYCOMB_API_KEY"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the toml file at path, picks the section for env and fills
// secrets from the process environment.
func Load(ctx context.Context, env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return load(ctx, &t, env, envconfig.OsLookuper())
}

// Parse is Load for an in-memory document, with secrets from lookuper.
func Parse(ctx context.Context, env, data string, lookuper envconfig.Lookuper) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return load(ctx, &t, env, lookuper)
}

func load(ctx context.Context, t *Toml, env string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg.Secrets,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "dietplan"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.FoodSearchRateLimitPerMin == 0 {
		c.FoodSearchRateLimitPerMin = 60
	}
	if c.FoodSearchCacheTTLSeconds == 0 {
		c.FoodSearchCacheTTLSeconds = 300
	}
	if c.FoodSearchCacheSizeMB == 0 {
		c.FoodSearchCacheSizeMB = 16
	}
	if c.ReminderBackend == "" {
		c.ReminderBackend = ReminderBackendRedis
	}
	if c.ReminderDebounceSeconds < int(MinReminderDebounce/time.Second) {
		c.ReminderDebounceSeconds = int(MinReminderDebounce / time.Second)
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	switch c.ReminderBackend {
	case ReminderBackendRedis, ReminderBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown reminder backend: %q", c.ReminderBackend))
	}
	if c.FoodSearchRateLimitPerMin < 0 {
		errs = append(errs, errors.New("food search rate limit cannot be negative"))
	}
	if c.SentryEnabled && c.Secrets.SentryDSN == "" {
		errs = append(errs, errors.New("sentry enabled but SENTRY_DSN not set"))
	}
	return errors.Join(errs...)
}

func (c *Config) ReminderDebounce() time.Duration {
	return time.Duration(c.ReminderDebounceSeconds) * time.Second
}

func (c *Config) FoodSearchCacheTTL() time.Duration {
	return time.Duration(c.FoodSearchCacheTTLSeconds) * time.Second
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
