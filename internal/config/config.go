package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server       ServerConfig       `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:",squash"`
	Redis        RedisConfig        `mapstructure:",squash"`
	Logging      LoggingConfig      `mapstructure:",squash"`
	Auth         AuthConfig         `mapstructure:",squash"`
	Lending      LendingConfig      `mapstructure:",squash"`
	Notification NotificationConfig `mapstructure:",squash"`
	Catalog      CatalogConfig      `mapstructure:",squash"`
	Scheduler    SchedulerConfig    `mapstructure:",squash"`
	Health       HealthConfig       `mapstructure:",squash"`
}

type ServerConfig struct {
	Port            string `mapstructure:"SERVER_PORT"`
	Host            string `mapstructure:"SERVER_HOST"`
	Env             string `mapstructure:"ENV"`
	ReadTimeout     string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    string `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout string `mapstructure:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTTTL    string `mapstructure:"JWT_TTL"`
}

type LendingConfig struct {
	DefaultLoanDays int    `mapstructure:"DEFAULT_LOAN_DAYS"`
	LateFeePerDay   string `mapstructure:"LATE_FEE_PER_DAY"`
}

type NotificationConfig struct {
	Sink  string `mapstructure:"NOTIFIER"`
	Queue string `mapstructure:"NOTIFICATION_QUEUE"`
}

type CatalogConfig struct {
	BaseURL string  `mapstructure:"CATALOG_BASE_URL"`
	RPS     float64 `mapstructure:"CATALOG_RPS"`
	Timeout string  `mapstructure:"CATALOG_TIMEOUT"`
}

type SchedulerConfig struct {
	ReminderCron string `mapstructure:"REMINDER_CRON"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

const (
	SinkLog   = "log"
	SinkRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("DEFAULT_LOAN_DAYS", 14)
	v.SetDefault("LATE_FEE_PER_DAY", "0.25")
	v.SetDefault("NOTIFIER", SinkLog)
	v.SetDefault("NOTIFICATION_QUEUE", "shelfmark:notifications")
	v.SetDefault("CATALOG_BASE_URL", "https://openlibrary.org")
	v.SetDefault("CATALOG_RPS", 5)
	v.SetDefault("CATALOG_TIMEOUT", "10s")
	v.SetDefault("REMINDER_CRON", "0 0 9 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist; real environment wins over the file.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Lending.DefaultLoanDays <= 0 {
		return fmt.Errorf("DEFAULT_LOAN_DAYS must be greater than 0")
	}

	fee, err := decimal.NewFromString(c.Lending.LateFeePerDay)
	if err != nil {
		return fmt.Errorf("LATE_FEE_PER_DAY must be a valid decimal: %w", err)
	}
	if fee.IsNegative() {
		return fmt.Errorf("LATE_FEE_PER_DAY must not be negative")
	}

	if c.Notification.Sink != SinkLog && c.Notification.Sink != SinkRedis {
		return fmt.Errorf("NOTIFIER must be %q or %q", SinkLog, SinkRedis)
	}

	if c.Catalog.RPS <= 0 {
		return fmt.Errorf("CATALOG_RPS must be greater than 0")
	}

	for key, value := range map[string]string{
		"SERVER_READ_TIMEOUT":  c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT": c.Server.WriteTimeout,
		"SHUTDOWN_TIMEOUT":     c.Server.ShutdownTimeout,
		"JWT_TTL":              c.Auth.JWTTTL,
		"CATALOG_TIMEOUT":      c.Catalog.Timeout,
		"HEALTH_CHECK_TIMEOUT": c.Health.Timeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Scheduler.ReminderCron); err != nil {
		return fmt.Errorf("REMINDER_CRON must be a valid 6-field cron spec: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RedisAddr returns the host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// GetLateFeePerDay returns the per-day overdue fee as decimal
func (c *Config) GetLateFeePerDay() decimal.Decimal {
	fee, _ := decimal.NewFromString(c.Lending.LateFeePerDay)
	return fee
}

// GetJWTTTL returns the token lifetime as duration
func (c *Config) GetJWTTTL() time.Duration {
	return mustDuration(c.Auth.JWTTTL)
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// GetShutdownTimeout returns the graceful shutdown budget as duration
func (c *Config) GetShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout)
}

// GetCatalogTimeout returns the outbound catalog request timeout as duration
func (c *Config) GetCatalogTimeout() time.Duration {
	return mustDuration(c.Catalog.Timeout)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

// GetSchedulerLocation returns the time zone reminder jobs are evaluated in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
