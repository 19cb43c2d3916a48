package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("environment variable DATABASE_URL not found")

const devSecret = "medisync-dev-secret"

// DatabaseConfig holds the connection string and pool tuning.
type DatabaseConfig struct {
	URL              string
	PoolMin          int32
	PoolMax          int32
	StatementTimeout time.Duration
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	TTL    time.Duration
	Secure bool
}

// RedisConfig is optional; an empty Addr keeps session revocation in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// InventoryConfig holds stock bookkeeping knobs.
type InventoryConfig struct {
	LowStockThreshold int
	ExpiryWindowDays  int
	ExpiryInterval    time.Duration
}

// LoginLimitConfig throttles credential submissions per client IP.
type LoginLimitConfig struct {
	Rate  float64
	Burst int
}

// AdminConfig is one entry of the fixed administrator set.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// Config holds all configuration
type Config struct {
	Env       string
	HTTPAddr  string
	LogLevel  string
	SecretKey string
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	Inventory InventoryConfig
	Login     LoginLimitConfig
	Admins    []AdminConfig
}

// DefaultAdmins is the administrator set used when the config file names none.
func DefaultAdmins() []AdminConfig {
	return []AdminConfig{
		{Username: "admin", Password: "1234", Name: "Ma. Fe M. Cantutay"},
		{Username: "admin2", Password: "4321", Name: "Lie Jenica L. Egam"},
	}
}

// Load reads configuration from an optional config file, a .env file and the environment.
// Environment variables win; nested keys map to upper-case names with underscores
// (db.pool_max -> DB_POOL_MAX).
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("secret_key", "")
	v.SetDefault("database_url", "")
	v.SetDefault("db.pool_min", 1)
	v.SetDefault("db.pool_max", 10)
	v.SetDefault("db.statement_timeout", 5*time.Second)
	v.SetDefault("session.ttl", 8*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("low_stock_threshold", 10)
	v.SetDefault("expiry.window_days", 30)
	v.SetDefault("expiry.interval", time.Hour)
	v.SetDefault("login.rate", 1.0)
	v.SetDefault("login.burst", 5)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:       v.GetString("app_env"),
		HTTPAddr:  v.GetString("http_addr"),
		LogLevel:  v.GetString("log_level"),
		SecretKey: v.GetString("secret_key"),
		Database: DatabaseConfig{
			URL:              v.GetString("database_url"),
			PoolMin:          v.GetInt32("db.pool_min"),
			PoolMax:          v.GetInt32("db.pool_max"),
			StatementTimeout: v.GetDuration("db.statement_timeout"),
		},
		Session: SessionConfig{
			TTL:    v.GetDuration("session.ttl"),
			Secure: v.GetBool("session.secure"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt("low_stock_threshold"),
			ExpiryWindowDays:  v.GetInt("expiry.window_days"),
			ExpiryInterval:    v.GetDuration("expiry.interval"),
		},
		Login: LoginLimitConfig{
			Rate:  v.GetFloat64("login.rate"),
			Burst: v.GetInt("login.burst"),
		},
	}

	if err := v.UnmarshalKey("admins", &cfg.Admins); err != nil {
		return nil, fmt.Errorf("invalid admins section: %w", err)
	}
	if len(cfg.Admins) == 0 {
		cfg.Admins = DefaultAdmins()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks required values and fills development fallbacks.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}
	if c.SecretKey == "" {
		if c.IsProduction() {
			return errors.New("environment variable SECRET_KEY is required in production")
		}
		c.SecretKey = devSecret
	}
	if c.Database.PoolMin < 0 || c.Database.PoolMax < 1 {
		return fmt.Errorf("invalid pool size min=%d max=%d", c.Database.PoolMin, c.Database.PoolMax)
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("pool min %d exceeds pool max %d", c.Database.PoolMin, c.Database.PoolMax)
	}
	if c.Database.StatementTimeout <= 0 {
		return fmt.Errorf("statement timeout must be positive, got %s", c.Database.StatementTimeout)
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold cannot be negative")
	}
	for _, a := range c.Admins {
		if a.Username == "" || a.Password == "" {
			return errors.New("admin entries need a username and a password")
		}
	}
	return nil
}
