package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	Marketplace MarketplaceConfig
	Storefront  StorefrontConfig
	Sync        SyncConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Admin       AdminConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// MarketplaceConfig holds marketplace API credentials and endpoint settings
type MarketplaceConfig struct {
	AccessToken    string
	SellerID       string
	APIBaseURL     string
	TimeoutSeconds int
}

// StorefrontConfig holds storefront API credentials and endpoint settings
type StorefrontConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	APIBaseURL     string
	TimeoutSeconds int
}

// SyncConfig holds sync run behavior settings
type SyncConfig struct {
	// Lookback is how far back the polling window reaches from now
	Lookback time.Duration
	// Interval is the trigger interval in loop mode
	Interval time.Duration
	// RunLogPath is the append-only execution log file
	RunLogPath string
	// LedgerEnabled enables the persisted processed-order ledger.
	// Disabled by default: the historical behavior has no dedup across
	// runs, and enabling it requires a database.
	LedgerEnabled bool
	// RunLockEnabled enables the redis lease guarding overlapping runs.
	// Disabled by default for the same reason.
	RunLockEnabled bool
	// RunLockTTL is how long the lease survives a crashed run
	RunLockTTL time.Duration
}

// DatabaseConfig holds database connection settings for the sync ledger
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings for the run lock
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AdminConfig holds the admin HTTP surface settings
type AdminConfig struct {
	Port string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ORDERSYNC_ prefix (e.g., ORDERSYNC_MARKETPLACE_ACCESS_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ORDERSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Marketplace: MarketplaceConfig{
			AccessToken:    v.GetString("marketplace.access_token"),
			SellerID:       v.GetString("marketplace.seller_id"),
			APIBaseURL:     v.GetString("marketplace.api_base_url"),
			TimeoutSeconds: v.GetInt("marketplace.timeout_seconds"),
		},
		Storefront: StorefrontConfig{
			ConsumerKey:    v.GetString("storefront.consumer_key"),
			ConsumerSecret: v.GetString("storefront.consumer_secret"),
			APIBaseURL:     v.GetString("storefront.api_base_url"),
			TimeoutSeconds: v.GetInt("storefront.timeout_seconds"),
		},
		Sync: SyncConfig{
			Lookback:       v.GetDuration("sync.lookback"),
			Interval:       v.GetDuration("sync.interval"),
			RunLogPath:     v.GetString("sync.run_log_path"),
			LedgerEnabled:  v.GetBool("sync.ledger_enabled"),
			RunLockEnabled: v.GetBool("sync.run_lock_enabled"),
			RunLockTTL:     v.GetDuration("sync.run_lock_ttl"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Admin: AdminConfig{
			Port: v.GetString("admin.port"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ordersync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Marketplace.TimeoutSeconds == 0 {
		cfg.Marketplace.TimeoutSeconds = 30
	}
	if cfg.Storefront.TimeoutSeconds == 0 {
		cfg.Storefront.TimeoutSeconds = 30
	}
	if cfg.Sync.Lookback == 0 {
		// The job runs frequently and should only pick up newly created
		// orders, so the window stays short.
		cfg.Sync.Lookback = 5 * time.Minute
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
	if cfg.Sync.RunLogPath == "" {
		cfg.Sync.RunLogPath = "storyCrons.txt"
	}
	if cfg.Sync.RunLockTTL == 0 {
		cfg.Sync.RunLockTTL = 10 * time.Minute
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "ordersync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Admin.Port == "" {
		cfg.Admin.Port = "8080"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Marketplace.AccessToken == "" {
		return fmt.Errorf("marketplace.access_token is required")
	}
	if c.Marketplace.SellerID == "" {
		return fmt.Errorf("marketplace.seller_id is required")
	}
	if c.Storefront.ConsumerKey == "" {
		return fmt.Errorf("storefront.consumer_key is required")
	}
	if c.Storefront.ConsumerSecret == "" {
		return fmt.Errorf("storefront.consumer_secret is required")
	}
	if c.Storefront.APIBaseURL == "" {
		return fmt.Errorf("storefront.api_base_url is required")
	}
	if c.Sync.Lookback < time.Minute || c.Sync.Lookback > time.Hour {
		return fmt.Errorf("sync.lookback must be between 1m and 1h, got %s", c.Sync.Lookback)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.App.Env == "production" {
		if c.Sync.LedgerEnabled && c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production when the ledger is enabled")
		}
		if c.Sync.LedgerEnabled && c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the redis host:port address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
