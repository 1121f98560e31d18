package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	SMTP      SMTPConfig
	Invoice   InvoiceConfig
	Broadcast BroadcastConfig
	HTTP      HTTPConfig
	Log       LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string // public URL used in emailed links (feedback, reset)
}

// DatabaseConfig holds database connection settings
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

// DSN builds the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings for admin sessions, customer sessions and
// signed feedback tokens
type JWTConfig struct {
	Secret             string
	Issuer             string
	SessionExpiration  time.Duration
	FeedbackSecret     string
	FeedbackExpiration time.Duration
}

// AdminConfig holds back-office access settings
type AdminConfig struct {
	Password string
}

// SMTPConfig holds email relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// InvoiceConfig holds invoice rendering settings
type InvoiceConfig struct {
	BrandName     string
	BrandAddress  string
	BrandGSTIN    string
	GSTRate       float64 // percent, e.g. 12.0
	TermsText     string
	RenderTimeout time.Duration
	ChromeRemote  string // optional remote Chrome URL
	NoSandbox     bool
}

// BroadcastConfig holds throttling for bulk email sends
type BroadcastConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
	CookieSecure     bool
	CleanupInterval  time.Duration // invoice retention sweep
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g., SHOP_DATABASE_PASSWORD)
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
		// missing config file is fine, defaults and env vars apply
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			BaseURL: v.GetString("app.base_url"),
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
		JWT: JWTConfig{
			Secret:             v.GetString("jwt.secret"),
			Issuer:             v.GetString("jwt.issuer"),
			SessionExpiration:  v.GetDuration("jwt.session_expiration"),
			FeedbackSecret:     v.GetString("jwt.feedback_secret"),
			FeedbackExpiration: v.GetDuration("jwt.feedback_expiration"),
		},
		Admin: AdminConfig{
			Password: v.GetString("admin.password"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
			FromName: v.GetString("smtp.from_name"),
		},
		Invoice: InvoiceConfig{
			BrandName:     v.GetString("invoice.brand_name"),
			BrandAddress:  v.GetString("invoice.brand_address"),
			BrandGSTIN:    v.GetString("invoice.brand_gstin"),
			GSTRate:       v.GetFloat64("invoice.gst_rate"),
			TermsText:     v.GetString("invoice.terms_text"),
			RenderTimeout: v.GetDuration("invoice.render_timeout"),
			ChromeRemote:  v.GetString("invoice.chrome_remote"),
			NoSandbox:     v.GetBool("invoice.no_sandbox"),
		},
		Broadcast: BroadcastConfig{
			BatchSize:  v.GetInt("broadcast.batch_size"),
			BatchDelay: v.GetDuration("broadcast.batch_delay"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			CookieSecure:     v.GetBool("http.cookie_secure"),
			CleanupInterval:  v.GetDuration("http.cleanup_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers built-in defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shopfront")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.base_url", "http://localhost:8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "shopfront")
	v.SetDefault("database.dbname", "shopfront")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("database.conn_max_idle_time", 10)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.issuer", "shopfront")
	v.SetDefault("jwt.session_expiration", 24*time.Hour)
	v.SetDefault("jwt.feedback_expiration", 90*24*time.Hour)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from_name", "Shopfront")

	v.SetDefault("invoice.brand_name", "Shopfront Menswear")
	v.SetDefault("invoice.gst_rate", 0.0)
	v.SetDefault("invoice.render_timeout", 30*time.Second)

	v.SetDefault("broadcast.batch_size", 50)
	v.SetDefault("broadcast.batch_delay", 2*time.Second)

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.max_body_size", int64(8<<20))
	v.SetDefault("http.cleanup_interval", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin.password is required")
	}
	if c.Invoice.GSTRate < 0 || c.Invoice.GSTRate > 100 {
		return fmt.Errorf("invoice.gst_rate must be between 0 and 100")
	}
	if c.Broadcast.BatchSize <= 0 {
		return fmt.Errorf("broadcast.batch_size must be positive")
	}
	return nil
}

// FeedbackSecretOrDefault falls back to the session secret when no dedicated
// feedback secret is configured
func (c *Config) FeedbackSecretOrDefault() string {
	if c.JWT.FeedbackSecret != "" {
		return c.JWT.FeedbackSecret
	}
	return c.JWT.Secret
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
