package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DevSessionSecret is the fallback cookie-signing key. It is rejected in
// production.
const DevSessionSecret = "a_super_secret_key_for_development"

type Config struct {
	App        AppConfig        `yaml:"app"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type HTTPConfig struct {
	Port              int             `yaml:"port"`
	ReadHeaderTimeout time.Duration   `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration   `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration   `yaml:"shutdown_timeout"`
	RateLimit         RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig limits booking submissions per client IP.
// RPS of zero disables the limiter.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type DatabaseConfig struct {
	Driver          string         `yaml:"driver"`
	DSN             string         `yaml:"dsn"`
	Postgres        PostgresConfig `yaml:"postgres"`
	MaxOpenConns    int            `yaml:"max_open_conns"`
	MaxIdleConns    int            `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration  `yaml:"conn_max_lifetime"`
	LogLevel        string         `yaml:"log_level"`
	SlowThreshold   time.Duration  `yaml:"slow_threshold"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type SessionConfig struct {
	Secret string `yaml:"secret"`
	Name   string `yaml:"name"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

// DSNString returns the connection string for the configured driver.
// An explicit DSN wins over the individual postgres settings, which are
// encoded as a postgres:// URL. An empty password is left out.
func (d DatabaseConfig) DSNString() string {
	if d.DSN != "" {
		return d.DSN
	}
	p := d.Postgres
	u := url.URL{
		Scheme: "postgres",
		User:   url.User(p.User),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.DBName,
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

// Load reads .env (if present), then the YAML file at configPath (if
// non-empty), then environment overrides. Defaults are applied last.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
		if c.Database.Driver == "" {
			c.Database.Driver = "postgres"
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.Postgres.User = v
	}
	if v := os.Getenv("DB_PASS"); v != "" {
		c.Database.Postgres.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Postgres.Host = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Postgres.DBName = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.HTTP.Port = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "sanatorium"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}

	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadHeaderTimeout == 0 {
		c.HTTP.ReadHeaderTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTP.RateLimit.RPS > 0 && c.HTTP.RateLimit.Burst <= 0 {
		c.HTTP.RateLimit.Burst = 5
	}

	db := &c.Database
	if db.Driver == "" {
		db.Driver = "postgres"
	}
	if db.Postgres.Host == "" {
		db.Postgres.Host = "localhost"
	}
	if db.Postgres.Port == 0 {
		db.Postgres.Port = 5432
	}
	if db.Postgres.User == "" {
		db.Postgres.User = "postgres"
	}
	if db.Postgres.DBName == "" {
		db.Postgres.DBName = "the_sanatorium_db"
	}
	if db.Postgres.SSLMode == "" {
		db.Postgres.SSLMode = "disable"
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = 25
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = 10
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = 5 * time.Minute
	}
	if db.LogLevel == "" {
		db.LogLevel = "warn"
	}
	if db.SlowThreshold == 0 {
		db.SlowThreshold = 200 * time.Millisecond
	}

	if c.Session.Secret == "" {
		c.Session.Secret = DevSessionSecret
	}
	if c.Session.Name == "" {
		c.Session.Name = "sanatorium_session"
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
	case "sqlite":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (supported: postgres, sqlite)", c.Database.Driver)
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.HTTP.RateLimit.RPS < 0 {
		return errors.New("http.rate_limit.rps must not be negative")
	}

	if strings.EqualFold(c.App.Environment, "production") && c.Session.Secret == DevSessionSecret {
		return errors.New("session.secret (or SECRET_KEY) must be set in production")
	}
	return nil
}
