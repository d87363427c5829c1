// Package config loads application configuration from the environment and an optional
// .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultJWTSecret     = "devsecret"
)

// AdminIdentity is the one admin account of the site. There is no user table: the
// identity lives in configuration only.
type AdminIdentity struct {
	Email    string `mapstructure:"ADMIN_EMAIL"`
	Password string `mapstructure:"ADMIN_PASSWORD"`
}

// Config holds application configuration loaded from the environment.
type Config struct {
	// Port is the HTTP listen port (without the colon).
	Port string `mapstructure:"PORT"`

	// StorageBackend selects the store: "memory" or "postgres".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	// DatabaseURL is the Postgres connection string; required for the postgres backend.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// MigrateOnStart applies pending schema migrations before serving.
	MigrateOnStart bool `mapstructure:"MIGRATE_ON_START"`
	// Pool tuning; zero keeps the pgxpool default.
	DBMaxConns        int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32         `mapstructure:"DB_MIN_CONNS"`
	DBMaxConnLifetime time.Duration `mapstructure:"DB_MAX_CONN_LIFETIME"`
	// DBConnectTimeout bounds the startup connect retry.
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`

	AdminIdentity `mapstructure:",squash"`
	// JWTSecret signs admin tokens (HS256).
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// ServeStatic serves the public site from StaticDir next to the API.
	ServeStatic bool   `mapstructure:"SERVE_STATIC"`
	StaticDir   string `mapstructure:"STATIC_DIR"`

	// CORSAllowedOrigins is a comma-separated origin list; "*" allows any origin.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// BodyLimitBytes caps JSON request bodies.
	BodyLimitBytes int64 `mapstructure:"BODY_LIMIT_BYTES"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// Load reads .env (if present), then builds and validates Config from the environment.
// Environment variables override values from .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // a missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("PORT", "4000")
	v.SetDefault("STORAGE_BACKEND", StorageMemory)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("DB_MAX_CONNS", 0)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "0s")
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("ADMIN_EMAIL", DefaultAdminEmail)
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("SERVE_STATIC", true)
	v.SetDefault("STATIC_DIR", "./site")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("BODY_LIMIT_BYTES", 100*1024)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if c.Port == "" {
		return errors.New("config: PORT must be set")
	}
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL must be set when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("config: STORAGE_BACKEND must be memory or postgres, got %q", c.StorageBackend)
	}
	if c.AdminIdentity.Email == "" || c.AdminIdentity.Password == "" {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD must be non-empty")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be non-empty")
	}
	if c.DBMaxConns < 0 || c.DBMinConns < 0 || (c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns) {
		return errors.New("config: DB_MIN_CONNS and DB_MAX_CONNS must be non-negative with min <= max")
	}
	if c.BodyLimitBytes <= 0 {
		return errors.New("config: BODY_LIMIT_BYTES must be positive")
	}
	return nil
}

// UsesDefaultCredentials reports whether the admin identity or signing secret is still
// the development default.
func (c *Config) UsesDefaultCredentials() bool {
	return c.AdminIdentity.Email == DefaultAdminEmail ||
		c.AdminIdentity.Password == DefaultAdminPassword ||
		c.JWTSecret == DefaultJWTSecret
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
