package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/medrec/medrec/internal/platform/db"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	LogLevel    string   `mapstructure:"LOG_LEVEL"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBHost      string   `mapstructure:"DB_HOST"`
	DBPort      string   `mapstructure:"DB_PORT"`
	DBName      string   `mapstructure:"DB_NAME"`
	DBUser      string   `mapstructure:"DB_USER"`
	DBPassword  string   `mapstructure:"DB_PASSWORD"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "3003")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "medical_records_db")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_NAME")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedDatabaseURL returns the connection string for the record store.
// An explicit DATABASE_URL wins; otherwise the URL is assembled from the
// DB_* parts. Credentials are included only when DB_USER is set, which
// switches the shape of the URL.
func (c *Config) ResolvedDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	host := c.DBHost + ":" + c.DBPort
	if c.DBUser != "" {
		auth := url.UserPassword(c.DBUser, c.DBPassword).String()
		return "postgres://" + auth + "@" + host + "/" + c.DBName
	}
	return "postgres://" + host + "/" + c.DBName + "?sslmode=disable"
}

// PoolConfig resolves the connection settings the record store pool needs.
func (c *Config) PoolConfig() db.PoolConfig {
	return db.PoolConfig{
		URL:      c.ResolvedDatabaseURL(),
		MaxConns: c.DBMaxConns,
		MinConns: c.DBMinConns,
	}
}
