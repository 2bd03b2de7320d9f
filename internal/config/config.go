// Package config provides runtime configuration for the tracker service.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the process reads at startup.
type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	RedisAddr      string
	CatalogBaseURL string
	JWTSecret      string
	AdminPassword  string

	SyncInterval time.Duration
	FetchTimeout time.Duration

	// Outbound politeness towards the catalog source.
	CatalogRPS   float64
	CatalogBurst int

	// Inbound per-visitor API limit.
	VisitorRPS   float64
	VisitorBurst int
}

// Load reads configuration from the environment (and an optional config
// file named by CONFIG_FILE) with defaults suitable for local development.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8000")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("catalog_base_url", "https://card.wb.ru")
	v.SetDefault("jwt_secret", "super-secret-key")
	v.SetDefault("admin_password", "")
	v.SetDefault("sync_interval_min", 30)
	v.SetDefault("fetch_timeout_sec", 15)
	v.SetDefault("catalog_rps", 2.0)
	v.SetDefault("catalog_burst", 5)
	v.SetDefault("visitor_rps", 1.0)
	v.SetDefault("visitor_burst", 3)

	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		HTTPAddr:       v.GetString("http_addr"),
		DatabaseURL:    v.GetString("database_url"),
		RedisAddr:      v.GetString("redis_addr"),
		CatalogBaseURL: v.GetString("catalog_base_url"),
		JWTSecret:      v.GetString("jwt_secret"),
		AdminPassword:  v.GetString("admin_password"),
		SyncInterval:   time.Duration(v.GetInt("sync_interval_min")) * time.Minute,
		FetchTimeout:   time.Duration(v.GetInt("fetch_timeout_sec")) * time.Second,
		CatalogRPS:     v.GetFloat64("catalog_rps"),
		CatalogBurst:   v.GetInt("catalog_burst"),
		VisitorRPS:     v.GetFloat64("visitor_rps"),
		VisitorBurst:   v.GetInt("visitor_burst"),
	}

	if cfg.SyncInterval <= 0 {
		return Config{}, fmt.Errorf("sync_interval_min must be positive, got %s", cfg.SyncInterval)
	}
	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("fetch_timeout_sec must be positive, got %s", cfg.FetchTimeout)
	}
	return cfg, nil
}
