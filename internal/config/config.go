// Package config loads mayorsim settings: a .env file, then a YAML file,
// then environment overrides, then defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		AdminKey    string   `yaml:"admin_key"`
		CORSOrigins []string `yaml:"cors_origins"`
		TrustProxy  bool     `yaml:"trust_proxy"` // honor X-Forwarded-For / X-Real-IP
	} `yaml:"server"`
	Storage struct {
		Dialect     string `yaml:"dialect"` // sqlite, postgres or memory
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"storage"`
	Simulation struct {
		Seed               uint64        `yaml:"seed"` // 0 = unseeded
		DayInterval        time.Duration `yaml:"day_interval"`
		Speed              float64       `yaml:"speed"`
		AutosaveCron       string        `yaml:"autosave_cron"`
		RateLimitPerMinute int           `yaml:"ratelimit_per_minute"`
	} `yaml:"simulation"`
	Entropy struct {
		RandomOrgKey string `yaml:"random_org_key"`
	} `yaml:"entropy"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text or json
	} `yaml:"log"`
}

// Load reads the .env file and the YAML file at path when they exist, then
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Server.Addr = envDefault("MAYORSIM_ADDR", c.Server.Addr)
	c.Server.AdminKey = envDefault("MAYORSIM_ADMIN_KEY", c.Server.AdminKey)
	if v := envDefault("CORS_ORIGINS", ""); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	c.Server.TrustProxy = envBoolDefault("MAYORSIM_TRUST_PROXY", c.Server.TrustProxy)
	c.Storage.Dialect = envDefault("MAYORSIM_DB_DIALECT", c.Storage.Dialect)
	c.Storage.SQLitePath = envDefault("MAYORSIM_SQLITE_PATH", c.Storage.SQLitePath)
	c.Storage.PostgresDSN = envDefault("DATABASE_URL", c.Storage.PostgresDSN)
	c.Simulation.Seed = envUintDefault("MAYORSIM_SEED", c.Simulation.Seed)
	c.Simulation.DayInterval = envDurationDefault("MAYORSIM_DAY_INTERVAL", c.Simulation.DayInterval)
	c.Simulation.Speed = envFloatDefault("MAYORSIM_SPEED", c.Simulation.Speed)
	c.Simulation.AutosaveCron = envDefault("MAYORSIM_AUTOSAVE_CRON", c.Simulation.AutosaveCron)
	c.Entropy.RandomOrgKey = envDefault("RANDOM_ORG_API_KEY", c.Entropy.RandomOrgKey)
	c.Log.Level = envDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envDefault("LOG_FORMAT", c.Log.Format)
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Dialect == "" {
		c.Storage.Dialect = "sqlite"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/mayorsim.db"
	}
	if c.Simulation.DayInterval == 0 {
		c.Simulation.DayInterval = 2 * time.Second
	}
	if c.Simulation.Speed == 0 {
		c.Simulation.Speed = 1
	}
	if c.Simulation.AutosaveCron == "" {
		c.Simulation.AutosaveCron = "@every 5m"
	}
	if c.Simulation.RateLimitPerMinute == 0 {
		c.Simulation.RateLimitPerMinute = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the settings that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Storage.Dialect {
	case "sqlite", "memory":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn (DATABASE_URL) is required for postgres")
		}
	default:
		return fmt.Errorf("storage.dialect %q must be sqlite, postgres or memory", c.Storage.Dialect)
	}
	if c.Simulation.DayInterval < 0 {
		return fmt.Errorf("simulation.day_interval must be positive")
	}
	if c.Simulation.Speed < 0.25 || c.Simulation.Speed > 10 {
		return fmt.Errorf("simulation.speed must be between 0.25 and 10")
	}
	if c.Simulation.RateLimitPerMinute < 0 {
		return fmt.Errorf("simulation.ratelimit_per_minute must not be negative")
	}
	return nil
}

// Logger builds the process logger from the log settings.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envUintDefault(key string, fallback uint64) uint64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
