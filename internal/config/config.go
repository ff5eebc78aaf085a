package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogBufferSize int    `toml:"log_buffer_size"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// data
	SeedDataPath   string   `toml:"seed_data_path"`
	AllowedOrigins []string `toml:"allowed_origins"`
	// food recognition; 0 means seed from the clock
	FoodRandomSeed  int64    `toml:"food_random_seed"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
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

// Duration lets toml read values like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func Default() *Config {
	return &Config{
		Environment:     "development",
		Host:            "localhost",
		Port:            8080,
		LogLevel:        "debug",
		LogToStdout:     true,
		LogBufferSize:   500,
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: Duration{15 * time.Second},
	}
}

// Load reads the toml file at path and returns the section for env. A
// missing file yields Default(). Environment variables override file values.
func Load(env, path string) (*Config, error) {
	var cfg *Config

	var t Toml
	_, err := toml.DecodeFile(path, &t)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	default:
		cfg, err = t.Get(env)
		if err != nil {
			return nil, err
		}
	}

	cfg.Environment = strings.ToLower(env)
	applyDefaults(cfg)

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogBufferSize <= 0 {
		cfg.LogBufferSize = def.LogBufferSize
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = def.AllowedOrigins
	}
	if cfg.ShutdownTimeout.Duration <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HEALTH_INSIGHTS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HEALTH_INSIGHTS_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("HEALTH_INSIGHTS_SEED_PATH"); v != "" {
		cfg.SeedDataPath = v
	}
	return nil
}
