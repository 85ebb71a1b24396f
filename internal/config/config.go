package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration. Values come from defaults, then an
// optional YAML file, then environment variables, each layer overriding the
// previous one.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Auth      AuthConfig      `yaml:"auth"`
	Reminders RemindersConfig `yaml:"reminders"`
	Log       LogConfig       `yaml:"log"`
	Timezone  string          `yaml:"timezone"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	SecretKey     string        `yaml:"secret_key"`
	TokenLifetime time.Duration `yaml:"token_lifetime"`
}

type RemindersConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from an optional YAML file and environment
// variables. SANA_SECRET_KEY must be set in production; the default only
// exists so local development works out of the box.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "data/sana.db",
		},
		Auth: AuthConfig{
			SecretKey:     "dev-insecure-secret",
			TokenLifetime: 7 * 24 * time.Hour,
		},
		Reminders: RemindersConfig{
			Interval: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Timezone: "UTC",
	}

	if path := os.Getenv("SANA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("SANA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SANA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SANA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("SANA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if secret := os.Getenv("SANA_SECRET_KEY"); secret != "" {
		cfg.Auth.SecretKey = secret
	}
	if lifetimeStr := os.Getenv("SANA_TOKEN_LIFETIME"); lifetimeStr != "" {
		lifetime, err := time.ParseDuration(lifetimeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SANA_TOKEN_LIFETIME: %w", err)
		}
		cfg.Auth.TokenLifetime = lifetime
	}
	if intervalStr := os.Getenv("SANA_REMINDER_INTERVAL"); intervalStr != "" {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SANA_REMINDER_INTERVAL: %w", err)
		}
		cfg.Reminders.Interval = interval
	}
	if level := os.Getenv("SANA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("SANA_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if timezone := os.Getenv("SANA_TIMEZONE"); timezone != "" {
		cfg.Timezone = timezone
	}

	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC on an
// unknown name.
func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (cfg Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
