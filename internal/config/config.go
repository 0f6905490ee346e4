package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines the monitoring service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CELLMON_HTTP_PORT"`
	} `yaml:"http"`
	Auth struct {
		Secret          string `yaml:"secret" env:"CELLMON_AUTH_SECRET"`
		PasswordHash    string `yaml:"password_hash" env:"CELLMON_PASSWORD_HASH"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"CELLMON_TOKEN_TTL_MINUTES"`
	} `yaml:"auth"`
	Fleet struct {
		Roster         []string `yaml:"roster" env:"CELLMON_ROSTER"`
		RefreshSeconds int      `yaml:"refresh_seconds" env:"CELLMON_REFRESH_SECONDS"`
		AutoRefresh    bool     `yaml:"auto_refresh" env:"CELLMON_AUTO_REFRESH"`
	} `yaml:"fleet"`
}

// Load configuration from an optional YAML file plus env overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8090"
	cfg.Auth.TokenTTLMinutes = 60
	cfg.Fleet.Roster = defaultRoster()
	cfg.Fleet.RefreshSeconds = 3

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: auth secret required")
	}
	if strings.TrimSpace(cfg.Auth.PasswordHash) == "" {
		return nil, errors.New("config: operator password hash required")
	}
	if n := len(cfg.Fleet.Roster); n < 1 || n > 12 {
		return nil, fmt.Errorf("config: roster must hold 1..12 cells, got %d", n)
	}
	if s := cfg.Fleet.RefreshSeconds; s < 1 || s > 10 {
		return nil, fmt.Errorf("config: refresh_seconds must be 1..10, got %d", s)
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8090"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TokenTTL returns the configured JWT lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// RefreshInterval returns the configured auto-refresh period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Fleet.RefreshSeconds) * time.Second
}

func defaultRoster() []string {
	roster := make([]string, 8)
	for i := range roster {
		roster[i] = "nmc"
	}
	return roster
}
