package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/meltforce/gpacalc/internal/grade"
	"github.com/meltforce/gpacalc/internal/models"
	"github.com/meltforce/gpacalc/internal/roster"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Roster    RosterConfig    `yaml:"roster"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig protects mutating endpoints when APIKey is set.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// RosterConfig holds the values used for new courses and the initial view.
type RosterConfig struct {
	DefaultCredits int    `yaml:"default_credits"`
	DefaultGrade   string `yaml:"default_grade"`
	View           string `yaml:"view"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: "127.0.0.1", Port: 8080},
		Tailscale: TailscaleConfig{Hostname: "gpacalc", StateDir: "tsnet"},
		Roster: RosterConfig{
			DefaultCredits: roster.DefaultSettings.Credits,
			DefaultGrade:   string(roster.DefaultSettings.Grade),
			View:           string(roster.DefaultSettings.View),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix GPACALC_:
//
//	GPACALC_SERVER_HOST, GPACALC_SERVER_PORT, GPACALC_AUTH_API_KEY,
//	GPACALC_TAILSCALE_ENABLED, GPACALC_TAILSCALE_HOSTNAME,
//	GPACALC_DEFAULT_CREDITS, GPACALC_DEFAULT_GRADE, GPACALC_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GPACALC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GPACALC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GPACALC_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GPACALC_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("GPACALC_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("GPACALC_DEFAULT_CREDITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Roster.DefaultCredits = n
		}
	}
	if v := os.Getenv("GPACALC_DEFAULT_GRADE"); v != "" {
		cfg.Roster.DefaultGrade = v
	}
	if v := os.Getenv("GPACALC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if _, err := c.RosterDefaults(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// RosterDefaults converts the roster section into roster.Defaults.
func (c *Config) RosterDefaults() (roster.Defaults, error) {
	if err := models.ValidateCredits(c.Roster.DefaultCredits); err != nil {
		return roster.Defaults{}, fmt.Errorf("roster.default_credits: %w", err)
	}
	g, err := grade.Parse(c.Roster.DefaultGrade)
	if err != nil {
		return roster.Defaults{}, fmt.Errorf("roster.default_grade: %w", err)
	}
	v, err := models.ParseViewMode(c.Roster.View)
	if err != nil {
		return roster.Defaults{}, fmt.Errorf("roster.view: %w", err)
	}
	return roster.Defaults{Credits: c.Roster.DefaultCredits, Grade: g, View: v}, nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Addr returns the host:port the server listens on without Tailscale.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
