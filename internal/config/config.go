// Package config loads payoff's TOML configuration and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all payoff configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Invest     InvestConfig     `toml:"invest"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds storage and logging settings.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	LogLevel string `toml:"log_level"`
}

// AppearanceConfig holds the default theme for a device that never picked one.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// InvestConfig seeds the investment projection.
type InvestConfig struct {
	MonthlyContribution float64 `toml:"monthly_contribution"`
	AnnualReturnPct     float64 `toml:"annual_return_pct"`
	Years               float64 `toml:"years"`
}

// ServerConfig holds the local API listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Environment variables that override file values.
const (
	EnvDataDir  = "PAYOFF_DATA_DIR"
	EnvLogLevel = "PAYOFF_LOG_LEVEL"
	EnvTheme    = "PAYOFF_THEME"
	EnvAddr     = "PAYOFF_ADDR"
	EnvMonthly  = "PAYOFF_INVEST_MONTHLY"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Invest: InvestConfig{
			MonthlyContribution: 200,
			AnnualReturnPct:     7,
			Years:               10,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7878",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "payoff")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "payoff")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "payoff")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "payoff")
}

// DataDir returns the configured data directory or the XDG default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// DBPath returns the kv database location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "payoff.db")
}

// LogPath returns the file the dashboard logs to.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir(), "payoff.log")
}

// Load reads the config file at path (ConfigPath when empty), returning
// defaults if it doesn't exist, then applies environment overrides. A .env
// file in the working directory is loaded first when present.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	_ = godotenv.Load()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvMonthly); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMonthly, err)
		}
		cfg.Invest.MonthlyContribution = f
	}
	return nil
}

// Save writes the config to path (ConfigPath when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists at path (ConfigPath when empty).
func Exists(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}
