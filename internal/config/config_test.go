package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{EnvDataDir, EnvLogLevel, EnvTheme, EnvAddr, EnvMonthly} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{EnvDataDir, EnvLogLevel, EnvTheme, EnvAddr, EnvMonthly} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "payoff", "config.toml")

	cfg := DefaultConfig()
	cfg.General.DataDir = "/var/lib/payoff"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Invest.Years = 25
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}
	if !Exists(path) {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvDataDir, "/tmp/payoff-data")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "terminal")
	t.Setenv(EnvAddr, ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir() != "/tmp/payoff-data" || cfg.General.LogLevel != "debug" ||
		cfg.Appearance.Theme != "terminal" || cfg.Server.Addr != ":9999" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if want := filepath.Join("/tmp/payoff-data", "payoff.db"); cfg.DBPath() != want {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath(), want)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nlog_level = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded on invalid TOML")
	}
}

func TestDefaultDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultDataDir(); got != filepath.Join("/xdg/data", "payoff") {
		t.Fatalf("DefaultDataDir = %q", got)
	}
}
