package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config dir at a temp directory and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range EnvVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, DefaultConfig())
	}
	if Exists() {
		t.Error("Exists() = true without a config file")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	writeConfig(t, `
[storage]
path = "/data/spending.db"

[display]
currency = "€"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/data/spending.db" {
		t.Errorf("Storage.Path = %q, want /data/spending.db", cfg.Storage.Path)
	}
	if cfg.Display.Currency != "€" {
		t.Errorf("Currency = %q, want €", cfg.Display.Currency)
	}
	if cfg.Display.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want default flexoki-dark", cfg.Display.Theme)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want default warn", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	writeConfig(t, `
[storage]
path = "from-file.json"

[log]
level = "info"
`)
	t.Setenv("XPENSE_FILE", "from-env.json")
	t.Setenv("XPENSE_BACKEND", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "from-env.json" {
		t.Errorf("Storage.Path = %q, want from-env.json", cfg.Storage.Path)
	}
	if cfg.Storage.Backend != "json" {
		t.Errorf("Storage.Backend = %q, want json", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info from file", cfg.Log.Level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	isolate(t)
	writeConfig(t, "[storage\npath = ")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v, want parsing config error", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	isolate(t)

	want := DefaultConfig()
	want.Storage.Path = "ledger.sqlite"
	want.Storage.Backend = "sqlite"
	want.Display.Theme = "terminal"

	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}
	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("XPENSE_CURRENCY=£\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("XPENSE_CURRENCY") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Currency != "£" {
		t.Errorf("Currency = %q, want £", cfg.Display.Currency)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.Storage.Backend = "postgres"
	if err := bad.Validate(); err == nil {
		t.Error("unknown backend accepted")
	}

	bad = DefaultConfig()
	bad.Log.Level = "chatty"
	if err := bad.Validate(); err == nil {
		t.Error("unknown log level accepted")
	}

	bad = DefaultConfig()
	bad.Storage.Path = ""
	if err := bad.Validate(); err == nil {
		t.Error("empty path accepted")
	}
}
