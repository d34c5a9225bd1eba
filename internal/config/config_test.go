package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every variable Config reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENV", "LOG_PATH", "STORAGE_BACKEND", "CONSOLE_TITLE"} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("Unsetenv %s: %v", k, err)
		}
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" {
		t.Fatalf("expected env prod, got %q", cfg.Env)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Console.Title != "SAIT Enrollment Management System" {
		t.Fatalf("unexpected title %q", cfg.Console.Title)
	}
	if cfg.LogPath != "" {
		t.Fatalf("expected no log path, got %q", cfg.LogPath)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "dev")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("CONSOLE_TITLE", "Registrar")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.Storage.Backend != BackendSQLite || cfg.Console.Title != "Registrar" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
env: "staging"
log_path: "/tmp/enrollment.log"
storage:
  backend: "sqlite"
console:
  title: "Night School"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "staging" || cfg.LogPath != "/tmp/enrollment.log" ||
		cfg.Storage.Backend != BackendSQLite || cfg.Console.Title != "Night School" {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "env: \"dev\"\nstorage:\n  backend: \"sqlite\"\n")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("expected env to win, got %q", cfg.Storage.Backend)
	}
	if cfg.Console.Title == "" {
		t.Fatalf("expected default title for missing key")
	}
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	clearEnv(t)

	path := writeYAML(t, "env: \"dev\"\nstorage:\n  backend: \"postgres\"\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid backend to be rejected, got %v", err)
	}

	t.Setenv("ENV", "qa")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected invalid env to be rejected")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-file error, got %v", err)
	}
}

func TestLoad_BundledLocalConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "config", "local.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.Storage.Backend != BackendMemory {
		t.Fatalf("unexpected bundled config: %+v", cfg)
	}
}
