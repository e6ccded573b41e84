package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
server:
  port: "9090"
  publicUrl: "http://localhost:5173"
redis:
  addr: "localhost:6379"
  ttl: "30m"
ai:
  model: "test-model"
  reportTimeout: "45s"
executor:
  url: "https://emkc.org/api/v2/piston/execute"
log:
  level: debug
  pretty: true
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Redis.Addr != "localhost:6379" || cfg.AI.Model != "test-model" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Log.Pretty || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if d := TTLDuration(cfg.AI.ReportTimeout, time.Second); d != 45*time.Second {
		t.Fatalf("expected 45s, got %v", d)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("EXECUTOR_URL", "http://piston:2000/api/v2/execute")

	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AI.APIKey != "secret" || cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Executor.URL != "http://piston:2000/api/v2/execute" {
		t.Fatalf("unexpected executor url %q", cfg.Executor.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if d := TTLDuration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", d)
	}
	if d := TTLDuration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for invalid, got %v", d)
	}
}
