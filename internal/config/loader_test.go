package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agent.Model != def.Agent.Model {
		t.Errorf("expected default model %q, got %q", def.Agent.Model, cfg.Agent.Model)
	}
	if cfg.Agent.Dialect != def.Agent.Dialect {
		t.Errorf("expected default dialect %q, got %q", def.Agent.Dialect, cfg.Agent.Dialect)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"agent": {"model": "llama3.2:3b", "dialect": "fenced", "maxIterations": 3}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Model != "llama3.2:3b" {
		t.Errorf("expected model llama3.2:3b, got %q", cfg.Agent.Model)
	}
	if cfg.Agent.Dialect != "fenced" {
		t.Errorf("expected dialect fenced, got %q", cfg.Agent.Dialect)
	}
	if cfg.Agent.MaxIterations != 3 {
		t.Errorf("expected maxIterations 3, got %d", cfg.Agent.MaxIterations)
	}
}

func TestLoad_PartialConfig_UsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"agent": {"model": "custom"}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Model != "custom" {
		t.Errorf("expected model custom, got %q", cfg.Agent.Model)
	}
	if cfg.Ollama.BaseURL != DefaultConfig().Ollama.BaseURL {
		t.Errorf("expected default base URL, got %q", cfg.Ollama.BaseURL)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected fallback to defaults, got: %v", err)
	}
	if cfg.Agent.Model != DefaultConfig().Agent.Model {
		t.Errorf("expected default model, got %q", cfg.Agent.Model)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	original := DefaultConfig()
	original.Agent.Model = "mistral:7b"
	original.Agent.Dialect = "hermes"

	if err := Save(&original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Agent.Model != original.Agent.Model {
		t.Errorf("model mismatch: got %q", loaded.Agent.Model)
	}
	if loaded.Agent.Dialect != original.Agent.Dialect {
		t.Errorf("dialect mismatch: got %q", loaded.Agent.Dialect)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}
