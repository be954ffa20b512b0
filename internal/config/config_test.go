package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	if cfg.Endpoint != "http://localhost:11434" {
		t.Errorf("unexpected default endpoint: %q", cfg.Endpoint)
	}

	if cfg.ContextWindow != 4096 {
		t.Errorf("unexpected default context window: %d", cfg.ContextWindow)
	}
}

func TestLoadOrCreate_ParsesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
bind = ":9000"
endpoint = "http://127.0.0.1:8080"
context_window = 2048
reserved_output_tokens = 512
timeout_seconds = 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}

	if cfg.Bind != ":9000" {
		t.Errorf("bind mismatch: %q", cfg.Bind)
	}

	if cfg.MaxInputTokens() != 1536 {
		t.Errorf("MaxInputTokens mismatch: %d", cfg.MaxInputTokens())
	}

	if cfg.RequestTimeout().Seconds() != 30 {
		t.Errorf("timeout mismatch: %v", cfg.RequestTimeout())
	}

	// Fields absent from the file keep their defaults.
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Error("expected default system prompt to be preserved")
	}
}

func TestLoadOrCreate_RejectsBadBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
endpoint = "http://127.0.0.1:8080"
context_window = 1024
reserved_output_tokens = 2048
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected error for reserve larger than context window")
	}
}

func TestLoadOrCreate_RejectsEmptyEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`endpoint = "  "`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
