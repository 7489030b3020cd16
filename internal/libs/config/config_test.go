package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dsjohal14/fuzzr/internal/scope/search"
)

func TestLoad(t *testing.T) {
	// Test with default values
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel=info, got %s", cfg.LogLevel)
	}

	if cfg.Search.Oracle != "fzf" {
		t.Errorf("expected default oracle fzf, got %s", cfg.Search.Oracle)
	}

	if cfg.DatabaseURL != "" {
		t.Errorf("expected no database by default, got %s", cfg.DatabaseURL)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FUZZR_ORACLE", "sahilm")
	t.Setenv("FUZZR_MAX_ITEMS", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}
	if cfg.Search.Oracle != "sahilm" {
		t.Errorf("expected oracle sahilm, got %s", cfg.Search.Oracle)
	}
	if cfg.Search.MaxItems != 50 {
		t.Errorf("expected max items 50, got %d", cfg.Search.MaxItems)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuzzr.yaml")
	content := `
log_level: warn
server:
  port: "7000"
search:
  surround: ["<em>", "</em>"]
  dedup: last
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FUZZR_CONFIG", path)
	t.Setenv("API_PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel=warn from file, got %s", cfg.LogLevel)
	}
	if cfg.Server.Port != "7100" {
		t.Errorf("expected env to override file port, got %s", cfg.Server.Port)
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		t.Fatalf("SearchOptions() failed: %v", err)
	}
	if opts.Surround == nil || opts.Surround.Prefix != "<em>" || opts.Surround.Suffix != "</em>" {
		t.Errorf("unexpected surround %+v", opts.Surround)
	}
	if opts.Dedup != search.DedupLast {
		t.Errorf("expected dedup last, got %v", opts.Dedup)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown oracle", map[string]string{"FUZZR_ORACLE": "soundex"}},
		{"bad dedup", map[string]string{"FUZZR_DEDUP": "random"}},
		{"bad max items", map[string]string{"FUZZR_MAX_ITEMS": "lots"}},
		{"negative max items", map[string]string{"FUZZR_MAX_ITEMS": "-1"}},
		{"missing file", map[string]string{"FUZZR_CONFIG": "/nonexistent/fuzzr.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSurroundMustBePair(t *testing.T) {
	cfg := Default()
	cfg.Search.Surround = []string{"only-one"}

	if err := cfg.Validate(); err == nil {
		t.Error("expected configuration error for a single marker")
	}
}
