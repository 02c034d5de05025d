package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/heurisko/internal/render"
)

func TestValidateConfig_Defaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateConfig_InvalidColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = "puce"
	var ice *render.InvalidColorName
	if err := ValidateConfig(cfg); !errors.As(err, &ice) {
		t.Fatalf("expected InvalidColorName, got %v", err)
	}
	cfg.NoColor = true
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("color should be ignored with NoColor: %v", err)
	}
}

func TestValidateConfig_InvalidMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "server"
	if err := ValidateConfig(cfg); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestValidateConfig_Fields(t *testing.T) {
	cases := map[string]func(*Config){
		"bad url":          func(c *Config) { c.BaseURL = "not a url" },
		"negative limit":   func(c *Config) { c.Limit = -1 },
		"negative timeout": func(c *Config) { c.Timeout = -time.Second },
		"rewrite no model": func(c *Config) { c.Rewrite = true },
		"batch no query":   func(c *Config) { c.Mode = ModeBatch; c.BatchQuery = "" },
	}
	for name, mut := range cases {
		cfg := DefaultConfig()
		mut(&cfg)
		if err := ValidateConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "heurisko.yaml")
	content := `mode: batch
server:
  url: http://search.local:8000
  timeout: 3s
display:
  color: bright_green
  timing: true
batch:
  query: love one another
  pages: 4
interactive:
  context: 7
  removeStopWords: true
export:
  html: out.html
rewrite:
  enable: true
  model: local-model
`
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	if cfg.Mode != ModeBatch || cfg.BaseURL != "http://search.local:8000" || cfg.Timeout != 3*time.Second {
		t.Fatalf("server/mode not applied: %+v", cfg)
	}
	if cfg.Color != "bright_green" || !cfg.ShowTiming {
		t.Fatalf("display not applied: %+v", cfg)
	}
	if cfg.BatchQuery != "love one another" || cfg.Pages != 4 || cfg.BatchContext != 3 {
		t.Fatalf("batch not applied: %+v", cfg)
	}
	if cfg.Context != 7 || !cfg.RemoveStopWords || cfg.HTMLPath != "out.html" {
		t.Fatalf("interactive/export not applied: %+v", cfg)
	}
	if !cfg.Rewrite || cfg.LLMModel != "local-model" {
		t.Fatalf("rewrite not applied: %+v", cfg)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("overlaid config should validate: %v", err)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "heurisko.json")
	if err := os.WriteFile(p, []byte(`{"display":{"limit":3},"server":{"url":"http://x:1"}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	if cfg.Limit != 3 || cfg.BaseURL != "http://x:1" {
		t.Fatalf("json not applied: %+v", cfg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HEURISKO_URL", "http://env:9000")
	t.Setenv("HEURISKO_COLOR", "cyan")
	t.Setenv("HEURISKO_LIMIT", "4")
	t.Setenv("HEURISKO_TIMEOUT", "250ms")
	t.Setenv("HEURISKO_REMOVE_STOP_WORDS", "yes")
	t.Setenv("NO_COLOR", "1")

	cfg := DefaultConfig()
	cfg.BaseURL = "http://file:8000"
	ApplyEnvOverrides(&cfg)
	if cfg.BaseURL != "http://env:9000" || cfg.Color != "cyan" || cfg.Limit != 4 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Timeout != 250*time.Millisecond || !cfg.RemoveStopWords || !cfg.NoColor {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

// Explicit zeros and false in a file override the defaults.
func TestApplyFileConfig_ExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "heurisko.yml")
	content := "display:\n  limit: 0\nbatch:\n  context: 0\nserver:\n  timeout: \"0\"\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Normalize = true
	fc.Interactive.Normalize = new(bool)
	ApplyFileConfig(&cfg, fc)
	if cfg.Limit != 0 || cfg.BatchContext != 0 || cfg.Timeout != 0 {
		t.Fatalf("explicit zeros not applied: limit=%d context=%d timeout=%v", cfg.Limit, cfg.BatchContext, cfg.Timeout)
	}
	if cfg.Normalize {
		t.Fatalf("explicit false not applied")
	}
	if cfg.Pages != 20 {
		t.Fatalf("absent key should keep default, got pages=%d", cfg.Pages)
	}
}

func TestLoadConfigFile_JSONDurationString(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "heurisko.json")
	if err := os.WriteFile(p, []byte(`{"server":{"timeout":"1m30s"}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("timeout=%v, want 1m30s", cfg.Timeout)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"server":{"timeout":"soon"}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFile(bad); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
