package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintelhq/lintel/internal/config"
	"github.com/lintelhq/lintel/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Plan != "" {
		t.Error("expected empty Plan")
	}

	if cfg.APIAddr != "" {
		t.Error("expected empty APIAddr")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
plan = "site.yaml"
api_addr = "localhost:8123"
zoom = "quarter"
year = 2026

[assistant]
endpoint = "https://llm.example.com/v1beta/models"
model = "gemini-2.0-flash"
key_env = "SITE_LLM_KEY"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "lintel.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Plan != "site.yaml" {
		t.Errorf("Plan = %q, expected %q", cfg.Plan, "site.yaml")
	}
	if cfg.APIAddr != "localhost:8123" {
		t.Errorf("APIAddr = %q, expected %q", cfg.APIAddr, "localhost:8123")
	}
	if cfg.Zoom != "quarter" {
		t.Errorf("Zoom = %q, expected %q", cfg.Zoom, "quarter")
	}
	if cfg.Year != 2026 {
		t.Errorf("Year = %d, expected 2026", cfg.Year)
	}
	if cfg.Assistant.Model != "gemini-2.0-flash" {
		t.Errorf("Assistant.Model = %q, expected %q", cfg.Assistant.Model, "gemini-2.0-flash")
	}
	if cfg.Assistant.KeyEnv != "SITE_LLM_KEY" {
		t.Errorf("Assistant.KeyEnv = %q, expected %q", cfg.Assistant.KeyEnv, "SITE_LLM_KEY")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `this is not valid toml [`

	if err := os.WriteFile(filepath.Join(tmpDir, "lintel.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "lintel")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
zoom = "month"
year = 2025

[assistant]
model = "global-model"
`

	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	workDir := t.TempDir()
	cfg, err := config.Load(workDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Zoom != "month" {
		t.Errorf("Zoom = %q, expected %q", cfg.Zoom, "month")
	}
	if cfg.Year != 2025 {
		t.Errorf("Year = %d, expected 2025", cfg.Year)
	}
	if cfg.Assistant.Model != "global-model" {
		t.Errorf("Assistant.Model = %q, expected %q", cfg.Assistant.Model, "global-model")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "lintel")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	globalContent := `
plan = "global.yaml"
zoom = "month"

[assistant]
model = "global-model"
`
	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
zoom = "week"

[assistant]
model = "project-model"
`

	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "lintel.toml"), []byte(projectContent), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Plan != "global.yaml" {
		t.Errorf("Plan = %q, expected %q", cfg.Plan, "global.yaml")
	}
	if cfg.Zoom != "week" {
		t.Errorf("Zoom = %q, expected %q", cfg.Zoom, "week")
	}
	if cfg.Assistant.Model != "project-model" {
		t.Errorf("Assistant.Model = %q, expected %q", cfg.Assistant.Model, "project-model")
	}
}

func TestLoad_ProjectEmptyOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "lintel")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	globalContent := `
zoom = "month"

[assistant]
model = "global-model"
`
	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
zoom = ""

[assistant]
model = ""
`

	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "lintel.toml"), []byte(projectContent), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Zoom != "" {
		t.Errorf("Zoom = %q, expected empty string", cfg.Zoom)
	}
	if cfg.Assistant.Model != "" {
		t.Errorf("Assistant.Model = %q, expected empty string", cfg.Assistant.Model)
	}
}

func TestAssistant_APIKey(t *testing.T) {
	t.Setenv(config.DefaultKeyEnv, "default-key")
	t.Setenv("OTHER_KEY", "other-key")

	var a config.Assistant
	if got := a.APIKey(); got != "default-key" {
		t.Errorf("APIKey() = %q, expected %q", got, "default-key")
	}

	a.KeyEnv = "OTHER_KEY"
	if got := a.APIKey(); got != "other-key" {
		t.Errorf("APIKey() = %q, expected %q", got, "other-key")
	}
}
