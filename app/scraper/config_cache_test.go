package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourceConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigCacheLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeSourceConfig(t, dir, "aerc", `url: "https://aerc.org/calendar"
settings:
  enabled: true
  refresh_interval: 7200
  timeout: 45
`)

	cc := NewConfigCache(dir)
	config, err := cc.LoadConfig("aerc")
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if config.Name != "aerc" {
		t.Errorf("Expected name derived from filename, got %s", config.Name)
	}
	if config.URL != "https://aerc.org/calendar" {
		t.Errorf("Unexpected URL: %s", config.URL)
	}
	if !config.Settings.Enabled {
		t.Error("Expected source to be enabled")
	}
	if config.Settings.RefreshInterval != 7200 {
		t.Errorf("Expected refresh interval 7200, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.Timeout != 45 {
		t.Errorf("Expected timeout 45, got %d", config.Settings.Timeout)
	}
}

func TestConfigCacheDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSourceConfig(t, dir, "aerc", `url: "https://aerc.org/calendar"
settings:
  enabled: true
`)

	cc := NewConfigCache(dir)
	config, err := cc.LoadConfig("aerc")
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if config.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", config.Settings.Timeout)
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	dir := t.TempDir()
	writeSourceConfig(t, dir, "broken", `settings:
  enabled: true
`)

	cc := NewConfigCache(dir)
	if _, err := cc.LoadConfig("broken"); err == nil {
		t.Error("Expected validation error for missing URL")
	}
}

func TestConfigCacheRun(t *testing.T) {
	dir := t.TempDir()
	writeSourceConfig(t, dir, "aerc", `url: "https://aerc.org/calendar"
settings:
  enabled: true
`)
	writeSourceConfig(t, dir, "disabled", `url: "https://example.com/calendar"
settings:
  enabled: false
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected Run to succeed, got: %v", err)
	}

	if cc.GetConfigCount() != 2 {
		t.Errorf("Expected 2 loaded configs, got %d", cc.GetConfigCount())
	}

	enabled := cc.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["aerc"]; !ok {
		t.Error("Expected aerc to be the enabled config")
	}

	if _, err := cc.GetConfig("missing"); err == nil {
		t.Error("Expected error for unknown source name")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	cc := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cc.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got: %v", err)
	}
	if cc.GetConfigCount() != 0 {
		t.Errorf("Expected no configs, got %d", cc.GetConfigCount())
	}
}
