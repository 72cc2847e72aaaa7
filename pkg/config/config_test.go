package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig_TabType verifies the default session tag is set
func TestDefaultConfig_TabType(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Panel.TabType != "featuredev" {
		t.Errorf("expected featuredev tab type, got %q", cfg.Panel.TabType)
	}
}

// TestDefaultConfig_Host verifies host defaults
func TestDefaultConfig_Host(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host.WSUrl == "" {
		t.Error("host ws_url should have a default value")
	}
	if cfg.Host.ReconnectInterval == 0 {
		t.Error("reconnect interval should have a default value")
	}
}

// TestLoadConfig_MissingFile verifies defaults survive a missing file
func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Panel.TabType != "featuredev" {
		t.Errorf("expected default tab type, got %q", cfg.Panel.TabType)
	}
}

// TestLoadConfig_FileOverride verifies JSON values override defaults
func TestLoadConfig_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"host": {"ws_url": "ws://example.test/panel", "reconnect_interval": 9}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Host.WSUrl != "ws://example.test/panel" {
		t.Errorf("ws_url not loaded from file, got %q", cfg.Host.WSUrl)
	}
	if cfg.Host.ReconnectInterval != 9 {
		t.Errorf("reconnect_interval not loaded from file, got %d", cfg.Host.ReconnectInterval)
	}
	if cfg.Panel.TabType != "featuredev" {
		t.Errorf("untouched sections should keep defaults, got %q", cfg.Panel.TabType)
	}
}

// TestLoadConfig_EnvOverride verifies env beats both file and defaults
func TestLoadConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"panel": {"tab_type": "filecfg"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PANELCLAW_PANEL_TAB_TYPE", "fromenv")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Panel.TabType != "fromenv" {
		t.Errorf("env override not applied, got %q", cfg.Panel.TabType)
	}
}

func TestResolveEnvRef(t *testing.T) {
	t.Setenv("PANELCLAW_TEST_HOST_URL", "ws://resolved.test/panel")

	if got := resolveEnvRef("${PANELCLAW_TEST_HOST_URL}"); got != "ws://resolved.test/panel" {
		t.Fatalf("expected env ref to resolve, got %q", got)
	}
}

func TestResolveEnvRefKeepsOriginalWhenUnset(t *testing.T) {
	_ = os.Unsetenv("PANELCLAW_UNSET_HOST_URL")
	raw := "${PANELCLAW_UNSET_HOST_URL}"
	if got := resolveEnvRef(raw); got != raw {
		t.Fatalf("expected unresolved ref to stay unchanged, got %q", got)
	}
}
