package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Panel   PanelConfig   `json:"panel"`
	Host    HostConfig    `json:"host"`
	Logging LoggingConfig `json:"logging"`
}

// PanelConfig scopes this panel's session category on a shared transport.
type PanelConfig struct {
	TabType string `json:"tab_type" env:"PANELCLAW_PANEL_TAB_TYPE"`
}

// HostConfig locates the host process the panel connects to.
type HostConfig struct {
	WSUrl             string `json:"ws_url" env:"PANELCLAW_HOST_WS_URL"`
	ReconnectInterval int    `json:"reconnect_interval" env:"PANELCLAW_HOST_RECONNECT_INTERVAL"` // seconds
}

type LoggingConfig struct {
	FileEnabled bool   `json:"file_enabled" env:"PANELCLAW_LOGGING_FILE_ENABLED"`
	FilePath    string `json:"file_path" env:"PANELCLAW_LOGGING_FILE_PATH"`
	MaxSizeMB   int    `json:"max_size_mb" env:"PANELCLAW_LOGGING_MAX_SIZE_MB"`
}

func DefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			TabType: "featuredev",
		},
		Host: HostConfig{
			WSUrl:             "ws://127.0.0.1:18890/panel",
			ReconnectInterval: 5,
		},
		Logging: LoggingConfig{
			FileEnabled: false,
			FilePath:    "~/.panelclaw/panelclaw.log",
			MaxSizeMB:   50,
		},
	}
}

// LoadConfig reads the JSON config at path over the defaults, then applies
// PANELCLAW_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.Host.WSUrl = resolveEnvRef(cfg.Host.WSUrl)

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LogFilePath returns the configured log path with ~ expanded.
func (c *Config) LogFilePath() string {
	return expandHome(c.Logging.FilePath)
}

// resolveEnvRef resolves "$VAR" and "${VAR}" values against the
// environment, leaving unresolved refs unchanged.
func resolveEnvRef(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return v
	}
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		key := strings.TrimSpace(s[2 : len(s)-1])
		if key == "" {
			return v
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return v
	}
	if strings.HasPrefix(s, "$") && len(s) > 1 {
		if val, ok := os.LookupEnv(strings.TrimSpace(s[1:])); ok {
			return val
		}
	}
	return v
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
