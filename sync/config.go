// ABOUTME: Uplink configuration for the sync backend
// ABOUTME: JSON file at the XDG data dir with environment variable overrides
package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// UplinkConfig stores backend connection settings for reconciliation.
type UplinkConfig struct {
	Server        string `json:"server"`
	Token         string `json:"token,omitempty"`
	GeneratorURL  string `json:"generator_url,omitempty"`
	SchoolDirURL  string `json:"school_directory_url,omitempty"`
	WatchInterval int    `json:"watch_interval_seconds,omitempty"`
}

// ConfigDir returns the XDG-compliant directory for uplink configuration.
func ConfigDir() string {
	return filepath.Join(xdg.DataHome, "mobitec")
}

// ConfigPath returns the XDG-compliant path of the uplink config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "uplink-config.json")
}

// LoadConfig loads the uplink configuration. A missing file yields the
// defaults. Environment variables override file values:
// - MOBITEC_SERVER
// - MOBITEC_TOKEN
// - MOBITEC_GENERATOR_URL
// - MOBITEC_SCHOOL_DIR_URL.
func LoadConfig() (*UplinkConfig, error) {
	cfg := &UplinkConfig{WatchInterval: 30}

	f, err := os.Open(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open uplink config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode uplink config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *UplinkConfig) {
	if server := os.Getenv("MOBITEC_SERVER"); server != "" {
		cfg.Server = server
	}
	if token := os.Getenv("MOBITEC_TOKEN"); token != "" {
		cfg.Token = token
	}
	if genURL := os.Getenv("MOBITEC_GENERATOR_URL"); genURL != "" {
		cfg.GeneratorURL = genURL
	}
	if dirURL := os.Getenv("MOBITEC_SCHOOL_DIR_URL"); dirURL != "" {
		cfg.SchoolDirURL = dirURL
	}
}

// SaveConfig writes the uplink configuration with restricted permissions.
func SaveConfig(cfg *UplinkConfig) error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create uplink config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode uplink config: %w", err)
	}
	return nil
}

// IsConfigured reports whether a real backend is set. Without one, the
// app runs fully offline against the stub uplink.
func (c *UplinkConfig) IsConfigured() bool {
	return c.Server != ""
}

// NewUplink builds the uplink the config describes: HTTP when a server
// is configured, the local stub otherwise.
func (c *UplinkConfig) NewUplink() Uplink {
	if c.IsConfigured() {
		return NewHTTPUplink(c.Server, c.Token)
	}
	return NewStubUplink()
}
