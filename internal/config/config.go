package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const envConfigPath = "COLORKEEP_CONFIG"

// Config controls monitor matching, reapply timing and refresh behaviour.
// It is immutable for the duration of a reapply cycle; the host reloads it
// only between cycles.
type Config struct {
	// MonitorMatch is a case-insensitive substring matched against monitor
	// friendly names. Empty matches every attached monitor.
	MonitorMatch string `toml:"monitor_match"`
	// ProfileName is the ICC/ICM profile file name, resolved against the
	// system color directory unless absolute.
	ProfileName string `toml:"profile_name"`

	StabilizeDelayMs int `toml:"stabilize_delay_ms"`
	ToggleDelayMs    int `toml:"toggle_delay_ms"`
	ReapplyDelayMs   int `toml:"reapply_delay_ms"`

	RefreshDisplaySettings   bool `toml:"refresh_display_settings"`
	RefreshBroadcastColor    bool `toml:"refresh_broadcast_color"`
	RefreshInvalidate        bool `toml:"refresh_invalidate"`
	RefreshCalibrationLoader bool `toml:"refresh_calibration_loader"`

	ToastEnabled bool   `toml:"toast_enabled"`
	ToastTitle   string `toml:"toast_title"`
	ToastBody    string `toml:"toast_body"`

	Verbose bool `toml:"verbose"`
}

// Default returns the documented defaults, used whenever the config file is
// missing or malformed.
func Default() Config {
	return Config{
		MonitorMatch:             "LG ULTRAGEAR",
		ProfileName:              "sRGB Color Space Profile.icm",
		StabilizeDelayMs:         1500,
		ToggleDelayMs:            250,
		ReapplyDelayMs:           250,
		RefreshDisplaySettings:   true,
		RefreshBroadcastColor:    true,
		RefreshInvalidate:        true,
		RefreshCalibrationLoader: true,
		ToastEnabled:             true,
		ToastTitle:               "ColorKeep",
		ToastBody:                "Color profile reapplied.",
		Verbose:                  false,
	}
}

func (c Config) StabilizeDelay() time.Duration {
	return time.Duration(c.StabilizeDelayMs) * time.Millisecond
}

func (c Config) ToggleDelay() time.Duration {
	return time.Duration(c.ToggleDelayMs) * time.Millisecond
}

func (c Config) ReapplyDelay() time.Duration {
	return time.Duration(c.ReapplyDelayMs) * time.Millisecond
}

// DefaultPath returns the config file location under ProgramData.
func DefaultPath() string {
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "ColorKeep", "colorkeep.toml")
}

// Path resolves the config file path from the environment override, falling
// back to DefaultPath.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads and parses the TOML config at path. On any failure the returned
// Config is Default() and the error describes why the file was unusable;
// callers log it and continue (a missing or broken config is never fatal).
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Default(), fmt.Errorf("read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg.clamp()
	return cfg, nil
}

// clamp repairs out-of-range values rather than rejecting the file.
func (c *Config) clamp() {
	if c.StabilizeDelayMs < 0 {
		c.StabilizeDelayMs = Default().StabilizeDelayMs
	}
	if c.ToggleDelayMs < 0 {
		c.ToggleDelayMs = Default().ToggleDelayMs
	}
	if c.ReapplyDelayMs < 0 {
		c.ReapplyDelayMs = Default().ReapplyDelayMs
	}
}

// WriteDefault writes the default config to path, creating parent
// directories. The write is atomic: temp file then rename.
func WriteDefault(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("ensure config dir %q: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o640); err != nil {
		return fmt.Errorf("write temp config %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit config %q: %w", path, err)
	}

	return nil
}
