package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colorkeep.toml")

	content := `
monitor_match = "LG ULTRAGEAR"
profile_name = "custom.icm"
stabilize_delay_ms = 2000
toggle_delay_ms = 100
reapply_delay_ms = 50
refresh_display_settings = true
refresh_broadcast_color = false
refresh_invalidate = false
refresh_calibration_loader = true
toast_enabled = false
verbose = true
`
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.MonitorMatch != "LG ULTRAGEAR" {
		t.Fatalf("monitor_match: got %q", cfg.MonitorMatch)
	}
	if cfg.ProfileName != "custom.icm" {
		t.Fatalf("profile_name: got %q", cfg.ProfileName)
	}
	if cfg.StabilizeDelayMs != 2000 || cfg.ToggleDelayMs != 100 || cfg.ReapplyDelayMs != 50 {
		t.Fatalf("delays: got %d/%d/%d", cfg.StabilizeDelayMs, cfg.ToggleDelayMs, cfg.ReapplyDelayMs)
	}
	if cfg.RefreshBroadcastColor || cfg.RefreshInvalidate {
		t.Fatalf("expected broadcast/invalidate refresh disabled")
	}
	if !cfg.RefreshDisplaySettings || !cfg.RefreshCalibrationLoader {
		t.Fatalf("expected display-settings/calibration refresh enabled")
	}
	if cfg.ToastEnabled {
		t.Fatalf("expected toast disabled")
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorkeep.toml")
	if err := os.WriteFile(path, []byte("monitor_match = [broken"), 0o640); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorkeep.toml")
	if err := os.WriteFile(path, []byte(`monitor_match = "DELL"`), 0o640); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MonitorMatch != "DELL" {
		t.Fatalf("monitor_match: got %q", cfg.MonitorMatch)
	}
	if cfg.ProfileName != Default().ProfileName {
		t.Fatalf("expected default profile_name, got %q", cfg.ProfileName)
	}
	if cfg.StabilizeDelayMs != Default().StabilizeDelayMs {
		t.Fatalf("expected default stabilize delay, got %d", cfg.StabilizeDelayMs)
	}
}

func TestLoadClampsNegativeDelays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorkeep.toml")
	if err := os.WriteFile(path, []byte("toggle_delay_ms = -5"), 0o640); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ToggleDelayMs != Default().ToggleDelayMs {
		t.Fatalf("expected clamped toggle delay, got %d", cfg.ToggleDelayMs)
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colorkeep.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written default: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
}
