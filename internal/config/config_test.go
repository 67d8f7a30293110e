package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Browser.ViewportWidth != 1920 || cfg.Browser.ViewportHeight != 1080 {
		t.Errorf("default viewport = %dx%d, want 1920x1080", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	}
	if cfg.Motion.DefaultTargetSize != 12 {
		t.Errorf("default target size = %v, want 12", cfg.Motion.DefaultTargetSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate cleanly: %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should not error: %v", err)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("missing-file load should still populate defaults")
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("motion:\n  steady: true\n  default_target_size: 20\nbrowser:\n  viewport_width: 1280\n  viewport_height: 800\n")
	if err := os.WriteFile(path, yaml, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Motion.Steady {
		t.Error("motion.steady should be true from YAML")
	}
	if cfg.Motion.DefaultTargetSize != 20 {
		t.Errorf("default_target_size = %v, want 20", cfg.Motion.DefaultTargetSize)
	}
	if cfg.Browser.ViewportWidth != 1280 || cfg.Browser.ViewportHeight != 800 {
		t.Errorf("viewport = %dx%d, want 1280x800", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("browser:\n  viewport_width: 1280\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("VIEWPORT_WIDTH", "640")
	t.Setenv("HEADLESS", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Browser.ViewportWidth != 640 {
		t.Errorf("viewport width = %d, want 640 (env override)", cfg.Browser.ViewportWidth)
	}
	if !cfg.Browser.Headless {
		t.Error("HEADLESS=true should override to headless mode")
	}
}

func TestValidateRejectsZeroViewport(t *testing.T) {
	cfg, _ := Load("")
	cfg.Browser.ViewportWidth = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a zero viewport width")
	}
}

func TestValidateRequiresDatabasePathWhenPersisting(t *testing.T) {
	cfg, _ := Load("")
	cfg.Recorder.Persist = true
	cfg.Storage.DatabasePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should require a database path when recorder.persist is true")
	}
}

func TestValidateRejectsOutOfRangeJitterIntensity(t *testing.T) {
	cfg, _ := Load("")
	cfg.Motion.IdleJitterIntensity = 5.0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject jitter intensity outside [0.5, 2.0]")
	}
}

func TestValidateRejectsEmptySessionID(t *testing.T) {
	cfg, _ := Load("")
	cfg.Recorder.SessionID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an empty session id")
	}
}
