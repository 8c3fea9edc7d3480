package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPrefix+"ENV_FILE", "")
	for _, k := range envKeys {
		name := EnvPrefix + k.name
		prev, ok := os.LookupEnv(name)
		os.Unsetenv(name)
		t.Cleanup(func() {
			if ok {
				os.Setenv(name, prev)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPMARK_THEME", "dark")
	t.Setenv("SNAPMARK_MIN_SELECTION", "50")
	t.Setenv("SNAPMARK_NOTIFY_SAVE", "true")
	t.Setenv("SNAPMARK_DEFAULT_COLOR", "#123456")

	cfg := New()
	cfg.Theme = "default"
	if err := ApplyEnv(cfg, ""); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.Overlay.MinSelection != 50 {
		t.Errorf("min selection = %d", cfg.Overlay.MinSelection)
	}
	if !cfg.Notify.Save {
		t.Errorf("notify save should be on")
	}
	if cfg.Overlay.DefaultColor != (color.RGBA{0x12, 0x34, 0x56, 255}) {
		t.Errorf("default color = %v", cfg.Overlay.DefaultColor)
	}
}

func TestApplyEnvDotenvLosesToProcessEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "snapmark.env")
	data := "SNAPMARK_SAVE_DIR=/from/file\nSNAPMARK_LONG_PRESS_MS=200\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNAPMARK_SAVE_DIR", "/from/env")

	cfg := New()
	if err := ApplyEnv(cfg, path); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.SaveDir != "/from/env" {
		t.Errorf("save dir = %q, process env should win", cfg.SaveDir)
	}
	if cfg.Overlay.LongPressMS != 200 {
		t.Errorf("long press = %d, want value from the env file", cfg.Overlay.LongPressMS)
	}
	if os.Getenv("SNAPMARK_LONG_PRESS_MS") != "" {
		t.Errorf("env file must not leak into the process environment")
	}
}

func TestApplyEnvFileFromVariable(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "x.env")
	if err := os.WriteFile(path, []byte("SNAPMARK_DEFAULT_WIDTH=9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNAPMARK_ENV_FILE", path)
	cfg := New()
	if err := ApplyEnv(cfg, ""); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Overlay.DefaultWidth != 9 {
		t.Fatalf("default width = %d", cfg.Overlay.DefaultWidth)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	clearEnv(t)
	if err := ApplyEnv(New(), filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("an explicit missing env file should be an error")
	}
	t.Setenv("SNAPMARK_HANDLE_SIZE", "huge")
	err := ApplyEnv(New(), "")
	if err == nil || !strings.Contains(err.Error(), "SNAPMARK_HANDLE_SIZE") {
		t.Fatalf("error = %v", err)
	}
}
