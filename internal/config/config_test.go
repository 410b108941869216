package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// TestDefaultPageSize verifies results are paged by 5
func TestDefaultPageSize(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PageSize != 5 {
		t.Errorf("Default page size = %d, want 5", cfg.PageSize)
	}
	if cfg.StrictUpdates {
		t.Error("Strict updates should be off by default")
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultConfig()
	want := filepath.Join("/tmp/xdg-data", "phonebook", "phonebook.json")
	if cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "db_path: /srv/contacts.json\npage_size: 10\nstrict_updates: true\nlog:\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DBPath != "/srv/contacts.json" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if !cfg.StrictUpdates {
		t.Error("StrictUpdates should be true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default text", cfg.Log.Format)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PHONEBOOK_PAGE_SIZE", "7")
	t.Setenv("PHONEBOOK_LOG_FORMAT", "json")

	cfg, err := load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.PageSize != 7 {
		t.Errorf("PageSize = %d, want 7", cfg.PageSize)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("page_size: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := load(viper.New(), dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageSize = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want clamp to 5", cfg.PageSize)
	}

	cfg.DBPath = " "
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty db_path")
	}

	cfg = DefaultConfig()
	cfg.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.PageSize = 12

	path, err := Save(cfg, dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Errorf("path = %q", path)
	}

	loaded, err := load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", loaded.PageSize)
	}
}
