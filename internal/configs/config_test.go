package configs

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	config, err := Load(path, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Path != "" {
		t.Errorf("Expected empty path, got %q", config.Path)
	}
	if len(config.Values()) != 0 {
		t.Errorf("Expected no values, got %v", config.Values())
	}

	if _, err := Load(path, true); err == nil {
		t.Error("Expected error for missing required config, got nil")
	}
}

func TestLoadOnlyDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
count = 32
low = 0
sskr_format = "btwm"
groups = ["2-of-3", "3-of-5"]
`)

	config, err := Load(path, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := map[string][]string{
		"count":       {"32"},
		"low":         {"0"},
		"sskr_format": {"btwm"},
		"groups":      {"2-of-3", "3-of-5"},
	}
	if got := config.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if config.IsSet("high") {
		t.Error("Expected high not to be set")
	}
	if !config.IsSet("low") {
		t.Error("Expected explicit zero low to be set")
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "count = 16\ncolour = \"red\"\n")

	config, err := Load(path, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := config.Unknown(); len(got) != 1 || got[0] != "colour" {
		t.Errorf("Expected [colour], got %v", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "count = = 3\n")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error to name %s, got %v", path, err)
	}
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seedtool", "config.toml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	config, err := Load(path, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, key := range Keys {
		if !config.IsSet(key) {
			t.Errorf("Expected %s to be set", key)
		}
	}
	if config.Out != "hex" || config.Count != 16 || config.Groups[0] != "1-of-1" {
		t.Errorf("Unexpected defaults: %+v", config)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("seedtool", "config.toml")) {
		t.Errorf("Expected path ending in seedtool/config.toml, got %s", path)
	}
}

func TestDefinedKeepsTypes(t *testing.T) {
	path := writeConfig(t, "count = 32\nout = \"sskr\"\n")

	config, err := Load(path, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := map[string]any{"count": 32, "out": "sskr"}
	if got := config.Defined(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
