package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBasicConfig(t *testing.T) {
	yaml := `
ratings:
  path: /data/ratings.csv
  source: store
defaults:
  top_n: 10
store:
  path: /tmp/movierec.db
log:
  level: debug
  file: /tmp/movierec.log
  max_size_mb: 50
  max_backups: 7
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Ratings.Path != "/data/ratings.csv" {
		t.Errorf("expected ratings path, got %q", cfg.Ratings.Path)
	}
	if cfg.Ratings.Source != SourceStore {
		t.Errorf("expected source 'store', got %q", cfg.Ratings.Source)
	}
	if cfg.Defaults.TopN != 10 {
		t.Errorf("expected top_n 10, got %d", cfg.Defaults.TopN)
	}
	if cfg.Store.Path != "/tmp/movierec.db" {
		t.Errorf("expected store path, got %q", cfg.Store.Path)
	}
	if cfg.Log.File != "/tmp/movierec.log" || cfg.Log.MaxSizeMB != 50 || cfg.Log.MaxBackups != 7 {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Log.SlogLevel())
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Defaults.TopN != 5 {
		t.Errorf("expected default top_n 5, got %d", cfg.Defaults.TopN)
	}
	if cfg.Ratings.Source != SourceCSV {
		t.Errorf("expected default source csv, got %q", cfg.Ratings.Source)
	}
	if cfg.Ratings.Path != "ratings.csv" {
		t.Errorf("expected default ratings path, got %q", cfg.Ratings.Path)
	}
	if cfg.Store.Path != "~/.movierec/movierec.db" {
		t.Errorf("expected default store path, got %q", cfg.Store.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 3 {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestDefaultMatchesEmptyParse(t *testing.T) {
	parsed, err := Parse([]byte(``))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *Default() != *parsed {
		t.Errorf("Default() = %+v, want %+v", *Default(), *parsed)
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("MOVIEREC_TEST_DATA", "/srv/data")

	cfg, err := Parse([]byte("ratings:\n  path: ${MOVIEREC_TEST_DATA}/ratings.csv\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ratings.Path != "/srv/data/ratings.csv" {
		t.Errorf("expected expanded path, got %q", cfg.Ratings.Path)
	}
}

func TestEnvVarInCommentIgnored(t *testing.T) {
	os.Unsetenv("MOVIEREC_TEST_UNSET")

	data := "# Values of the form ${MOVIEREC_TEST_UNSET} are read from the environment.\n" +
		"defaults:\n" +
		"  # top_n: ${MOVIEREC_TEST_UNSET}\n" +
		"  top_n: 4\n"
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("placeholders in comments should be ignored: %v", err)
	}
	if cfg.Defaults.TopN != 4 {
		t.Errorf("expected top_n 4, got %d", cfg.Defaults.TopN)
	}
}

func TestStoreConfigured(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want bool
	}{
		{"empty", "", false},
		{"no store section", "defaults:\n  top_n: 3\n", false},
		{"empty store path", "store:\n  path: \"\"\n", false},
		{"explicit store path", "store:\n  path: /tmp/movierec.db\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cfg.StoreConfigured(); got != tt.want {
				t.Errorf("StoreConfigured() = %v, want %v", got, tt.want)
			}
			if cfg.Store.Path == "" {
				t.Error("store path should always be filled in")
			}
		})
	}

	if Default().StoreConfigured() {
		t.Error("Default() should not report a configured store")
	}
}

func TestEnvVarMissing(t *testing.T) {
	os.Unsetenv("MOVIEREC_TEST_UNSET")

	_, err := Parse([]byte("ratings:\n  path: ${MOVIEREC_TEST_UNSET}\n"))
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "MOVIEREC_TEST_UNSET") {
		t.Errorf("error should name the variable, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative top_n", "defaults:\n  top_n: -1\n"},
		{"unknown source", "ratings:\n  source: ftp\n"},
		{"unknown log level", "log:\n  level: loud\n"},
		{"negative backups", "log:\n  max_backups: -2\n"},
		{"bad yaml", "ratings: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  top_n: 3\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.TopN != 3 {
		t.Errorf("expected top_n 3, got %d", cfg.Defaults.TopN)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"/abs/path.db", "/abs/path.db"},
		{"relative.db", "relative.db"},
		{"~/.movierec/movierec.db", filepath.Join(home, ".movierec/movierec.db")},
		{"~", home},
		{":memory:", ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
