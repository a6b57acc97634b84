package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ratings sources.
const (
	SourceCSV   = "csv"
	SourceStore = "store"
)

// Config is the top-level configuration.
type Config struct {
	Ratings  RatingsConfig  `yaml:"ratings"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`

	// storeSet records whether store.path came from the config file rather
	// than from defaults.
	storeSet bool
}

// StoreConfigured reports whether the config file names a store path.
func (c *Config) StoreConfigured() bool {
	return c.storeSet
}

// RatingsConfig says where the ratings table is loaded from.
type RatingsConfig struct {
	Path   string `yaml:"path"`
	Source string `yaml:"source"`
}

// DefaultsConfig holds default operational parameters.
type DefaultsConfig struct {
	TopN int `yaml:"top_n"`
}

// StoreConfig holds storage settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// SlogLevel returns the slog level for the configured level name.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envVarPattern matches ${VAR} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} placeholders with environment variable values.
// Full-line comments are left untouched. Returns an error if any referenced
// variable is not set.
func expandEnvVars(data []byte) ([]byte, error) {
	var missing []string

	expand := func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		val, ok := os.LookupEnv(string(varName))
		if !ok {
			missing = append(missing, string(varName))
			return match
		}
		return []byte(val)
	}

	lines := bytes.SplitAfter(data, []byte("\n"))
	for i, line := range lines {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("#")) {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllFunc(line, expand)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return bytes.Join(lines, nil), nil
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Parse parses config from raw YAML bytes, expanding env vars and validating.
func Parse(data []byte) (*Config, error) {
	expanded, err := expandEnvVars(data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	cfg.storeSet = cfg.Store.Path != ""

	// Apply defaults
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Ratings.Path == "" {
		cfg.Ratings.Path = "ratings.csv"
	}
	if cfg.Ratings.Source == "" {
		cfg.Ratings.Source = SourceCSV
	}
	if cfg.Defaults.TopN == 0 {
		cfg.Defaults.TopN = 5
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "~/.movierec/movierec.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
}

func validate(cfg *Config) error {
	if cfg.Defaults.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", cfg.Defaults.TopN)
	}

	validSources := map[string]bool{SourceCSV: true, SourceStore: true}
	if !validSources[cfg.Ratings.Source] {
		return fmt.Errorf("unsupported ratings source: %q", cfg.Ratings.Source)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("unsupported log level: %q", cfg.Log.Level)
	}

	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}

	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
