package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jacklau/movierec/internal/config"
	"github.com/jacklau/movierec/internal/ratings"
	"github.com/jacklau/movierec/internal/recommend"
	"github.com/jacklau/movierec/internal/similarity"
	"github.com/jacklau/movierec/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "movierec",
	Short: "Recommend movies from a user × movie ratings table",
	Long: `Movierec loads a ratings table, computes cosine similarity between
users over the movies they both rated, predicts the ratings a user has not
given yet and ranks the best candidates.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default %s)", defaultConfigPath()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movierec/config.yaml"
	}
	return home + "/.movierec/config.yaml"
}

// setupLogger builds a JSON logger on stderr, teeing to a rotated log file
// when one is configured.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		if path, err := config.ExpandPath(cfg.Log.File); err == nil {
			w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
			})
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// loadConfig reads the config file. A missing default config file is not an
// error: built-in defaults are used instead.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// openStore opens the configured SQLite store.
func openStore(cfg *config.Config) (*store.DB, error) {
	path, err := config.ExpandPath(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	return store.Open(path)
}

// loadTable loads the ratings table from the configured source. A non-empty
// csvPath overrides the config and forces the CSV source.
func loadTable(cfg *config.Config, logger *slog.Logger, csvPath string, fromStore bool) (*ratings.Table, error) {
	if readsStore(cfg, csvPath, fromStore) {
		db, err := openStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()
		return tableFromStore(db, logger)
	}

	path := csvPath
	if path == "" {
		path = cfg.Ratings.Path
	}
	return loadCSV(path, logger)
}

// readsStore reports whether the ratings table comes from the SQLite store.
func readsStore(cfg *config.Config, csvPath string, fromStore bool) bool {
	return fromStore || (csvPath == "" && cfg.Ratings.Source == config.SourceStore)
}

// tableFromStore rebuilds the ratings table held in st.
func tableFromStore(st store.Store, logger *slog.Logger) (*ratings.Table, error) {
	tbl, err := st.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("loading ratings from store: %w", err)
	}
	logger.Debug("loaded ratings from store", "users", tbl.NumUsers(), "movies", tbl.NumMovies())
	return tbl, nil
}

func loadCSV(path string, logger *slog.Logger) (*ratings.Table, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	tbl, stats, err := ratings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading ratings: %w", err)
	}
	if stats.Padded > 0 || stats.Truncated > 0 {
		logger.Warn("normalized malformed rows",
			"path", path, "padded", stats.Padded, "truncated", stats.Truncated)
	}
	logger.Debug("loaded ratings", "path", path, "users", tbl.NumUsers(), "movies", tbl.NumMovies())
	return tbl, nil
}

// newRecommender computes the similarity matrix for tbl and wraps it.
func newRecommender(tbl *ratings.Table, logger *slog.Logger) *recommend.Recommender {
	sims := similarity.Compute(tbl)
	logger.Debug("computed similarity matrix", "users", sims.Len())
	return recommend.New(tbl, sims)
}
