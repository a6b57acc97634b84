package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacklau/movierec/internal/config"
	"github.com/jacklau/movierec/internal/ratings"
	"github.com/jacklau/movierec/internal/recommend"
	"github.com/jacklau/movierec/internal/report"
	"github.com/jacklau/movierec/internal/store"
)

var (
	recommendTop       int
	recommendRatings   string
	recommendFromStore bool
	recommendJSON      bool
	recommendNoLog     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Show rated movies, predictions and top recommendations for a user",
	Long: `Recommend prints the movies a user has rated, the predicted rating of
every movie the user has not rated, and the top N movies ranked by predicted
rating. Predictions are truncated for display only; --json prints the exact
values.

Runs are recorded in the SQLite store when the config file names a store
path or the ratings come from the store. --no-log disables recording.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendTop, "top", "n", 0, "number of recommendations (default from config)")
	recommendCmd.Flags().StringVar(&recommendRatings, "ratings", "", "ratings CSV file (overrides config)")
	recommendCmd.Flags().BoolVar(&recommendFromStore, "from-store", false, "load ratings from the SQLite store")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the report as JSON")
	recommendCmd.Flags().BoolVar(&recommendNoLog, "no-log", false, "do not record the run in the store")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	user := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg)

	n := cfg.Defaults.TopN
	if cmd.Flags().Changed("top") {
		n = recommendTop
	}
	if n < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", n)
	}

	tbl, err := loadTable(cfg, logger, recommendRatings, recommendFromStore)
	if err != nil {
		return err
	}

	rec := newRecommender(tbl, logger)
	rep, err := rec.Recommend(user, n)
	if errors.Is(err, ratings.ErrUserNotFound) {
		logger.Warn("user not found", "user", user)
		return fmt.Errorf("user %s not found", user)
	}
	if err != nil {
		return fmt.Errorf("computing recommendations: %w", err)
	}

	out := cmd.OutOrStdout()
	if recommendJSON {
		err = report.WriteJSON(out, rep)
	} else {
		err = report.WriteText(out, rep)
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if shouldLogRun(cfg, recommendNoLog, recommendFromStore, recommendRatings) {
		logRun(cfg, rep, logger)
	}
	return nil
}

// shouldLogRun reports whether a run is recorded. A run is only written to a
// store the user asked for: one named in the config file or the one the
// ratings were read from.
func shouldLogRun(cfg *config.Config, noLog, fromStore bool, csvPath string) bool {
	if noLog {
		return false
	}
	return readsStore(cfg, csvPath, fromStore) || cfg.StoreConfigured()
}

// logRun records a run in the store. Failures are logged, not returned:
// the report has already been printed.
func logRun(cfg *config.Config, rep *recommend.Report, logger *slog.Logger) {
	db, err := openStore(cfg)
	if err != nil {
		logger.Warn("recommendation not logged", "error", err)
		return
	}
	defer db.Close()
	recordRun(db, rep, logger)
}

func recordRun(st store.Store, rep *recommend.Report, logger *slog.Logger) {
	run := &store.Run{User: rep.User, N: rep.N, Top: rep.Top}
	if err := st.LogRecommendation(run); err != nil {
		logger.Warn("recommendation not logged", "error", err)
		return
	}
	logger.Debug("logged recommendation", "run_id", run.ID, "user", rep.User)
}
