package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacklau/movierec/internal/ratings"
	"github.com/jacklau/movierec/internal/store"
)

var importQuiet bool

var importCmd = &cobra.Command{
	Use:   "import <ratings.csv>",
	Short: "Load a ratings CSV file into the SQLite store",
	Long: `Import parses a ratings CSV file and replaces the ratings table held in
the SQLite store with it. Rows with the wrong number of ratings are padded or
truncated to the movie count.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "do not show a progress bar")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg)

	tbl, err := loadCSV(args[0], logger)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	var progress func(int)
	if !importQuiet {
		bar := newProgressBar(tbl.NumUsers(), "Importing users", os.Stderr)
		progress = bar.Set
		defer bar.Finish()
	}

	if err := importTable(db, tbl, progress); err != nil {
		return err
	}

	logger.Info("imported ratings", "path", args[0], "users", tbl.NumUsers(), "movies", tbl.NumMovies())
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users and %d movies into %s\n",
		tbl.NumUsers(), tbl.NumMovies(), cfg.Store.Path)
	return nil
}

// importTable replaces the table held in st with tbl.
func importTable(st store.Store, tbl *ratings.Table, progress func(int)) error {
	if err := st.ReplaceTable(tbl, progress); err != nil {
		return fmt.Errorf("importing ratings: %w", err)
	}
	return nil
}
