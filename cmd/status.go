package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jacklau/movierec/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the SQLite store holds",
	Long: `Display the number of users, movies and observed ratings in the stored
ratings table, the number of logged recommendation runs, and the database size.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	stats, err := db.GetStats()
	if err != nil {
		return fmt.Errorf("querying stats: %w", err)
	}

	out := cmd.OutOrStdout()
	if stats.Users == 0 && stats.Movies == 0 {
		fmt.Fprintln(out, "No ratings imported yet.")
		fmt.Fprintln(out, "Run 'movierec import <ratings.csv>' to get started.")
	} else {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERS\tMOVIES\tRATINGS\tDENSITY\tRUNS")
		fmt.Fprintln(w, "-----\t------\t-------\t-------\t----")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Comma(int64(stats.Users)),
			humanize.Comma(int64(stats.Movies)),
			humanize.Comma(int64(stats.Ratings)),
			formatDensity(stats.Ratings, stats.Users, stats.Movies),
			humanize.Comma(int64(stats.Runs)))
		w.Flush()
	}

	fmt.Fprintln(out)
	dbSize, err := dbFileSize(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(out, "Database: %s (size unknown)\n", cfg.Store.Path)
	} else {
		fmt.Fprintf(out, "Database: %s (%s)\n", cfg.Store.Path, humanize.IBytes(uint64(dbSize)))
	}

	return nil
}

// formatDensity returns the share of filled cells in a users × movies table.
func formatDensity(ratings, users, movies int) string {
	if users == 0 || movies == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(ratings)/float64(users*movies))
}

// dbFileSize returns the size in bytes of the database file.
func dbFileSize(path string) (int64, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
