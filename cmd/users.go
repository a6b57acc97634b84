package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	usersRatings   string
	usersFromStore bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the users in the ratings table",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

func init() {
	usersCmd.Flags().StringVar(&usersRatings, "ratings", "", "ratings CSV file (overrides config)")
	usersCmd.Flags().BoolVar(&usersFromStore, "from-store", false, "load ratings from the SQLite store")
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg)

	tbl, err := loadTable(cfg, logger, usersRatings, usersFromStore)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tbl.NumUsers() == 0 {
		fmt.Fprintln(out, "No users loaded.")
		return nil
	}
	fmt.Fprintf(out, "Loaded users: %s\n", strings.Join(tbl.Users(), " "))
	fmt.Fprintf(out, "%d users, %d movies\n", tbl.NumUsers(), tbl.NumMovies())
	return nil
}
