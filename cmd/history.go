package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jacklau/movierec/internal/recommend"
	"github.com/jacklau/movierec/internal/report"
	"github.com/jacklau/movierec/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recommendation runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	return writeHistory(cmd.OutOrStdout(), db, historyLimit)
}

// writeHistory prints the most recent runs held in st as a table.
func writeHistory(out io.Writer, st store.Store, limit int) error {
	runs, err := st.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No recommendation runs logged yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tN\tWHEN\tTOP")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			r.ID, r.User, r.N, humanize.Time(r.CreatedAt), summarizeTop(r.Top))
	}
	return w.Flush()
}

// summarizeTop renders a ranked list on one line.
// Example: "Heat (4), Up (3)"
func summarizeTop(top []recommend.Ranked) string {
	if len(top) == 0 {
		return "-"
	}
	parts := make([]string, len(top))
	for i, r := range top {
		parts[i] = fmt.Sprintf("%s (%s)", r.Title, report.FormatPrediction(r.Prediction))
	}
	return strings.Join(parts, ", ")
}
