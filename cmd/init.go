package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup for movierec configuration",
	Long:  `Creates a configuration file with guided prompts.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Welcome to movierec setup!")
	fmt.Fprintln(out, "This will create a configuration file for you.")
	fmt.Fprintln(out)

	configPath := cfgFile
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configPath)
		answer := prompt(reader, out, "Overwrite? [y/N]: ")
		answer = strings.ToLower(answer)
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	ratingsPath := prompt(reader, out, "Ratings CSV file [ratings.csv]: ")
	if ratingsPath == "" {
		ratingsPath = "ratings.csv"
	}

	source := prompt(reader, out, "Ratings source (csv/store) [csv]: ")
	if source == "" {
		source = "csv"
	}

	topN := 5
	if answer := prompt(reader, out, "Number of recommendations [5]: "); answer != "" {
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of recommendations %q", answer)
		}
		topN = n
	}

	storePath := prompt(reader, out, "Store path [~/.movierec/movierec.db]: ")
	if storePath == "" {
		storePath = "~/.movierec/movierec.db"
	}

	logFile := prompt(reader, out, "Log file (or press Enter to skip): ")

	config := buildConfigYAML(ratingsPath, source, topN, storePath, logFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(config), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", configPath)
	return nil
}

// prompt prints a question and returns the trimmed answer. EOF reads as an
// empty answer.
func prompt(reader *bufio.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, question)
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(answer)
}

func buildConfigYAML(ratingsPath, source string, topN int, storePath, logFile string) string {
	var b strings.Builder

	b.WriteString("# movierec configuration\n")
	b.WriteString("# Values of the form ${NAME} are read from the environment.\n\n")

	b.WriteString("ratings:\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", ratingsPath))
	b.WriteString(fmt.Sprintf("  source: %s\n", source))
	b.WriteString("\n")

	b.WriteString("defaults:\n")
	b.WriteString(fmt.Sprintf("  top_n: %d\n", topN))
	b.WriteString("\n")

	b.WriteString("store:\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", storePath))
	b.WriteString("\n")

	b.WriteString("log:\n")
	b.WriteString("  level: info\n")
	if logFile != "" {
		b.WriteString(fmt.Sprintf("  file: %s\n", logFile))
	} else {
		b.WriteString("  # file: ~/.movierec/movierec.log\n")
	}
	b.WriteString("  max_size_mb: 10\n")
	b.WriteString("  max_backups: 3\n")

	return b.String()
}
