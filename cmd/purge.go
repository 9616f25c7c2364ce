package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var purgeDBPath string

var (
	purgePromptInput  io.Reader = os.Stdin
	purgePromptOutput io.Writer = os.Stdout
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete the complete SQLite database file",
	Long: `Destructive database cleanup command.

This command always deletes the complete SQLite database file.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete the complete SQLite file (requires interactive confirmation)
  cmsrd purge --db ./cmsrd.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, err := confirmPurgePrompt(purgePromptInput, purgePromptOutput, purgeDBPath)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("purge aborted: confirmation was not 'Y'")
		}

		if err := removeDatabaseFile(purgeDBPath); err != nil {
			return err
		}
		fmt.Printf("Deleted database file: %s\n", purgeDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVar(&purgeDBPath, "db", "./cmsrd.db", "Path to local SQLite database")
}

func confirmPurgePrompt(input io.Reader, output io.Writer, path string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("purge confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete database file %q? Type Y to confirm: ", path); err != nil {
		return false, fmt.Errorf("write purge confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read purge confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
