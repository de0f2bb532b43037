package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/config"
	"github.com/a3music/opmchat/internal/logger"
)

var (
	skipConfirm  bool
	cleanAccount bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the saved conversation pointer, logs, and local data",
	Long: `Forgets the remembered conversation and removes log files. With --all it
also deletes the guest-mode database and your saved login cookie.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanAccount, "all", false, "Also remove the local database and saved login cookie")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	fmt.Println("This will clean:")
	fmt.Println("  - The remembered conversation")
	fmt.Println("  - Log files")
	if cleanAccount {
		fmt.Println("  - The guest-mode local database")
		fmt.Println("  - Your saved login cookie")
	}

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	pointerPath, err := sessionPointerPath()
	if err != nil {
		return err
	}
	if err := os.Remove(pointerPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error removing session pointer: %v\n", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	if cleanAccount {
		dbPath, err := config.LocalDBPath()
		if err == nil {
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: error removing local database: %v\n", err)
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.ClearAuthCookie()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	fmt.Println()
	fmt.Println("Cleaned.")
	if logsCleared > 0 {
		fmt.Printf("Removed %d log file(s).\n", logsCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
