package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  freelancer reset invoices   # Delete all invoices
  freelancer reset all        # Wipe everything: invoices, projects, clients`,
}

var resetInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Delete all invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL invoices. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		db := appInstance.DB

		if _, err := db.Exec("DELETE FROM invoices"); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		fmt.Println("All invoices have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: clients, projects, invoices, everything",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (clients, projects, invoices). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		db := appInstance.DB

		// Order matters due to foreign keys
		tables := []string{
			"invoices",
			"projects",
			"clients",
		}

		for _, table := range tables {
			if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetInvoicesCmd)
	resetCmd.AddCommand(resetAllCmd)
}
