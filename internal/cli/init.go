package cli

import (
	"fmt"

	"github.com/Bryan21B/freelancer-cli/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up your freelancer profile",
	Long: `Set up your freelancer profile and invoice defaults.

The profile is stored in ~/.config/freelancer/config.yaml and printed on
invoices. Running init again updates only the fields you pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// init runs without the full app so it never prompts for a
		// database password; load the config file directly
		cfg, err := config.LoadDefault()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("name") {
			cfg.User.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("email") {
			cfg.User.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("address") {
			cfg.User.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("phone") {
			cfg.User.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("due-days") {
			cfg.Invoice.DefaultDueDays, _ = cmd.Flags().GetInt("due-days")
		}
		if cmd.Flags().Changed("prefix") {
			cfg.Invoice.NumberPrefix, _ = cmd.Flags().GetString("prefix")
		}
		if cmd.Flags().Changed("starting-number") {
			cfg.Invoice.StartingNumber, _ = cmd.Flags().GetInt64("starting-number")
		}

		if err := cfg.Save(config.DefaultConfigPath()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("✓ Profile saved")
		if cfg.User.Name != "" {
			fmt.Printf("  Name: %s\n", cfg.User.Name)
		}
		if cfg.User.Email != "" {
			fmt.Printf("  Email: %s\n", cfg.User.Email)
		}
		fmt.Printf("  Invoice due days: %d\n", cfg.Invoice.DefaultDueDays)
		fmt.Printf("  Invoice prefix: %s\n", cfg.Invoice.NumberPrefix)

		return nil
	},
}

func init() {
	initCmd.Flags().String("name", "", "Your full name")
	initCmd.Flags().String("email", "", "Your email address")
	initCmd.Flags().String("address", "", "Your postal address")
	initCmd.Flags().String("phone", "", "Your phone number")
	initCmd.Flags().Int("due-days", 30, "Default days until an invoice is due")
	initCmd.Flags().String("prefix", "INV", "Invoice number display prefix")
	initCmd.Flags().Int64("starting-number", 1, "First invoice number suggested")
}
