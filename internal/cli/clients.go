package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and archive clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeArchived, _ := cmd.Flags().GetBool("archived")

		clients, err := appInstance.ClientService.GetAll(ctx, includeArchived)
		if err != nil {
			if domain.IsNotFound(err) {
				fmt.Println(err.Error())
				return nil
			}
			return fmt.Errorf("failed to list clients: %w", err)
		}

		// Print table header
		fmt.Printf("%-5s %-25s %-25s %-30s %-10s\n", "ID", "Name", "Company", "Email", "Status")
		fmt.Println("----------------------------------------------------------------------------------------------")

		// Print clients
		for _, client := range clients {
			status := "Active"
			if client.IsArchived {
				status = "Archived"
			}
			fmt.Printf("%-5d %-25s %-25s %-30s %-10s\n",
				client.ID,
				truncate(client.FullName(), 25),
				truncate(client.CompanyName, 25),
				truncate(client.Email, 30),
				status,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		in := domain.NewClient{}
		in.FirstName, _ = cmd.Flags().GetString("first-name")
		in.LastName, _ = cmd.Flags().GetString("last-name")
		in.CompanyName, _ = cmd.Flags().GetString("company")
		in.Email, _ = cmd.Flags().GetString("email")
		in.AddressStreet = optionalFlag(cmd, "street")
		in.AddressCity = optionalFlag(cmd, "city")
		in.AddressZip = optionalFlag(cmd, "zip")
		in.PhoneCountryCode = optionalFlag(cmd, "phone-country")
		in.PhoneNumber = optionalFlag(cmd, "phone")

		client, err := appInstance.ClientService.Create(ctx, in)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Client created: %s (ID: %d)\n", client.FullName(), client.ID)
		fmt.Printf("  Company: %s\n", client.CompanyName)
		fmt.Printf("  Email: %s\n", client.Email)

		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show client details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		includeArchived, _ := cmd.Flags().GetBool("archived")
		client, err := appInstance.ClientService.GetByID(ctx, id, includeArchived)
		if err != nil {
			return err
		}

		fmt.Printf("Client #%d\n", client.ID)
		fmt.Printf("  Name: %s\n", client.FullName())
		fmt.Printf("  Company: %s\n", client.CompanyName)
		fmt.Printf("  Email: %s\n", client.Email)
		if client.AddressStreet != nil || client.AddressCity != nil {
			fmt.Printf("  Address: %s %s %s\n",
				strDeref(client.AddressStreet),
				strDeref(client.AddressZip),
				strDeref(client.AddressCity),
			)
		}
		if client.PhoneNumber != nil {
			fmt.Printf("  Phone: %s %s\n", strDeref(client.PhoneCountryCode), strDeref(client.PhoneNumber))
		}
		if client.IsArchived {
			fmt.Printf("  Archived: %s\n", client.ArchivedAt.Format("2006-01-02"))
		}

		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		patch := domain.ClientPatch{
			FirstName:        optionalFlag(cmd, "first-name"),
			LastName:         optionalFlag(cmd, "last-name"),
			CompanyName:      optionalFlag(cmd, "company"),
			Email:            optionalFlag(cmd, "email"),
			AddressStreet:    optionalFlag(cmd, "street"),
			AddressCity:      optionalFlag(cmd, "city"),
			AddressZip:       optionalFlag(cmd, "zip"),
			PhoneCountryCode: optionalFlag(cmd, "phone-country"),
			PhoneNumber:      optionalFlag(cmd, "phone"),
		}

		client, err := appInstance.ClientService.UpdateByID(ctx, id, patch)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Client updated: %s\n", client.FullName())
		return nil
	},
}

var clientsArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a client and all of its projects and invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientService.ArchiveByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Client archived: %s (projects and invoices included)\n", client.FullName())
		return nil
	},
}

var clientsUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [id]",
	Short: "Unarchive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientService.UnarchiveByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Client unarchived: %s\n", client.FullName())
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsArchiveCmd)
	clientsCmd.AddCommand(clientsUnarchiveCmd)

	// List flags
	clientsListCmd.Flags().Bool("archived", false, "Include archived clients")

	// Show flags
	clientsShowCmd.Flags().Bool("archived", false, "Include archived clients")

	// Add flags
	clientsAddCmd.Flags().String("first-name", "", "Client first name (required)")
	clientsAddCmd.Flags().String("last-name", "", "Client last name (required)")
	clientsAddCmd.Flags().String("company", "", "Company name (required)")
	clientsAddCmd.Flags().String("email", "", "Client email (required)")
	clientsAddCmd.Flags().String("street", "", "Street address")
	clientsAddCmd.Flags().String("city", "", "City")
	clientsAddCmd.Flags().String("zip", "", "Postal code")
	clientsAddCmd.Flags().String("phone-country", "", "Phone country code")
	clientsAddCmd.Flags().String("phone", "", "Phone number")
	clientsAddCmd.MarkFlagRequired("first-name")
	clientsAddCmd.MarkFlagRequired("last-name")
	clientsAddCmd.MarkFlagRequired("company")
	clientsAddCmd.MarkFlagRequired("email")

	// Edit flags
	clientsEditCmd.Flags().String("first-name", "", "New first name")
	clientsEditCmd.Flags().String("last-name", "", "New last name")
	clientsEditCmd.Flags().String("company", "", "New company name")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("street", "", "New street address")
	clientsEditCmd.Flags().String("city", "", "New city")
	clientsEditCmd.Flags().String("zip", "", "New postal code")
	clientsEditCmd.Flags().String("phone-country", "", "New phone country code")
	clientsEditCmd.Flags().String("phone", "", "New phone number")
}

// optionalFlag returns the flag value only when the user set it
func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
