package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `Create, list, and manage invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeArchived, _ := cmd.Flags().GetBool("archived")

		var status *domain.InvoiceStatus
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			parsed, err := domain.ParseInvoiceStatus(statusStr)
			if err != nil {
				return err
			}
			status = &parsed
		}

		var invoices []*domain.Invoice
		var err error
		switch {
		case cmd.Flags().Changed("client"):
			clientID, _ := cmd.Flags().GetInt64("client")
			invoices, err = appInstance.InvoiceService.GetByClientID(ctx, clientID, includeArchived)
		case cmd.Flags().Changed("project"):
			projectID, _ := cmd.Flags().GetInt64("project")
			invoices, err = appInstance.InvoiceService.GetByProjectID(ctx, projectID, includeArchived)
		default:
			invoices, err = appInstance.InvoiceService.GetAll(ctx, includeArchived, status)
		}
		if err != nil {
			if domain.IsNotFound(err) {
				fmt.Println(err.Error())
				return nil
			}
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		// Print table header
		fmt.Printf("%-5s %-10s %-8s %-8s %-12s %-12s %-10s\n", "ID", "Number", "Client", "Project", "Due", "Total", "Status")
		fmt.Println("------------------------------------------------------------------------")

		// Print invoices
		for _, invoice := range invoices {
			fmt.Printf("%-5d %-10d #%-7d #%-7d %-12s %-12s %-10s\n",
				invoice.ID,
				invoice.InvoiceNumber,
				invoice.ClientID,
				invoice.ProjectID,
				invoice.DueDate.Format("2006-01-02"),
				formatMoney(invoice.TotalCost),
				invoice.Status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		number, _ := cmd.Flags().GetInt64("number")
		clientID, _ := cmd.Flags().GetInt64("client")
		projectID, _ := cmd.Flags().GetInt64("project")

		totalStr, _ := cmd.Flags().GetString("total")
		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return fmt.Errorf("invalid total: %w", err)
		}

		dueDate := time.Now().AddDate(0, 0, appInstance.Config.Invoice.DefaultDueDays)
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			dueDate, err = parseDate(dueStr)
			if err != nil {
				return fmt.Errorf("invalid due date: %w", err)
			}
		}

		in := domain.NewInvoice{
			InvoiceNumber: number,
			TotalCost:     total,
			DueDate:       dueDate,
			ClientID:      clientID,
			ProjectID:     projectID,
		}
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			status, err := domain.ParseInvoiceStatus(statusStr)
			if err != nil {
				return err
			}
			in.Status = status
		}

		invoice, err := appInstance.InvoiceService.Create(ctx, in)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice created: %s%d (ID: %d)\n",
			appInstance.Config.Invoice.NumberPrefix, invoice.InvoiceNumber, invoice.ID)
		fmt.Printf("  Total: %s\n", formatMoney(invoice.TotalCost))
		fmt.Printf("  Due: %s\n", invoice.DueDate.Format("2006-01-02"))
		fmt.Printf("  Status: %s\n", invoice.Status)

		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		includeArchived, _ := cmd.Flags().GetBool("archived")
		invoice, err := appInstance.InvoiceService.GetByID(ctx, id, includeArchived)
		if err != nil {
			return err
		}

		client, _ := appInstance.ClientService.GetByID(ctx, invoice.ClientID, true)
		clientName := fmt.Sprintf("Client #%d", invoice.ClientID)
		if client != nil {
			clientName = client.FullName()
		}

		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Invoice: %s%d\n", appInstance.Config.Invoice.NumberPrefix, invoice.InvoiceNumber)
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Client: %s\n", clientName)
		fmt.Printf("Project: #%d\n", invoice.ProjectID)
		fmt.Printf("Total: %s\n", formatMoney(invoice.TotalCost))
		fmt.Printf("Due: %s\n", invoice.DueDate.Format("2006-01-02"))
		fmt.Printf("Status: %s\n", invoice.Status)
		if invoice.ValidatedAt != nil {
			fmt.Printf("Validated: %s\n", invoice.ValidatedAt.Format("2006-01-02"))
		}
		if invoice.IsArchived {
			fmt.Printf("Archived: %s\n", invoice.ArchivedAt.Format("2006-01-02"))
		}
		fmt.Println(strings.Repeat("=", 60))

		return nil
	},
}

var invoicesStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Change an invoice's status (draft, validated, paid, overdue, cancelled)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		status, err := domain.ParseInvoiceStatus(args[1])
		if err != nil {
			return err
		}

		invoice, err := appInstance.InvoiceService.UpdateStatusByID(ctx, id, status)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice #%d is now %s\n", invoice.ID, invoice.Status)
		if invoice.ValidatedAt != nil {
			fmt.Printf("  Validated: %s\n", invoice.ValidatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var invoicesArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		invoice, err := appInstance.InvoiceService.ArchiveByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice #%d archived\n", invoice.ID)
		return nil
	},
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesAddCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesStatusCmd)
	invoicesCmd.AddCommand(invoicesArchiveCmd)

	// List flags
	invoicesListCmd.Flags().Bool("archived", false, "Include archived invoices")
	invoicesListCmd.Flags().String("status", "", "Filter by status (draft, validated, paid, overdue, cancelled)")
	invoicesListCmd.Flags().Int64("client", 0, "Filter by client ID")
	invoicesListCmd.Flags().Int64("project", 0, "Filter by project ID")

	// Show flags
	invoicesShowCmd.Flags().Bool("archived", false, "Include archived invoices")

	// Add flags
	invoicesAddCmd.Flags().Int64("number", 0, "Invoice number (required)")
	invoicesAddCmd.Flags().String("total", "0", "Total cost")
	invoicesAddCmd.Flags().String("due", "", "Due date (YYYY-MM-DD, defaults per config)")
	invoicesAddCmd.Flags().String("status", "", "Initial status (defaults to draft)")
	invoicesAddCmd.Flags().Int64("client", 0, "Billed client ID (required)")
	invoicesAddCmd.Flags().Int64("project", 0, "Related project ID (required)")
	invoicesAddCmd.MarkFlagRequired("number")
	invoicesAddCmd.MarkFlagRequired("client")
	invoicesAddCmd.MarkFlagRequired("project")
}

// formatMoney renders a decimal amount with two places
func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
