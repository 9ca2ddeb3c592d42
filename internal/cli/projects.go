package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
	Long:  `List, add, edit, end, and archive projects.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeArchived, _ := cmd.Flags().GetBool("archived")
		activeOnly, _ := cmd.Flags().GetBool("active")

		var projects []*domain.Project
		var err error
		if cmd.Flags().Changed("client") {
			clientID, _ := cmd.Flags().GetInt64("client")
			projects, err = appInstance.ProjectService.GetByClientID(ctx, clientID, activeOnly, includeArchived)
		} else {
			projects, err = appInstance.ProjectService.GetAll(ctx, includeArchived)
		}
		if err != nil {
			if domain.IsNotFound(err) {
				fmt.Println(err.Error())
				return nil
			}
			return fmt.Errorf("failed to list projects: %w", err)
		}

		// Print table header
		fmt.Printf("%-5s %-30s %-8s %-12s %-12s %-10s\n", "ID", "Name", "Client", "Start", "End", "Status")
		fmt.Println("----------------------------------------------------------------------------------")

		// Print projects
		for _, project := range projects {
			end := "-"
			if project.EndDate != nil {
				end = project.EndDate.Format("2006-01-02")
			}
			status := "Active"
			if !project.IsActive() {
				status = "Ended"
			}
			if project.IsArchived {
				status = "Archived"
			}
			fmt.Printf("%-5d %-30s #%-7d %-12s %-12s %-10s\n",
				project.ID,
				truncate(project.Name, 30),
				project.ClientID,
				project.StartDate.Format("2006-01-02"),
				end,
				status,
			)
		}

		fmt.Printf("\nTotal: %d project(s)\n", len(projects))
		return nil
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientID, _ := cmd.Flags().GetInt64("client")

		startDate := time.Now()
		if cmd.Flags().Changed("start") {
			startStr, _ := cmd.Flags().GetString("start")
			var err error
			startDate, err = parseDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
		}

		in := domain.NewProject{
			Name:        args[0],
			Description: optionalFlag(cmd, "description"),
			StartDate:   startDate,
			ClientID:    clientID,
		}
		if cmd.Flags().Changed("end") {
			endStr, _ := cmd.Flags().GetString("end")
			endDate, err := parseDate(endStr)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			in.EndDate = &endDate
		}

		project, err := appInstance.ProjectService.Create(ctx, in)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Project created: %s (ID: %d)\n", project.Name, project.ID)
		fmt.Printf("  Client: #%d\n", project.ClientID)
		fmt.Printf("  Start: %s\n", project.StartDate.Format("2006-01-02"))

		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		includeArchived, _ := cmd.Flags().GetBool("archived")
		project, err := appInstance.ProjectService.GetByID(ctx, id, includeArchived)
		if err != nil {
			return err
		}

		fmt.Printf("Project #%d\n", project.ID)
		fmt.Printf("  Name: %s\n", project.Name)
		if project.Description != nil {
			fmt.Printf("  Description: %s\n", *project.Description)
		}
		fmt.Printf("  Client: #%d\n", project.ClientID)
		fmt.Printf("  Start: %s\n", project.StartDate.Format("2006-01-02"))
		if project.EndDate != nil {
			fmt.Printf("  End: %s\n", project.EndDate.Format("2006-01-02"))
		}
		if project.IsArchived {
			fmt.Printf("  Archived: %s\n", project.ArchivedAt.Format("2006-01-02"))
		}

		return nil
	},
}

var projectsForInvoiceCmd = &cobra.Command{
	Use:   "for-invoice [invoice_id]",
	Short: "Show the project an invoice belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		project, err := appInstance.ProjectService.GetByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}

		fmt.Printf("Invoice #%d belongs to project %s (ID: %d)\n", invoiceID, project.Name, project.ID)
		return nil
	},
}

var projectsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		patch := domain.ProjectPatch{
			Name:        optionalFlag(cmd, "name"),
			Description: optionalFlag(cmd, "description"),
		}
		if cmd.Flags().Changed("start") {
			startStr, _ := cmd.Flags().GetString("start")
			startDate, err := parseDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			patch.StartDate = &startDate
		}
		if cmd.Flags().Changed("end") {
			endStr, _ := cmd.Flags().GetString("end")
			endDate, err := parseDate(endStr)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			patch.EndDate = &endDate
		}

		project, err := appInstance.ProjectService.UpdateByID(ctx, id, patch)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Project updated: %s\n", project.Name)
		return nil
	},
}

var projectsEndCmd = &cobra.Command{
	Use:   "end [id]",
	Short: "Mark a project as ended today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		project, err := appInstance.ProjectService.EndByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Project ended: %s (end date %s)\n", project.Name, project.EndDate.Format("2006-01-02"))
		return nil
	},
}

var projectsArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a project and all of its invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		project, err := appInstance.ProjectService.ArchiveByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Project archived: %s (invoices included)\n", project.Name)
		return nil
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsForInvoiceCmd)
	projectsCmd.AddCommand(projectsEditCmd)
	projectsCmd.AddCommand(projectsEndCmd)
	projectsCmd.AddCommand(projectsArchiveCmd)

	// List flags
	projectsListCmd.Flags().Bool("archived", false, "Include archived projects")
	projectsListCmd.Flags().Bool("active", false, "Only projects without an end date")
	projectsListCmd.Flags().Int64("client", 0, "Filter by client ID")

	// Show flags
	projectsShowCmd.Flags().Bool("archived", false, "Include archived projects")

	// Add flags
	projectsAddCmd.Flags().Int64("client", 0, "Owning client ID (required)")
	projectsAddCmd.Flags().String("description", "", "Project description")
	projectsAddCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, defaults to today)")
	projectsAddCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	projectsAddCmd.MarkFlagRequired("client")

	// Edit flags
	projectsEditCmd.Flags().String("name", "", "New name")
	projectsEditCmd.Flags().String("description", "", "New description")
	projectsEditCmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	projectsEditCmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
}

// parseDate parses a YYYY-MM-DD date string
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
