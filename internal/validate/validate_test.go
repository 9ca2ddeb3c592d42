package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/shopspring/decimal"
)

func validNewClient() domain.NewClient {
	return domain.NewClient{
		FirstName:   "Bryan",
		LastName:    "Lang",
		CompanyName: "Bryan Blanchot",
		Email:       "bryan.blanchot@gmail.com",
	}
}

func TestNewClient_Valid(t *testing.T) {
	if err := NewClient(validNewClient()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClient_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.NewClient)
	}{
		{"first name", func(c *domain.NewClient) { c.FirstName = "" }},
		{"last name", func(c *domain.NewClient) { c.LastName = "" }},
		{"company name", func(c *domain.NewClient) { c.CompanyName = "  " }},
		{"email", func(c *domain.NewClient) { c.Email = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validNewClient()
			tc.mutate(&in)

			err := NewClient(in)
			if err == nil {
				t.Fatalf("expected error for missing %s", tc.name)
			}
			if !strings.Contains(err.Error(), "Invalid client data") {
				t.Fatalf("expected message containing %q, got %q", "Invalid client data", err.Error())
			}
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %T", err)
			}
		})
	}
}

func TestNewClient_BadEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "missing@tld", "two@@example.com", "spaces in@example.com"} {
		in := validNewClient()
		in.Email = email
		if err := NewClient(in); err == nil {
			t.Fatalf("expected error for email %q", email)
		}
	}
}

func TestNewProject(t *testing.T) {
	in := domain.NewProject{
		Name:      "Website redesign",
		StartDate: time.Now(),
		ClientID:  1,
	}
	if err := NewProject(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.ClientID = 0
	err := NewProject(in)
	if err == nil || !strings.Contains(err.Error(), "Invalid project data") {
		t.Fatalf("expected project validation error, got %v", err)
	}

	in.ClientID = 1
	in.StartDate = time.Time{}
	if err := NewProject(in); err == nil {
		t.Fatal("expected error for missing start date")
	}
}

func TestNewProject_EndBeforeStart(t *testing.T) {
	start := time.Now()
	end := start.Add(-24 * time.Hour)
	in := domain.NewProject{Name: "Backfill", StartDate: start, EndDate: &end, ClientID: 1}
	if err := NewProject(in); err == nil {
		t.Fatal("expected error for end date before start date")
	}
}

func TestNewInvoice(t *testing.T) {
	in := domain.NewInvoice{
		InvoiceNumber: 1042,
		TotalCost:     decimal.NewFromInt(1500),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      1,
		ProjectID:     1,
	}
	if err := NewInvoice(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewInvoice_RejectsNegativeTotal(t *testing.T) {
	in := domain.NewInvoice{
		InvoiceNumber: 1042,
		TotalCost:     decimal.NewFromInt(-1),
		DueDate:       time.Now(),
		ClientID:      1,
		ProjectID:     1,
	}
	err := NewInvoice(in)
	if err == nil || !strings.Contains(err.Error(), "Invalid invoice data") {
		t.Fatalf("expected invoice validation error, got %v", err)
	}
}

func TestNewInvoice_RejectsBadNumberAndStatus(t *testing.T) {
	in := domain.NewInvoice{
		InvoiceNumber: 0,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now(),
		ClientID:      1,
		ProjectID:     1,
	}
	if err := NewInvoice(in); err == nil {
		t.Fatal("expected error for non-positive invoice number")
	}

	in.InvoiceNumber = 7
	in.Status = domain.InvoiceStatus("SHIPPED")
	if err := NewInvoice(in); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestStatus(t *testing.T) {
	for _, s := range domain.InvoiceStatuses {
		if err := Status(s); err != nil {
			t.Fatalf("unexpected error for %s: %v", s, err)
		}
	}
	if err := Status(domain.InvoiceStatus("archived")); err == nil {
		t.Fatal("expected error for lowercase/unknown status")
	}
}
