// Package validate checks entity input shapes before anything touches
// storage. All functions are pure: they return nil or a
// *domain.ValidationError describing the first violation.
package validate

import (
	"regexp"
	"strings"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// Standard mailbox syntax: local part, @, domain with at least one dot.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func invalid(entity, reason string) error {
	return &domain.ValidationError{Entity: entity, Reason: reason}
}

// Email reports whether s looks like a valid email address
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// NewClient validates the input for client creation
func NewClient(in domain.NewClient) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return invalid("client", "first name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return invalid("client", "last name is required")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return invalid("client", "company name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return invalid("client", "email is required")
	}
	if !Email(strings.TrimSpace(in.Email)) {
		return invalid("client", "email is not a valid address")
	}
	return nil
}

// ClientPatch validates the set fields of a partial client update
func ClientPatch(p domain.ClientPatch) error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return invalid("client", "first name cannot be empty")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return invalid("client", "last name cannot be empty")
	}
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
		return invalid("client", "company name cannot be empty")
	}
	if p.Email != nil && !Email(strings.TrimSpace(*p.Email)) {
		return invalid("client", "email is not a valid address")
	}
	return nil
}

// NewProject validates the input for project creation
func NewProject(in domain.NewProject) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("project", "name is required")
	}
	if in.StartDate.IsZero() {
		return invalid("project", "start date is required")
	}
	if in.ClientID <= 0 {
		return invalid("project", "client id is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return invalid("project", "end date cannot be before start date")
	}
	return nil
}

// ProjectPatch validates the set fields of a partial project update
func ProjectPatch(p domain.ProjectPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("project", "name cannot be empty")
	}
	if p.StartDate != nil && p.StartDate.IsZero() {
		return invalid("project", "start date cannot be empty")
	}
	return nil
}

// NewInvoice validates the input for invoice creation. Negative totals and
// non-positive invoice numbers are rejected here.
func NewInvoice(in domain.NewInvoice) error {
	if in.InvoiceNumber <= 0 {
		return invalid("invoice", "invoice number must be positive")
	}
	if in.TotalCost.IsNegative() {
		return invalid("invoice", "total cost cannot be negative")
	}
	if in.DueDate.IsZero() {
		return invalid("invoice", "due date is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("invoice", "unknown status "+string(in.Status))
	}
	if in.ClientID <= 0 {
		return invalid("invoice", "client id is required")
	}
	if in.ProjectID <= 0 {
		return invalid("invoice", "project id is required")
	}
	return nil
}

// Status validates an invoice status value
func Status(s domain.InvoiceStatus) error {
	if !s.Valid() {
		return invalid("invoice", "unknown status "+string(s))
	}
	return nil
}
