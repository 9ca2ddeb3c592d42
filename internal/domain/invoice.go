package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusValidated InvoiceStatus = "VALIDATED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceStatuses lists the workflow states in display order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusValidated,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// Valid reports whether s is one of the known workflow states
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusValidated, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// ParseInvoiceStatus converts user input (any case) to an InvoiceStatus
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
	return status, nil
}

type Invoice struct {
	ID            int64
	InvoiceNumber int64
	TotalCost     decimal.Decimal
	DueDate       time.Time
	Status        InvoiceStatus
	ValidatedAt   *time.Time
	ClientID      int64
	ProjectID     int64
	IsArchived    bool
	ArchivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvoice is the input shape for invoice creation. Status defaults to
// DRAFT when empty.
type NewInvoice struct {
	InvoiceNumber int64
	TotalCost     decimal.Decimal
	DueDate       time.Time
	Status        InvoiceStatus
	ClientID      int64
	ProjectID     int64
}

// Invoice builds an Invoice from the input with fresh bookkeeping fields
func (n NewInvoice) Invoice(now time.Time) *Invoice {
	status := n.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	return &Invoice{
		InvoiceNumber: n.InvoiceNumber,
		TotalCost:     n.TotalCost,
		DueDate:       n.DueDate,
		Status:        status,
		ClientID:      n.ClientID,
		ProjectID:     n.ProjectID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetStatus moves the invoice to the given state. There is no transition
// table: any state may move to any other. Entering VALIDATED stamps
// ValidatedAt.
func (i *Invoice) SetStatus(status InvoiceStatus, now time.Time) {
	if status == InvoiceStatusValidated && i.Status != InvoiceStatusValidated {
		i.ValidatedAt = &now
	}
	i.Status = status
	i.UpdatedAt = now
}

// SetArchived marks the invoice archived at the given time
func (i *Invoice) SetArchived(at time.Time) {
	i.IsArchived = true
	i.ArchivedAt = &at
	i.UpdatedAt = at
}

// ResetArchived clears the archive flags
func (i *Invoice) ResetArchived(at time.Time) {
	i.IsArchived = false
	i.ArchivedAt = nil
	i.UpdatedAt = at
}
