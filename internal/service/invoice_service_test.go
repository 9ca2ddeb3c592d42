package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/shopspring/decimal"
)

func seedInvoice(t *testing.T, invoices InvoiceService, number, clientID, projectID int64) *domain.Invoice {
	t.Helper()

	invoice, err := invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: number,
		TotalCost:     decimal.NewFromInt(250),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      clientID,
		ProjectID:     projectID,
	})
	if err != nil {
		t.Fatalf("seed invoice %d: %v", number, err)
	}
	return invoice
}

func TestInvoiceCreate(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")

	invoice, err := invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1001,
		TotalCost:     decimal.RequireFromString("1234.56"),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      client.ID,
		ProjectID:     project.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if invoice.ID == 0 {
		t.Error("ID should be assigned")
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		t.Errorf("Status = %q, want DRAFT by default", invoice.Status)
	}
	if invoice.ValidatedAt != nil {
		t.Error("a draft invoice has no validation timestamp")
	}
	if !invoice.TotalCost.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("TotalCost = %s, want 1234.56", invoice.TotalCost)
	}
}

func TestInvoiceCreateInvalid(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")

	_, err := invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1,
		TotalCost:     decimal.NewFromInt(-5),
		DueDate:       time.Now(),
		ClientID:      client.ID,
		ProjectID:     project.ID,
	})
	if err == nil {
		t.Fatal("expected validation error for negative total")
	}
	if !domain.IsValidation(err) {
		t.Errorf("error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "Invalid invoice data") {
		t.Errorf("error = %q, want it to mention invalid invoice data", err)
	}
}

func TestInvoiceCreateDuplicateNumber(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")
	seedInvoice(t, invoices, 1001, client.ID, project.ID)

	_, err := invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1001,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      client.ID,
		ProjectID:     project.ID,
	})
	if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
		t.Fatalf("error = %v, want ErrDuplicateInvoiceNumber", err)
	}
}

func TestInvoiceCreateProjectOfOtherClient(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	owner := seedClient(t, clients)
	project := seedProject(t, projects, owner.ID, "Website redesign")

	other, err := clients.Create(context.Background(), domain.NewClient{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		CompanyName: "Analytical",
		Email:       "ada@analytical.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      other.ID,
		ProjectID:     project.ID,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error for mismatched project", err)
	}
}

func TestInvoiceCreateReferencesMustExist(t *testing.T) {
	_, clients, _, invoices := newTestServices()
	client := seedClient(t, clients)

	_, err := invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      client.ID,
		ProjectID:     33,
	})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("error = %v, want ErrProjectNotFound", err)
	}

	_, err = invoices.Create(context.Background(), domain.NewInvoice{
		InvoiceNumber: 1,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      55,
		ProjectID:     1,
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("error = %v, want ErrClientNotFound", err)
	}
}

func TestInvoiceGetAllStatusFilter(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")

	draft := seedInvoice(t, invoices, 1, client.ID, project.ID)
	paid := seedInvoice(t, invoices, 2, client.ID, project.ID)

	if _, err := invoices.UpdateStatusByID(context.Background(), paid.ID, domain.InvoiceStatusPaid); err != nil {
		t.Fatalf("UpdateStatusByID() error = %v", err)
	}

	status := domain.InvoiceStatusPaid
	got, err := invoices.GetAll(context.Background(), false, &status)
	if err != nil {
		t.Fatalf("GetAll(status) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != paid.ID {
		t.Errorf("filter returned %d invoices, want only invoice %d", len(got), paid.ID)
	}

	all, err := invoices.GetAll(context.Background(), false, nil)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d invoices, want 2", len(all))
	}

	// Archive and status filters combine
	if _, err := invoices.ArchiveByID(context.Background(), draft.ID); err != nil {
		t.Fatalf("ArchiveByID() error = %v", err)
	}
	statusDraft := domain.InvoiceStatusDraft
	_, err = invoices.GetAll(context.Background(), false, &statusDraft)
	if !errors.Is(err, domain.ErrNoInvoices) {
		t.Fatalf("error = %v, want ErrNoInvoices once the only draft is archived", err)
	}
}

func TestInvoiceGetAllEmpty(t *testing.T) {
	_, _, _, invoices := newTestServices()

	_, err := invoices.GetAll(context.Background(), false, nil)
	if !errors.Is(err, domain.ErrNoInvoices) {
		t.Fatalf("error = %v, want ErrNoInvoices", err)
	}
	if err.Error() != "No invoices found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestInvoiceGetAllBadStatus(t *testing.T) {
	_, _, _, invoices := newTestServices()

	bad := domain.InvoiceStatus("SHIPPED")
	_, err := invoices.GetAll(context.Background(), false, &bad)
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error for unknown status", err)
	}
}

func TestInvoiceGetByClientIDEmpty(t *testing.T) {
	_, clients, _, invoices := newTestServices()
	client := seedClient(t, clients)

	_, err := invoices.GetByClientID(context.Background(), client.ID, false)
	if !errors.Is(err, domain.ErrNoInvoices) {
		t.Fatalf("error = %v, want ErrNoInvoices", err)
	}
}

func TestInvoiceGetByNumber(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")
	seeded := seedInvoice(t, invoices, 1001, client.ID, project.ID)

	got, err := invoices.GetByNumber(context.Background(), 1001, false)
	if err != nil {
		t.Fatalf("GetByNumber() error = %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID = %d, want %d", got.ID, seeded.ID)
	}

	_, err = invoices.GetByNumber(context.Background(), 9999, false)
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("error = %v, want ErrInvoiceNotFound", err)
	}
}

func TestInvoiceUpdateStatusByID(t *testing.T) {
	store, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")
	seeded := seedInvoice(t, invoices, 1, client.ID, project.ID)

	validated, err := invoices.UpdateStatusByID(context.Background(), seeded.ID, domain.InvoiceStatusValidated)
	if err != nil {
		t.Fatalf("UpdateStatusByID() error = %v", err)
	}
	if validated.Status != domain.InvoiceStatusValidated {
		t.Errorf("Status = %q, want VALIDATED", validated.Status)
	}
	if validated.ValidatedAt == nil {
		t.Fatal("entering VALIDATED should stamp ValidatedAt")
	}

	// Any state may move to any other; the validation stamp survives
	paid, err := invoices.UpdateStatusByID(context.Background(), seeded.ID, domain.InvoiceStatusPaid)
	if err != nil {
		t.Fatalf("UpdateStatusByID() error = %v", err)
	}
	if paid.Status != domain.InvoiceStatusPaid {
		t.Errorf("Status = %q, want PAID", paid.Status)
	}
	if paid.ValidatedAt == nil || !paid.ValidatedAt.Equal(*validated.ValidatedAt) {
		t.Error("ValidatedAt should keep its original stamp")
	}

	if store.invoices[seeded.ID].Status != domain.InvoiceStatusPaid {
		t.Error("status change should be persisted")
	}
}

func TestInvoiceUpdateStatusByIDInvalid(t *testing.T) {
	_, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")
	seeded := seedInvoice(t, invoices, 1, client.ID, project.ID)

	_, err := invoices.UpdateStatusByID(context.Background(), seeded.ID, "SHIPPED")
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestInvoiceUpdateStatusByIDNotFound(t *testing.T) {
	_, _, _, invoices := newTestServices()

	_, err := invoices.UpdateStatusByID(context.Background(), 404, domain.InvoiceStatusPaid)
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("error = %v, want ErrInvoiceNotFound", err)
	}
}

func TestInvoiceArchiveByID(t *testing.T) {
	store, clients, projects, invoices := newTestServices()
	client := seedClient(t, clients)
	project := seedProject(t, projects, client.ID, "Website redesign")
	seeded := seedInvoice(t, invoices, 1, client.ID, project.ID)
	other := seedInvoice(t, invoices, 2, client.ID, project.ID)

	archived, err := invoices.ArchiveByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("ArchiveByID() error = %v", err)
	}
	if !archived.IsArchived || archived.ArchivedAt == nil {
		t.Error("invoice should be archived")
	}
	if store.invoices[other.ID].IsArchived {
		t.Error("archiving one invoice must not touch its siblings")
	}

	_, err = invoices.GetByID(context.Background(), seeded.ID, false)
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("error = %v, want ErrInvoiceNotFound for archived invoice", err)
	}
}
