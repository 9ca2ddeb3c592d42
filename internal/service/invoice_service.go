package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/Bryan21B/freelancer-cli/internal/repository"
	"github.com/Bryan21B/freelancer-cli/internal/validate"
)

// InvoiceService owns the invoice lifecycle: validated creation with
// cross-entity ownership checks, filtered retrieval, archiving, and status
// changes.
type InvoiceService interface {
	// Create validates the input, checks the referenced client and project
	// exist and belong together, and inserts a new invoice
	Create(ctx context.Context, in domain.NewInvoice) (*domain.Invoice, error)

	// GetByID returns the invoice with the given id. An archived invoice
	// is treated as not found unless includeArchived is set.
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Invoice, error)

	// GetByNumber returns the invoice with the given unique number
	GetByNumber(ctx context.Context, number int64, includeArchived bool) (*domain.Invoice, error)

	// GetByClientID returns a client's invoices; an empty result is an error
	GetByClientID(ctx context.Context, clientID int64, includeArchived bool) ([]*domain.Invoice, error)

	// GetByProjectID returns a project's invoices; an empty result is an error
	GetByProjectID(ctx context.Context, projectID int64, includeArchived bool) ([]*domain.Invoice, error)

	// GetAll returns invoices matching the archive filter AND the optional
	// status filter; an empty result is an error
	GetAll(ctx context.Context, includeArchived bool, status *domain.InvoiceStatus) ([]*domain.Invoice, error)

	// ArchiveByID marks one invoice archived with the current time
	ArchiveByID(ctx context.Context, id int64) (*domain.Invoice, error)

	// UpdateStatusByID moves the invoice to the given status. Any status
	// may move to any other; entering VALIDATED stamps ValidatedAt.
	UpdateStatusByID(ctx context.Context, id int64, status domain.InvoiceStatus) (*domain.Invoice, error)
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	projects repository.ProjectRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	projects repository.ProjectRepository,
) InvoiceService {
	return &invoiceService{
		invoices: invoices,
		clients:  clients,
		projects: projects,
	}
}

func (s *invoiceService) Create(ctx context.Context, in domain.NewInvoice) (*domain.Invoice, error) {
	if err := validate.NewInvoice(in); err != nil {
		return nil, err
	}

	// Both references must resolve, and the project must belong to the
	// invoice's client. Storage does not enforce the pairing; this layer does.
	if _, err := s.clients.GetByID(ctx, in.ClientID, false); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, in.ProjectID, false)
	if err != nil {
		return nil, err
	}
	if project.ClientID != in.ClientID {
		return nil, &domain.ValidationError{
			Entity: "invoice",
			Reason: fmt.Sprintf("project %d does not belong to client %d", in.ProjectID, in.ClientID),
		}
	}

	invoice := in.Invoice(time.Now())
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id, includeArchived)
}

func (s *invoiceService) GetByNumber(ctx context.Context, number int64, includeArchived bool) (*domain.Invoice, error) {
	return s.invoices.GetByNumber(ctx, number, includeArchived)
}

func (s *invoiceService) GetByClientID(ctx context.Context, clientID int64, includeArchived bool) ([]*domain.Invoice, error) {
	invoices, err := s.invoices.ListByClient(ctx, clientID, includeArchived)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, domain.ErrNoInvoices
	}
	return invoices, nil
}

func (s *invoiceService) GetByProjectID(ctx context.Context, projectID int64, includeArchived bool) ([]*domain.Invoice, error) {
	invoices, err := s.invoices.ListByProject(ctx, projectID, includeArchived)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, domain.ErrNoInvoices
	}
	return invoices, nil
}

func (s *invoiceService) GetAll(ctx context.Context, includeArchived bool, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	if status != nil {
		if err := validate.Status(*status); err != nil {
			return nil, err
		}
	}

	invoices, err := s.invoices.List(ctx, includeArchived, status)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, domain.ErrNoInvoices
	}
	return invoices, nil
}

func (s *invoiceService) ArchiveByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if err := s.invoices.Archive(ctx, id, at); err != nil {
		return nil, err
	}

	invoice.SetArchived(at)
	return invoice, nil
}

func (s *invoiceService) UpdateStatusByID(ctx context.Context, id int64, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if err := validate.Status(status); err != nil {
		return nil, err
	}

	invoice, err := s.invoices.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	invoice.SetStatus(status, time.Now())
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}
