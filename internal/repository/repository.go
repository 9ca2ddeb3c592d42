package repository

import (
	"context"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Client, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	// Archive marks the client and every project and invoice referencing it
	// as archived with the same timestamp, in one atomic unit.
	Archive(ctx context.Context, id int64, at time.Time) error
	// Unarchive clears the archive flags on the client row only.
	Unarchive(ctx context.Context, id int64, at time.Time) error
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID int64, activeOnly, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	// Archive marks the project and every invoice referencing it as archived
	// with the same timestamp, in one atomic unit.
	Archive(ctx context.Context, id int64, at time.Time) error
}

// InvoiceRepository manages invoice persistence
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number int64, includeArchived bool) (*domain.Invoice, error)
	List(ctx context.Context, includeArchived bool, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID int64, includeArchived bool) ([]*domain.Invoice, error)
	ListByProject(ctx context.Context, projectID int64, includeArchived bool) ([]*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Archive(ctx context.Context, id int64, at time.Time) error
}
