package service

import (
	"context"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/Bryan21B/freelancer-cli/internal/repository"
	"github.com/Bryan21B/freelancer-cli/internal/validate"
)

// ProjectService owns the project lifecycle, including the invoice archive
// cascade and invoice-to-project resolution.
type ProjectService interface {
	// Create validates the input, checks the referenced client exists, and
	// inserts a new project
	Create(ctx context.Context, in domain.NewProject) (*domain.Project, error)

	// GetByID returns the project with the given id
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Project, error)

	// GetAll returns all matching projects; an empty result is an error
	GetAll(ctx context.Context, includeArchived bool) ([]*domain.Project, error)

	// GetByClientID returns a client's projects. A missing client fails
	// with "Client not found", distinct from the client existing with no
	// matching projects. activeOnly restricts to projects with no end date.
	GetByClientID(ctx context.Context, clientID int64, activeOnly, includeArchived bool) ([]*domain.Project, error)

	// GetByInvoiceID resolves the invoice first ("Invoice not found"), then
	// the project owning it ("No project found for that invoice").
	GetByInvoiceID(ctx context.Context, invoiceID int64) (*domain.Project, error)

	// UpdateByID applies a partial patch; unset fields keep their values
	UpdateByID(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)

	// EndByID stamps the project's end date with the current time. Calling
	// it again advances the date; every call succeeds.
	EndByID(ctx context.Context, id int64) (*domain.Project, error)

	// ArchiveByID archives the project and all of its invoices in one
	// atomic unit, sharing a single timestamp
	ArchiveByID(ctx context.Context, id int64) (*domain.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
	clients  repository.ClientRepository
	invoices repository.InvoiceRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	invoices repository.InvoiceRepository,
) ProjectService {
	return &projectService{
		projects: projects,
		clients:  clients,
		invoices: invoices,
	}
}

func (s *projectService) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if err := validate.NewProject(in); err != nil {
		return nil, err
	}

	// The referenced client must exist and be active
	if _, err := s.clients.GetByID(ctx, in.ClientID, false); err != nil {
		return nil, err
	}

	project := in.Project(time.Now())
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id, includeArchived)
}

func (s *projectService) GetAll(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, domain.ErrNoProjects
	}
	return projects, nil
}

func (s *projectService) GetByClientID(ctx context.Context, clientID int64, activeOnly, includeArchived bool) ([]*domain.Project, error) {
	// "client missing" and "client exists but has no projects" are
	// distinguishable failures
	if _, err := s.clients.GetByID(ctx, clientID, true); err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByClient(ctx, clientID, activeOnly, includeArchived)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		if activeOnly {
			return nil, domain.ErrNoActiveProjects
		}
		return nil, domain.ErrNoProjects
	}

	return projects, nil
}

func (s *projectService) GetByInvoiceID(ctx context.Context, invoiceID int64) (*domain.Project, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID, true)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, invoice.ProjectID, true)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrNoProjectForInvoice
		}
		return nil, err
	}

	return project, nil
}

func (s *projectService) UpdateByID(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := validate.ProjectPatch(patch); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	project.Apply(patch, time.Now())
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) EndByID(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	project.End(time.Now())
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) ArchiveByID(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if err := s.projects.Archive(ctx, id, at); err != nil {
		return nil, err
	}

	project.SetArchived(at)
	return project, nil
}
