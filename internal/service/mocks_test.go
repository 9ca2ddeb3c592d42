package service

import (
	"context"
	"sort"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// fakeStore is a shared in-memory backing store for the fake repositories,
// so cross-entity cascades behave like the real thing.
type fakeStore struct {
	clients  map[int64]*domain.Client
	projects map[int64]*domain.Project
	invoices map[int64]*domain.Invoice

	nextClientID  int64
	nextProjectID int64
	nextInvoiceID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients:  make(map[int64]*domain.Client),
		projects: make(map[int64]*domain.Project),
		invoices: make(map[int64]*domain.Invoice),
	}
}

func cloneClient(c *domain.Client) *domain.Client    { cp := *c; return &cp }
func cloneProject(p *domain.Project) *domain.Project { cp := *p; return &cp }
func cloneInvoice(i *domain.Invoice) *domain.Invoice { cp := *i; return &cp }

// fakeClientRepo implements repository.ClientRepository over the store
type fakeClientRepo struct {
	s *fakeStore
}

func (r *fakeClientRepo) Create(ctx context.Context, client *domain.Client) error {
	for _, existing := range r.s.clients {
		if existing.Email == client.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.s.nextClientID++
	client.ID = r.s.nextClientID
	r.s.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Client, error) {
	client, ok := r.s.clients[id]
	if !ok || (client.IsArchived && !includeArchived) {
		return nil, domain.ErrClientNotFound
	}
	return cloneClient(client), nil
}

func (r *fakeClientRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0)
	for _, client := range r.s.clients {
		if client.IsArchived && !includeArchived {
			continue
		}
		out = append(out, cloneClient(client))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if _, ok := r.s.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	r.s.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *fakeClientRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	// Missing client aborts before any child is touched, like the rollback
	if _, ok := r.s.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	for _, invoice := range r.s.invoices {
		if invoice.ClientID == id {
			invoice.SetArchived(at)
		}
	}
	for _, project := range r.s.projects {
		if project.ClientID == id {
			project.SetArchived(at)
		}
	}
	r.s.clients[id].SetArchived(at)
	return nil
}

func (r *fakeClientRepo) Unarchive(ctx context.Context, id int64, at time.Time) error {
	client, ok := r.s.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	client.ResetArchived(at)
	return nil
}

// fakeProjectRepo implements repository.ProjectRepository over the store
type fakeProjectRepo struct {
	s *fakeStore
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	for _, existing := range r.s.projects {
		if existing.Name == project.Name {
			return domain.ErrDuplicateProjectName
		}
	}
	r.s.nextProjectID++
	project.ID = r.s.nextProjectID
	r.s.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Project, error) {
	project, ok := r.s.projects[id]
	if !ok || (project.IsArchived && !includeArchived) {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(project), nil
}

func (r *fakeProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0)
	for _, project := range r.s.projects {
		if project.IsArchived && !includeArchived {
			continue
		}
		out = append(out, cloneProject(project))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) ListByClient(ctx context.Context, clientID int64, activeOnly, includeArchived bool) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0)
	for _, project := range r.s.projects {
		if project.ClientID != clientID {
			continue
		}
		if project.IsArchived && !includeArchived {
			continue
		}
		if activeOnly && project.EndDate != nil {
			continue
		}
		out = append(out, cloneProject(project))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	if _, ok := r.s.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.s.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *fakeProjectRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	for _, invoice := range r.s.invoices {
		if invoice.ProjectID == id {
			invoice.SetArchived(at)
		}
	}
	r.s.projects[id].SetArchived(at)
	return nil
}

// fakeInvoiceRepo implements repository.InvoiceRepository over the store
type fakeInvoiceRepo struct {
	s *fakeStore
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	for _, existing := range r.s.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return domain.ErrDuplicateInvoiceNumber
		}
	}
	r.s.nextInvoiceID++
	invoice.ID = r.s.nextInvoiceID
	r.s.invoices[invoice.ID] = cloneInvoice(invoice)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Invoice, error) {
	invoice, ok := r.s.invoices[id]
	if !ok || (invoice.IsArchived && !includeArchived) {
		return nil, domain.ErrInvoiceNotFound
	}
	return cloneInvoice(invoice), nil
}

func (r *fakeInvoiceRepo) GetByNumber(ctx context.Context, number int64, includeArchived bool) (*domain.Invoice, error) {
	for _, invoice := range r.s.invoices {
		if invoice.InvoiceNumber == number {
			if invoice.IsArchived && !includeArchived {
				return nil, domain.ErrInvoiceNotFound
			}
			return cloneInvoice(invoice), nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) List(ctx context.Context, includeArchived bool, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, 0)
	for _, invoice := range r.s.invoices {
		if invoice.IsArchived && !includeArchived {
			continue
		}
		if status != nil && invoice.Status != *status {
			continue
		}
		out = append(out, cloneInvoice(invoice))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInvoiceRepo) ListByClient(ctx context.Context, clientID int64, includeArchived bool) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, 0)
	for _, invoice := range r.s.invoices {
		if invoice.ClientID != clientID {
			continue
		}
		if invoice.IsArchived && !includeArchived {
			continue
		}
		out = append(out, cloneInvoice(invoice))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInvoiceRepo) ListByProject(ctx context.Context, projectID int64, includeArchived bool) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, 0)
	for _, invoice := range r.s.invoices {
		if invoice.ProjectID != projectID {
			continue
		}
		if invoice.IsArchived && !includeArchived {
			continue
		}
		out = append(out, cloneInvoice(invoice))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if _, ok := r.s.invoices[invoice.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	r.s.invoices[invoice.ID] = cloneInvoice(invoice)
	return nil
}

func (r *fakeInvoiceRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	invoice, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	invoice.SetArchived(at)
	return nil
}

// newTestServices wires all three services over one shared fake store
func newTestServices() (*fakeStore, ClientService, ProjectService, InvoiceService) {
	s := newFakeStore()
	clientRepo := &fakeClientRepo{s: s}
	projectRepo := &fakeProjectRepo{s: s}
	invoiceRepo := &fakeInvoiceRepo{s: s}

	return s,
		NewClientService(clientRepo),
		NewProjectService(projectRepo, clientRepo, invoiceRepo),
		NewInvoiceService(invoiceRepo, clientRepo, projectRepo)
}
