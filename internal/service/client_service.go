package service

import (
	"context"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/Bryan21B/freelancer-cli/internal/repository"
	"github.com/Bryan21B/freelancer-cli/internal/validate"
)

// ClientService owns the client lifecycle: validated creation, filtered
// retrieval, partial updates, and the archive cascade over the client's
// projects and invoices.
type ClientService interface {
	// Create validates the input and inserts a new client
	Create(ctx context.Context, in domain.NewClient) (*domain.Client, error)

	// GetByID returns the client with the given id. An archived client is
	// treated as not found unless includeArchived is set.
	GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Client, error)

	// GetAll returns all matching clients in creation order. An empty
	// result is an error, not an empty slice.
	GetAll(ctx context.Context, includeArchived bool) ([]*domain.Client, error)

	// UpdateByID applies a partial patch; unset fields keep their values
	UpdateByID(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)

	// ArchiveByID archives the client and all of its projects and invoices
	// in one atomic unit, sharing a single timestamp
	ArchiveByID(ctx context.Context, id int64) (*domain.Client, error)

	// UnarchiveByID clears the client's archive flags. Projects and
	// invoices are left untouched.
	UnarchiveByID(ctx context.Context, id int64) (*domain.Client, error)
}

type clientService struct {
	clients repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

func (s *clientService) Create(ctx context.Context, in domain.NewClient) (*domain.Client, error) {
	if err := validate.NewClient(in); err != nil {
		return nil, err
	}

	client := in.Client(time.Now())
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id, includeArchived)
}

func (s *clientService) GetAll(ctx context.Context, includeArchived bool) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, domain.ErrNoClients
	}
	return clients, nil
}

func (s *clientService) UpdateByID(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	if err := validate.ClientPatch(patch); err != nil {
		return nil, err
	}

	client, err := s.clients.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	client.Apply(patch, time.Now())
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) ArchiveByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if err := s.clients.Archive(ctx, id, at); err != nil {
		return nil, err
	}

	client.SetArchived(at)
	return client, nil
}

func (s *clientService) UnarchiveByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if err := s.clients.Unarchive(ctx, id, at); err != nil {
		return nil, err
	}

	client.ResetArchived(at)
	return client, nil
}
