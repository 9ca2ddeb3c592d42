package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/db"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func createTestClient(t *testing.T, repo *ClientRepo) *domain.Client {
	t.Helper()

	client := domain.NewClient{
		FirstName:   "Bryan",
		LastName:    "Blanchot",
		CompanyName: "Bryan Lang",
		Email:       "bryan.blanchot@gmail.com",
	}.Client(time.Now())

	if err := repo.Create(context.Background(), client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func createTestProject(t *testing.T, repo *ProjectRepo, clientID int64, name string) *domain.Project {
	t.Helper()

	project := domain.NewProject{
		Name:      name,
		StartDate: time.Now().AddDate(0, -1, 0),
		ClientID:  clientID,
	}.Project(time.Now())

	if err := repo.Create(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func createTestInvoice(t *testing.T, repo *InvoiceRepo, number, clientID, projectID int64) *domain.Invoice {
	t.Helper()

	invoice := domain.NewInvoice{
		InvoiceNumber: number,
		TotalCost:     decimal.RequireFromString("99.90"),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      clientID,
		ProjectID:     projectID,
	}.Invoice(time.Now())

	if err := repo.Create(context.Background(), invoice); err != nil {
		t.Fatalf("create invoice %d: %v", number, err)
	}
	return invoice
}

func TestClientRepoRoundTrip(t *testing.T) {
	database := newTestDB(t)
	repo := NewClientRepo(database)

	created := createTestClient(t, repo)
	if created.ID == 0 {
		t.Fatal("ID should be assigned by the database")
	}

	got, err := repo.GetByID(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "bryan.blanchot@gmail.com" {
		t.Errorf("Email = %q", got.Email)
	}
	if got.AddressStreet != nil {
		t.Errorf("AddressStreet = %v, optional fields should read back as nil", got.AddressStreet)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Error("fresh row should have matching timestamps")
	}
}

func TestClientRepoDuplicateEmail(t *testing.T) {
	database := newTestDB(t)
	repo := NewClientRepo(database)
	createTestClient(t, repo)

	dup := domain.NewClient{
		FirstName:   "Other",
		LastName:    "Person",
		CompanyName: "Elsewhere",
		Email:       "bryan.blanchot@gmail.com",
	}.Client(time.Now())

	err := repo.Create(context.Background(), dup)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestClientRepoUpdateNotFound(t *testing.T) {
	database := newTestDB(t)
	repo := NewClientRepo(database)

	missing := domain.NewClient{
		FirstName:   "No",
		LastName:    "One",
		CompanyName: "Nowhere",
		Email:       "noone@nowhere.example",
	}.Client(time.Now())
	missing.ID = 42

	err := repo.Update(context.Background(), missing)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("error = %v, want ErrClientNotFound", err)
	}
}

func TestClientRepoArchiveCascade(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")
	for n := int64(1); n <= 3; n++ {
		createTestInvoice(t, invoiceRepo, n, client.ID, project.ID)
	}

	at := time.Now()
	if err := clientRepo.Archive(context.Background(), client.ID, at); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	archived, err := clientRepo.GetByID(context.Background(), client.ID, true)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !archived.IsArchived || archived.ArchivedAt == nil {
		t.Fatal("client row should carry archive flags")
	}

	gotProject, err := projectRepo.GetByID(context.Background(), project.ID, true)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !gotProject.IsArchived || gotProject.ArchivedAt == nil {
		t.Fatal("project row should be archived with its client")
	}
	if !gotProject.ArchivedAt.Equal(*archived.ArchivedAt) {
		t.Error("project archive timestamp differs from client's")
	}

	invoices, err := invoiceRepo.ListByClient(context.Background(), client.ID, true)
	if err != nil {
		t.Fatalf("ListByClient() error = %v", err)
	}
	if len(invoices) != 3 {
		t.Fatalf("got %d invoices, want 3", len(invoices))
	}
	for _, invoice := range invoices {
		if !invoice.IsArchived || invoice.ArchivedAt == nil {
			t.Errorf("invoice %d should be archived with its client", invoice.ID)
			continue
		}
		if !invoice.ArchivedAt.Equal(*archived.ArchivedAt) {
			t.Errorf("invoice %d archive timestamp differs from client's", invoice.ID)
		}
	}

	// Archived rows vanish from default reads
	if _, err := clientRepo.GetByID(context.Background(), client.ID, false); !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("error = %v, want ErrClientNotFound for archived client", err)
	}
}

func TestClientRepoArchiveUnknownIDWritesNothing(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")

	err := clientRepo.Archive(context.Background(), 99, time.Now())
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("error = %v, want ErrClientNotFound", err)
	}

	// The rollback must leave existing rows untouched
	gotClient, err := clientRepo.GetByID(context.Background(), client.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotClient.IsArchived {
		t.Error("existing client must not be archived by a failed cascade")
	}
	gotProject, err := projectRepo.GetByID(context.Background(), project.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotProject.IsArchived {
		t.Error("existing project must not be archived by a failed cascade")
	}
}

func TestClientRepoUnarchiveLeavesChildren(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")
	invoice := createTestInvoice(t, invoiceRepo, 1, client.ID, project.ID)

	if err := clientRepo.Archive(context.Background(), client.ID, time.Now()); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if err := clientRepo.Unarchive(context.Background(), client.ID, time.Now()); err != nil {
		t.Fatalf("Unarchive() error = %v", err)
	}

	gotClient, err := clientRepo.GetByID(context.Background(), client.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotClient.IsArchived || gotClient.ArchivedAt != nil {
		t.Error("client should no longer be archived")
	}

	gotProject, err := projectRepo.GetByID(context.Background(), project.ID, true)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !gotProject.IsArchived {
		t.Error("project should remain archived")
	}
	gotInvoice, err := invoiceRepo.GetByID(context.Background(), invoice.ID, true)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !gotInvoice.IsArchived {
		t.Error("invoice should remain archived")
	}
}

func TestProjectRepoArchiveCascadesInvoices(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")
	other := createTestProject(t, projectRepo, client.ID, "Brand refresh")
	createTestInvoice(t, invoiceRepo, 1, client.ID, project.ID)
	untouched := createTestInvoice(t, invoiceRepo, 2, client.ID, other.ID)

	if err := projectRepo.Archive(context.Background(), project.ID, time.Now()); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	invoices, err := invoiceRepo.ListByProject(context.Background(), project.ID, true)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	for _, invoice := range invoices {
		if !invoice.IsArchived {
			t.Errorf("invoice %d should be archived with its project", invoice.ID)
		}
	}

	gotOther, err := invoiceRepo.GetByID(context.Background(), untouched.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotOther.IsArchived {
		t.Error("invoices of other projects must not be touched")
	}

	gotClient, err := clientRepo.GetByID(context.Background(), client.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotClient.IsArchived {
		t.Error("the owning client must not be touched")
	}
}

func TestProjectRepoListByClientActiveOnly(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)

	client := createTestClient(t, clientRepo)
	active := createTestProject(t, projectRepo, client.ID, "Active work")
	ended := createTestProject(t, projectRepo, client.ID, "Finished work")

	ended.End(time.Now())
	if err := projectRepo.Update(context.Background(), ended); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := projectRepo.ListByClient(context.Background(), client.ID, true, false)
	if err != nil {
		t.Fatalf("ListByClient() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("activeOnly = %d projects, want only project %d", len(got), active.ID)
	}
}

func TestInvoiceRepoTotalCostRoundTrip(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")

	invoice := domain.NewInvoice{
		InvoiceNumber: 1001,
		TotalCost:     decimal.RequireFromString("1234.56"),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      client.ID,
		ProjectID:     project.ID,
	}.Invoice(time.Now())
	if err := invoiceRepo.Create(context.Background(), invoice); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := invoiceRepo.GetByNumber(context.Background(), 1001, false)
	if err != nil {
		t.Fatalf("GetByNumber() error = %v", err)
	}
	if !got.TotalCost.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("TotalCost = %s, want 1234.56 back unchanged", got.TotalCost)
	}
	if got.Status != domain.InvoiceStatusDraft {
		t.Errorf("Status = %q, want DRAFT", got.Status)
	}
}

func TestInvoiceRepoListStatusFilter(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")
	draft := createTestInvoice(t, invoiceRepo, 1, client.ID, project.ID)
	paid := createTestInvoice(t, invoiceRepo, 2, client.ID, project.ID)

	paid.SetStatus(domain.InvoiceStatusPaid, time.Now())
	if err := invoiceRepo.Update(context.Background(), paid); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	status := domain.InvoiceStatusPaid
	got, err := invoiceRepo.List(context.Background(), false, &status)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != paid.ID {
		t.Errorf("filter returned %d invoices, want only invoice %d", len(got), paid.ID)
	}

	all, err := invoiceRepo.List(context.Background(), false, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d invoices, want 2", len(all))
	}

	if all[0].ID != draft.ID {
		t.Errorf("invoices should come back in creation order")
	}
}

func TestInvoiceRepoDuplicateNumber(t *testing.T) {
	database := newTestDB(t)
	clientRepo := NewClientRepo(database)
	projectRepo := NewProjectRepo(database)
	invoiceRepo := NewInvoiceRepo(database)

	client := createTestClient(t, clientRepo)
	project := createTestProject(t, projectRepo, client.ID, "Website redesign")
	createTestInvoice(t, invoiceRepo, 1001, client.ID, project.ID)

	dup := domain.NewInvoice{
		InvoiceNumber: 1001,
		TotalCost:     decimal.NewFromInt(10),
		DueDate:       time.Now().AddDate(0, 1, 0),
		ClientID:      client.ID,
		ProjectID:     project.ID,
	}.Invoice(time.Now())

	err := invoiceRepo.Create(context.Background(), dup)
	if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
		t.Fatalf("error = %v, want ErrDuplicateInvoiceNumber", err)
	}
}
