package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/db"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

const invoiceColumns = `id, invoice_number, total_cost, due_date, status, validated_at,
	       client_id, project_id, is_archived, archived_at, created_at, updated_at`

// Create inserts a new invoice into the database
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_number, total_cost, due_date, status, validated_at,
			client_id, project_id, is_archived, archived_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.TotalCost.String(),
		formatTime(invoice.DueDate),
		string(invoice.Status),
		nullableTime(invoice.ValidatedAt),
		invoice.ClientID,
		invoice.ProjectID,
		invoice.IsArchived,
		nullableTime(invoice.ArchivedAt),
		formatTime(invoice.CreatedAt),
		formatTime(invoice.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "invoices.invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return storeErr("failed to create invoice", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storeErr("failed to get invoice ID", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice by ID. Archived invoices are treated as not
// found unless includeArchived is set.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = ? AND (is_archived = 0 OR ? = 1)
	`

	row := r.db.QueryRowContext(ctx, query, id, includeArchived)
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, storeErr("failed to get invoice", err)
	}

	return invoice, nil
}

// GetByNumber retrieves an invoice by its unique invoice number
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number int64, includeArchived bool) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_number = ? AND (is_archived = 0 OR ? = 1)
	`

	row := r.db.QueryRowContext(ctx, query, number, includeArchived)
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, storeErr("failed to get invoice", err)
	}

	return invoice, nil
}

// List retrieves invoices in creation order, optionally filtered by status
func (r *InvoiceRepo) List(ctx context.Context, includeArchived bool, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE (is_archived = 0 OR ? = 1)
		  AND (status = ? OR ? = '')
		ORDER BY id
	`

	statusFilter := ""
	if status != nil {
		statusFilter = string(*status)
	}

	rows, err := r.db.QueryContext(ctx, query, includeArchived, statusFilter, statusFilter)
	if err != nil {
		return nil, storeErr("failed to list invoices", err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// ListByClient retrieves all invoices billed to a client
func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID int64, includeArchived bool) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE client_id = ? AND (is_archived = 0 OR ? = 1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, includeArchived)
	if err != nil {
		return nil, storeErr("failed to list client invoices", err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// ListByProject retrieves all invoices attached to a project
func (r *InvoiceRepo) ListByProject(ctx context.Context, projectID int64, includeArchived bool) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE project_id = ? AND (is_archived = 0 OR ? = 1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, includeArchived)
	if err != nil {
		return nil, storeErr("failed to list project invoices", err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// Update writes all mutable fields of an existing invoice
func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = ?, total_cost = ?, due_date = ?, status = ?, validated_at = ?,
		    is_archived = ?, archived_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.TotalCost.String(),
		formatTime(invoice.DueDate),
		string(invoice.Status),
		nullableTime(invoice.ValidatedAt),
		invoice.IsArchived,
		nullableTime(invoice.ArchivedAt),
		formatTime(invoice.UpdatedAt),
		invoice.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "invoices.invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return storeErr("failed to update invoice", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

// Archive marks one invoice as archived with the given timestamp
func (r *InvoiceRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	ts := formatTime(at)

	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET is_archived = 1, archived_at = ?, updated_at = ? WHERE id = ?`,
		ts, ts, id,
	)
	if err != nil {
		return storeErr("failed to archive invoice", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

// collectInvoices drains an invoice result set
func collectInvoices(rows *sql.Rows) ([]*domain.Invoice, error) {
	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, storeErr("failed to scan invoice", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating invoices", err)
	}

	return invoices, nil
}

// scanInvoice reads one invoice row from a row scanner
func scanInvoice(row interface{ Scan(dest ...any) error }) (*domain.Invoice, error) {
	invoice := &domain.Invoice{}
	var totalCost, dueDate, status, createdAt, updatedAt string
	var validatedAt, archivedAt sql.NullString

	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&totalCost,
		&dueDate,
		&status,
		&validatedAt,
		&invoice.ClientID,
		&invoice.ProjectID,
		&invoice.IsArchived,
		&archivedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if invoice.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return nil, err
	}
	invoice.Status = domain.InvoiceStatus(status)

	if invoice.DueDate, err = parseTime(dueDate); err != nil {
		return nil, err
	}
	if invoice.ValidatedAt, err = scanTime(validatedAt); err != nil {
		return nil, err
	}
	if invoice.ArchivedAt, err = scanTime(archivedAt); err != nil {
		return nil, err
	}
	if invoice.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if invoice.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return invoice, nil
}
