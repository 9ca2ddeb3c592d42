package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/db"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

const clientColumns = `id, first_name, last_name, company_name, email,
	       address_street, address_city, address_zip,
	       phone_country_code, phone_number,
	       is_archived, archived_at, created_at, updated_at`

// Create inserts a new client into the database
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (
			first_name, last_name, company_name, email,
			address_street, address_city, address_zip,
			phone_country_code, phone_number,
			is_archived, archived_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.CompanyName,
		client.Email,
		nullableString(client.AddressStreet),
		nullableString(client.AddressCity),
		nullableString(client.AddressZip),
		nullableString(client.PhoneCountryCode),
		nullableString(client.PhoneNumber),
		client.IsArchived,
		nullableTime(client.ArchivedAt),
		formatTime(client.CreatedAt),
		formatTime(client.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "clients.email") {
			return domain.ErrDuplicateEmail
		}
		return storeErr("failed to create client", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storeErr("failed to get client ID", err)
	}

	client.ID = id
	return nil
}

// GetByID retrieves a client by ID. Archived clients are treated as not
// found unless includeArchived is set.
func (r *ClientRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = ? AND (is_archived = 0 OR ? = 1)
	`

	row := r.db.QueryRowContext(ctx, query, id, includeArchived)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, storeErr("failed to get client", err)
	}

	return client, nil
}

// List retrieves all clients in creation order, optionally including
// archived ones
func (r *ClientRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_archived = 0 OR ? = 1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, includeArchived)
	if err != nil {
		return nil, storeErr("failed to list clients", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, storeErr("failed to scan client", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating clients", err)
	}

	return clients, nil
}

// Update writes all mutable fields of an existing client
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET first_name = ?, last_name = ?, company_name = ?, email = ?,
		    address_street = ?, address_city = ?, address_zip = ?,
		    phone_country_code = ?, phone_number = ?,
		    is_archived = ?, archived_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.CompanyName,
		client.Email,
		nullableString(client.AddressStreet),
		nullableString(client.AddressCity),
		nullableString(client.AddressZip),
		nullableString(client.PhoneCountryCode),
		nullableString(client.PhoneNumber),
		client.IsArchived,
		nullableTime(client.ArchivedAt),
		formatTime(client.UpdatedAt),
		client.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "clients.email") {
			return domain.ErrDuplicateEmail
		}
		return storeErr("failed to update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// Archive marks the client plus all of its projects and invoices as
// archived with the same timestamp. The three updates commit together or
// not at all; an unknown client id rolls everything back.
func (r *ClientRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	ts := formatTime(at)

	return r.db.RunAtomic(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE invoices SET is_archived = 1, archived_at = ?, updated_at = ? WHERE client_id = ?`,
			ts, ts, id,
		); err != nil {
			return storeErr("failed to archive client invoices", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET is_archived = 1, archived_at = ?, updated_at = ? WHERE client_id = ?`,
			ts, ts, id,
		); err != nil {
			return storeErr("failed to archive client projects", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE clients SET is_archived = 1, archived_at = ?, updated_at = ? WHERE id = ?`,
			ts, ts, id,
		)
		if err != nil {
			return storeErr("failed to archive client", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return storeErr("failed to get rows affected", err)
		}
		if rows == 0 {
			return domain.ErrClientNotFound
		}

		return nil
	})
}

// Unarchive clears the archive flags on the client row. Projects and
// invoices keep whatever archive state they have.
func (r *ClientRepo) Unarchive(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET is_archived = 0, archived_at = NULL, updated_at = ? WHERE id = ?`,
		formatTime(at), id,
	)
	if err != nil {
		return storeErr("failed to unarchive client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// scanClient reads one client row from a row scanner
func scanClient(row interface{ Scan(dest ...any) error }) (*domain.Client, error) {
	client := &domain.Client{}
	var street, city, zip, countryCode, phone, archivedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.CompanyName,
		&client.Email,
		&street,
		&city,
		&zip,
		&countryCode,
		&phone,
		&client.IsArchived,
		&archivedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	client.AddressStreet = scanString(street)
	client.AddressCity = scanString(city)
	client.AddressZip = scanString(zip)
	client.PhoneCountryCode = scanString(countryCode)
	client.PhoneNumber = scanString(phone)

	if client.ArchivedAt, err = scanTime(archivedAt); err != nil {
		return nil, err
	}
	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if client.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return client, nil
}
