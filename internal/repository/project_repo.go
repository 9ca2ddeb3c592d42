package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/db"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// ProjectRepo is a SQLite implementation of ProjectRepository
type ProjectRepo struct {
	db *db.DB
}

// NewProjectRepo creates a new ProjectRepo
func NewProjectRepo(database *db.DB) *ProjectRepo {
	return &ProjectRepo{db: database}
}

const projectColumns = `id, name, description, start_date, end_date, client_id,
	       is_archived, archived_at, created_at, updated_at`

// Create inserts a new project into the database
func (r *ProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (
			name, description, start_date, end_date, client_id,
			is_archived, archived_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		nullableString(project.Description),
		formatTime(project.StartDate),
		nullableTime(project.EndDate),
		project.ClientID,
		project.IsArchived,
		nullableTime(project.ArchivedAt),
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "projects.name") {
			return domain.ErrDuplicateProjectName
		}
		return storeErr("failed to create project", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storeErr("failed to get project ID", err)
	}

	project.ID = id
	return nil
}

// GetByID retrieves a project by ID. Archived projects are treated as not
// found unless includeArchived is set.
func (r *ProjectRepo) GetByID(ctx context.Context, id int64, includeArchived bool) (*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = ? AND (is_archived = 0 OR ? = 1)
	`

	row := r.db.QueryRowContext(ctx, query, id, includeArchived)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, storeErr("failed to get project", err)
	}

	return project, nil
}

// List retrieves all projects in creation order
func (r *ProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE is_archived = 0 OR ? = 1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, includeArchived)
	if err != nil {
		return nil, storeErr("failed to list projects", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ListByClient retrieves a client's projects. activeOnly restricts the
// result to projects with no end date.
func (r *ProjectRepo) ListByClient(ctx context.Context, clientID int64, activeOnly, includeArchived bool) ([]*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE client_id = ?
		  AND (is_archived = 0 OR ? = 1)
		  AND (end_date IS NULL OR ? = 0)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, includeArchived, activeOnly)
	if err != nil {
		return nil, storeErr("failed to list client projects", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// Update writes all mutable fields of an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, start_date = ?, end_date = ?,
		    is_archived = ?, archived_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		nullableString(project.Description),
		formatTime(project.StartDate),
		nullableTime(project.EndDate),
		project.IsArchived,
		nullableTime(project.ArchivedAt),
		formatTime(project.UpdatedAt),
		project.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "projects.name") {
			return domain.ErrDuplicateProjectName
		}
		return storeErr("failed to update project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

// Archive marks the project plus all of its invoices as archived with the
// same timestamp. Both updates commit together or not at all; an unknown
// project id rolls everything back.
func (r *ProjectRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	ts := formatTime(at)

	return r.db.RunAtomic(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE invoices SET is_archived = 1, archived_at = ?, updated_at = ? WHERE project_id = ?`,
			ts, ts, id,
		); err != nil {
			return storeErr("failed to archive project invoices", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE projects SET is_archived = 1, archived_at = ?, updated_at = ? WHERE id = ?`,
			ts, ts, id,
		)
		if err != nil {
			return storeErr("failed to archive project", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return storeErr("failed to get rows affected", err)
		}
		if rows == 0 {
			return domain.ErrProjectNotFound
		}

		return nil
	})
}

// collectProjects drains a project result set
func collectProjects(rows *sql.Rows) ([]*domain.Project, error) {
	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, storeErr("failed to scan project", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating projects", err)
	}

	return projects, nil
}

// scanProject reads one project row from a row scanner
func scanProject(row interface{ Scan(dest ...any) error }) (*domain.Project, error) {
	project := &domain.Project{}
	var description, endDate, archivedAt sql.NullString
	var startDate, createdAt, updatedAt string

	err := row.Scan(
		&project.ID,
		&project.Name,
		&description,
		&startDate,
		&endDate,
		&project.ClientID,
		&project.IsArchived,
		&archivedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Description = scanString(description)

	if project.StartDate, err = parseTime(startDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = scanTime(endDate); err != nil {
		return nil, err
	}
	if project.ArchivedAt, err = scanTime(archivedAt); err != nil {
		return nil, err
	}
	if project.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return project, nil
}
