package domain

import (
	"strings"
	"time"
)

type Project struct {
	ID          int64
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	ClientID    int64
	IsArchived  bool
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject is the input shape for project creation
type NewProject struct {
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	ClientID    int64
}

// ProjectPatch is a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Project builds a Project from the input with fresh bookkeeping fields
func (n NewProject) Project(now time.Time) *Project {
	return &Project{
		Name:        strings.TrimSpace(n.Name),
		Description: n.Description,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
		ClientID:    n.ClientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsActive reports whether the project is still running (no end date)
func (p *Project) IsActive() bool {
	return p.EndDate == nil
}

// End sets the end date. Calling it again advances the date.
func (p *Project) End(at time.Time) {
	p.EndDate = &at
	p.UpdatedAt = at
}

// SetArchived marks the project archived at the given time
func (p *Project) SetArchived(at time.Time) {
	p.IsArchived = true
	p.ArchivedAt = &at
	p.UpdatedAt = at
}

// ResetArchived clears the archive flags
func (p *Project) ResetArchived(at time.Time) {
	p.IsArchived = false
	p.ArchivedAt = nil
	p.UpdatedAt = at
}

// Apply copies the set fields of the patch onto the project
func (p *Project) Apply(patch ProjectPatch, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = patch.EndDate
	}
	p.UpdatedAt = now
}
