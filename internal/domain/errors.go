package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input. It is raised before
// any write occurs and is never retried.
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s data: %s", e.Entity, e.Reason)
}

// NotFoundError reports that a referenced id, number, or filter matched
// nothing. Callers distinguish sub-cases via the sentinel values below.
type NotFoundError struct {
	msg string
}

func NotFound(msg string) *NotFoundError { return &NotFoundError{msg: msg} }

func (e *NotFoundError) Error() string { return e.msg }

// DuplicateError reports a uniqueness violation (email, invoice number,
// project name).
type DuplicateError struct {
	msg string
}

func Duplicate(msg string) *DuplicateError { return &DuplicateError{msg: msg} }

func (e *DuplicateError) Error() string { return e.msg }

// StoreError wraps a failure coming out of the data-access layer that is
// not a not-found or uniqueness condition.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

var (
	ErrClientNotFound  = NotFound("Client not found")
	ErrProjectNotFound = NotFound("Project not found")
	ErrInvoiceNotFound = NotFound("Invoice not found")

	ErrNoClients           = NotFound("No clients found")
	ErrNoProjects          = NotFound("No projects found")
	ErrNoActiveProjects    = NotFound("No active projects found")
	ErrNoInvoices          = NotFound("No invoices found")
	ErrNoProjectForInvoice = NotFound("No project found for that invoice")

	ErrDuplicateEmail         = Duplicate("A client with this email already exists")
	ErrDuplicateProjectName   = Duplicate("A project with this name already exists")
	ErrDuplicateInvoiceNumber = Duplicate("An invoice with this number already exists")
)

// IsNotFound reports whether err is any not-found condition
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate reports whether err is any uniqueness violation
func IsDuplicate(err error) bool {
	var d *DuplicateError
	return errors.As(err, &d)
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
