// Package postgres holds the error values shared by the postgres
// repositories.
package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("row not found")

	// Workflow errors.
	ErrInvalidReason    = errors.New("invalid absence reason")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrAlreadyCompleted = errors.New("document request already completed")

	// Assignment engine errors.
	ErrServiceNotFound     = errors.New("service not found")
	ErrNoEmployeesSelected = errors.New("no employees selected")
	ErrConcurrencyConflict = errors.New("assignment conflicted with a concurrent change, retry")
)
