/*
errors.go - Centralized error types for the finance package

PURPOSE:
  All finance errors in one place. Validation errors abort only the single
  requested operation; not-found errors are a distinct condition so callers
  can tell "bad input" from "no such record". Persistence failures never
  surface through these errors - they are logged at the gateway boundary.

USAGE:
  errors.Is(err, finance.ErrAmountNotPositive)
  var nf *finance.NotFoundError
  errors.As(err, &nf)

SEE ALSO:
  - record.go: Construction-time validation producing these errors
  - ledger.go: Second validation gate and not-found conditions
*/
package finance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyID is returned when a record id is empty.
	ErrEmptyID = errors.New("record id cannot be empty")

	// ErrAmountNotPositive is returned when an amount is zero or negative.
	// The message is stable: user display and tests both rely on it.
	ErrAmountNotPositive = errors.New("amount must be greater than 0")

	// ErrEmptyDescription is returned when a description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrMissingDate is returned when a record has no date.
	ErrMissingDate = errors.New("date cannot be empty")

	// ErrUnknownCategory is returned for category names outside the enumeration.
	ErrUnknownCategory = errors.New("unknown finance category")

	// ErrRecordNotFound is returned when an id matches no record in the ledger.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when adding a record whose id already exists.
	ErrDuplicateID = errors.New("record id already exists")

	// ErrNoRecords is returned by report generation when the ledger is empty.
	ErrNoRecords = errors.New("no finance records to report on")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownCategoryError reports the offending category name.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown finance category %q", e.Value)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// NotFoundError reports which record id was missing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record with id %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// IsValidation returns true if the error is due to invalid record input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyID) ||
		errors.Is(err, ErrAmountNotPositive) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrUnknownCategory)
}
