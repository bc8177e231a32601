// Package premiere errors. Validation errors abort only the requested
// operation; messages are stable and used for both display and tests.
package premiere

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned when a premiere id is empty or blank.
	ErrEmptyID = errors.New("premiere id cannot be empty")

	// ErrIDTooLong is returned when an id exceeds MaxIDLength characters.
	ErrIDTooLong = errors.New("premiere id cannot exceed 30 characters")

	// ErrEmptyTitle is returned when a premiere has no title.
	ErrEmptyTitle = errors.New("premiere title cannot be empty")

	// ErrMissingDate is returned when a premiere has no date.
	ErrMissingDate = errors.New("premiere date cannot be empty")

	// ErrNegativeCapacity is returned for a negative ticket capacity.
	ErrNegativeCapacity = errors.New("ticket capacity cannot be negative")

	// ErrNegativeBudget is returned for a negative initial budget.
	ErrNegativeBudget = errors.New("premiere budget cannot be negative")

	// ErrInvalidBudget is returned for a non-positive budget contribution.
	ErrInvalidBudget = errors.New("budget contribution must be greater than 0")

	// ErrInvalidTicketCount is returned when a ticket count is not positive.
	ErrInvalidTicketCount = errors.New("ticket count must be greater than 0")

	// ErrOverReturn is returned when returning more tickets than were sold.
	ErrOverReturn = errors.New("cannot return more tickets than were sold")

	// ErrEmptyGuestName is returned for a blank guest name.
	ErrEmptyGuestName = errors.New("guest name cannot be empty")

	// ErrUnderageGuest is returned when the guest is not 18 or older.
	ErrUnderageGuest = errors.New("guest must be 18 or older to attend")

	// ErrEmptyReview is returned for a blank review.
	ErrEmptyReview = errors.New("review cannot be empty")

	// ErrNotFound is returned when an id matches no premiere.
	ErrNotFound = errors.New("premiere not found")

	// ErrDuplicateID is returned when adding a premiere whose id exists.
	ErrDuplicateID = errors.New("premiere id already exists")

	// ErrCorruptSnapshot is returned when persisted counters violate the
	// inventory invariant.
	ErrCorruptSnapshot = errors.New("corrupt premiere snapshot")
)

// OverReturnError carries the requested and sold counts of a bad return.
type OverReturnError struct {
	Requested int
	Sold      int
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("cannot return more tickets than were sold: requested %d, sold %d", e.Requested, e.Sold)
}

func (e *OverReturnError) Unwrap() error {
	return ErrOverReturn
}

// NotFoundError reports which premiere id was missing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("premiere with id %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
