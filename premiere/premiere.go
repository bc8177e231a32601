/*
premiere.go - Premiere event with capacity-bounded ticket inventory

PURPOSE:
  A Premiere holds a fixed ticket capacity and a sold counter. Sell and
  Return are the only mutations of that counter, and they guarantee the
  inventory invariant:

INVARIANT:
  0 <= sold <= capacity after every operation.
  Available is always derived as capacity - sold; it is never stored and can
  never exceed the initial capacity.

FAILURE SIGNALLING:
  Sell reports failure with a boolean; Return reports failure with an error.
  The asymmetry is intentional and preserved from the original system: a
  failed sale is an expected, frequent outcome the caller branches on, while
  a bad return is a caller mistake with a specific message attached.
  Callers must not record a companion ledger entry for a failed operation.

SEE ALSO:
  - manager.go: Directory of premieres keyed by id
  - boxoffice: Couples ticket operations to ledger entries
*/
package premiere

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxIDLength bounds premiere ids; the id doubles as a file name stem for
// the per-premiere guest and review files.
const MaxIDLength = 30

// DateLayout formats the premiere date with time and zone abbreviation,
// matching the snapshot file contract.
const DateLayout = "02.01.2006 15:04 MST"

// DefaultTicketPrice is the fixed per-ticket price of a premiere.
var DefaultTicketPrice = decimal.NewFromInt(10)

// Premiere is a scheduled event with ticket inventory, budget, guest list
// and reviews.
type Premiere struct {
	ID       string
	Title    string
	Date     time.Time
	Location string

	capacity int // fixed at creation, never decreased by a sale
	sold     int

	Budget    decimal.Decimal
	UnitPrice decimal.Decimal

	Guests  []string
	Reviews []string
}

// New validates and creates a premiere with zero tickets sold.
func New(id, title string, date time.Time, location string, capacity int, budget decimal.Decimal) (*Premiere, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if budget.IsNegative() {
		return nil, ErrNegativeBudget
	}
	return &Premiere{
		ID:        id,
		Title:     title,
		Date:      date,
		Location:  location,
		capacity:  capacity,
		Budget:    budget,
		UnitPrice: DefaultTicketPrice,
	}, nil
}

// Restore rebuilds a premiere from persisted state, including tickets
// already sold. Used by the snapshot loader only.
func Restore(id, title string, date time.Time, location string, capacity, sold int, budget decimal.Decimal) (*Premiere, error) {
	p, err := New(id, title, date, location, capacity, budget)
	if err != nil {
		return nil, err
	}
	if sold < 0 || sold > capacity {
		return nil, fmt.Errorf("%w: sold=%d capacity=%d", ErrCorruptSnapshot, sold, capacity)
	}
	p.sold = sold
	return p, nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	if len(id) > MaxIDLength {
		return ErrIDTooLong
	}
	return nil
}

// =============================================================================
// TICKET INVENTORY
// =============================================================================

// Capacity returns the initial ticket capacity.
func (p *Premiere) Capacity() int { return p.capacity }

// Sold returns the number of tickets currently sold.
func (p *Premiere) Sold() int { return p.sold }

// Available returns the derived remaining ticket count. Clamped so it never
// exceeds capacity and never goes negative, whatever the stored counters say.
func (p *Premiere) Available() int {
	avail := p.capacity - p.sold
	if avail < 0 {
		return 0
	}
	if avail > p.capacity {
		return p.capacity
	}
	return avail
}

// CanSell reports whether count tickets can be sold. No mutation.
func (p *Premiere) CanSell(count int) bool {
	if count <= 0 {
		return false
	}
	return p.sold+count <= p.capacity
}

// Sell sells count tickets. Returns false and mutates nothing when the
// count is not positive or availability is insufficient.
func (p *Premiere) Sell(count int) bool {
	if !p.CanSell(count) {
		return false
	}
	p.sold += count
	return true
}

// CanReturn checks a return against the caller-supplied sold count.
// count <= 0 is an invalid-count error; count > currentSold is an
// over-return error. No mutation.
func (p *Premiere) CanReturn(count, currentSold int) error {
	if count <= 0 {
		return ErrInvalidTicketCount
	}
	if count > currentSold {
		return &OverReturnError{Requested: count, Sold: currentSold}
	}
	return nil
}

// Return returns count tickets. On success sold is decreased and the
// derived availability is re-clamped so it never exceeds capacity.
func (p *Premiere) Return(count, currentSold int) error {
	if err := p.CanReturn(count, currentSold); err != nil {
		return err
	}
	p.sold -= count
	if p.sold < 0 {
		p.sold = 0
	}
	return nil
}

// Revenue computes the monetary value of count tickets at the premiere's
// unit price. Used by callers to size companion ledger entries.
func (p *Premiere) Revenue(count int) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(count)))
}

// =============================================================================
// BUDGET, GUESTS, REVIEWS
// =============================================================================

// AddBudget increases the budget by a strictly positive contribution.
func (p *Premiere) AddBudget(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidBudget
	}
	p.Budget = p.Budget.Add(amount)
	return nil
}

// AddGuest appends a guest. Empty names and under-age guests are rejected;
// premieres are 18+ events.
func (p *Premiere) AddGuest(name string, isAdult bool) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyGuestName
	}
	if !isAdult {
		return ErrUnderageGuest
	}
	p.Guests = append(p.Guests, name)
	return nil
}

// AddReview appends a non-blank review.
func (p *Premiere) AddReview(review string) error {
	if strings.TrimSpace(review) == "" {
		return ErrEmptyReview
	}
	p.Reviews = append(p.Reviews, review)
	return nil
}

// DisplayLocation substitutes a placeholder for an unset location.
func (p *Premiere) DisplayLocation() string {
	if p.Location == "" {
		return "location not specified"
	}
	return p.Location
}

// Report renders the per-premiere text report.
func (p *Premiere) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Premiere report: %s\n", p.Title)
	fmt.Fprintf(&b, "Date: %s\n", p.Date.Format("02.01.2006"))
	fmt.Fprintf(&b, "Location: %s\n", p.DisplayLocation())
	fmt.Fprintf(&b, "Tickets sold: %d\n", p.sold)
	fmt.Fprintf(&b, "Total revenue: $%s\n", p.Revenue(p.sold).StringFixed(2))
	if len(p.Guests) == 0 {
		b.WriteString("Guest list: no guests\n")
	} else {
		fmt.Fprintf(&b, "Guest list: %s\n", strings.Join(p.Guests, ", "))
	}
	fmt.Fprintf(&b, "Reviews: %s\n", strings.Join(p.Reviews, "; "))
	return b.String()
}
