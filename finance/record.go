/*
record.go - Validated, immutable finance record

PURPOSE:
  A FinanceRecord is the single unit of the financial ledger: a categorized
  monetary entry with an id, amount, description and calendar date.

VALIDATION:
  All fields are validated at construction. A record is either fully valid
  or it never exists - there is no separate "validate later" step.

TICKET CORRELATION:
  Records produced by ticket operations carry a fixed marker substring in
  their description ("Ticket sale" / "Ticket refund") plus the premiere
  title. The ledger uses this substring to find ticket-related entries;
  the marker text is part of the persisted file contract and must not change.

SEE ALSO:
  - ledger.go: Ordered collection and aggregation over records
  - store/flatfile/finance.go: Persisted row format
*/
package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category classifies the economic nature of a record.
type Category string

const (
	CategoryIncome      Category = "INCOME"      // box-office and distribution income
	CategoryCredit      Category = "CREDIT"      // bank credits
	CategorySponsorship Category = "SPONSORSHIP" // sponsor contributions
	CategoryExpense     Category = "EXPENSE"     // production expenses
	CategoryCast        Category = "CAST"        // cast and crew fees
	CategoryAdvertising Category = "ADVERTISING" // advertising spend
	CategoryBudget      Category = "BUDGET"      // premiere budget allocations
	CategoryOther       Category = "OTHER"
)

// Categories lists every recognized category.
func Categories() []Category {
	return []Category{
		CategoryIncome, CategoryCredit, CategorySponsorship, CategoryExpense,
		CategoryCast, CategoryAdvertising, CategoryBudget, CategoryOther,
	}
}

// ParseCategory converts a persisted category name into a Category.
// Unknown names return an UnknownCategoryError.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &UnknownCategoryError{Value: s}
}

// CategorySet is a set of categories used for aggregation queries.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	set := make(CategorySet, len(cats))
	for _, c := range cats {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether c is in the set.
func (s CategorySet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// IncomeCategories is the canonical income-like grouping.
// CategoryBudget is deliberately in neither grouping; budget allocations are
// internal transfers, not income or expense.
func IncomeCategories() CategorySet {
	return NewCategorySet(CategoryIncome, CategorySponsorship, CategoryCredit)
}

// ExpenseCategories is the canonical expense-like grouping.
func ExpenseCategories() CategorySet {
	return NewCategorySet(CategoryExpense, CategoryAdvertising, CategoryCast, CategoryOther)
}

// =============================================================================
// TICKET CORRELATION MARKERS
// =============================================================================

// Marker substrings embedded in descriptions of ticket-related records.
// These are part of the persisted file contract: changing them orphans
// every ticket entry in existing data files.
const (
	MarkerTicketSale   = "Ticket sale"
	MarkerTicketRefund = "Ticket refund"
)

// SaleDescription builds the description for a ticket sale entry.
func SaleDescription(premiereTitle string) string {
	return fmt.Sprintf("%s: %s", MarkerTicketSale, premiereTitle)
}

// RefundDescription builds the description for a ticket refund entry.
func RefundDescription(premiereTitle string) string {
	return fmt.Sprintf("%s: %s", MarkerTicketRefund, premiereTitle)
}

// BudgetDescription builds the description for a premiere budget contribution.
func BudgetDescription(premiereTitle string) string {
	return fmt.Sprintf("Premiere budget: %s", premiereTitle)
}

// =============================================================================
// RECORD
// =============================================================================

// DateLayout is the calendar-date format used everywhere a record date is
// rendered or persisted.
const DateLayout = "02.01.2006"

// Record is an immutable, validated monetary entry.
// Construct with NewRecord; a zero Record is not valid.
type Record struct {
	ID          string
	Category    Category
	Amount      decimal.Decimal
	Description string
	Date        time.Time // calendar date, normalized to midnight UTC
}

// NewRecord validates and constructs a Record.
func NewRecord(id string, category Category, amount decimal.Decimal, description string, date time.Time) (Record, error) {
	r := Record{
		ID:          id,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        truncateToDay(date),
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// NewRecordID generates a short unique record id.
func NewRecordID() string {
	return uuid.NewString()[:8]
}

// Validate checks every field. Used at construction and again by the ledger
// as a second gate before anything is appended.
func (r Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if r.Description == "" {
		return ErrEmptyDescription
	}
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// IsTicketSale reports whether this record is a ticket sale entry.
func (r Record) IsTicketSale() bool {
	return r.Category == CategoryIncome && strings.Contains(r.Description, MarkerTicketSale)
}

// IsTicketRefund reports whether this record is a ticket refund entry.
func (r Record) IsTicketRefund() bool {
	return r.Category == CategoryExpense && strings.Contains(r.Description, MarkerTicketRefund)
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s %q %s",
		r.ID, r.Category, r.Amount.StringFixed(2), r.Description, r.Date.Format(DateLayout))
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
