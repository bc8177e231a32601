package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/premiere-engine/finance"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func recordDate() time.Time {
	return time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
}

func mustRecord(t *testing.T, id string, category finance.Category, amount int64, description string) finance.Record {
	t.Helper()
	r, err := finance.NewRecord(id, category, decimal.NewFromInt(amount), description, recordDate())
	require.NoError(t, err)
	return r
}

// =============================================================================
// CONSTRUCTION AND VALIDATION TESTS
// =============================================================================

func TestNewRecord_Valid(t *testing.T) {
	r := mustRecord(t, "r-1", finance.CategoryIncome, 100, "Distribution advance")

	assert.Equal(t, "r-1", r.ID)
	assert.Equal(t, finance.CategoryIncome, r.Category)
	assert.True(t, r.Amount.Equal(decimal.NewFromInt(100)))
}

func TestNewRecord_EmptyID_Rejected(t *testing.T) {
	_, err := finance.NewRecord("", finance.CategoryIncome, decimal.NewFromInt(10), "x", recordDate())
	assert.ErrorIs(t, err, finance.ErrEmptyID)
}

func TestNewRecord_NegativeAmount_Rejected(t *testing.T) {
	// GIVEN: An amount of -5
	// THEN: Construction fails with the amount message

	_, err := finance.NewRecord("r-1", finance.CategoryIncome, decimal.NewFromInt(-5), "x", recordDate())

	assert.ErrorIs(t, err, finance.ErrAmountNotPositive)
	assert.EqualError(t, err, "amount must be greater than 0")
}

func TestNewRecord_ZeroAmount_Rejected(t *testing.T) {
	_, err := finance.NewRecord("r-1", finance.CategoryIncome, decimal.Zero, "x", recordDate())
	assert.ErrorIs(t, err, finance.ErrAmountNotPositive)
}

func TestNewRecord_EmptyDescription_Rejected(t *testing.T) {
	_, err := finance.NewRecord("r-1", finance.CategoryIncome, decimal.NewFromInt(10), "", recordDate())
	assert.ErrorIs(t, err, finance.ErrEmptyDescription)
}

func TestNewRecord_MissingDate_Rejected(t *testing.T) {
	_, err := finance.NewRecord("r-1", finance.CategoryIncome, decimal.NewFromInt(10), "x", time.Time{})
	assert.ErrorIs(t, err, finance.ErrMissingDate)
}

func TestNewRecord_UnknownCategory_Rejected(t *testing.T) {
	_, err := finance.NewRecord("r-1", finance.Category("BRIBES"), decimal.NewFromInt(10), "x", recordDate())

	var unknown *finance.UnknownCategoryError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "BRIBES", unknown.Value)
}

func TestNewRecord_TruncatesDateToDay(t *testing.T) {
	noon := time.Date(2026, time.May, 4, 12, 34, 56, 0, time.UTC)

	r, err := finance.NewRecord("r-1", finance.CategoryIncome, decimal.NewFromInt(10), "x", noon)

	require.NoError(t, err)
	assert.Equal(t, recordDate(), r.Date)
}

func TestNewRecordID_ShortAndUnique(t *testing.T) {
	a := finance.NewRecordID()
	b := finance.NewRecordID()

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

// =============================================================================
// CATEGORY TESTS
// =============================================================================

func TestParseCategory_RoundTripsAll(t *testing.T) {
	for _, c := range finance.Categories() {
		parsed, err := finance.ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := finance.ParseCategory("income") // case-sensitive

	assert.ErrorIs(t, err, finance.ErrUnknownCategory)
}

func TestCategoryGroupings_BudgetInNeither(t *testing.T) {
	income := finance.IncomeCategories()
	expense := finance.ExpenseCategories()

	assert.True(t, income.Contains(finance.CategoryIncome))
	assert.True(t, income.Contains(finance.CategorySponsorship))
	assert.True(t, income.Contains(finance.CategoryCredit))

	assert.True(t, expense.Contains(finance.CategoryExpense))
	assert.True(t, expense.Contains(finance.CategoryAdvertising))
	assert.True(t, expense.Contains(finance.CategoryCast))
	assert.True(t, expense.Contains(finance.CategoryOther))

	assert.False(t, income.Contains(finance.CategoryBudget))
	assert.False(t, expense.Contains(finance.CategoryBudget))
}

// =============================================================================
// TICKET MARKER TESTS
// =============================================================================

func TestIsTicketSale_MarkerAndCategory(t *testing.T) {
	sale := mustRecord(t, "r-1", finance.CategoryIncome, 100, finance.SaleDescription("Opening Gala"))
	assert.True(t, sale.IsTicketSale())
	assert.False(t, sale.IsTicketRefund())

	// Marker without the income category does not count
	wrongCategory := mustRecord(t, "r-2", finance.CategoryOther, 100, finance.SaleDescription("Opening Gala"))
	assert.False(t, wrongCategory.IsTicketSale())

	// Income without the marker does not count
	plainIncome := mustRecord(t, "r-3", finance.CategoryIncome, 100, "Distribution advance")
	assert.False(t, plainIncome.IsTicketSale())
}

func TestIsTicketRefund_MarkerAndCategory(t *testing.T) {
	refund := mustRecord(t, "r-1", finance.CategoryExpense, 30, finance.RefundDescription("Opening Gala"))
	assert.True(t, refund.IsTicketRefund())
	assert.False(t, refund.IsTicketSale())
}

func TestDescriptions_CarryMarkerAndTitle(t *testing.T) {
	assert.Equal(t, "Ticket sale: Opening Gala", finance.SaleDescription("Opening Gala"))
	assert.Equal(t, "Ticket refund: Opening Gala", finance.RefundDescription("Opening Gala"))
	assert.Equal(t, "Premiere budget: Opening Gala", finance.BudgetDescription("Opening Gala"))
}
