/*
Package boxoffice couples ticket operations to the finance ledger.

PURPOSE:
  Selling or returning tickets is a two-step affair: mutate the premiere's
  inventory, then record a companion finance entry with the marker-substring
  description the ledger correlates on. This service is the only place that
  sequence lives, so the rule "a failed inventory operation never produces a
  ledger entry" is enforced in exactly one spot.

SEQUENCING:
  1. Look up the premiere (not-found is an error).
  2. Mutate inventory. A failed sell (boolean false) or bad return (error)
     stops here - no snapshot save, no ledger entry.
  3. Save the premiere snapshot.
  4. Construct the companion record and append it to the ledger (which
     saves the finance file itself).

  Execution is single-threaded by contract; there is no cross-step locking
  and no rollback of step 3 if step 4's validation fails (it cannot, since
  the record is built from already-validated state).
*/
package boxoffice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
)

// Service wires the premiere directory to the finance ledger.
type Service struct {
	Premieres *premiere.Manager
	Ledger    *finance.Ledger
}

// NewService creates the box office over the given manager and ledger.
func NewService(premieres *premiere.Manager, ledger *finance.Ledger) *Service {
	return &Service{Premieres: premieres, Ledger: ledger}
}

// TicketOperation is the outcome of a successful sell or return.
type TicketOperation struct {
	PremiereID string
	Count      int
	Amount     decimal.Decimal
	Sold       int
	Available  int
	RecordID   string
}

// InsufficientTicketsError reports a sell that exceeded availability.
type InsufficientTicketsError struct {
	PremiereID string
	Requested  int
	Available  int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("not enough tickets available: requested %d, available %d",
		e.Requested, e.Available)
}

// SellTickets sells count tickets and records the companion income entry.
func (s *Service) SellTickets(ctx context.Context, premiereID string, count int) (*TicketOperation, error) {
	p, err := s.Premieres.FindByID(premiereID)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, premiere.ErrInvalidTicketCount
	}
	if !p.Sell(count) {
		// Failed sell leaves inventory untouched and produces no ledger entry.
		return nil, &InsufficientTicketsError{
			PremiereID: premiereID,
			Requested:  count,
			Available:  p.Available(),
		}
	}
	s.Premieres.Save()

	amount := p.Revenue(count)
	rec, err := finance.NewRecord(
		finance.NewRecordID(),
		finance.CategoryIncome,
		amount,
		finance.SaleDescription(p.Title),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.AddRecord(ctx, rec); err != nil {
		return nil, err
	}

	return &TicketOperation{
		PremiereID: premiereID,
		Count:      count,
		Amount:     amount,
		Sold:       p.Sold(),
		Available:  p.Available(),
		RecordID:   rec.ID,
	}, nil
}

// ReturnTickets returns count tickets and records the companion expense entry.
func (s *Service) ReturnTickets(ctx context.Context, premiereID string, count int) (*TicketOperation, error) {
	p, err := s.Premieres.FindByID(premiereID)
	if err != nil {
		return nil, err
	}
	if err := p.Return(count, p.Sold()); err != nil {
		return nil, err
	}
	s.Premieres.Save()

	amount := p.Revenue(count)
	rec, err := finance.NewRecord(
		finance.NewRecordID(),
		finance.CategoryExpense,
		amount,
		finance.RefundDescription(p.Title),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.AddRecord(ctx, rec); err != nil {
		return nil, err
	}

	return &TicketOperation{
		PremiereID: premiereID,
		Count:      count,
		Amount:     amount,
		Sold:       p.Sold(),
		Available:  p.Available(),
		RecordID:   rec.ID,
	}, nil
}

// ContributeBudget increases a premiere's budget and records the allocation.
func (s *Service) ContributeBudget(ctx context.Context, premiereID string, amount decimal.Decimal) error {
	p, err := s.Premieres.FindByID(premiereID)
	if err != nil {
		return err
	}
	if err := p.AddBudget(amount); err != nil {
		return err
	}
	s.Premieres.Save()

	rec, err := finance.NewRecord(
		finance.NewRecordID(),
		finance.CategoryBudget,
		amount,
		finance.BudgetDescription(p.Title),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return s.Ledger.AddRecord(ctx, rec)
}
