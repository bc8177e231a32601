/*
ledger.go - Ordered, validated collection of finance records

PURPOSE:
  The Ledger owns the in-memory record collection. Insertion order is
  preserved because report rendering iterates in that order; a map index
  sits alongside the slice for O(1) id lookups.

WRITE-THROUGH PERSISTENCE:
  Every mutating call (AddRecord, RemoveRecord, GenerateReport) rewrites the
  backing file in full through the Gateway. Persistence failures are logged
  and never returned to the caller: the in-memory collection stays intact
  and the operation itself is considered successful.

OWNERSHIP:
  The ledger exclusively owns its records. The gateway only sees them for
  the duration of a Save/Load call, and Records() returns a copy.

TICKET CORRELATION:
  TicketSalesTotal/TicketRefundsTotal find ticket entries by the fixed
  marker substring in descriptions. There is no structured link; the marker
  convention is the contract.

SEE ALSO:
  - record.go: Validation and marker constants
  - report.go: Aggregated report built from the ledger
  - store/flatfile/finance.go: Gateway implementation
*/
package finance

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// GATEWAY AND ARCHIVE INTERFACES
// =============================================================================

// Gateway persists the full record collection. Save overwrites the backing
// file in one pass; Load returns an empty slice when the file is absent.
type Gateway interface {
	Save(records []Record) error
	Load() ([]Record, error)
}

// Archive mirrors ledger mutations into an append-only side store for audit
// queries. The flat file stays the durable source of truth; archive failures
// are logged, never surfaced.
type Archive interface {
	RecordMutation(ctx context.Context, m Mutation) error
}

// MutationOp identifies what happened to a record.
type MutationOp string

const (
	OpAdd    MutationOp = "add"
	OpRemove MutationOp = "remove"
)

// Mutation is one ledger change as seen by the archive.
type Mutation struct {
	Op         MutationOp
	Record     Record
	OccurredAt time.Time
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger maintains the validated, ordered record collection.
type Ledger struct {
	gateway Gateway
	archive Archive // may be nil
	records []Record
	index   map[string]struct{}
}

// NewLedger loads the existing collection through the gateway.
// archive may be nil to disable audit mirroring.
func NewLedger(gateway Gateway, archive Archive) (*Ledger, error) {
	l := &Ledger{
		gateway: gateway,
		archive: archive,
		index:   make(map[string]struct{}),
	}
	records, err := gateway.Load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if _, dup := l.index[r.ID]; dup {
			log.Printf("ledger: skipping duplicate record id %q from file", r.ID)
			continue
		}
		l.records = append(l.records, r)
		l.index[r.ID] = struct{}{}
	}
	return l, nil
}

// AddRecord validates and appends a record, then rewrites the backing file.
// Validation here is a second gate: records are already checked at
// construction, but the ledger never trusts its input.
func (l *Ledger) AddRecord(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, dup := l.index[r.ID]; dup {
		return ErrDuplicateID
	}

	l.records = append(l.records, r)
	l.index[r.ID] = struct{}{}
	l.persist()
	l.mirror(ctx, Mutation{Op: OpAdd, Record: r, OccurredAt: time.Now().UTC()})
	return nil
}

// RemoveRecord removes the record with the given id.
// Returns a NotFoundError if no record matches.
func (l *Ledger) RemoveRecord(ctx context.Context, id string) error {
	if _, ok := l.index[id]; !ok {
		return &NotFoundError{ID: id}
	}

	for i, r := range l.records {
		if r.ID == id {
			removed := r
			l.records = append(l.records[:i], l.records[i+1:]...)
			delete(l.index, id)
			l.persist()
			l.mirror(ctx, Mutation{Op: OpRemove, Record: removed, OccurredAt: time.Now().UTC()})
			return nil
		}
	}
	// Index and slice disagree; treat as not found rather than panic.
	delete(l.index, id)
	return &NotFoundError{ID: id}
}

// Records returns a copy of the collection in insertion order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Has reports whether a record with the given id exists.
func (l *Ledger) Has(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Count returns the number of records.
func (l *Ledger) Count() int {
	return len(l.records)
}

// =============================================================================
// AGGREGATION QUERIES
// =============================================================================

// TotalByCategories sums amounts over records whose category is in the set.
func (l *Ledger) TotalByCategories(set CategorySet) decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		if set.Contains(r.Category) {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TotalIncome sums the canonical income-like grouping.
func (l *Ledger) TotalIncome() decimal.Decimal {
	return l.TotalByCategories(IncomeCategories())
}

// TotalExpenses sums the canonical expense-like grouping.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	return l.TotalByCategories(ExpenseCategories())
}

// TicketSalesTotal sums income records carrying the ticket sale marker.
func (l *Ledger) TicketSalesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		if r.IsTicketSale() {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TicketRefundsTotal sums expense records carrying the ticket refund marker.
func (l *Ledger) TicketRefundsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		if r.IsTicketRefund() {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// =============================================================================
// PERSISTENCE HELPERS
// =============================================================================

// persist rewrites the full collection. Failures are logged, not returned:
// the in-memory state is authoritative until the next successful save.
func (l *Ledger) persist() {
	if err := l.gateway.Save(l.records); err != nil {
		log.Printf("ledger: failed to save records: %v", err)
	}
}

func (l *Ledger) mirror(ctx context.Context, m Mutation) {
	if l.archive == nil {
		return
	}
	if err := l.archive.RecordMutation(ctx, m); err != nil {
		log.Printf("ledger: failed to archive %s of record %s: %v", m.Op, m.Record.ID, err)
	}
}
