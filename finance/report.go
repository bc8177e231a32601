/*
report.go - Financial summary report

PURPOSE:
  Builds the aggregate view over the ledger: income, expenses, net result,
  and the ticket sale/refund figures derived from marker-correlated records.

TICKET COUNTS:
  TicketsSold/TicketsRefunded are approximations: amount divided by the unit
  price, truncated. They are derived, not authoritative - the inventory is
  the source of truth for actual counts.
*/
package finance

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitPrice is the fixed per-ticket price used to derive approximate
// ticket counts from ledger amounts.
var DefaultUnitPrice = decimal.NewFromInt(10)

// Report is the aggregated financial summary.
type Report struct {
	GeneratedAt     time.Time
	Records         []Record
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	Net             decimal.Decimal
	TicketSales     decimal.Decimal
	TicketRefunds   decimal.Decimal
	TicketsSold     int64
	TicketsRefunded int64
	UnitPrice       decimal.Decimal
}

// GenerateReport computes the summary and rewrites the backing file, so the
// persisted state is guaranteed current when the report is read.
// Returns ErrNoRecords for an empty ledger instead of an empty report.
func (l *Ledger) GenerateReport() (*Report, error) {
	if len(l.records) == 0 {
		return nil, ErrNoRecords
	}

	price := DefaultUnitPrice
	sales := l.TicketSalesTotal()
	refunds := l.TicketRefundsTotal()

	rep := &Report{
		GeneratedAt:     time.Now().UTC(),
		Records:         l.Records(),
		TotalIncome:     l.TotalIncome(),
		TotalExpenses:   l.TotalExpenses(),
		TicketSales:     sales,
		TicketRefunds:   refunds,
		TicketsSold:     sales.Div(price).IntPart(),
		TicketsRefunded: refunds.Div(price).IntPart(),
		UnitPrice:       price,
	}
	rep.Net = rep.TotalIncome.Sub(rep.TotalExpenses)

	l.persist()
	return rep, nil
}

// Render writes the report as plain text, one record per line in insertion
// order followed by the totals block.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "===== Finance report =====")
	for _, rec := range r.Records {
		fmt.Fprintf(w, "%s | %-11s | %10s | %s | %s\n",
			rec.ID, rec.Category, rec.Amount.StringFixed(2),
			rec.Date.Format(DateLayout), rec.Description)
	}
	fmt.Fprintln(w, "==========================")
	fmt.Fprintf(w, "Total income:    %s\n", r.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Total expenses:  %s\n", r.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "Net result:      %s\n", r.Net.StringFixed(2))
	fmt.Fprintf(w, "Tickets sold:    ~%d for %s\n", r.TicketsSold, r.TicketSales.StringFixed(2))
	fmt.Fprintf(w, "Tickets refunded: ~%d for %s\n", r.TicketsRefunded, r.TicketRefunds.StringFixed(2))
	fmt.Fprintln(w, "==========================")
}
