/*
Package flatfile implements the delimited text file persistence gateway.

PURPOSE:
  The flat files are the sole durable source of truth. Saves rewrite the
  destination file in full (no append, no transaction log); loads are
  tolerant - the header row is always skipped and any malformed row is
  logged and dropped, never aborting the whole read.

FILE CONTRACTS:
  finance_records.csv   one row per record, ", " delimited:
                        ID, Category, Amount, Description, Date
                        amount with exactly 2 decimals, date dd.mm.yyyy
  premieres.txt         one row per premiere (see premieres.go)
  <id>_guests.dat       gob-encoded guest list per premiere
  <id>_reviews.txt      newline-delimited reviews per premiere

CONCURRENCY:
  Single process, single writer, last-writer-wins. There is no file locking
  and no protection against two processes sharing a data directory; this is
  a known limitation of the design.

SEE ALSO:
  - finance/ledger.go: Gateway interface and write-through policy
  - premieres.go: Premiere snapshot rows
*/
package flatfile

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marquee/premiere-engine/finance"
)

// FinanceFileName is the ledger's backing file within the data directory.
const FinanceFileName = "finance_records.csv"

const financeHeader = "ID, Category, Amount, Description, Date"

const fieldSeparator = ", "

// FinanceStore persists the full finance record collection to one CSV file.
type FinanceStore struct {
	path string
}

// NewFinanceStore creates a store writing to dir/finance_records.csv.
func NewFinanceStore(dir string) *FinanceStore {
	return &FinanceStore{path: filepath.Join(dir, FinanceFileName)}
}

// Path returns the backing file path.
func (s *FinanceStore) Path() string { return s.path }

// Save overwrites the file with the full collection in one pass.
func (s *FinanceStore) Save(records []finance.Record) error {
	var b strings.Builder
	b.WriteString(financeHeader)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(strings.Join([]string{
			r.ID,
			string(r.Category),
			r.Amount.StringFixed(2),
			r.Description,
			r.Date.Format(finance.DateLayout),
		}, fieldSeparator))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save finance records: %w", err)
	}
	return nil
}

// Load reads the file if present. A missing file yields an empty collection.
// Malformed rows are logged and skipped; a single bad row never aborts the load.
func (s *FinanceStore) Load() ([]finance.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("flatfile: %s not found, starting with an empty ledger", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("load finance records: %w", err)
	}

	var records []finance.Record
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header row is always skipped
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := parseFinanceRow(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseFinanceRow parses one data row, reporting false for anything that
// does not round-trip into a valid record.
func parseFinanceRow(line string) (finance.Record, bool) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < 5 {
		log.Printf("flatfile: row does not match format, skipping: %q", line)
		return finance.Record{}, false
	}

	category, err := finance.ParseCategory(fields[1])
	if err != nil {
		log.Printf("flatfile: unknown category %q, skipping row", fields[1])
		return finance.Record{}, false
	}
	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		log.Printf("flatfile: cannot parse amount %q, skipping row", fields[2])
		return finance.Record{}, false
	}
	date, err := time.Parse(finance.DateLayout, fields[4])
	if err != nil {
		log.Printf("flatfile: invalid date %q, skipping row", fields[4])
		return finance.Record{}, false
	}

	rec, err := finance.NewRecord(fields[0], category, amount, fields[3], date)
	if err != nil {
		log.Printf("flatfile: invalid record in row %q: %v, skipping", line, err)
		return finance.Record{}, false
	}
	return rec, true
}
