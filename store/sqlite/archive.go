/*
Package sqlite provides the append-only ledger history archive.

PURPOSE:
  The flat files remain the durable source of truth for current state, but
  they are rewritten in full on every mutation - history is lost the moment
  it changes. The archive mirrors every ledger mutation (add/remove) into a
  SQLite table so past activity stays queryable.

APPEND-ONLY ENFORCEMENT:
  The archive only ever INSERTs. No UPDATE, no DELETE. A removed record is
  represented by a "remove" row, not by erasing its "add" row.

FAILURE POLICY:
  Archive failures are logged by the ledger and never surfaced to the
  operation caller; losing an audit row must not fail a sale.

WAL MODE:
  Opened with WAL journaling for crash safety, same settings as any other
  SQLite store in this codebase family.

USAGE:
  archive, err := sqlite.NewArchive("./data/history.db")
  ...
  ledger, err := finance.NewLedger(gateway, archive)
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/marquee/premiere-engine/finance"
)

// Archive implements finance.Archive over SQLite.
type Archive struct {
	db *sql.DB
	mu sync.RWMutex
}

// HistoryEntry is one archived ledger mutation.
type HistoryEntry struct {
	Seq        int64
	Op         finance.MutationOp
	Record     finance.Record
	OccurredAt time.Time
}

// NewArchive opens (or creates) the archive database.
// Use ":memory:" for an in-memory archive.
func NewArchive(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate archive database: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	-- Ledger mutation history (append-only)
	CREATE TABLE IF NOT EXISTS ledger_history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		op TEXT NOT NULL,
		record_id TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL,
		record_date TEXT NOT NULL,
		occurred_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_history_record
		ON ledger_history(record_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_history_occurred
		ON ledger_history(occurred_at);
	`
	_, err := a.db.Exec(schema)
	return err
}

// RecordMutation appends one mutation row.
func (a *Archive) RecordMutation(ctx context.Context, m finance.Mutation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO ledger_history
			(op, record_id, category, amount, description, record_date, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(m.Op),
		m.Record.ID,
		string(m.Record.Category),
		m.Record.Amount.StringFixed(2),
		m.Record.Description,
		m.Record.Date.Format(finance.DateLayout),
		m.OccurredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("archive mutation: %w", err)
	}
	return nil
}

// History returns all archived mutations in append order.
func (a *Archive) History(ctx context.Context) ([]HistoryEntry, error) {
	return a.query(ctx, `
		SELECT seq, op, record_id, category, amount, description, record_date, occurred_at
		FROM ledger_history ORDER BY seq`)
}

// HistoryForRecord returns every mutation touching one record id.
func (a *Archive) HistoryForRecord(ctx context.Context, recordID string) ([]HistoryEntry, error) {
	return a.query(ctx, `
		SELECT seq, op, record_id, category, amount, description, record_date, occurred_at
		FROM ledger_history WHERE record_id = ? ORDER BY seq`, recordID)
}

func (a *Archive) query(ctx context.Context, q string, args ...any) ([]HistoryEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (HistoryEntry, error) {
	var (
		e          HistoryEntry
		op         string
		category   string
		amount     string
		recordDate string
		occurredAt string
	)
	if err := rows.Scan(&e.Seq, &op, &e.Record.ID, &category, &amount,
		&e.Record.Description, &recordDate, &occurredAt); err != nil {
		return HistoryEntry{}, fmt.Errorf("scan archive row: %w", err)
	}

	e.Op = finance.MutationOp(op)
	e.Record.Category = finance.Category(category)

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("parse archived amount %q: %w", amount, err)
	}
	e.Record.Amount = amt

	if d, err := time.Parse(finance.DateLayout, recordDate); err == nil {
		e.Record.Date = d
	}
	if t, err := time.Parse(time.RFC3339Nano, occurredAt); err == nil {
		e.OccurredAt = t
	}
	return e, nil
}
