/*
premieres.go - Premiere snapshot file and per-premiere guest/review files

SNAPSHOT ROW:
  ID, Title, Date, Budget, Location, TicketCapacity, TicketsSold

  The date carries time and zone abbreviation (dd.mm.yyyy HH:mm MST). The
  TicketCapacity column holds the REMAINING ticket count at save time; on
  load the initial capacity is reconstructed as remaining + sold, so the
  derived availability is never persisted as independent truth.

TOLERANCE:
  Rows with fewer than 7 fields or unparsable numbers/dates are dropped
  with an error log, same policy as the finance file.
*/
package flatfile

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marquee/premiere-engine/premiere"
)

// PremiereFileName is the snapshot file within the data directory.
const PremiereFileName = "premieres.txt"

const premiereHeader = "ID, Title, Date, Budget, Location, TicketCapacity, TicketsSold"

// PremiereStore persists premiere snapshots plus one guest file and one
// review file per premiere id.
type PremiereStore struct {
	dir string
}

// NewPremiereStore creates a store rooted at the given data directory.
func NewPremiereStore(dir string) *PremiereStore {
	return &PremiereStore{dir: dir}
}

// SaveSnapshots overwrites the snapshot file with every premiere.
func (s *PremiereStore) SaveSnapshots(premieres []*premiere.Premiere) error {
	var b strings.Builder
	b.WriteString(premiereHeader)
	b.WriteByte('\n')
	for _, p := range premieres {
		b.WriteString(strings.Join([]string{
			p.ID,
			p.Title,
			p.Date.Format(premiere.DateLayout),
			p.Budget.StringFixed(2),
			p.Location,
			strconv.Itoa(p.Available()),
			strconv.Itoa(p.Sold()),
		}, fieldSeparator))
		b.WriteByte('\n')
	}
	path := filepath.Join(s.dir, PremiereFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save premieres: %w", err)
	}
	return nil
}

// LoadSnapshots reads the snapshot file; missing file means no premieres.
func (s *PremiereStore) LoadSnapshots() ([]*premiere.Premiere, error) {
	path := filepath.Join(s.dir, PremiereFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("flatfile: %s not found, starting with no premieres", path)
			return nil, nil
		}
		return nil, fmt.Errorf("load premieres: %w", err)
	}

	var premieres []*premiere.Premiere
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, ok := parsePremiereRow(line)
		if !ok {
			continue
		}
		premieres = append(premieres, p)
	}
	return premieres, nil
}

func parsePremiereRow(line string) (*premiere.Premiere, bool) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < 7 {
		log.Printf("flatfile: premiere row does not match format, skipping: %q", line)
		return nil, false
	}

	date, err := time.Parse(premiere.DateLayout, fields[2])
	if err != nil {
		log.Printf("flatfile: invalid premiere date %q, skipping row", fields[2])
		return nil, false
	}
	budget, err := decimal.NewFromString(fields[3])
	if err != nil {
		log.Printf("flatfile: cannot parse premiere budget %q, skipping row", fields[3])
		return nil, false
	}
	remaining, err := strconv.Atoi(fields[5])
	if err != nil {
		log.Printf("flatfile: cannot parse ticket capacity %q, skipping row", fields[5])
		return nil, false
	}
	sold, err := strconv.Atoi(fields[6])
	if err != nil {
		log.Printf("flatfile: cannot parse tickets sold %q, skipping row", fields[6])
		return nil, false
	}

	// The capacity column stores what was left; the fixed initial capacity
	// is remaining + sold.
	p, err := premiere.Restore(fields[0], fields[1], date, fields[4], remaining+sold, sold, budget)
	if err != nil {
		log.Printf("flatfile: invalid premiere in row %q: %v, skipping", line, err)
		return nil, false
	}
	return p, true
}

// =============================================================================
// PER-PREMIERE GUEST AND REVIEW FILES
// =============================================================================

// SaveGuests writes the guest list in binary form to <id>_guests.dat.
func (s *PremiereStore) SaveGuests(id string, guests []string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(guests); err != nil {
		return fmt.Errorf("encode guests for %s: %w", id, err)
	}
	path := filepath.Join(s.dir, id+"_guests.dat")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save guests for %s: %w", id, err)
	}
	return nil
}

// LoadGuests reads <id>_guests.dat; missing file means no guests.
func (s *PremiereStore) LoadGuests(id string) ([]string, error) {
	path := filepath.Join(s.dir, id+"_guests.dat")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load guests for %s: %w", id, err)
	}
	var guests []string
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&guests); err != nil {
		// A corrupt guest file costs the list, not the premiere.
		log.Printf("flatfile: corrupt guest file for %s: %v, starting empty", id, err)
		return nil, nil
	}
	return guests, nil
}

// SaveReviews writes reviews newline-delimited to <id>_reviews.txt.
func (s *PremiereStore) SaveReviews(id string, reviews []string) error {
	content := strings.Join(reviews, "\n")
	if len(reviews) > 0 {
		content += "\n"
	}
	path := filepath.Join(s.dir, id+"_reviews.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("save reviews for %s: %w", id, err)
	}
	return nil
}

// LoadReviews reads <id>_reviews.txt; missing file means no reviews.
func (s *PremiereStore) LoadReviews(id string) ([]string, error) {
	path := filepath.Join(s.dir, id+"_reviews.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load reviews for %s: %w", id, err)
	}
	var reviews []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		reviews = append(reviews, line)
	}
	return reviews, nil
}
