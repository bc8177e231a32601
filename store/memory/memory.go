// Package memory provides in-memory Gateway and Repository implementations
// for testing and development. Saves keep deep copies so tests can assert
// exactly what would have been written, and a save counter makes the
// write-through contract observable.
package memory

import (
	"sync"

	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
)

// =============================================================================
// FINANCE GATEWAY
// =============================================================================

// FinanceGateway is an in-memory finance.Gateway.
type FinanceGateway struct {
	mu      sync.RWMutex
	records []finance.Record
	saves   int
	failing bool
}

// NewFinanceGateway returns an empty gateway.
func NewFinanceGateway() *FinanceGateway {
	return &FinanceGateway{}
}

// Seed replaces the stored collection, as if the file already existed.
func (g *FinanceGateway) Seed(records []finance.Record) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = append([]finance.Record(nil), records...)
}

// FailWrites makes every Save return an error, for testing the policy that
// persistence failures never corrupt in-memory state.
func (g *FinanceGateway) FailWrites(fail bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failing = fail
}

func (g *FinanceGateway) Save(records []finance.Record) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing {
		return errWriteFailed
	}
	g.records = append([]finance.Record(nil), records...)
	g.saves++
	return nil
}

func (g *FinanceGateway) Load() ([]finance.Record, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]finance.Record(nil), g.records...), nil
}

// SaveCount returns how many successful saves happened.
func (g *FinanceGateway) SaveCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.saves
}

// Saved returns the last successfully saved collection.
func (g *FinanceGateway) Saved() []finance.Record {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]finance.Record(nil), g.records...)
}

// =============================================================================
// PREMIERE REPOSITORY
// =============================================================================

// PremiereRepository is an in-memory premiere.Repository.
type PremiereRepository struct {
	mu        sync.RWMutex
	snapshots []*premiere.Premiere
	guests    map[string][]string
	reviews   map[string][]string
	saves     int
}

// NewPremiereRepository returns an empty repository.
func NewPremiereRepository() *PremiereRepository {
	return &PremiereRepository{
		guests:  make(map[string][]string),
		reviews: make(map[string][]string),
	}
}

func (r *PremiereRepository) SaveSnapshots(premieres []*premiere.Premiere) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append([]*premiere.Premiere(nil), premieres...)
	r.saves++
	return nil
}

func (r *PremiereRepository) LoadSnapshots() ([]*premiere.Premiere, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*premiere.Premiere(nil), r.snapshots...), nil
}

func (r *PremiereRepository) SaveGuests(id string, guests []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guests[id] = append([]string(nil), guests...)
	return nil
}

func (r *PremiereRepository) LoadGuests(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.guests[id]...), nil
}

func (r *PremiereRepository) SaveReviews(id string, reviews []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[id] = append([]string(nil), reviews...)
	return nil
}

func (r *PremiereRepository) LoadReviews(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.reviews[id]...), nil
}

// SaveCount returns how many snapshot saves happened.
func (r *PremiereRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

type writeError string

func (e writeError) Error() string { return string(e) }

const errWriteFailed = writeError("simulated write failure")
