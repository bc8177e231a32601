/*
manager.go - Directory of premieres with write-through snapshots

PURPOSE:
  The Manager owns the premiere collection, keyed by id for O(1) lookup.
  Insertion order is kept separately so report passes iterate in a stable
  order. Every mutation rewrites the full snapshot file through the
  Repository; save failures are logged and never surfaced.

PER-PREMIERE FILES:
  Guest lists and reviews live in one file per premiere id. They are loaded
  lazily alongside the snapshot and saved whenever a guest or review is
  added through the manager.
*/
package premiere

import (
	"log"
)

// Repository persists premiere snapshots and the per-premiere guest and
// review files. Loads tolerate missing files by returning empty state.
type Repository interface {
	SaveSnapshots(premieres []*Premiere) error
	LoadSnapshots() ([]*Premiere, error)

	SaveGuests(id string, guests []string) error
	LoadGuests(id string) ([]string, error)

	SaveReviews(id string, reviews []string) error
	LoadReviews(id string) ([]string, error)
}

// Manager is the directory of premieres.
type Manager struct {
	repo      Repository
	premieres map[string]*Premiere
	order     []string // insertion order for report iteration
}

// NewManager loads all premieres, guest lists and reviews from the repository.
func NewManager(repo Repository) (*Manager, error) {
	m := &Manager{
		repo:      repo,
		premieres: make(map[string]*Premiere),
	}
	loaded, err := repo.LoadSnapshots()
	if err != nil {
		return nil, err
	}
	for _, p := range loaded {
		if _, dup := m.premieres[p.ID]; dup {
			log.Printf("premieres: skipping duplicate id %q from snapshot file", p.ID)
			continue
		}
		if guests, err := repo.LoadGuests(p.ID); err != nil {
			log.Printf("premieres: failed to load guests for %s: %v", p.ID, err)
		} else {
			p.Guests = guests
		}
		if reviews, err := repo.LoadReviews(p.ID); err != nil {
			log.Printf("premieres: failed to load reviews for %s: %v", p.ID, err)
		} else {
			p.Reviews = reviews
		}
		m.premieres[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m, nil
}

// Add registers a premiere and saves the snapshot file.
func (m *Manager) Add(p *Premiere) error {
	if p == nil {
		return ErrNotFound
	}
	if err := validateID(p.ID); err != nil {
		return err
	}
	if _, dup := m.premieres[p.ID]; dup {
		return ErrDuplicateID
	}
	m.premieres[p.ID] = p
	m.order = append(m.order, p.ID)
	m.Save()
	return nil
}

// FindByID returns the premiere with the given id.
func (m *Manager) FindByID(id string) (*Premiere, error) {
	p, ok := m.premieres[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return p, nil
}

// RemoveByID deletes a premiere and saves the snapshot file.
func (m *Manager) RemoveByID(id string) error {
	if _, ok := m.premieres[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(m.premieres, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.Save()
	return nil
}

// All returns the premieres in insertion order.
func (m *Manager) All() []*Premiere {
	out := make([]*Premiere, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.premieres[id])
	}
	return out
}

// Count returns the number of premieres.
func (m *Manager) Count() int {
	return len(m.premieres)
}

// Save rewrites the full snapshot file. Failures are logged, not returned.
func (m *Manager) Save() {
	if err := m.repo.SaveSnapshots(m.All()); err != nil {
		log.Printf("premieres: failed to save snapshots: %v", err)
	}
}

// AddGuest adds a guest to a premiere and persists its guest file.
func (m *Manager) AddGuest(id, name string, isAdult bool) error {
	p, err := m.FindByID(id)
	if err != nil {
		return err
	}
	if err := p.AddGuest(name, isAdult); err != nil {
		return err
	}
	if err := m.repo.SaveGuests(p.ID, p.Guests); err != nil {
		log.Printf("premieres: failed to save guests for %s: %v", p.ID, err)
	}
	return nil
}

// AddReview adds a review to a premiere and persists its review file.
func (m *Manager) AddReview(id, review string) error {
	p, err := m.FindByID(id)
	if err != nil {
		return err
	}
	if err := p.AddReview(review); err != nil {
		return err
	}
	if err := m.repo.SaveReviews(p.ID, p.Reviews); err != nil {
		log.Printf("premieres: failed to save reviews for %s: %v", p.ID, err)
	}
	return nil
}

// Reports renders the per-premiere report for every premiere, in order.
func (m *Manager) Reports() []string {
	reports := make([]string, 0, len(m.order))
	for _, p := range m.All() {
		reports = append(reports, p.Report())
	}
	return reports
}
