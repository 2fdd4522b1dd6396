// Package store holds the canonical Active and History collections.
package store

import "opdash/internal/domain"

// Store is the in-memory source of truth for both task collections. It does
// no locking of its own; the owning controller serializes access.
type Store struct {
	active  []domain.Task
	history []domain.Task
}

// New creates a store holding copies of the given collections
func New(active, history []domain.Task) *Store {
	s := &Store{}
	s.Replace(active, history)
	return s
}

// Active returns a copy of the Active collection in display order
func (s *Store) Active() []domain.Task {
	return clone(s.active)
}

// History returns a copy of the History collection in archive order
func (s *Store) History() []domain.Task {
	return clone(s.history)
}

// FindActive returns the active task with id
func (s *Store) FindActive(id string) (domain.Task, bool) {
	for _, t := range s.active {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// ReplaceActive swaps in a new Active collection
func (s *Store) ReplaceActive(tasks []domain.Task) {
	s.active = clone(tasks)
}

// ReplaceHistory swaps in a new History collection
func (s *Store) ReplaceHistory(tasks []domain.Task) {
	s.history = clone(tasks)
}

// Replace swaps in both collections
func (s *Store) Replace(active, history []domain.Task) {
	s.ReplaceActive(active)
	s.ReplaceHistory(history)
}

// clone never returns nil so that an emptied collection stays distinguishable
// from one that was never loaded
func clone(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
