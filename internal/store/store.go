// Package store holds the client-side entity cache: one store per entity
// family mirroring the remote rows, per-id bookkeeping for in-flight
// mutations, and the cascade rules that keep cross-entity references
// consistent when a parent row is deleted.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Entity is any record the cache can hold.
type Entity interface {
	EntityID() uuid.UUID
}

// OpState is the per-id mutation state. Formalizing the old boolean maps
// as one explicit state means an id can never look both updating and
// deleting at once.
type OpState int

const (
	OpIdle OpState = iota
	OpUpdating
	OpDeleting
)

// Store is the authoritative in-memory mirror of one entity family.
//
// Mutation is always replace-by-id over a fresh slice, never an in-place
// field write, so readers holding an older snapshot are unaffected by
// later mutations. The mutex guards only the state transitions; remote
// calls run outside it, which is what lets independent per-id mutations
// overlap freely.
type Store[T Entity] struct {
	mu             sync.Mutex
	name           string
	items          []T
	selected       *T
	initialLoading bool
	creating       bool
	ops            map[uuid.UUID]OpState
	lastError      string
}

// New creates an empty store. name labels the entity family in errors.
func New[T Entity](name string) *Store[T] {
	return &Store[T]{
		name: name,
		ops:  make(map[uuid.UUID]OpState),
	}
}

// Reset drops all cached state; called on sign-out.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.selected = nil
	s.initialLoading = false
	s.creating = false
	s.ops = make(map[uuid.UUID]OpState)
	s.lastError = ""
}

// Items returns a snapshot copy of the cached rows.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of cached rows.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ByID returns the cached row with the given id.
func (s *Store[T]) ByID(id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Find returns the cached rows matching pred. Pure filter, no side effects.
func (s *Store[T]) Find(pred func(T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []T
	for _, item := range s.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Select marks the row with the given id as selected.
func (s *Store[T]) Select(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			copied := item
			s.selected = &copied
			return true
		}
	}
	return false
}

// Selected returns the selected row, if any.
func (s *Store[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		var zero T
		return zero, false
	}
	return *s.selected, true
}

// ClearSelection drops the selected row.
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// InitialLoading reports whether a fetchAll is in flight.
func (s *Store[T]) InitialLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialLoading
}

// Creating reports whether a create is in flight.
func (s *Store[T]) Creating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating
}

// State reports the in-flight mutation state for one id.
func (s *Store[T]) State(id uuid.UUID) OpState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops[id]
}

// LastError returns the store-scoped error slot.
func (s *Store[T]) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError empties the error slot.
func (s *Store[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Store[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}

// FetchAll replaces the cached rows with the result of load. The loading
// flag is released on every exit path.
func (s *Store[T]) FetchAll(load func() ([]T, error)) error {
	s.mu.Lock()
	s.initialLoading = true
	s.lastError = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.initialLoading = false
		s.mu.Unlock()
	}()

	items, err := load()
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.mu.Unlock()
	return nil
}

// Create runs call and prepends the returned row on success. The creating
// flag is released on every exit path.
func (s *Store[T]) Create(call func() (T, error)) (T, error) {
	s.mu.Lock()
	s.creating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.creating = false
		s.mu.Unlock()
	}()

	item, err := call()
	if err != nil {
		s.fail(err)
		var zero T
		return zero, err
	}

	s.mu.Lock()
	next := make([]T, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
	s.mu.Unlock()
	return item, nil
}

// Update marks id as updating, runs call, and on success replaces the
// matching row (and the selection, if it is the same id) with the returned
// value. A missing id is not checked locally; the remote reports it as a
// not-found failure like any other rejection. The per-id state returns to
// idle on every exit path.
func (s *Store[T]) Update(id uuid.UUID, call func() (T, error)) (T, error) {
	s.setState(id, OpUpdating)
	defer s.clearState(id)

	item, err := call()
	if err != nil {
		s.fail(err)
		var zero T
		return zero, err
	}

	s.mu.Lock()
	next := make([]T, len(s.items))
	copy(next, s.items)
	for i := range next {
		if next[i].EntityID() == id {
			next[i] = item
		}
	}
	s.items = next
	if s.selected != nil && (*s.selected).EntityID() == id {
		copied := item
		s.selected = &copied
	}
	s.mu.Unlock()
	return item, nil
}

// Delete marks id as deleting, runs the cascade (if any) and then call,
// and on success removes the row. A cascade failure aborts before the
// root delete, so a partially-cascaded parent stays visible rather than
// silently orphaning children. The per-id state returns to idle on every
// exit path.
func (s *Store[T]) Delete(id uuid.UUID, cascade func() error, call func() error) error {
	s.setState(id, OpDeleting)
	defer s.clearState(id)

	if cascade != nil {
		if err := cascade(); err != nil {
			wrapped := fmt.Errorf("%s cascade failed: %w", s.name, err)
			s.fail(wrapped)
			return wrapped
		}
	}

	if err := call(); err != nil {
		s.fail(err)
		return err
	}

	s.Remove(id)
	return nil
}

// Remove drops rows with the given id from the cache without touching the
// remote. The cascade orchestrator uses it to mirror dependent-row
// deletions that already happened remotely.
func (s *Store[T]) Remove(id uuid.UUID) {
	s.RemoveWhere(func(item T) bool { return item.EntityID() == id })
}

// RemoveWhere drops every cached row matching pred.
func (s *Store[T]) RemoveWhere(pred func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if !pred(item) {
			next = append(next, item)
		}
	}
	s.items = next
	if s.selected != nil && pred(*s.selected) {
		s.selected = nil
	}
}

// Patch replaces every cached row matching pred with fn(row). Used by the
// cascade orchestrator to mirror remote foreign-key nullification.
func (s *Store[T]) Patch(pred func(T) bool, fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, len(s.items))
	copy(next, s.items)
	for i := range next {
		if pred(next[i]) {
			next[i] = fn(next[i])
		}
	}
	s.items = next
}

// ReplaceItem swaps in a row that was refreshed outside the usual update
// path (e.g. a parent recomputed after a child delete).
func (s *Store[T]) ReplaceItem(item T) {
	id := item.EntityID()
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, len(s.items))
	copy(next, s.items)
	for i := range next {
		if next[i].EntityID() == id {
			next[i] = item
		}
	}
	s.items = next
	if s.selected != nil && (*s.selected).EntityID() == id {
		copied := item
		s.selected = &copied
	}
}

func (s *Store[T]) prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
}

func (s *Store[T]) setState(id uuid.UUID, st OpState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[id] = st
}

func (s *Store[T]) clearState(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ops, id)
}
