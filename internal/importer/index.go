package importer

import "fmt"

// Index is an in-memory natural-key index over catalog entities, built once
// per run from the catalog snapshot and mutated by the owning pipeline as
// entities are created. It is owned by a single run and is not safe for
// concurrent use; the run lock serializes writers per domain.
type Index[E any] struct {
	entries map[string]E
}

// NewIndex returns an empty index.
func NewIndex[E any]() *Index[E] {
	return &Index[E]{entries: make(map[string]E)}
}

// Add inserts a new entry. A duplicate key is an error: the natural key must
// determine at most one entity, and the invariant is enforced here, at build
// time, rather than discovered during matching.
func (ix *Index[E]) Add(key string, e E) error {
	if _, exists := ix.entries[key]; exists {
		return fmt.Errorf("duplicate natural key %q", key)
	}
	ix.entries[key] = e
	return nil
}

// Put inserts or replaces an entry. Used to refresh an entity after a merge.
func (ix *Index[E]) Put(key string, e E) {
	ix.entries[key] = e
}

// Get looks up an entry by key.
func (ix *Index[E]) Get(key string) (E, bool) {
	e, ok := ix.entries[key]
	return e, ok
}

// Len returns the number of indexed entities.
func (ix *Index[E]) Len() int {
	return len(ix.entries)
}
