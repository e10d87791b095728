package cache

import (
	"github.com/milko/data-dictionary-cache/dictionary"
)

// Batch is a per-validator overlay of terms staged but not yet persisted.
// It is owned by a single validator instance and is not safe for concurrent
// use; the global map never learns about staged terms.
type Batch struct {
	staged map[string]*dictionary.Term
}

// NewBatch creates an empty overlay.
func NewBatch() *Batch {
	return &Batch{staged: make(map[string]*dictionary.Term)}
}

// Stage adds a projected term to the overlay, replacing any previous
// staging under the same key.
func (b *Batch) Stage(term *dictionary.Term) {
	if term != nil && term.Key != "" {
		b.staged[term.Key] = term
	}
}

// Get returns a staged term.
func (b *Batch) Get(id string) (*dictionary.Term, bool) {
	term, ok := b.staged[id]
	return term, ok
}

// Len returns the number of staged terms.
func (b *Batch) Len() int { return len(b.staged) }
