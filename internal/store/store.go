// Package store provides the immutable in-memory embedding store: a mapping
// from word to fixed-dimensionality vector, built once and then read-only.
package store

import (
	"fmt"
	"time"

	"github.com/hyperjump/ruigo/internal/vector"
)

// Store maps words to embedding vectors. All vectors share one dimensionality.
// A Store is never mutated after Build; it is safe for concurrent readers.
type Store struct {
	words    []string // file insertion order; the deterministic tie-break for ranking
	vectors  map[string][]float32
	norms    map[string]float64 // L2 norms hoisted at build time
	dims     int
	source   string
	loadedAt time.Time
}

// Builder accumulates entries for a Store. The first Add establishes the
// store's dimensionality; later entries must match it.
type Builder struct {
	words   []string
	vectors map[string][]float32
	dims    int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{vectors: make(map[string][]float32)}
}

// Add inserts a word and its vector. A repeated word overwrites the earlier
// vector (last-write-wins) but keeps its original position in insertion order.
// Returns an error on a dimensionality mismatch or an empty vector.
func (b *Builder) Add(word string, vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("store: empty vector for word %q", word)
	}
	if b.dims == 0 {
		b.dims = len(vec)
	} else if len(vec) != b.dims {
		return fmt.Errorf("store: vector for word %q has %d dimensions, store has %d", word, len(vec), b.dims)
	}
	if _, exists := b.vectors[word]; !exists {
		b.words = append(b.words, word)
	}
	b.vectors[word] = vec
	return nil
}

// Len returns the number of distinct words added so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Build finalizes the Builder into an immutable Store, computing every
// vector's L2 norm once. source records where the data came from.
func (b *Builder) Build(source string) *Store {
	norms := make(map[string]float64, len(b.vectors))
	for word, vec := range b.vectors {
		norms[word] = vector.L2Norm(vec)
	}
	return &Store{
		words:    b.words,
		vectors:  b.vectors,
		norms:    norms,
		dims:     b.dims,
		source:   source,
		loadedAt: time.Now(),
	}
}

// Vector returns the embedding for word and whether it is present.
func (s *Store) Vector(word string) ([]float32, bool) {
	vec, ok := s.vectors[word]
	return vec, ok
}

// Norm returns the precomputed L2 norm for word (0 if absent).
func (s *Store) Norm(word string) float64 {
	return s.norms[word]
}

// Contains reports whether word is in the vocabulary.
func (s *Store) Contains(word string) bool {
	_, ok := s.vectors[word]
	return ok
}

// Words returns the vocabulary in insertion order. Callers must not modify
// the returned slice.
func (s *Store) Words() []string {
	return s.words
}

// Len returns the vocabulary size.
func (s *Store) Len() int {
	return len(s.words)
}

// Dimensions returns the store's vector dimensionality.
func (s *Store) Dimensions() int {
	return s.dims
}

// Source returns the identifier the store was built from (e.g. a file path).
func (s *Store) Source() string {
	return s.source
}

// LoadedAt returns when the store was built.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}
