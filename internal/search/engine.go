// Package search provides the similarity query engine: pairwise cosine
// similarity and brute-force top-N nearest-neighbor ranking over an
// embedding store.
package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/store"
	"github.com/hyperjump/ruigo/internal/vector"
)

// Engine answers similarity queries against the store currently held by a
// Handle. All queries are read-only and deterministic for a fixed store.
type Engine struct {
	handle *store.Handle
	config *config.QueryConfig
}

// NewEngine creates an engine over handle.
func NewEngine(handle *store.Handle, cfg *config.QueryConfig) *Engine {
	return &Engine{handle: handle, config: cfg}
}

// Store returns the store currently being served.
func (e *Engine) Store() *store.Store {
	return e.handle.Current()
}

// Status reports the served store's vocabulary size, dimensionality and source.
func (e *Engine) Status() *models.Status {
	s := e.Store()
	return &models.Status{
		Vocabulary: s.Len(),
		Dimensions: s.Dimensions(),
		Source:     s.Source(),
		LoadedAt:   s.LoadedAt(),
	}
}

// Similarity returns the cosine similarity of the two queried words.
// Returns store.ErrNotFound (wrapped with the word) when either word is
// absent and ErrUndefinedSimilarity when either vector has zero magnitude.
func (e *Engine) Similarity(query *models.SimilarityQuery) (*models.SimilarityResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	s := e.Store()

	vec1, ok := s.Vector(query.Word1)
	if !ok {
		return nil, store.NotFound(query.Word1)
	}
	vec2, ok := s.Vector(query.Word2)
	if !ok {
		return nil, store.NotFound(query.Word2)
	}

	sim, err := vector.CosineWithNorms(vec1, vec2, s.Norm(query.Word1), s.Norm(query.Word2))
	if err != nil {
		return nil, fmt.Errorf("%q vs %q: %w", query.Word1, query.Word2, ErrUndefinedSimilarity)
	}
	return &models.SimilarityResult{
		Word1:      query.Word1,
		Word2:      query.Word2,
		Similarity: sim,
		QueryTime:  time.Since(start).Milliseconds(),
	}, nil
}

// MostSimilar returns the top-N words most similar to the queried word,
// scanning every other vocabulary entry (brute force, O(V*D)).
// The query word itself is never a candidate. When fewer than N candidates
// exist, all of them are returned.
func (e *Engine) MostSimilar(query *models.NeighborQuery) (*models.NeighborResponse, error) {
	if err := query.Validate(e.defaultLimit(), e.maxLimit()); err != nil {
		return nil, err
	}
	start := time.Now()
	s := e.Store()

	target, ok := s.Vector(query.Word)
	if !ok {
		return nil, store.NotFound(query.Word)
	}
	targetNorm := s.Norm(query.Word)
	if targetNorm == 0 {
		return nil, fmt.Errorf("%q: %w", query.Word, ErrUndefinedSimilarity)
	}

	neighbors := rank(s, target, targetNorm, map[string]struct{}{query.Word: {}}, query.Limit)
	return &models.NeighborResponse{
		Word:      query.Word,
		Neighbors: neighbors,
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// Analogy returns words closest to vec(B) - vec(A) + vec(C), excluding the
// three query words ("A is to B as C is to ?").
func (e *Engine) Analogy(query *models.AnalogyQuery) (*models.AnalogyResponse, error) {
	if err := query.Validate(e.defaultLimit(), e.maxLimit()); err != nil {
		return nil, err
	}
	start := time.Now()
	s := e.Store()

	var vecs [3][]float32
	for i, word := range []string{query.A, query.B, query.C} {
		vec, ok := s.Vector(word)
		if !ok {
			return nil, store.NotFound(word)
		}
		vecs[i] = vec
	}

	target := make([]float32, s.Dimensions())
	for i := range target {
		target[i] = vecs[1][i] - vecs[0][i] + vecs[2][i]
	}
	targetNorm := vector.L2Norm(target)
	if targetNorm == 0 {
		return nil, fmt.Errorf("analogy %q %q %q: %w", query.A, query.B, query.C, ErrUndefinedSimilarity)
	}

	exclude := map[string]struct{}{query.A: {}, query.B: {}, query.C: {}}
	neighbors := rank(s, target, targetNorm, exclude, query.Limit)
	return &models.AnalogyResponse{
		A:         query.A,
		B:         query.B,
		C:         query.C,
		Neighbors: neighbors,
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

func (e *Engine) defaultLimit() int {
	if e.config == nil {
		return 0
	}
	return e.config.DefaultLimit
}

func (e *Engine) maxLimit() int {
	if e.config == nil {
		return 0
	}
	return e.config.MaxLimit
}

// rank scores target against every vocabulary vector not in exclude and
// returns the top limit entries by descending similarity. The target's norm
// is hoisted by the caller; candidate norms are precomputed by the store, so
// each comparison costs one dot product.
//
// sort.SliceStable over the vocabulary's insertion order makes tie order
// deterministic: equal scores keep file order.
// Zero-magnitude candidates have no defined similarity and are skipped.
func rank(s *store.Store, target []float32, targetNorm float64, exclude map[string]struct{}, limit int) []models.Neighbor {
	scored := make([]models.Neighbor, 0, s.Len())
	for _, word := range s.Words() {
		if _, skip := exclude[word]; skip {
			continue
		}
		candidateNorm := s.Norm(word)
		if candidateNorm == 0 {
			continue
		}
		candidate, _ := s.Vector(word)
		sim := vector.Clamp(vector.Dot(target, candidate)/(targetNorm*candidateNorm), -1, 1)
		scored = append(scored, models.Neighbor{Word: word, Similarity: sim})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}
