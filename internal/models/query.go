// Package models defines the query and result types shared by the engine,
// the HTTP API, and the CLI.
package models

import "fmt"

// DefaultNeighborLimit is used when a neighbor query does not specify one.
const DefaultNeighborLimit = 5

// SimilarityQuery asks for the cosine similarity of two words.
type SimilarityQuery struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
}

// Validate ensures both words are present.
func (q *SimilarityQuery) Validate() error {
	if q.Word1 == "" || q.Word2 == "" {
		return fmt.Errorf("similarity query requires two words")
	}
	return nil
}

// NeighborQuery asks for the top-N words most similar to Word.
type NeighborQuery struct {
	Word  string `json:"word"`
	Limit int    `json:"limit,omitempty"`
}

// Validate checks the word and normalizes the limit: non-positive limits get
// defaultLimit (or DefaultNeighborLimit when defaultLimit is 0), limits above
// maxLimit are clamped (0 maxLimit = no cap).
func (q *NeighborQuery) Validate(defaultLimit, maxLimit int) error {
	if q.Word == "" {
		return fmt.Errorf("neighbor query requires a word")
	}
	q.Limit = normalizeLimit(q.Limit, defaultLimit, maxLimit)
	return nil
}

func normalizeLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		if defaultLimit > 0 {
			limit = defaultLimit
		} else {
			limit = DefaultNeighborLimit
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// AnalogyQuery asks for words close to vec(B) - vec(A) + vec(C)
// ("A is to B as C is to ?").
type AnalogyQuery struct {
	A     string `json:"a"`
	B     string `json:"b"`
	C     string `json:"c"`
	Limit int    `json:"limit,omitempty"`
}

// Validate checks the words and normalizes the limit like NeighborQuery.
func (q *AnalogyQuery) Validate(defaultLimit, maxLimit int) error {
	if q.A == "" || q.B == "" || q.C == "" {
		return fmt.Errorf("analogy query requires three words")
	}
	q.Limit = normalizeLimit(q.Limit, defaultLimit, maxLimit)
	return nil
}
