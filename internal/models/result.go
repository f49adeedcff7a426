package models

import "time"

// Neighbor is one ranked result: a vocabulary word and its cosine similarity
// to the query. Similarity is always within [-1, 1].
type Neighbor struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// SimilarityResult is the response for a pairwise similarity query.
type SimilarityResult struct {
	Word1      string  `json:"word1"`
	Word2      string  `json:"word2"`
	Similarity float64 `json:"similarity"`
	QueryTime  int64   `json:"query_time_ms"`
}

// NeighborResponse is the response for a top-N neighbor query.
// Neighbors is sorted by descending similarity; ties keep vocabulary
// (file) order, so results are reproducible across runs.
type NeighborResponse struct {
	Word      string     `json:"word"`
	Neighbors []Neighbor `json:"neighbors"`
	QueryTime int64      `json:"query_time_ms"`
}

// AnalogyResponse is the response for an analogy query.
type AnalogyResponse struct {
	A         string     `json:"a"`
	B         string     `json:"b"`
	C         string     `json:"c"`
	Neighbors []Neighbor `json:"neighbors"`
	QueryTime int64      `json:"query_time_ms"`
}

// SuggestResponse lists vocabulary words close in spelling to an unknown word.
type SuggestResponse struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
}

// Status describes the currently served store.
type Status struct {
	Vocabulary int       `json:"vocabulary"`
	Dimensions int       `json:"dimensions"`
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// ErrorResponse is the JSON error body returned by the HTTP API.
// Suggestions is populated for unknown-word errors when the suggester is
// enabled.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}
