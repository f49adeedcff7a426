package search

import "errors"

// ErrUndefinedSimilarity is returned when a query involves a zero-magnitude
// vector: cosine similarity divides by the norm, so the result is undefined.
// Signaled as a distinct recoverable outcome rather than propagating NaN.
var ErrUndefinedSimilarity = errors.New("similarity undefined for zero-magnitude vector")
