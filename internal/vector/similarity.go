// Package vector provides cosine similarity primitives over embedding vectors.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroMagnitude is returned when cosine similarity is requested for a
// zero-magnitude vector. The division by the norm is undefined in that case,
// so the condition is signaled instead of propagating NaN.
var ErrZeroMagnitude = errors.New("vector: zero-magnitude vector has undefined cosine similarity")

// Dot returns the dot product of two equal-length vectors.
// Accumulates in float64 to limit rounding error on long vectors.
func Dot(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the Euclidean (L2) norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b: dot(a,b) / (|a|*|b|).
// Returns ErrZeroMagnitude when either vector has norm 0, and an error when
// the vectors differ in length. The result is always within [-1, 1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: dimension mismatch: %d vs %d", len(a), len(b))
	}
	normA := L2Norm(a)
	normB := L2Norm(b)
	if normA == 0 || normB == 0 {
		return 0, ErrZeroMagnitude
	}
	return Clamp(Dot(a, b)/(normA*normB), -1, 1), nil
}

// CosineWithNorms computes cosine similarity using precomputed norms.
// Callers that score one query vector against a whole vocabulary hoist the
// norms once instead of recomputing them per comparison.
func CosineWithNorms(a, b []float32, normA, normB float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: dimension mismatch: %d vs %d", len(a), len(b))
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroMagnitude
	}
	return Clamp(Dot(a, b)/(normA*normB), -1, 1), nil
}

// Clamp bounds v to [lo, hi]. Cosine of float32 vectors can drift a few ulps
// past 1.0 through the float64 accumulation.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
