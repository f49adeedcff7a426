package embedding

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when an embedding file cannot be parsed into
// a consistent-dimensionality vector store. The load yields no partial store.
var ErrMalformedInput = errors.New("malformed embeddings input")

// ParseError describes where and why a load failed. It unwraps to
// ErrMalformedInput so callers can match with errors.Is.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed embeddings input at line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedInput
}
