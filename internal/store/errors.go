package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a queried word is not in the vocabulary.
// It is a recoverable outcome: callers branch on it and report to the user.
var ErrNotFound = errors.New("word not found in vocabulary")

// WordNotFoundError carries the missing word. It unwraps to ErrNotFound so
// callers can match with errors.Is.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word %q not found in vocabulary", e.Word)
}

func (e *WordNotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound returns a WordNotFoundError for word.
func NotFound(word string) error {
	return &WordNotFoundError{Word: word}
}
