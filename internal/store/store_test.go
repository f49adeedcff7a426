package store

import (
	"errors"
	"testing"
)

func TestBuilderAdd(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("cat", []float32{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("dog", []float32{0.9, 0.1, 0}); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBuilderDimensionMismatch(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("cat", []float32{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("dog", []float32{1, 0}); err == nil {
		t.Fatal("expected error for mismatched dimensionality")
	}
}

func TestBuilderEmptyVector(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("cat", nil); err == nil {
		t.Fatal("expected error for empty vector")
	}
}

func TestBuilderLastWriteWins(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("apple", []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("banana", []float32{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("apple", []float32{0, 1}); err != nil {
		t.Fatal(err)
	}
	s := b.Build("test")

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	vec, ok := s.Vector("apple")
	if !ok {
		t.Fatal("apple missing")
	}
	if vec[0] != 0 || vec[1] != 1 {
		t.Errorf("apple vector = %v, want [0 1] (last write wins)", vec)
	}
	// The repeated word keeps its original insertion position.
	words := s.Words()
	if words[0] != "apple" || words[1] != "banana" {
		t.Errorf("Words() = %v, want [apple banana]", words)
	}
}

func TestStoreLookups(t *testing.T) {
	b := NewBuilder()
	_ = b.Add("cat", []float32{3, 4})
	s := b.Build("test")

	if !s.Contains("cat") {
		t.Error("Contains(cat) = false")
	}
	if s.Contains("dog") {
		t.Error("Contains(dog) = true")
	}
	if _, ok := s.Vector("dog"); ok {
		t.Error("Vector(dog) reported present")
	}
	if got := s.Norm("cat"); got != 5 {
		t.Errorf("Norm(cat) = %v, want 5 (precomputed)", got)
	}
	if got := s.Norm("dog"); got != 0 {
		t.Errorf("Norm(dog) = %v, want 0", got)
	}
	if s.Dimensions() != 2 {
		t.Errorf("Dimensions() = %d, want 2", s.Dimensions())
	}
	if s.Source() != "test" {
		t.Errorf("Source() = %q, want test", s.Source())
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt() is zero")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound does not unwrap to ErrNotFound")
	}
	var wordErr *WordNotFoundError
	if !errors.As(err, &wordErr) {
		t.Fatal("NotFound is not a WordNotFoundError")
	}
	if wordErr.Word != "missing" {
		t.Errorf("Word = %q, want missing", wordErr.Word)
	}
}

func TestHandleSwap(t *testing.T) {
	b1 := NewBuilder()
	_ = b1.Add("cat", []float32{1, 0})
	s1 := b1.Build("first")

	b2 := NewBuilder()
	_ = b2.Add("dog", []float32{0, 1})
	_ = b2.Add("cat", []float32{1, 1})
	s2 := b2.Build("second")

	h := NewHandle(s1)
	if h.Current() != s1 {
		t.Fatal("Current() != initial store")
	}
	old := h.Swap(s2)
	if old != s1 {
		t.Error("Swap did not return previous store")
	}
	if h.Current() != s2 {
		t.Error("Current() != swapped store")
	}
	// The old store is untouched by the swap.
	if s1.Len() != 1 || !s1.Contains("cat") {
		t.Error("previous store mutated by swap")
	}
}
