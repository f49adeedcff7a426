package vector

import (
	"errors"
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"parallel", []float32{1, 2, 3}, []float32{2, 4, 6}, 28},
		{"negative", []float32{1, -1}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); got != tt.want {
				t.Errorf("Dot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestL2Norm(t *testing.T) {
	if got := L2Norm([]float32{3, 4}); got != 5 {
		t.Errorf("L2Norm([3 4]) = %v, want 5", got)
	}
	if got := L2Norm([]float32{0, 0, 0}); got != 0 {
		t.Errorf("L2Norm(zero) = %v, want 0", got)
	}
	if got := L2Norm(nil); got != 0 {
		t.Errorf("L2Norm(nil) = %v, want 0", got)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr error
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1, nil},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0, nil},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1, nil},
		{"cat vs dog", []float32{1, 0, 0}, []float32{0.9, 0.1, 0}, 0.9939, nil},
		{"zero left", []float32{0, 0}, []float32{1, 0}, 0, ErrZeroMagnitude},
		{"zero right", []float32{1, 0}, []float32{0, 0}, 0, ErrZeroMagnitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Cosine() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cosine() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	if _, err := Cosine([]float32{1, 0}, []float32{1, 0, 0}); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{0.3, -1.2, 4.5, 0.01}
	b := []float32{-2.2, 0.9, 1.1, 3.3}
	ab, err := Cosine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Cosine(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Errorf("Cosine not symmetric: %v vs %v", ab, ba)
	}
}

func TestCosineBounds(t *testing.T) {
	// Self-similarity must stay within [-1, 1] despite float32 rounding.
	vecs := [][]float32{
		{1e-8, 1e-8, 1e-8},
		{1e8, -1e8, 1e8},
		{0.1, 0.2, 0.3, 0.4, 0.5},
	}
	for _, v := range vecs {
		got, err := Cosine(v, v)
		if err != nil {
			t.Fatal(err)
		}
		if got < -1 || got > 1 {
			t.Errorf("Cosine(v, v) = %v out of [-1, 1]", got)
		}
		if math.Abs(got-1) > 1e-9 {
			t.Errorf("Cosine(v, v) = %v, want 1", got)
		}
	}
}

func TestCosineWithNorms(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0.9, 0.1, 0}
	direct, err := Cosine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	hoisted, err := CosineWithNorms(a, b, L2Norm(a), L2Norm(b))
	if err != nil {
		t.Fatal(err)
	}
	if direct != hoisted {
		t.Errorf("hoisted norms changed the result: %v vs %v", hoisted, direct)
	}

	if _, err := CosineWithNorms(a, b, 0, L2Norm(b)); !errors.Is(err, ErrZeroMagnitude) {
		t.Errorf("expected ErrZeroMagnitude for zero norm, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.0000001, -1, 1); got != 1 {
		t.Errorf("Clamp(1.0000001) = %v, want 1", got)
	}
	if got := Clamp(-1.5, -1, 1); got != -1 {
		t.Errorf("Clamp(-1.5) = %v, want -1", got)
	}
	if got := Clamp(0.5, -1, 1); got != 0.5 {
		t.Errorf("Clamp(0.5) = %v, want 0.5", got)
	}
}
