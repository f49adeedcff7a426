package suggest

import "testing"

func TestDamerauLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"cat", "cat", 0},
		{"cat", "", 3},
		{"", "dog", 3},
		{"cat", "cut", 1},        // substitution
		{"cat", "cats", 1},       // insertion
		{"cats", "cat", 1},       // deletion
		{"ca", "ac", 1},          // transposition
		{"teh", "the", 1},        // transposition
		{"banana", "banan", 1},
		{"kitten", "sitting", 3},
		{"über", "uber", 1}, // rune-wise, not byte-wise
	}
	for _, tt := range tests {
		if got := DamerauLevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("DamerauLevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDamerauLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{{"cat", "act"}, {"apple", "aple"}, {"word", "world"}}
	for _, p := range pairs {
		ab := DamerauLevenshteinDistance(p[0], p[1])
		ba := DamerauLevenshteinDistance(p[1], p[0])
		if ab != ba {
			t.Errorf("distance(%q, %q) = %d but distance(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}
