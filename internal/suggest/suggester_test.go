package suggest

import (
	"testing"

	"github.com/hyperjump/ruigo/internal/store"
)

func vocabStore(t *testing.T, words ...string) *store.Store {
	t.Helper()
	b := store.NewBuilder()
	for i, word := range words {
		if err := b.Add(word, []float32{1, float32(i)}); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build("test")
}

func TestSuggest(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "cat", "dog", "car", "cart", "banana"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("cta", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("no suggestions for cta")
	}
	// cat is one transposition away and must rank first.
	if got[0] != "cat" {
		t.Errorf("Suggest(cta)[0] = %q, want cat", got[0])
	}
}

func TestSuggestRanksByEditDistance(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "cart", "card", "ca"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("car", 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(got); i++ {
		prev := DamerauLevenshteinDistance("car", got[i-1])
		cur := DamerauLevenshteinDistance("car", got[i])
		if cur < prev {
			t.Errorf("suggestions not ordered by distance: %v", got)
		}
	}
}

func TestSuggestExcludesExactMatch(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "cat", "cut", "cot"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("cat", 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range got {
		if w == "cat" {
			t.Error("exact match returned as a suggestion")
		}
	}
}

func TestSuggestNoCloseMatches(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "banana", "orange"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("xyzzy", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Suggest(xyzzy) = %v, want none", got)
	}
}

func TestSuggestRespectsLimit(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "cat", "cut", "cot", "cab", "can", "cap"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("cas", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) > 2 {
		t.Errorf("got %d suggestions, want at most 2", len(got))
	}
}

func TestSuggestMaxDistance(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "cat", "coats"), WithMaxDistance(1))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("cats", 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range got {
		if DamerauLevenshteinDistance("cats", w) > 1 {
			t.Errorf("suggestion %q beyond max distance 1", w)
		}
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	sg, err := NewSuggester(vocabStore(t, "Paris", "parks"))
	if err != nil {
		t.Fatal(err)
	}
	defer sg.Close()

	got, err := sg.Suggest("paris", 5)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range got {
		if w == "Paris" {
			found = true
		}
	}
	// "paris" vs "Paris" differ only in case; distance is computed on the
	// lowercased forms, so the cased original would be distance 0 and is
	// filtered as an exact match. "parks" should still come back.
	if found {
		t.Error("case-only variant treated as a typo of itself")
	}
	if len(got) == 0 {
		t.Error("no suggestions at all")
	}
}
