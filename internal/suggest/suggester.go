package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/hyperjump/ruigo/internal/store"
)

// bleve caps fuzzy query fuzziness at 2.
const maxBleveFuzziness = 2

// Suggester finds vocabulary words close in spelling to a missed lookup.
// Candidates come from a fuzzy query against an in-memory Bleve index over
// the vocabulary; ranking is by Damerau-Levenshtein distance so that a
// one-edit typo always beats a two-edit one.
type Suggester struct {
	index          bleve.Index
	maxDistance    int
	maxSuggestions int
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SuggesterOption {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMaxSuggestions sets how many suggestions to return at most.
func WithMaxSuggestions(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSuggester indexes the store's vocabulary into a memory-only Bleve index.
// The index is built once per store; a reloaded store gets a new Suggester.
func NewSuggester(s *store.Store, opts ...SuggesterOption) (*Suggester, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	wordField := bleve.NewTextFieldMapping()
	// Keyword analyzer indexes each vocabulary word as a single term, so
	// fuzzy queries match whole words, not tokens of them.
	wordField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("word", wordField)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion index: %w", err)
	}

	batch := index.NewBatch()
	for i, word := range s.Words() {
		if err := batch.Index(word, map[string]string{"word": strings.ToLower(word)}); err != nil {
			return nil, fmt.Errorf("failed to index word %q: %w", word, err)
		}
		if i%1000 == 999 {
			if err := index.Batch(batch); err != nil {
				return nil, fmt.Errorf("failed to index vocabulary batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to index vocabulary batch: %w", err)
	}

	sg := &Suggester{
		index:          index,
		maxDistance:    2,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(sg)
	}
	return sg, nil
}

// Suggest returns up to limit vocabulary words within the configured edit
// distance of word, nearest first. limit <= 0 uses the configured maximum.
// An unknown word with no close matches yields an empty slice, not an error.
func (sg *Suggester) Suggest(word string, limit int) ([]string, error) {
	if limit <= 0 || limit > sg.maxSuggestions {
		limit = sg.maxSuggestions
	}

	fuzziness := sg.maxDistance
	if fuzziness > maxBleveFuzziness {
		fuzziness = maxBleveFuzziness
	}
	query := bleve.NewFuzzyQuery(strings.ToLower(word))
	query.SetField("word")
	query.SetFuzziness(fuzziness)

	// Over-fetch so re-ranking by exact edit distance has candidates to work with.
	req := bleve.NewSearchRequest(query)
	req.Size = limit * 4

	res, err := sg.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion search failed: %w", err)
	}

	type candidate struct {
		word     string
		distance int
	}
	candidates := make([]candidate, 0, len(res.Hits))
	lower := strings.ToLower(word)
	for _, hit := range res.Hits {
		d := DamerauLevenshteinDistance(lower, strings.ToLower(hit.ID))
		if d == 0 || d > sg.maxDistance {
			continue
		}
		candidates = append(candidates, candidate{word: hit.ID, distance: d})
	}
	// Stable sort keeps Bleve's score order among equal distances.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out, nil
}

// Close releases the underlying index.
func (sg *Suggester) Close() error {
	return sg.index.Close()
}
