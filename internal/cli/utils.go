// Package cli provides output formatting for the Ruigo command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/ruigo/internal/models"
)

// OutputFormat is the format for query result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default). Scores use fixed
	// 4-decimal precision.
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(v string) (OutputFormat, error) {
	switch v {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", v)
	}
}

// WriteSimilarity writes a pairwise similarity result to w.
func WriteSimilarity(w io.Writer, result *models.SimilarityResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, result)
	}
	fmt.Fprintf(w, "similarity(%s, %s) = %.4f\n", result.Word1, result.Word2, result.Similarity)
	return nil
}

// WriteNeighbors writes a ranked neighbor list to w.
func WriteNeighbors(w io.Writer, response *models.NeighborResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "Words most similar to %q:\n", response.Word)
	writeNeighborList(w, response.Neighbors)
	return nil
}

// WriteAnalogy writes an analogy result to w.
func WriteAnalogy(w io.Writer, response *models.AnalogyResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "%s is to %s as %s is to:\n", response.A, response.B, response.C)
	writeNeighborList(w, response.Neighbors)
	return nil
}

// WriteStatus writes store status to w.
func WriteStatus(w io.Writer, status *models.Status, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, status)
	}
	fmt.Fprintf(w, "vocabulary:  %d\n", status.Vocabulary)
	fmt.Fprintf(w, "dimensions:  %d\n", status.Dimensions)
	fmt.Fprintf(w, "source:      %s\n", status.Source)
	fmt.Fprintf(w, "loaded_at:   %s\n", status.LoadedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// WriteNotFound writes a user-facing unknown-word message with optional
// spelling suggestions.
func WriteNotFound(w io.Writer, word string, suggestions []string) {
	fmt.Fprintf(w, "%q is not in the vocabulary\n", word)
	if len(suggestions) > 0 {
		fmt.Fprintf(w, "Did you mean:\n")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
}

func writeNeighborList(w io.Writer, neighbors []models.Neighbor) {
	for i, n := range neighbors {
		fmt.Fprintf(w, "%3d. %-24s %.4f\n", i+1, n.Word, n.Similarity)
	}
	if len(neighbors) == 0 {
		fmt.Fprintln(w, "  (no candidates)")
	}
}

func writeJSON(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
