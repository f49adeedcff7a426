// Package embedding loads pre-trained word embeddings from the word2vec/GloVe
// text format: one word per line followed by its vector components.
package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyperjump/ruigo/internal/store"
	"go.uber.org/zap"
)

// Scanner buffer large enough for high-dimensional vectors (a 300-dim line of
// float text is ~4KB; leave generous headroom).
const maxLineBytes = 1024 * 1024

// progressInterval is how many lines between debug progress logs.
const progressInterval = 100000

// Loader parses embedding files into immutable stores.
type Loader struct {
	logger       *zap.Logger
	expectedDims int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger enables debug progress logging during loads.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// WithExpectedDimensions rejects files whose vectors do not have d components.
// Zero means take the dimensionality from the first line of the file.
func WithExpectedDimensions(d int) LoaderOption {
	return func(ld *Loader) {
		if d > 0 {
			ld.expectedDims = d
		}
	}
}

// NewLoader returns a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads the embedding file at path and builds a store.
// Failure yields no store: the result is either complete or nil.
func (l *Loader) Load(path string) (*store.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embeddings file: %w", err)
	}
	defer f.Close()
	return l.Read(f, path)
}

// Read parses embedding lines from r. source is recorded on the built store
// (a path for file loads, any label for tests).
//
// Each line is whitespace-delimited: the first token is the word, the rest are
// float components. The first data line establishes the dimensionality; every
// later line must match it. A repeated word overwrites the earlier entry.
// An optional word2vec-style header line ("<vocab> <dims>", two integer
// tokens) at the top of the file is skipped.
func (l *Loader) Read(r io.Reader, source string) (*store.Store, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	builder := store.NewBuilder()
	lineNo := 0
	sawData := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if !sawData && isHeaderLine(fields) {
			continue
		}
		if len(fields) < 2 {
			return nil, &ParseError{Line: lineNo, Reason: "line has no vector components"}
		}
		word := fields[0]
		vec := make([]float32, len(fields)-1)
		for i, tok := range fields[1:] {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("non-numeric component %q", tok)}
			}
			vec[i] = float32(v)
		}
		if l.expectedDims > 0 && len(vec) != l.expectedDims {
			return nil, &ParseError{
				Line:   lineNo,
				Reason: fmt.Sprintf("vector has %d dimensions, config expects %d", len(vec), l.expectedDims),
			}
		}
		if err := builder.Add(word, vec); err != nil {
			return nil, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		sawData = true
		if l.logger != nil && lineNo%progressInterval == 0 {
			l.logger.Debug("loading embeddings", zap.String("source", source), zap.Int("lines", lineNo))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read embeddings: %w", err)
	}
	if builder.Len() == 0 {
		return nil, fmt.Errorf("embeddings source %q contains no entries", source)
	}

	s := builder.Build(source)
	if l.logger != nil {
		l.logger.Info("embeddings loaded",
			zap.String("source", source),
			zap.Int("vocabulary", s.Len()),
			zap.Int("dimensions", s.Dimensions()),
		)
	}
	return s, nil
}

// isHeaderLine reports whether fields look like a word2vec text header:
// exactly two tokens, both non-negative integers.
func isHeaderLine(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, tok := range fields {
		if _, err := strconv.ParseUint(tok, 10, 64); err != nil {
			return false
		}
	}
	return true
}
