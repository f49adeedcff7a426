package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/search"
	"github.com/hyperjump/ruigo/internal/store"
	"go.uber.org/zap"
)

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	query := &models.SimilarityQuery{
		Word1: r.URL.Query().Get("word1"),
		Word2: r.URL.Query().Get("word2"),
	}
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	s.logger.Debug("similarity request", zap.String("word1", query.Word1), zap.String("word2", query.Word2))
	result, err := s.engine.Similarity(query)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}
	query := &models.NeighborQuery{
		Word:  r.URL.Query().Get("word"),
		Limit: limit,
	}
	if query.Word == "" {
		s.respondError(w, http.StatusBadRequest, "word is required", nil)
		return
	}
	s.logger.Debug("neighbors request", zap.String("word", query.Word), zap.Int("limit", query.Limit))
	result, err := s.engine.MostSimilar(query)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalogy(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}
	query := &models.AnalogyQuery{
		A:     r.URL.Query().Get("a"),
		B:     r.URL.Query().Get("b"),
		C:     r.URL.Query().Get("c"),
		Limit: limit,
	}
	if query.A == "" || query.B == "" || query.C == "" {
		s.respondError(w, http.StatusBadRequest, "a, b and c are required", nil)
		return
	}
	s.logger.Debug("analogy request",
		zap.String("a", query.A), zap.String("b", query.B), zap.String("c", query.C))
	result, err := s.engine.Analogy(query)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sg := s.currentSuggester()
	if sg == nil {
		s.respondError(w, http.StatusNotFound, "suggestions disabled", nil)
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		s.respondError(w, http.StatusBadRequest, "word is required", nil)
		return
	}
	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}
	suggestions, err := sg.Suggest(word, limit)
	if err != nil {
		s.logger.Error("suggestion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SuggestResponse{Word: word, Suggestions: suggestions})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLimit reads the optional limit query parameter. Returns ok=false after
// writing a 400 when the value is present but not a positive integer.
func (s *Server) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		s.respondError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
		return 0, false
	}
	return limit, true
}

// respondQueryError maps engine errors to HTTP statuses: unknown word to 404
// (with spelling suggestions when available), undefined similarity to 422,
// anything else to 500.
func (s *Server) respondQueryError(w http.ResponseWriter, err error) {
	var notFound *store.WordNotFoundError
	if errors.As(err, &notFound) {
		var suggestions []string
		if sg := s.currentSuggester(); sg != nil {
			suggestions, _ = sg.Suggest(notFound.Word, 0)
		}
		s.respondError(w, http.StatusNotFound, err.Error(), suggestions)
		return
	}
	if errors.Is(err, search.ErrUndefinedSimilarity) {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	s.logger.Error("query failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error(), nil)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, suggestions []string) {
	s.respondJSON(w, status, &models.ErrorResponse{Error: message, Suggestions: suggestions})
}
