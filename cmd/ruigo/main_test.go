package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/ruigo/internal/models"
)

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("embeddings:\n  path: /v.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Embeddings.Path != "/v.txt" {
		t.Errorf("Embeddings.Path = %q", cfg.Embeddings.Path)
	}
}

func TestLoadConfigCwdFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("embeddings:\n  path: /v.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })

	_, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(resolved) != "config.yaml" || filepath.Dir(resolved) == filepath.Dir(defaultConfigPath) {
		t.Errorf("resolved = %q, want cwd config.yaml", resolved)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"word1":"cat","word2":"dog","similarity":0.9939}`))
	}))
	defer ts.Close()

	var result models.SimilarityResult
	if err := getJSON(ts.URL, &result); err != nil {
		t.Fatal(err)
	}
	if result.Word1 != "cat" || result.Similarity != 0.9939 {
		t.Errorf("result = %+v", result)
	}
}

func TestGetJSONAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"\"cta\" not found","suggestions":["cat"]}`))
	}))
	defer ts.Close()

	err := getJSON(ts.URL, &models.SimilarityResult{})
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want apiError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if len(apiErr.Body.Suggestions) != 1 || apiErr.Body.Suggestions[0] != "cat" {
		t.Errorf("Suggestions = %v", apiErr.Body.Suggestions)
	}
	if !strings.Contains(apiErr.Error(), "404") {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestGetJSONNonJSONErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer ts.Close()

	err := getJSON(ts.URL, &models.Status{})
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want apiError", err)
	}
	if apiErr.Body.Error != "upstream exploded" {
		t.Errorf("Body.Error = %q", apiErr.Body.Error)
	}
}

func TestGetJSONUnreachable(t *testing.T) {
	if err := getJSON("http://127.0.0.1:1/api/v1/status", &models.Status{}); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
