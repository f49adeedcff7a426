// Package main is the Ruigo CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/ruigo/internal/cli"
	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/embedding"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/search"
	"github.com/hyperjump/ruigo/internal/server"
	"github.com/hyperjump/ruigo/internal/store"
	"github.com/hyperjump/ruigo/internal/suggest"
	"github.com/hyperjump/ruigo/internal/watcher"
	"github.com/hyperjump/ruigo/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/ruigo/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "similarity":
		runSimilarity()
	case "neighbors":
		runNeighbors()
	case "analogy":
		runAnalogy()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("ruigo version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (load progress, file events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Engine, &cfg.Server, logger, components.Suggester)

	var watchSvc *watcher.Watcher
	if cfg.Watch.Enabled {
		watchOpts := []watcher.WatcherOption{
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(cfg.Embeddings.Path, func() {
			reloadStore(cfg, logger, components, srv)
		}, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		logger.Info("watching embeddings file", zap.String("path", cfg.Embeddings.Path))
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// reloadStore builds a complete new store from the embeddings file and swaps
// it in. On failure the previous store keeps serving.
func reloadStore(cfg *config.Config, logger *zap.Logger, c *components, srv *server.Server) {
	logger.Info("embeddings file changed, reloading", zap.String("path", cfg.Embeddings.Path))
	newStore, err := c.Loader.Load(cfg.Embeddings.Path)
	if err != nil {
		logger.Error("reload failed, keeping previous store", zap.Error(err))
		return
	}
	c.Handle.Swap(newStore)
	if cfg.Suggest.EnabledOrDefault() {
		sg, err := suggest.NewSuggester(newStore,
			suggest.WithMaxDistance(cfg.Suggest.MaxDistance),
			suggest.WithMaxSuggestions(cfg.Suggest.MaxSuggestions),
		)
		if err != nil {
			logger.Warn("suggestion index rebuild failed", zap.Error(err))
		} else {
			srv.SetSuggester(sg)
			c.Suggester = sg
		}
	}
	logger.Info("store reloaded",
		zap.Int("vocabulary", newStore.Len()),
		zap.Int("dimensions", newStore.Dimensions()),
	)
}

func runSimilarity() {
	fs := flag.NewFlagSet("similarity", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (e.g. http://localhost:8080); empty loads the embeddings file directly")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 2 {
		fmt.Println("Usage: ruigo similarity [flags] <word1> <word2>")
		os.Exit(1)
	}
	word1, word2 := fs.Arg(0), fs.Arg(1)
	format := parseFormatOrExit(*outputFormat)

	if *serverURL != "" {
		var result models.SimilarityResult
		endpoint := fmt.Sprintf("%s/api/v1/similarity?word1=%s&word2=%s",
			*serverURL, url.QueryEscape(word1), url.QueryEscape(word2))
		exitOnAPIError(getJSON(endpoint, &result))
		if err := cli.WriteSimilarity(os.Stdout, &result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c := directComponents(*configPath)
	defer c.Close()
	result, err := c.Engine.Similarity(&models.SimilarityQuery{Word1: word1, Word2: word2})
	if err != nil {
		exitOnQueryError(c, err)
	}
	if err := cli.WriteSimilarity(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runNeighbors() {
	fs := flag.NewFlagSet("neighbors", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (e.g. http://localhost:8080); empty loads the embeddings file directly")
	limit := fs.Int("limit", models.DefaultNeighborLimit, "number of neighbors")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: ruigo neighbors [flags] <word>")
		os.Exit(1)
	}
	word := fs.Arg(0)
	format := parseFormatOrExit(*outputFormat)

	if *serverURL != "" {
		var result models.NeighborResponse
		endpoint := fmt.Sprintf("%s/api/v1/neighbors?word=%s&limit=%d",
			*serverURL, url.QueryEscape(word), *limit)
		exitOnAPIError(getJSON(endpoint, &result))
		if err := cli.WriteNeighbors(os.Stdout, &result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c := directComponents(*configPath)
	defer c.Close()
	result, err := c.Engine.MostSimilar(&models.NeighborQuery{Word: word, Limit: *limit})
	if err != nil {
		exitOnQueryError(c, err)
	}
	if err := cli.WriteNeighbors(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runAnalogy() {
	fs := flag.NewFlagSet("analogy", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (e.g. http://localhost:8080); empty loads the embeddings file directly")
	limit := fs.Int("limit", models.DefaultNeighborLimit, "number of results")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 3 {
		fmt.Println("Usage: ruigo analogy [flags] <a> <b> <c>   # a is to b as c is to ?")
		os.Exit(1)
	}
	a, b, c3 := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	format := parseFormatOrExit(*outputFormat)

	if *serverURL != "" {
		var result models.AnalogyResponse
		endpoint := fmt.Sprintf("%s/api/v1/analogy?a=%s&b=%s&c=%s&limit=%d",
			*serverURL, url.QueryEscape(a), url.QueryEscape(b), url.QueryEscape(c3), *limit)
		exitOnAPIError(getJSON(endpoint, &result))
		if err := cli.WriteAnalogy(os.Stdout, &result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c := directComponents(*configPath)
	defer c.Close()
	result, err := c.Engine.Analogy(&models.AnalogyQuery{A: a, B: b, C: c3, Limit: *limit})
	if err != nil {
		exitOnQueryError(c, err)
	}
	if err := cli.WriteAnalogy(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load embeddings file directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format := parseFormatOrExit(*outputFormat)

	var status models.Status
	if *serverURL != "" {
		exitOnAPIError(getJSON(*serverURL+"/api/v1/status", &status))
	} else {
		c := directComponents(*configPath)
		defer c.Close()
		status = *c.Engine.Status()
	}
	if err := cli.WriteStatus(os.Stdout, &status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// components holds initialized services.
type components struct {
	Handle    *store.Handle
	Engine    *search.Engine
	Loader    *embedding.Loader
	Suggester *suggest.Suggester // nil when disabled
}

func (c *components) Close() {
	if c.Suggester != nil {
		_ = c.Suggester.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*components, error) {
	loaderOpts := []embedding.LoaderOption{
		embedding.WithExpectedDimensions(cfg.Embeddings.ExpectedDimensions),
	}
	if debug {
		loaderOpts = append(loaderOpts, embedding.WithLogger(logger))
	}
	loader := embedding.NewLoader(loaderOpts...)

	s, err := loader.Load(cfg.Embeddings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load embeddings: %w", err)
	}
	handle := store.NewHandle(s)
	engine := search.NewEngine(handle, &cfg.Query)

	var suggester *suggest.Suggester
	if cfg.Suggest.EnabledOrDefault() {
		suggester, err = suggest.NewSuggester(s,
			suggest.WithMaxDistance(cfg.Suggest.MaxDistance),
			suggest.WithMaxSuggestions(cfg.Suggest.MaxSuggestions),
		)
		if err != nil {
			// Suggestions are a convenience; queries work without them.
			logger.Warn("suggestion index build failed", zap.Error(err))
			suggester = nil
		}
	}

	logger.Info("embedding store ready",
		zap.Int("vocabulary", s.Len()),
		zap.Int("dimensions", s.Dimensions()),
		zap.String("source", s.Source()),
	)

	return &components{
		Handle:    handle,
		Engine:    engine,
		Loader:    loader,
		Suggester: suggester,
	}, nil
}

// directComponents loads config and builds components for direct (serverless)
// query mode, exiting with a message on failure.
func directComponents(configPath string) *components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	c, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return c
}

// exitOnQueryError prints a user-facing message for recoverable query errors
// (unknown word with suggestions, undefined similarity) and exits non-zero.
func exitOnQueryError(c *components, err error) {
	var notFound *store.WordNotFoundError
	if errors.As(err, &notFound) {
		var suggestions []string
		if c.Suggester != nil {
			suggestions, _ = c.Suggester.Suggest(notFound.Word, 0)
		}
		cli.WriteNotFound(os.Stderr, notFound.Word, suggestions)
		os.Exit(1)
	}
	if errors.Is(err, search.ErrUndefinedSimilarity) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
	os.Exit(1)
}

// apiError is a non-200 response from the server.
type apiError struct {
	Status int
	Body   models.ErrorResponse
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body.Error)
}

// getJSON fetches endpoint and decodes the body into out.
// Non-200 responses decode into an apiError.
func getJSON(endpoint string, out interface{}) error {
	resp, err := http.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: resp.StatusCode}
		body, _ := io.ReadAll(resp.Body)
		if jsonErr := json.Unmarshal(body, &apiErr.Body); jsonErr != nil {
			apiErr.Body.Error = string(body)
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// exitOnAPIError prints HTTP API errors (including not-found suggestions)
// and exits non-zero. A nil error is a no-op.
func exitOnAPIError(err error) {
	if err == nil {
		return
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		fmt.Fprintf(os.Stderr, "%s\n", apiErr.Body.Error)
		if len(apiErr.Body.Suggestions) > 0 {
			fmt.Fprintln(os.Stderr, "Did you mean:")
			for _, s := range apiErr.Body.Suggestions {
				fmt.Fprintf(os.Stderr, "  %s\n", s)
			}
		}
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
	os.Exit(1)
}

func parseFormatOrExit(v string) cli.OutputFormat {
	format, err := cli.ParseFormat(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return format
}

func printUsage() {
	fmt.Println(`ruigo - word embedding similarity engine

Usage:
  ruigo server [flags]                    Start the HTTP server
  ruigo similarity [flags] <w1> <w2>      Cosine similarity of two words
  ruigo neighbors [flags] <word>          Top-N most similar words
  ruigo analogy [flags] <a> <b> <c>       a is to b as c is to ?
  ruigo status [flags]                    Show store status
  ruigo version                           Show version
  ruigo help                              Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/ruigo/config.yaml)
  --debug            Enable debug logging (load progress, file events, etc.)

Query Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL; empty loads the embeddings file directly.
                     status defaults to http://localhost:8080, other queries to direct mode.
  --limit int        Number of results for neighbors/analogy (default: 5)
  --output string    Output format: text or json (default: text)

Examples:
  ruigo server
  ruigo similarity cat dog
  ruigo neighbors --limit 10 cat
  ruigo neighbors --server http://localhost:8080 cat
  ruigo analogy man king woman
  ruigo status --output json`)
}
