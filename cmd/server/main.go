// Command server exposes the similarity engine over HTTP.
//
// Endpoints:
//
//	POST /similar   {"a": "...", "b": "...", "threshold": 0.85}
//	POST /normalize {"text": "..."}
//	GET  /healthz
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	musicsimilarity "github.com/baditaflorin/go_music_similarity"
	"github.com/baditaflorin/go_music_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_music_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
	"github.com/baditaflorin/go_music_similarity/internal/warmup"
	"github.com/baditaflorin/l"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1024 * 1024 // 1MB; inputs are short metadata strings
)

var (
	engine *musicsimilarity.Similarity
	log    ports.Logger
)

// SimilarRequest is a similarity computation request.
type SimilarRequest struct {
	A         string  `json:"a"`
	B         string  `json:"b"`
	Threshold float64 `json:"threshold,omitempty"`
}

// SimilarResponse is a similarity computation response.
type SimilarResponse struct {
	IsMatch    bool                   `json:"is_match"`
	Score      float64                `json:"score"`
	Threshold  float64                `json:"threshold"`
	CanonicalA string                 `json:"canonical_a"`
	CanonicalB string                 `json:"canonical_b"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// NormalizeRequest is a normalization request.
type NormalizeRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse carries the canonical form and the change ledger.
type NormalizeResponse struct {
	Canonical string                   `json:"canonical"`
	Tally     map[string]bool          `json:"tally"`
	Steps     []map[string]interface{} `json:"steps"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// .env provides defaults; flags override.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", DefaultPort), "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	threshold := flag.Float64("threshold", envFloat("THRESHOLD", musicsimilarity.DefaultThreshold), "default similarity threshold")
	warmUp := flag.Bool("warm-up", true, "perform system warm-up on startup")
	logFile := flag.String("log-file", os.Getenv("LOG_FILE"), "log file path (empty = stdout)")
	flag.Parse()

	var err error
	log, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting similarity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"threshold", *threshold,
	)

	engine, err = musicsimilarity.New(
		musicsimilarity.WithThreshold(*threshold),
		musicsimilarity.WithNormalizationCache(),
	)
	if err != nil {
		log.Error("Error creating engine", "error", err)
		os.Exit(1)
	}

	if *warmUp {
		manager := warmup.NewManager(log, warmup.DefaultConfig())
		manager.RegisterMatcher(engineMatcher{engine})
		manager.RegisterNormalizer(normalizer.NewDefaultNormalizer())
		manager.WarmUp(context.Background())
	}

	server := &fasthttp.Server{
		Handler:            requestHandler,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		MaxRequestBodySize: *maxRequestSize,
		TCPKeepalive:       true,
		TCPKeepalivePeriod: 3 * time.Minute,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	log.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// engineMatcher adapts the facade to the warmup manager's matcher port.
type engineMatcher struct {
	engine *musicsimilarity.Similarity
}

func (m engineMatcher) Match(ctx context.Context, a, b string) domain.MatchResult {
	return m.engine.Similar(ctx, a, b)
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/similar":
		handleSimilar(ctx)
	case "/normalize":
		handleNormalize(ctx)
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func handleSimilar(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req SimilarRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		writeError(ctx, fasthttp.StatusBadRequest, "threshold must be between 0 and 1")
		return
	}

	res := engine.Similar(ctx, req.A, req.B)

	isMatch := res.IsMatch
	threshold := res.Threshold
	if req.Threshold > 0 {
		// Re-derive the decision for a per-request threshold. Verbatim and
		// canonical equality always match, independent of threshold.
		threshold = req.Threshold
		isMatch = res.Details["verbatim_equal"] == true ||
			res.Details["canonical_equal"] == true ||
			res.Score >= threshold
	}

	writeJSON(ctx, SimilarResponse{
		IsMatch:    isMatch,
		Score:      res.Score,
		Threshold:  threshold,
		CanonicalA: res.CanonicalA,
		CanonicalB: res.CanonicalB,
		Details:    res.Details,
	})
}

func handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		return
	}

	canonical, tally, report := engine.Normalize(req.Text)

	steps := make([]map[string]interface{}, 0, len(report.Steps))
	for _, rec := range report.Steps {
		steps = append(steps, map[string]interface{}{
			"name":    rec.Name,
			"changed": rec.Changed,
			"before":  rec.Before,
			"after":   rec.After,
		})
	}
	writeJSON(ctx, NormalizeResponse{
		Canonical: canonical,
		Tally:     tally,
		Steps:     steps,
	})
}

func writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding error")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	data, _ := json.Marshal(ErrorResponse{Error: msg})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func createLogger(logFile string) (ports.Logger, error) {
	cfg := l.Config{
		Output:      os.Stdout,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cfg.Output = f
	}
	return logger.NewCustomStdLogger(cfg)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
