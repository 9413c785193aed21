// Package musicsimilarity decides whether two free-text music metadata
// strings (track titles, artist names) denote the same real-world entity
// despite inconsistent formatting: casing, bracketed annotations,
// release-year suffixes, remaster/edition tags, punctuation, diacritics.
//
// Raw strings flow through a fixed normalization pipeline with change
// tracking, then a combined score is derived from three complementary
// string-distance ratios minus a penalty for information-destroying
// normalization steps. This version uses the functional options pattern to
// allow configuration of the threshold, penalty, pipeline tables and
// logging.
package musicsimilarity

import (
	"context"

	"github.com/baditaflorin/go_music_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_music_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
	"github.com/baditaflorin/go_music_similarity/internal/core/match"
	"github.com/baditaflorin/go_music_similarity/internal/core/normalize"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
	"github.com/baditaflorin/l"
)

// Re-exported engine types.
type (
	// MatchResult holds the outcome of a similarity computation.
	MatchResult = domain.MatchResult
	// Report is the step-by-step record of one normalization pass.
	Report = domain.Report
	// StepRecord captures the observed effect of a single step.
	StepRecord = domain.StepRecord
	// Tally maps penalty-relevant step names to their changed flag.
	Tally = domain.Tally
	// Literal is one exact substring replacement.
	Literal = normalize.Literal
	// BracketMode selects how bracketed content is handled.
	BracketMode = normalize.BracketMode
	// Normalizer is the text normalization interface.
	Normalizer = ports.Normalizer
	// Logger is the logging interface used by the engine.
	Logger = ports.Logger
)

const (
	// BracketStripContents removes bracket pairs with everything inside.
	BracketStripContents = normalize.BracketStripContents
	// BracketStripDelimiters removes only the bracket characters.
	BracketStripDelimiters = normalize.BracketStripDelimiters
)

// Default configuration values.
const (
	DefaultThreshold   = 0.85
	DefaultStepPenalty = 0.01
)

// Similarity provides methods to compare and normalize music metadata
// strings using configurable parameters. It is safe for concurrent use.
type Similarity struct {
	matcher    ports.Matcher
	normalizer ports.Normalizer
	logger     ports.Logger
}

// Option defines a functional option for configuring Similarity.
type Option func(*similarityConfig)

type similarityConfig struct {
	matcher    match.Config
	pipeline   normalize.Config
	cache      bool
	logger     ports.Logger
	normalizer ports.Normalizer
}

// WithThreshold sets a custom match threshold.
func WithThreshold(th float64) Option {
	return func(cfg *similarityConfig) {
		cfg.matcher.Threshold = th
	}
}

// WithStepPenalty sets a custom per-step penalty. Zero disables penalty
// accounting.
func WithStepPenalty(p float64) Option {
	return func(cfg *similarityConfig) {
		cfg.matcher.StepPenalty = p
	}
}

// WithBracketMode selects how the pipeline handles bracketed content.
func WithBracketMode(mode BracketMode) Option {
	return func(cfg *similarityConfig) {
		cfg.pipeline.BracketMode = mode
	}
}

// WithStopwords replaces the default stopword vocabulary.
func WithStopwords(words []string) Option {
	return func(cfg *similarityConfig) {
		cfg.pipeline.Stopwords = words
	}
}

// WithLiterals replaces the default literal substitution table.
func WithLiterals(literals []Literal) Option {
	return func(cfg *similarityConfig) {
		cfg.pipeline.Literals = literals
	}
}

// WithIgnoreSteps replaces the default list of steps excluded from
// penalty accounting. Unknown names are no-ops.
func WithIgnoreSteps(names ...string) Option {
	return func(cfg *similarityConfig) {
		cfg.pipeline.IgnoreSteps = names
	}
}

// WithDebugSteps forces the named steps into the change tally regardless
// of the ignore list. Unknown names are no-ops.
func WithDebugSteps(names ...string) Option {
	return func(cfg *similarityConfig) {
		cfg.pipeline.DebugSteps = names
	}
}

// WithNormalizationCache memoizes normalization results keyed by the raw
// input string. Intended for batch callers comparing large candidate sets.
func WithNormalizationCache() Option {
	return func(cfg *similarityConfig) {
		cfg.cache = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *similarityConfig) {
		cfg.logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer, replacing the built-in
// pipeline entirely.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *similarityConfig) {
		cfg.normalizer = n
	}
}

// New creates a new Similarity instance with the provided functional
// options. If no logger is provided, a default logger is created.
func New(opts ...Option) (*Similarity, error) {
	cfg := &similarityConfig{
		matcher:  match.DefaultConfig(),
		pipeline: normalize.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		var err error
		cfg.logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if cfg.normalizer == nil {
		var err error
		cfg.normalizer, err = normalizer.NewNormalizer(cfg.pipeline)
		if err != nil {
			return nil, err
		}
	}
	if cfg.cache {
		cfg.normalizer = normalizer.NewCachedNormalizer(cfg.normalizer)
	}

	matcher, err := match.NewMatcher(cfg.matcher, cfg.logger, cfg.normalizer)
	if err != nil {
		return nil, err
	}

	return &Similarity{
		matcher:    matcher,
		normalizer: cfg.normalizer,
		logger:     cfg.logger,
	}, nil
}

// Similar reports whether a and b denote the same entity, together with
// the combined score in [0, 1].
func (s *Similarity) Similar(ctx context.Context, a, b string) MatchResult {
	return s.matcher.Match(ctx, a, b)
}

// Normalize runs the pipeline over text and returns the canonical form,
// the penalty-relevant change tally and the full step report.
func (s *Similarity) Normalize(text string) (string, Tally, Report) {
	canonical, report := s.normalizer.Normalize(text)
	return canonical, s.normalizer.Tally(report), report
}
