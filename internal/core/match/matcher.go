// Package match combines the normalization pipeline with three
// string-distance ratios into a single match decision.
package match

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
	"github.com/baditaflorin/go_music_similarity/internal/core/metrics"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

// Config holds configuration for the matcher.
type Config struct {
	// Threshold is the minimum combined score for a match decision.
	Threshold float64
	// StepPenalty is the score deduction per semantic normalization step
	// that altered either input. Zero disables penalty accounting.
	StepPenalty float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:   0.85,
		StepPenalty: 0.01,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	if c.StepPenalty < 0 {
		return errors.New("step penalty must not be negative")
	}
	return nil
}

// Matcher decides whether two free-text metadata strings denote the same
// entity. It is stateless across calls and safe for concurrent use.
type Matcher struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewMatcher creates a new matcher.
func NewMatcher(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Match compares a and b and returns the decision plus the combined score.
//
// Verbatim-equal inputs short-circuit to a perfect score without
// normalization. Inputs whose canonical forms are equal always match,
// regardless of threshold: two strings that normalize identically denote
// the same entity even if the penalty would push the score under the
// threshold.
func (m *Matcher) Match(ctx context.Context, a, b string) domain.MatchResult {
	m.logger.Debug("Starting similarity computation", "a", a, "b", b)

	details := make(map[string]interface{})

	if a == b {
		details["verbatim_equal"] = true
		return domain.MatchResult{
			IsMatch:    true,
			Score:      1.0,
			Threshold:  m.config.Threshold,
			CanonicalA: a,
			CanonicalB: b,
			Details:    details,
		}
	}

	canonA, reportA := m.normalizer.Normalize(a)
	canonB, reportB := m.normalizer.Normalize(b)
	m.logger.Debug("Normalized inputs", "canonicalA", canonA, "canonicalB", canonB)

	select {
	case <-ctx.Done():
		m.logger.Error("Computation cancelled", "error", ctx.Err())
		details["error"] = "computation cancelled"
		return domain.MatchResult{
			IsMatch:   false,
			Score:     0,
			Threshold: m.config.Threshold,
			Details:   details,
		}
	default:
		// continue
	}

	changed := m.normalizer.Tally(reportA).Changed() + m.normalizer.Tally(reportB).Changed()
	penalty := m.config.StepPenalty * float64(changed)
	details["changed_steps"] = changed
	details["penalty"] = penalty

	if canonA == canonB {
		details["canonical_equal"] = true
		return domain.MatchResult{
			IsMatch:    true,
			Score:      clamp(1.0 - penalty),
			Threshold:  m.config.Threshold,
			CanonicalA: canonA,
			CanonicalB: canonB,
			Details:    details,
		}
	}

	sequence := metrics.SequenceRatio(canonA, canonB)
	tokenSort := metrics.TokenSortRatio(canonA, canonB)
	partial := metrics.PartialRatio(canonA, canonB)

	combined := (sequence + tokenSort + partial) / 3
	score := clamp(combined - penalty)
	passed := score >= m.config.Threshold

	details["sequence_ratio"] = sequence
	details["token_sort_ratio"] = tokenSort
	details["partial_ratio"] = partial
	details["combined"] = combined

	m.logger.Debug("Computed similarity",
		"sequence_ratio", sequence,
		"token_sort_ratio", tokenSort,
		"partial_ratio", partial,
		"penalty", penalty,
		"score", score,
		"is_match", passed,
	)

	return domain.MatchResult{
		IsMatch:    passed,
		Score:      score,
		Threshold:  m.config.Threshold,
		CanonicalA: canonA,
		CanonicalB: canonB,
		Details:    details,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
