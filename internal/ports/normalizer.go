package ports

import "github.com/baditaflorin/go_music_similarity/internal/core/domain"

// Normalizer defines the interface for text normalization with change
// tracking.
type Normalizer interface {
	// Normalize returns the canonical form of text and the step-by-step
	// report of the pipeline run.
	Normalize(text string) (string, domain.Report)
	// Tally filters a report down to the steps that count toward the
	// match penalty.
	Tally(report domain.Report) domain.Tally
}
