package normalizer

import (
	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
	"github.com/baditaflorin/go_music_similarity/internal/core/normalize"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

// PipelineNormalizer adapts the normalization pipeline to the
// ports.Normalizer interface.
type PipelineNormalizer struct {
	pipeline *normalize.Pipeline
}

// NewNormalizer creates a normalizer from the given pipeline configuration.
func NewNormalizer(cfg normalize.Config) (ports.Normalizer, error) {
	pipeline, err := normalize.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return &PipelineNormalizer{pipeline: pipeline}, nil
}

// NewDefaultNormalizer creates a normalizer with the default tables for
// music metadata.
func NewDefaultNormalizer() ports.Normalizer {
	// The default configuration always validates.
	n, _ := NewNormalizer(normalize.DefaultConfig())
	return n
}

// Normalize runs the full pipeline over text.
func (n *PipelineNormalizer) Normalize(text string) (string, domain.Report) {
	return n.pipeline.Normalize(text)
}

// Tally filters a report down to penalty-relevant steps.
func (n *PipelineNormalizer) Tally(report domain.Report) domain.Tally {
	return n.pipeline.Tally(report)
}
