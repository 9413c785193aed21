package ports

import (
	"context"

	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
)

// Matcher defines the interface for deciding whether two strings denote
// the same entity.
type Matcher interface {
	Match(ctx context.Context, a, b string) domain.MatchResult
}
