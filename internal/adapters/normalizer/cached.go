package normalizer

import (
	"sync"

	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

// CachedNormalizer memoizes normalization results keyed by the exact raw
// input string. Useful for batch callers that compare the same strings
// many times; since the pipeline is deterministic, a cached entry can
// never go stale.
type CachedNormalizer struct {
	inner ports.Normalizer
	cache sync.Map // string -> cachedEntry
}

type cachedEntry struct {
	canonical string
	report    domain.Report
}

// NewCachedNormalizer wraps inner with a memoization layer.
func NewCachedNormalizer(inner ports.Normalizer) *CachedNormalizer {
	return &CachedNormalizer{inner: inner}
}

// Normalize returns the cached result for text, computing and storing it
// on first sight. Callers must treat the returned report as read-only.
func (c *CachedNormalizer) Normalize(text string) (string, domain.Report) {
	if v, ok := c.cache.Load(text); ok {
		entry := v.(cachedEntry)
		return entry.canonical, entry.report
	}
	canonical, report := c.inner.Normalize(text)
	c.cache.Store(text, cachedEntry{canonical: canonical, report: report})
	return canonical, report
}

// Tally delegates to the wrapped normalizer; the tally is a pure function
// of the report and needs no caching.
func (c *CachedNormalizer) Tally(report domain.Report) domain.Tally {
	return c.inner.Tally(report)
}
