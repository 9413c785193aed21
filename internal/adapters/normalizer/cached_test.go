package normalizer

import (
	"testing"

	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
)

// countingNormalizer counts how often the inner pipeline is actually run.
type countingNormalizer struct {
	calls int
}

func (c *countingNormalizer) Normalize(text string) (string, domain.Report) {
	c.calls++
	return text, domain.Report{Canonical: text}
}

func (c *countingNormalizer) Tally(report domain.Report) domain.Tally {
	return domain.Tally{}
}

func TestCachedNormalizerMemoizes(t *testing.T) {
	inner := &countingNormalizer{}
	cached := NewCachedNormalizer(inner)

	first, _ := cached.Normalize("Yesterday (Remastered 2009)")
	second, _ := cached.Normalize("Yesterday (Remastered 2009)")
	if first != second {
		t.Errorf("cached result diverged: %q vs %q", first, second)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}

	cached.Normalize("Hey Jude")
	if inner.calls != 2 {
		t.Errorf("expected 2 inner calls after a new input, got %d", inner.calls)
	}
}

func TestCachedNormalizerMatchesPipeline(t *testing.T) {
	plain := NewDefaultNormalizer()
	cached := NewCachedNormalizer(NewDefaultNormalizer())

	inputs := []string{
		"Yesterday (Remastered 2009)",
		"Città Vuota",
		"Track Radio Edit",
		"",
	}
	for _, in := range inputs {
		wantCanonical, wantReport := plain.Normalize(in)
		gotCanonical, gotReport := cached.Normalize(in)
		if gotCanonical != wantCanonical {
			t.Errorf("Normalize(%q): canonical %q, want %q", in, gotCanonical, wantCanonical)
		}
		if len(gotReport.Steps) != len(wantReport.Steps) {
			t.Errorf("Normalize(%q): %d step records, want %d", in, len(gotReport.Steps), len(wantReport.Steps))
		}
	}
}
