package musicsimilarity

import (
	"context"
	"math"
	"testing"
)

func newEngine(t *testing.T, opts ...Option) *Similarity {
	t.Helper()
	engine, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestSimilarScenarios(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		threshold float64
		wantMatch bool
		wantScore float64 // exact expectation; -1 skips the check
		minScore  float64
	}{
		{
			name: "Verbatim equality short-circuits",
			a:    "Imagine", b: "Imagine",
			threshold: 0.85,
			wantMatch: true, wantScore: 1.0,
		},
		{
			name: "Case fold only, cosmetic, zero penalty",
			a:    "Imagine", b: "imagine",
			threshold: 0.85,
			wantMatch: true, wantScore: 1.0,
		},
		{
			name: "Single character typo",
			a:    "Bohemian Rhapsody", b: "Bohemian Rapsody",
			threshold: 0.85,
			wantMatch: true, wantScore: -1, minScore: 0.85,
		},
		{
			name: "Unrelated titles",
			a:    "Hotel California", b: "Stairway to Heaven",
			threshold: 0.85,
			wantMatch: false, wantScore: -1,
		},
		{
			name: "Bracketed live annotation, penalty from two semantic steps",
			a:    "Track (Live)", b: "Track",
			threshold: 0.85,
			wantMatch: true, wantScore: 0.98,
		},
		{
			name: "Remaster year annotation",
			a:    "Yesterday (Remastered 2009)", b: "Yesterday",
			threshold: 0.85,
			wantMatch: true, wantScore: 0.98,
		},
		{
			// Literal substitution is cosmetic, but stripping the
			// apostrophe counts on both sides.
			name: "Curly apostrophe",
			a:    "Don’t Stop Me Now", b: "Don't Stop Me Now",
			threshold: 0.85,
			wantMatch: true, wantScore: 0.98,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t, WithThreshold(tc.threshold))
			res := engine.Similar(context.Background(), tc.a, tc.b)
			if res.IsMatch != tc.wantMatch {
				t.Errorf("expected match=%v, got %v (score %.3f, details %v)",
					tc.wantMatch, res.IsMatch, res.Score, res.Details)
			}
			if tc.wantScore >= 0 && res.Score != tc.wantScore {
				t.Errorf("expected score=%.3f, got %.3f", tc.wantScore, res.Score)
			}
			if tc.minScore > 0 && res.Score < tc.minScore {
				t.Errorf("expected score >= %.3f, got %.3f", tc.minScore, res.Score)
			}
		})
	}
}

// Pins the combined scores documented in the example programs. Only
// cosmetic steps fire on these pairs, so no penalty applies.
func TestSimilarDocumentedScores(t *testing.T) {
	engine := newEngine(t)

	res := engine.Similar(context.Background(), "Bohemian Rhapsody", "Bohemian Rapsody")
	// sequence 2*16/33, token-sort 16/17, partial 14/16.
	want := (32.0/33 + 16.0/17 + 14.0/16) / 3
	if math.Abs(res.Score-want) > 1e-9 {
		t.Errorf("typo pair score = %.4f, want %.4f", res.Score, want)
	}

	res = engine.Similar(context.Background(), "Hotel California", "Stairway to Heaven")
	if res.Score >= 0.2 {
		t.Errorf("unrelated pair score = %.4f, expected below 0.2", res.Score)
	}
}

func TestSimilarSymmetry(t *testing.T) {
	engine := newEngine(t)
	pairs := [][2]string{
		{"Bohemian Rhapsody", "Bohemian Rapsody"},
		{"Hotel California", "Stairway to Heaven"},
		{"Track (Live)", "Track"},
		{"Yesterday (Remastered 2009)", "yesterday"},
		{"Città Vuota", "Citta Vuota"},
	}
	for _, p := range pairs {
		ab := engine.Similar(context.Background(), p[0], p[1])
		ba := engine.Similar(context.Background(), p[1], p[0])
		if ab.IsMatch != ba.IsMatch || ab.Score != ba.Score {
			t.Errorf("asymmetric result for %q / %q: (%v, %.4f) vs (%v, %.4f)",
				p[0], p[1], ab.IsMatch, ab.Score, ba.IsMatch, ba.Score)
		}
	}
}

func TestSimilarScoreRange(t *testing.T) {
	engine := newEngine(t)
	pairs := [][2]string{
		{"", ""},
		{"", "Something"},
		{"(Live)", "(Remastered 2009)"},
		{"a", "completely different very long title with many words"},
		{"Hotel California", "Hotel California (Live) (Remastered 1999)"},
	}
	for _, p := range pairs {
		res := engine.Similar(context.Background(), p[0], p[1])
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("score out of range for %q / %q: %.4f", p[0], p[1], res.Score)
		}
	}
}

// Canonical equality always wins over the threshold, even when the penalty
// pushes the score below it.
func TestCanonicalEqualityDominatesThreshold(t *testing.T) {
	engine := newEngine(t, WithThreshold(1.0))
	res := engine.Similar(context.Background(), "Track (Live)", "Track")
	if !res.IsMatch {
		t.Fatalf("expected canonical-equal inputs to match at threshold 1.0, score %.3f", res.Score)
	}
	if res.Score >= 1.0 {
		t.Errorf("expected penalized score below 1.0, got %.3f", res.Score)
	}
}

func TestStepPenaltyDisabled(t *testing.T) {
	engine := newEngine(t, WithStepPenalty(0))
	res := engine.Similar(context.Background(), "Track (Live)", "Track")
	if !res.IsMatch || res.Score != 1.0 {
		t.Errorf("expected (true, 1.0) with penalty disabled, got (%v, %.3f)", res.IsMatch, res.Score)
	}
}

func TestBracketModes(t *testing.T) {
	contents := newEngine(t)
	canonical, _, _ := contents.Normalize("Song (Acoustic Demo)")
	if canonical != "song" {
		t.Errorf("contents mode: expected %q, got %q", "song", canonical)
	}

	delimiters := newEngine(t, WithBracketMode(BracketStripDelimiters))
	canonical, _, _ = delimiters.Normalize("Song (Acoustic Demo)")
	if canonical != "song demo" {
		t.Errorf("delimiters mode: expected %q, got %q", "song demo", canonical)
	}
}

func TestNormalizeTally(t *testing.T) {
	engine := newEngine(t)
	_, tally, report := engine.Normalize("Yesterday (Remastered 2009)")

	// Cosmetic steps never appear in the tally by default.
	for _, cosmetic := range []string{"case_fold", "trim", "whitespace_collapse"} {
		if _, ok := tally[cosmetic]; ok {
			t.Errorf("cosmetic step %q unexpectedly present in tally", cosmetic)
		}
	}
	if !tally["stopword_removal"] {
		t.Error("expected stopword_removal to be marked changed")
	}
	if !tally["bracket_removal"] {
		t.Error("expected bracket_removal to be marked changed")
	}
	if report.Canonical != "yesterday" {
		t.Errorf("expected canonical %q, got %q", "yesterday", report.Canonical)
	}
}

func TestNormalizationCache(t *testing.T) {
	engine := newEngine(t, WithNormalizationCache())
	first, _, _ := engine.Normalize("Yesterday (Remastered 2009)")
	second, _, _ := engine.Normalize("Yesterday (Remastered 2009)")
	if first != second {
		t.Errorf("cached normalization diverged: %q vs %q", first, second)
	}
}
