package normalize

import (
	"regexp"
	"testing"
)

func newDefaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(DefaultConfig())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestNormalizeCanonicalForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Remaster year annotation", "Yesterday (Remastered 2009)", "yesterday"},
		{"Leading and trailing space", "  Hey Jude  ", "hey jude"},
		{"Diacritics", "Café Müller", "cafe muller"},
		{"Curly apostrophe", "Don’t Stop", "dont stop"},
		{"Multi-word stopword", "Track Radio Edit", "track"},
		{"Standalone year", "Nights 1999", "nights"},
		{"Out-of-range year kept", "Space 2150", "space 2150"},
		{"Square brackets", "Song [Mono Mix]", "song"},
		{"Slash spacing then punctuation strip", "AC / DC", "acdc"},
		{"Italian apostrophe digraph", "PerchE' no", "perche no"},
		{"Multiplication sign", "3×3", "3x3"},
		{"Empty input", "", ""},
		{"Annotation only", "(Live)", ""},
	}

	p := newDefaultPipeline(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := p.Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// The canonical form contains only lowercase word characters and single
// spaces, with no leading or trailing whitespace.
func TestCanonicalInvariant(t *testing.T) {
	canonicalRe := regexp.MustCompile(`^$|^\w+( \w+)*$`)
	inputs := []string{
		"Yesterday (Remastered 2009)",
		"  L’ESTATE  ",
		"Città Vuota!!!",
		"A / B - C … D",
		"Sansiro 1990 [Live]",
		"\tTabbed\tTitle\n",
	}
	p := newDefaultPipeline(t)
	for _, in := range inputs {
		got, _ := p.Normalize(in)
		if !canonicalRe.MatchString(got) {
			t.Errorf("Normalize(%q) = %q violates canonical invariant", in, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Yesterday (Remastered 2009)",
		"Bohemian Rhapsody",
		"Città Vuota",
		"Track Radio Edit",
		"",
	}
	p := newDefaultPipeline(t)
	for _, in := range inputs {
		once, _ := p.Normalize(in)
		twice, _ := p.Normalize(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	p := newDefaultPipeline(t)
	in := "Yesterday (Remastered 2009)"
	_, first := p.Normalize(in)
	_, second := p.Normalize(in)
	if len(first.Steps) != len(second.Steps) {
		t.Fatalf("step counts differ: %d vs %d", len(first.Steps), len(second.Steps))
	}
	for i := range first.Steps {
		if first.Steps[i] != second.Steps[i] {
			t.Errorf("step %d differs between runs: %+v vs %+v", i, first.Steps[i], second.Steps[i])
		}
	}
}

func TestReportRecordsEveryStep(t *testing.T) {
	p := newDefaultPipeline(t)
	_, report := p.Normalize("Yesterday (Remastered 2009)")

	wantOrder := []string{
		StepLiteralSubstitution,
		StepTrim,
		StepCaseFold,
		StepStopwordRemoval,
		StepBracketRemoval,
		StepYearRemoval,
		StepUnicodeNormalization,
		StepPunctuationRemoval,
		StepWhitespaceCollapse,
	}
	if len(report.Steps) != len(wantOrder) {
		t.Fatalf("expected %d step records, got %d", len(wantOrder), len(report.Steps))
	}
	for i, name := range wantOrder {
		rec := report.Steps[i]
		if rec.Name != name {
			t.Errorf("step %d: expected %q, got %q", i, name, rec.Name)
		}
		if rec.Changed != (rec.Before != rec.After) {
			t.Errorf("step %q: changed flag inconsistent with before/after", rec.Name)
		}
	}
}

func TestTallyIgnoreAndDebug(t *testing.T) {
	cfg := DefaultConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	_, report := p.Normalize("  Yesterday (Remastered 2009)  ")

	tally := p.Tally(report)
	for _, cosmetic := range DefaultIgnoreSteps() {
		if _, ok := tally[cosmetic]; ok {
			t.Errorf("cosmetic step %q present in default tally", cosmetic)
		}
	}
	if !tally[StepStopwordRemoval] || !tally[StepBracketRemoval] {
		t.Errorf("expected semantic steps marked changed, tally: %v", tally)
	}

	// Debug list forces an ignored step back into the tally.
	cfg.DebugSteps = []string{StepCaseFold}
	p, err = NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	_, report = p.Normalize("Imagine")
	tally = p.Tally(report)
	if changed, ok := tally[StepCaseFold]; !ok || !changed {
		t.Errorf("expected debug step %q in tally and changed, tally: %v", StepCaseFold, tally)
	}
}

// Names matching no defined step simply have no effect.
func TestUnknownStepNamesAreNoOps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoreSteps = []string{"no_such_step"}
	cfg.DebugSteps = []string{"also_missing"}
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	_, report := p.Normalize("Yesterday (Remastered 2009)")
	tally := p.Tally(report)
	if len(tally) != len(report.Steps) {
		t.Errorf("expected all %d steps in tally with empty effective ignore list, got %d",
			len(report.Steps), len(tally))
	}
}

func TestBracketModeDelimiters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BracketMode = BracketStripDelimiters
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, _ := p.Normalize("Song (Acoustic Demo)")
	if got != "song demo" {
		t.Errorf("expected %q, got %q", "song demo", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BracketMode = BracketMode(42)
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for invalid bracket mode")
	}
}

func TestSwappableTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stopwords = []string{"der", "die", "das"}
	cfg.Literals = []Literal{{"ß", "ss"}}
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, _ := p.Normalize("Die Straße")
	if got != "strasse" {
		t.Errorf("expected %q, got %q", "strasse", got)
	}
}
