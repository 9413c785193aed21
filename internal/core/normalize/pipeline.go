// Package normalize implements the text normalization pipeline: a fixed,
// ordered sequence of pure transforms applied to a raw metadata string,
// with a per-step change ledger. Later steps assume earlier ones already
// ran (punctuation stripping relies on stopword removal still seeing word
// boundaries), so the order is part of the contract.
package normalize

import (
	"errors"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_music_similarity/internal/core/domain"
)

// Config holds configuration for the normalization pipeline. The literal
// and stopword tables are data, not code, so other locales or domains can
// swap them without touching pipeline logic.
type Config struct {
	Literals    []Literal
	Stopwords   []string
	BracketMode BracketMode
	// IgnoreSteps lists step names excluded from the change tally.
	// Names matching no step are no-ops.
	IgnoreSteps []string
	// DebugSteps lists step names forced into the tally regardless of
	// the ignore list.
	DebugSteps []string
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Literals:    DefaultLiterals(),
		Stopwords:   DefaultStopwords(),
		BracketMode: BracketStripContents,
		IgnoreSteps: DefaultIgnoreSteps(),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BracketMode != BracketStripContents && c.BracketMode != BracketStripDelimiters {
		return errors.New("bracket mode must be BracketStripContents or BracketStripDelimiters")
	}
	return nil
}

type step struct {
	name  string
	apply func(string) string
}

// Pipeline applies the fixed step sequence and records a ledger entry per
// step. A Pipeline is immutable after construction and safe for
// concurrent use.
type Pipeline struct {
	steps  []step
	ignore map[string]struct{}
	debug  map[string]struct{}
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var stopRe *regexp.Regexp
	if len(cfg.Stopwords) > 0 {
		stopRe = stopwordPattern(cfg.Stopwords)
	}

	p := &Pipeline{
		steps: []step{
			{StepLiteralSubstitution, applyLiterals(cfg.Literals)},
			{StepTrim, strings.TrimSpace},
			{StepCaseFold, strings.ToLower},
			{StepStopwordRemoval, removeStopwords(stopRe)},
			{StepBracketRemoval, removeBrackets(cfg.BracketMode)},
			{StepYearRemoval, removeYears},
			{StepUnicodeNormalization, normalizeUnicode},
			{StepPunctuationRemoval, removePunctuation},
			{StepWhitespaceCollapse, collapseWhitespace},
		},
		ignore: make(map[string]struct{}, len(cfg.IgnoreSteps)),
		debug:  make(map[string]struct{}, len(cfg.DebugSteps)),
	}
	for _, name := range cfg.IgnoreSteps {
		p.ignore[name] = struct{}{}
	}
	for _, name := range cfg.DebugSteps {
		p.debug[name] = struct{}{}
	}
	return p, nil
}

// Normalize runs the full pipeline over text and returns the canonical
// form together with the step-by-step report.
func (p *Pipeline) Normalize(text string) (string, domain.Report) {
	report := domain.Report{Steps: make([]domain.StepRecord, 0, len(p.steps))}
	for _, s := range p.steps {
		before := text
		text = s.apply(text)
		report.Steps = append(report.Steps, domain.StepRecord{
			Name:    s.name,
			Changed: text != before,
			Before:  before,
			After:   text,
		})
	}
	report.Canonical = text
	return text, report
}

// Tally filters a report down to the steps that count toward the match
// penalty: every step not on the ignore list, plus every step on the
// debug list.
func (p *Pipeline) Tally(report domain.Report) domain.Tally {
	tally := make(domain.Tally)
	for _, rec := range report.Steps {
		if _, forced := p.debug[rec.Name]; forced {
			tally[rec.Name] = rec.Changed
			continue
		}
		if _, skip := p.ignore[rec.Name]; skip {
			continue
		}
		tally[rec.Name] = rec.Changed
	}
	return tally
}
