package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical step names, in pipeline order.
const (
	StepLiteralSubstitution  = "literal_substitution"
	StepTrim                 = "trim"
	StepCaseFold             = "case_fold"
	StepStopwordRemoval      = "stopword_removal"
	StepBracketRemoval       = "bracket_removal"
	StepYearRemoval          = "year_removal"
	StepUnicodeNormalization = "unicode_normalization"
	StepPunctuationRemoval   = "punctuation_removal"
	StepWhitespaceCollapse   = "whitespace_collapse"
)

// Literal is one exact substring replacement, applied in table order.
type Literal struct {
	Old string
	New string
}

// DefaultLiterals returns the default literal substitution table. The table
// repairs characters and tokens seen in music metadata exports: curly
// apostrophes, mis-encoded Italian accented vowels (uppercase vowel plus
// straight apostrophe), and a couple of known location/token spellings.
func DefaultLiterals() []Literal {
	return []Literal{
		{"’", "'"},
		{"×", "x"},
		{"·", ""},
		{"‐", "-"},
		{"…", "..."},
		{" / ", "/"},
		{"A'", "à"},
		{"E'", "è"},
		{"I'", "ì"},
		{"O'", "ò"},
		{"U'", "ù"},
		{"Sansiro", "San siro"},
		{" - ", "-"},
		{"I RIO", "Rio"},
	}
}

// DefaultStopwords returns the default vocabulary of non-distinctive
// release-metadata tokens removed during normalization.
func DefaultStopwords() []string {
	return []string{
		"remastered", "remaster", "version", "extended", "special", "edition",
		"deluxe", "feat", "featuring", "ft", "radio edit", "remix", "mix",
		"original", "bonus track", "live", "acoustic", "instrumental",
		"explicit", "clean", "album version", "single", "official", "bonus",
		"full", "super", "box", "stereo", "album", "anniversary", "expanded",
		"edit", "vrs", "192 khz", "mono", "ep", "e.p.",
	}
}

// DefaultIgnoreSteps returns the step names whose changes are cosmetic and
// never counted toward the match penalty.
func DefaultIgnoreSteps() []string {
	return []string{
		StepLiteralSubstitution,
		StepTrim,
		StepCaseFold,
		StepUnicodeNormalization,
		StepWhitespaceCollapse,
	}
}

// BracketMode selects how bracketed content is handled.
type BracketMode int

const (
	// BracketStripContents removes bracket pairs together with everything
	// inside them.
	BracketStripContents BracketMode = iota
	// BracketStripDelimiters removes only the bracket characters, keeping
	// the inner text.
	BracketStripDelimiters
)

var (
	parenContentRe   = regexp.MustCompile(`\([^)]*\)`)
	bracketContentRe = regexp.MustCompile(`\[[^\]]*\]`)
	yearRe           = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	punctuationRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)

	// NFKD decomposition followed by combining-mark removal.
	asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

func applyLiterals(literals []Literal) func(string) string {
	return func(text string) string {
		for _, lit := range literals {
			text = strings.ReplaceAll(text, lit.Old, lit.New)
		}
		return text
	}
}

// stopwordPattern builds a whole-word alternation over the vocabulary.
// Tokens are quoted, so multi-word entries and entries containing dots
// match literally.
func stopwordPattern(vocabulary []string) *regexp.Regexp {
	if len(vocabulary) == 0 {
		return nil
	}
	quoted := make([]string, len(vocabulary))
	for i, w := range vocabulary {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, `|`) + `)\b`)
}

func removeStopwords(pattern *regexp.Regexp) func(string) string {
	return func(text string) string {
		if pattern == nil {
			return text
		}
		return pattern.ReplaceAllString(text, "")
	}
}

func removeBrackets(mode BracketMode) func(string) string {
	if mode == BracketStripDelimiters {
		return func(text string) string {
			return strings.Map(func(r rune) rune {
				switch r {
				case '(', ')', '[', ']':
					return -1
				}
				return r
			}, text)
		}
	}
	return func(text string) string {
		text = parenContentRe.ReplaceAllString(text, "")
		return bracketContentRe.ReplaceAllString(text, "")
	}
}

func removeYears(text string) string {
	return yearRe.ReplaceAllString(text, "")
}

// normalizeUnicode decomposes accented characters, drops combining marks
// and removes any remaining non-ASCII runes. If the transform chain fails
// on malformed input, it falls back to a plain ASCII filter so the step
// never errors.
func normalizeUnicode(text string) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		folded = text
	}
	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func removePunctuation(text string) string {
	return punctuationRe.ReplaceAllString(text, "")
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
