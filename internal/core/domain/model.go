package domain

// StepRecord captures the observed effect of a single normalization step.
type StepRecord struct {
	Name    string
	Changed bool
	Before  string
	After   string
}

// Report is the ordered sequence of step records produced by one
// normalization pass, plus the final canonical string.
type Report struct {
	Canonical string
	Steps     []StepRecord
}

// Tally maps step names to their changed flag, filtered by the pipeline's
// ignore and debug lists. Only steps present in the tally count toward the
// match penalty.
type Tally map[string]bool

// Changed returns the number of steps in the tally that altered the text.
func (t Tally) Changed() int {
	n := 0
	for _, changed := range t {
		if changed {
			n++
		}
	}
	return n
}

// MatchResult holds the outcome of a similarity computation.
type MatchResult struct {
	IsMatch    bool
	Score      float64
	Threshold  float64
	CanonicalA string
	CanonicalB string
	Details    map[string]interface{}
}
