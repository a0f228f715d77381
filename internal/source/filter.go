package source

import "github.com/mkravets/factlens/internal/model"

const (
	// DefaultRelevanceThreshold is the fixed gate below which a source is
	// discarded before any comparison work is spent on it
	DefaultRelevanceThreshold = 0.4

	// defaultRelevance stands in for a missing score; absence of a score must
	// not silently hide a candidate from review
	defaultRelevance = 0.5
)

// Filter is the cost-avoidance gate applied to candidate sources. It is a
// pure predicate over the relevance score; once applied, filtered sources
// never enter aggregation or scoring.
type Filter struct {
	threshold float64
}

// NewFilter creates a filter with the given threshold; non-positive values
// fall back to the default gate.
func NewFilter(threshold float64) Filter {
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}
	return Filter{threshold: threshold}
}

// NormalizeRelevance resolves a possibly-missing relevance score. A nil score
// defaults to 0.5, which passes the default gate.
func NormalizeRelevance(r *float64) float64 {
	if r == nil {
		return defaultRelevance
	}
	return *r
}

// Passes reports whether a relevance score survives the gate. The boundary
// value passes: only scores strictly below the threshold are filtered.
func (f Filter) Passes(relevance float64) bool {
	return relevance >= f.threshold
}

// Apply records the score on the source and transitions it to filtered when
// it fails the gate. It returns true when the source remains eligible for
// analysis.
func (f Filter) Apply(s *model.Source, relevance float64) bool {
	s.RelevanceScore = relevance
	if !f.Passes(relevance) {
		s.Status = model.StatusFiltered
		return false
	}
	return true
}
