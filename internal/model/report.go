package model

import "time"

// Pair links an original entity to the source entity a verdict set it against
type Pair struct {
	Original string     `json:"original"`
	Source   string     `json:"source"`
	Kind     EntityKind `json:"kind,omitempty"`
	Detail   string     `json:"detail,omitempty"`
}

// SourceBreakdown is the per-source portion of a ScoredReport
type SourceBreakdown struct {
	URL               string       `json:"url"`
	Domain            string       `json:"domain"`
	Type              SourceType   `json:"source_type"`
	Status            SourceStatus `json:"status"`
	RelevanceScore    float64      `json:"relevance_score"`
	ReliabilityWeight float64      `json:"reliability_weight"`
	AgreementRatio    float64      `json:"agreement_ratio"`
	LowSignal         bool         `json:"low_signal,omitempty"` // no comparable verdicts at all
	Matched           []Pair       `json:"matched,omitempty"`
	Conflicting       []Pair       `json:"conflicting,omitempty"`
}

// ScoredReport is the final output of one analysis run. It is created once,
// never mutated, and persisted by the store, not by the engine itself.
//
// OverallScore is nil when zero sources were analyzed: an unverifiable article
// must not be reported as 0, which would read as "proven false".
// SourcesConsidered counts only sources that reached analysis; filtered and
// failed candidates are tallied separately.
type ScoredReport struct {
	RunID             string            `json:"run_id"`
	ArticleURL        string            `json:"article_url"`
	ArticleTitle      string            `json:"article_title,omitempty"`
	GeneratedAt       time.Time         `json:"generated_at"`
	OverallScore      *float64          `json:"overall_score"`
	ConfidenceLevel   Level             `json:"confidence_level"`
	SourcesConsidered int               `json:"sources_considered"`
	SourcesFiltered   int               `json:"sources_filtered"`
	SourcesFailed     int               `json:"sources_failed"`
	Summary           string            `json:"summary,omitempty"`
	Recommendations   string            `json:"recommendations,omitempty"`
	Facts             FactHierarchy     `json:"facts"`
	Sources           []SourceBreakdown `json:"sources"`
}

// DisplayScore returns the score rounded for rendering, and false when the
// score is undefined.
func (r *ScoredReport) DisplayScore() (float64, bool) {
	if r.OverallScore == nil {
		return 0, false
	}
	return float64(int(*r.OverallScore*10+0.5)) / 10, true
}
