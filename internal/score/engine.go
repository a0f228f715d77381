// Package score combines per-source agreement into one accuracy score and a
// confidence rating.
package score

import (
	"fmt"

	"github.com/mkravets/factlens/internal/model"
)

// Scorer computes the weighted accuracy score for a run
type Scorer struct {
	cfg model.ScoringConfig
}

// NewScorer creates a scorer with the given weight table and gate. A missing
// table falls back to the canonical defaults.
func NewScorer(cfg model.ScoringConfig) *Scorer {
	if len(cfg.Weights) == 0 {
		cfg.Weights = model.DefaultConfig().Scoring.Weights
	}
	return &Scorer{cfg: cfg}
}

// Result is the scored outcome for one analysis run
type Result struct {
	// Overall is the 0-100 accuracy score; nil when no analyzed source
	// carried any comparison signal, which must be reported as "unverifiable"
	// rather than as zero.
	Overall         *float64
	Confidence      model.Level
	Summary         string
	Recommendations string
}

// Calculate scores the analyzed sources. Each source contributes
// agreement x reliabilityWeight x relevance, normalized by the total
// reliabilityWeight x relevance mass, so a single low-reliability source
// cannot outweigh several official ones and a barely-relevant source counts
// for less than a highly relevant one.
//
// Low-signal sources (no matches and no conflicts) are excluded from the
// average entirely; they carry no evidence either way. They also do not count
// toward the confidence ladder's source count.
func (s *Scorer) Calculate(analyzed []model.SourceBreakdown) Result {
	var weightedSum, totalWeight float64
	signalCount := 0

	for i := range analyzed {
		b := &analyzed[i]
		if b.ReliabilityWeight == 0 {
			b.ReliabilityWeight = s.cfg.Weight(b.Type)
		}
		if b.LowSignal {
			continue
		}
		mass := b.ReliabilityWeight * b.RelevanceScore
		weightedSum += b.AgreementRatio * mass
		totalWeight += mass
		signalCount++
	}

	var overall *float64
	if totalWeight > 0 {
		v := 100 * weightedSum / totalWeight
		overall = &v
	}

	confidence := s.confidence(signalCount, overall)

	return Result{
		Overall:         overall,
		Confidence:      confidence,
		Summary:         summarize(analyzed, overall),
		Recommendations: recommend(analyzed, overall, confidence),
	}
}

// confidence applies the ladder in strict priority order. The source-count
// gate comes first: fewer than three corroborating sources is always low, no
// matter how high the agreement. The high rung then requires both volume and
// score, so many low-agreement sources cannot buy high confidence and few
// high-agreement sources cannot claim it without corroboration.
func (s *Scorer) confidence(signalCount int, overall *float64) model.Level {
	if signalCount < 3 || overall == nil {
		return model.LevelLow
	}
	v := *overall
	if signalCount >= 5 && v >= 80 {
		return model.LevelHigh
	}
	if signalCount < 5 || (v >= 60 && v < 80) {
		return model.LevelMedium
	}
	return model.LevelLow
}

func summarize(analyzed []model.SourceBreakdown, overall *float64) string {
	if overall == nil {
		return "Unable to verify: no corroborating sources could be analyzed."
	}

	v := *overall
	var verdict string
	switch {
	case v >= 80:
		verdict = "highly accurate"
	case v >= 60:
		verdict = "moderately accurate"
	case v >= 40:
		verdict = "of questionable accuracy"
	default:
		verdict = "of low accuracy"
	}

	matching, conflicting := 0, 0
	for _, b := range analyzed {
		matching += len(b.Matched)
		conflicting += len(b.Conflicting)
	}

	return fmt.Sprintf(
		"Based on analysis of %d source(s), the article appears to be %s with an overall score of %.1f/100. Found %d corroborating fact(s) and %d conflicting claim(s) across sources.",
		len(analyzed), verdict, v, matching, conflicting)
}

func recommend(analyzed []model.SourceBreakdown, overall *float64, confidence model.Level) string {
	if overall == nil {
		return "The article could not be fact-checked due to lack of available sources. Exercise extreme caution with this information."
	}

	var recs []string
	switch {
	case *overall >= 80 && confidence == model.LevelHigh:
		recs = append(recs, "The information appears reliable and well-supported by multiple sources.")
	case *overall >= 60:
		recs = append(recs, "The information has moderate support. Consider seeking additional sources for verification.")
	default:
		recs = append(recs, "Exercise caution: the information has limited support or conflicting reports.")
	}

	hasOfficial := false
	types := make(map[model.SourceType]bool)
	for _, b := range analyzed {
		types[b.Type] = true
		if b.Type == model.SourceOfficial {
			hasOfficial = true
		}
	}
	if !hasOfficial {
		recs = append(recs, "No official sources were found. Consider checking government or institutional sources.")
	}
	if len(types) < 2 {
		recs = append(recs, "Limited source diversity. Cross-reference with different types of sources.")
	}

	out := ""
	for i, r := range recs {
		if i > 0 {
			out += " "
		}
		out += r
	}
	return out
}
