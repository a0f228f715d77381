// Package compare turns per-source comparison verdicts into agreement data.
package compare

import (
	"fmt"

	"github.com/mkravets/factlens/internal/model"
)

// DuplicateVerdictError reports more than one verdict for the same original
// entity from one source. The comparison contract allows at most one; a
// duplicate (for example one verdict marking match and another conflict) is a
// modeling error in the comparison output and is rejected rather than
// resolved by guessing a winner.
type DuplicateVerdictError struct {
	Ref string
}

func (e *DuplicateVerdictError) Error() string {
	return fmt.Sprintf("duplicate verdict for entity %q", e.Ref)
}

// Aggregation is one source's distilled comparison outcome
type Aggregation struct {
	Matches        int
	Conflicts      int
	Absent         int
	AgreementRatio float64
	LowSignal      bool // no comparable verdicts: contributes no signal
	Matched        []model.Pair
	Conflicting    []model.Pair
}

// Aggregate validates and reduces one source's verdicts. comparableCount is
// the number of original-article entities eligible for comparison (WHAT facts
// and claims only; related WHO/WHERE/WHEN are never independently matched).
//
// The agreement ratio is matches/(matches+conflicts). Absent verdicts are
// excluded from both sides: an entity the source does not discuss is neither
// agreement nor conflict. With no matches and no conflicts at all the ratio
// is defined as 0 and the aggregation is flagged low-signal so the scorer can
// tell "no evidence" apart from "proven 0% agreement".
func Aggregate(verdicts []model.Verdict, comparableCount int) (Aggregation, error) {
	agg := Aggregation{}
	seen := make(map[string]bool, len(verdicts))

	for _, v := range verdicts {
		if seen[v.OriginalRef] {
			return Aggregation{}, &DuplicateVerdictError{Ref: v.OriginalRef}
		}
		seen[v.OriginalRef] = true

		switch v.Outcome {
		case model.OutcomeMatch:
			agg.Matches++
			agg.Matched = append(agg.Matched, model.Pair{
				Original: v.OriginalRef,
				Source:   v.SourceRef,
				Kind:     v.Kind,
				Detail:   v.Detail,
			})
		case model.OutcomeConflict:
			agg.Conflicts++
			agg.Conflicting = append(agg.Conflicting, model.Pair{
				Original: v.OriginalRef,
				Source:   v.SourceRef,
				Kind:     v.Kind,
				Detail:   v.Detail,
			})
		case model.OutcomeAbsent:
			agg.Absent++
		default:
			return Aggregation{}, fmt.Errorf("unknown verdict outcome %q for entity %q", v.Outcome, v.OriginalRef)
		}
	}

	if len(verdicts) > comparableCount {
		return Aggregation{}, fmt.Errorf("%d verdicts for %d comparable entities", len(verdicts), comparableCount)
	}

	denom := agg.Matches + agg.Conflicts
	if denom == 0 {
		agg.LowSignal = true
		return agg, nil
	}
	agg.AgreementRatio = float64(agg.Matches) / float64(denom)
	return agg, nil
}
