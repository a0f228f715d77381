// Package facts builds validated fact hierarchies from raw extraction output.
package facts

import (
	"encoding/json"

	"github.com/mkravets/factlens/internal/model"
)

// MalformedExtractionError means the extraction output is not decomposable
// into the expected hierarchical shape. It is surfaced to the caller and never
// retried: re-running the same malformed shape will not self-correct.
type MalformedExtractionError struct {
	Reason string
}

func (e *MalformedExtractionError) Error() string {
	return "malformed extraction output: " + e.Reason
}

// rawFact mirrors one entry of the extraction wire format. Events carry an
// "event" key, claims a "claim" key; everything else is shared.
type rawFact struct {
	Event        string   `json:"event"`
	Claim        string   `json:"claim"`
	RelatedWho   []string `json:"related_who"`
	RelatedWhere []string `json:"related_where"`
	RelatedWhen  []string `json:"related_when"`
	Importance   string   `json:"importance"`
	Confidence   string   `json:"confidence"`
}

// rawHierarchy uses pointers so that an absent key can be told apart from an
// empty list. At least one of the two keys must be present.
type rawHierarchy struct {
	WhatFacts *[]rawFact `json:"what_facts"`
	Claims    *[]rawFact `json:"claims"`
}

// Parse constructs a FactHierarchy from extraction output. Construction is
// pure: no network, no randomness. Ratings outside the three-level enumeration
// are clamped to medium and missing related-entity arrays become empty slices,
// never nil. Entries without any primary text are dropped.
//
// An empty hierarchy is a valid result; extraction that found nothing is a
// degraded-evidence case, not an error. Parse fails only when the payload is
// not JSON or carries neither a what_facts nor a claims key.
func Parse(sourceID string, data []byte) (model.FactHierarchy, error) {
	var raw rawHierarchy
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.FactHierarchy{}, &MalformedExtractionError{Reason: "not a JSON object: " + err.Error()}
	}
	if raw.WhatFacts == nil && raw.Claims == nil {
		return model.FactHierarchy{}, &MalformedExtractionError{Reason: "neither what_facts nor claims present"}
	}

	h := model.FactHierarchy{
		SourceID:  sourceID,
		WhatFacts: []model.Entity{},
		Claims:    []model.Entity{},
	}
	if raw.WhatFacts != nil {
		for _, f := range *raw.WhatFacts {
			if f.Event == "" {
				continue
			}
			h.WhatFacts = append(h.WhatFacts, buildEntity(f.Event, model.KindEvent, f, sourceID))
		}
	}
	if raw.Claims != nil {
		for _, f := range *raw.Claims {
			if f.Claim == "" {
				continue
			}
			h.Claims = append(h.Claims, buildEntity(f.Claim, model.KindClaim, f, sourceID))
		}
	}
	return h, nil
}

func buildEntity(text string, kind model.EntityKind, f rawFact, sourceID string) model.Entity {
	return model.Entity{
		Text:         text,
		Kind:         kind,
		Importance:   model.ParseLevel(f.Importance),
		Confidence:   model.ParseLevel(f.Confidence),
		RelatedWho:   orEmpty(f.RelatedWho),
		RelatedWhere: orEmpty(f.RelatedWhere),
		RelatedWhen:  orEmpty(f.RelatedWhen),
		SourceID:     sourceID,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
