package model

// Level is a three-step rating used for both importance and confidence
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// ParseLevel normalizes a rating string. Anything outside the three-level
// enumeration is clamped to medium rather than rejected, since extraction
// output is not under our control.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelHigh, LevelMedium, LevelLow:
		return Level(s)
	default:
		return LevelMedium
	}
}

// EntityKind distinguishes the two primary fact categories
type EntityKind string

const (
	KindEvent EntityKind = "event" // WHAT fact: something that happened
	KindClaim EntityKind = "claim" // assertion or statement
)

// OriginalSourceID is the reserved source id for the article under analysis
const OriginalSourceID = "original"

// Entity is a primary extracted fact: a WHAT event or a claim, together with
// the WHO/WHERE/WHEN context that disambiguates it. Related entities are never
// matched on their own; they only qualify their parent fact.
//
// An Entity belongs to exactly one FactHierarchy and is immutable once built.
type Entity struct {
	Text         string     `json:"text"`
	Kind         EntityKind `json:"kind"`
	Importance   Level      `json:"importance"`
	Confidence   Level      `json:"confidence"`
	RelatedWho   []string   `json:"related_who"`
	RelatedWhere []string   `json:"related_where"`
	RelatedWhen  []string   `json:"related_when"`
	SourceID     string     `json:"source_id,omitempty"`
}

// FactHierarchy holds the ordered facts extracted from one article or source,
// partitioned into events and claims. An empty hierarchy is valid: it signals
// that extraction found nothing usable, which downstream treats as degraded
// evidence, not as an error.
type FactHierarchy struct {
	SourceID  string   `json:"source_id,omitempty"`
	WhatFacts []Entity `json:"what_facts"`
	Claims    []Entity `json:"claims"`
}

// Empty reports whether the hierarchy contains no facts at all
func (h FactHierarchy) Empty() bool {
	return len(h.WhatFacts) == 0 && len(h.Claims) == 0
}

// ComparableCount is the number of entities eligible for comparison verdicts.
// Only primary facts count; related WHO/WHERE/WHEN never do.
func (h FactHierarchy) ComparableCount() int {
	return len(h.WhatFacts) + len(h.Claims)
}

// All returns events followed by claims, preserving extraction order
func (h FactHierarchy) All() []Entity {
	out := make([]Entity, 0, h.ComparableCount())
	out = append(out, h.WhatFacts...)
	out = append(out, h.Claims...)
	return out
}
