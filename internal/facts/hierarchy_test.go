package facts

import (
	"errors"
	"testing"

	"github.com/mkravets/factlens/internal/model"
)

func TestParse_Hierarchical(t *testing.T) {
	data := []byte(`{
		"what_facts": [
			{"event": "Company X launches Product Y", "related_who": ["Company X"], "related_where": ["Berlin"], "related_when": ["March 2024"], "importance": "high", "confidence": "high"}
		],
		"claims": [
			{"claim": "The launch doubled revenue", "related_who": ["Company X"], "importance": "medium", "confidence": "low"}
		]
	}`)

	h, err := Parse(model.OriginalSourceID, data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(h.WhatFacts) != 1 || len(h.Claims) != 1 {
		t.Fatalf("Expected 1 event and 1 claim, got %d/%d", len(h.WhatFacts), len(h.Claims))
	}

	ev := h.WhatFacts[0]
	if ev.Kind != model.KindEvent {
		t.Errorf("Expected event kind, got %s", ev.Kind)
	}
	if ev.Importance != model.LevelHigh || ev.Confidence != model.LevelHigh {
		t.Errorf("Unexpected ratings: %s/%s", ev.Importance, ev.Confidence)
	}
	if ev.SourceID != model.OriginalSourceID {
		t.Errorf("Expected original source id, got %q", ev.SourceID)
	}

	cl := h.Claims[0]
	if cl.Kind != model.KindClaim {
		t.Errorf("Expected claim kind, got %s", cl.Kind)
	}
	// related_where was absent for the claim: must be empty, never nil
	if cl.RelatedWhere == nil || len(cl.RelatedWhere) != 0 {
		t.Errorf("Expected empty related_where, got %#v", cl.RelatedWhere)
	}
}

func TestParse_ClampsUnknownRatings(t *testing.T) {
	data := []byte(`{"what_facts": [{"event": "E", "importance": "critical", "confidence": "certain"}], "claims": []}`)

	h, err := Parse("src-1", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h.WhatFacts[0].Importance != model.LevelMedium {
		t.Errorf("Expected importance clamped to medium, got %s", h.WhatFacts[0].Importance)
	}
	if h.WhatFacts[0].Confidence != model.LevelMedium {
		t.Errorf("Expected confidence clamped to medium, got %s", h.WhatFacts[0].Confidence)
	}
}

func TestParse_EmptyHierarchyIsValid(t *testing.T) {
	h, err := Parse("src-1", []byte(`{"what_facts": [], "claims": []}`))
	if err != nil {
		t.Fatalf("Expected empty hierarchy to be valid, got %v", err)
	}
	if !h.Empty() {
		t.Error("Expected Empty() to be true")
	}
	if h.ComparableCount() != 0 {
		t.Errorf("Expected 0 comparable entities, got %d", h.ComparableCount())
	}
}

func TestParse_SingleKeyPresent(t *testing.T) {
	h, err := Parse("src-1", []byte(`{"claims": [{"claim": "C"}]}`))
	if err != nil {
		t.Fatalf("Expected claims-only payload to parse, got %v", err)
	}
	if len(h.Claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(h.Claims))
	}
	// defaults for missing ratings
	if h.Claims[0].Importance != model.LevelMedium {
		t.Errorf("Expected medium importance default, got %s", h.Claims[0].Importance)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no primary keys", `{"facts": []}`},
		{"not JSON", `claims: none`},
		{"wrong shape", `[1, 2, 3]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("src-1", []byte(tc.data))
			var malformed *MalformedExtractionError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected MalformedExtractionError, got %v", err)
			}
		})
	}
}

func TestParse_DropsEntriesWithoutText(t *testing.T) {
	data := []byte(`{"what_facts": [{"event": ""}, {"event": "Real event"}], "claims": [{"claim": ""}]}`)

	h, err := Parse("src-1", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(h.WhatFacts) != 1 {
		t.Errorf("Expected textless events dropped, got %d", len(h.WhatFacts))
	}
	if len(h.Claims) != 0 {
		t.Errorf("Expected textless claims dropped, got %d", len(h.Claims))
	}
}
