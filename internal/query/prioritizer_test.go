package query

import (
	"strings"
	"testing"

	"github.com/mkravets/factlens/internal/model"
)

func event(text, importance string, who ...string) model.Entity {
	return model.Entity{Text: text, Kind: model.KindEvent, Importance: model.Level(importance), RelatedWho: who}
}

func claim(text, importance string, who ...string) model.Entity {
	return model.Entity{Text: text, Kind: model.KindClaim, Importance: model.Level(importance), RelatedWho: who}
}

func TestPrioritize_TierOrder(t *testing.T) {
	h := model.FactHierarchy{
		WhatFacts: []model.Entity{
			event("medium event", "medium"),
			event("high event one", "high"),
			event("high event two", "high"),
		},
		Claims: []model.Entity{
			claim("high claim", "high"),
			claim("medium claim", "medium"),
			claim("low claim", "low"),
		},
	}

	queries := Prioritize(h, 10)

	want := []string{
		`"high event one"`,
		`"high event two"`,
		`"high claim"`,
		`"medium event"`,
	}
	if len(queries) != len(want) {
		t.Fatalf("Expected %d queries, got %d: %v", len(want), len(queries), queries)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("Query %d: expected %s, got %s", i, want[i], queries[i])
		}
	}
}

func TestPrioritize_CapsAtN(t *testing.T) {
	h := model.FactHierarchy{
		WhatFacts: []model.Entity{
			event("a", "high"), event("b", "high"), event("c", "high"), event("d", "high"),
		},
	}

	for _, n := range []int{1, 2, 3} {
		if got := len(Prioritize(h, n)); got != n {
			t.Errorf("N=%d: expected %d queries, got %d", n, n, got)
		}
	}
}

func TestPrioritize_DefaultLimit(t *testing.T) {
	h := model.FactHierarchy{
		WhatFacts: []model.Entity{
			event("a", "high"), event("b", "high"), event("c", "high"), event("d", "high"),
		},
	}
	if got := len(Prioritize(h, 0)); got != DefaultMaxQueries {
		t.Errorf("Expected default cap %d, got %d", DefaultMaxQueries, got)
	}
}

func TestPrioritize_InsertionOrderWithinTier(t *testing.T) {
	h := model.FactHierarchy{
		WhatFacts: []model.Entity{
			event("zebra event", "high"),
			event("apple event", "high"),
		},
	}

	queries := Prioritize(h, 5)
	if queries[0] != `"zebra event"` || queries[1] != `"apple event"` {
		t.Errorf("Tier must preserve insertion order, got %v", queries)
	}
}

func TestPrioritize_LowerTiersNeverQueried(t *testing.T) {
	h := model.FactHierarchy{
		WhatFacts: []model.Entity{event("low event", "low")},
		Claims:    []model.Entity{claim("medium claim", "medium")},
	}

	if queries := Prioritize(h, 5); len(queries) != 0 {
		t.Errorf("Medium claims and low facts must not be queried, got %v", queries)
	}
}

func TestBuild_QuotesEventAndFirstWho(t *testing.T) {
	e := event("Company X launches Product Y", "high", "Company X", "Partner Z")

	queries := Prioritize(model.FactHierarchy{WhatFacts: []model.Entity{e}}, 3)
	if len(queries) != 1 {
		t.Fatalf("Expected exactly one query, got %d", len(queries))
	}
	q := queries[0]
	if !strings.Contains(q, `"Company X launches Product Y"`) {
		t.Errorf("Expected quoted event phrase in %s", q)
	}
	if !strings.HasSuffix(q, `"Company X"`) {
		t.Errorf("Expected quoted first related-who in %s", q)
	}
	if strings.Contains(q, "Partner Z") {
		t.Errorf("Only the first related-who belongs in the query: %s", q)
	}
}

func TestBuild_DegradesWithoutWho(t *testing.T) {
	q := Build(event("Some event happened", "high"))
	if q != `"Some event happened"` {
		t.Errorf("Expected bare quoted phrase, got %s", q)
	}
}

func TestBuild_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	q := Build(event(strings.TrimSpace(long), "high"))
	if got := len(strings.Fields(q)); got != maxPhraseWords {
		t.Errorf("Expected %d-word phrase, got %d: %s", maxPhraseWords, got, q)
	}
}
