// Package query builds prioritized search queries from a fact hierarchy.
package query

import (
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

const (
	// DefaultMaxQueries caps a run's search calls when no limit is configured
	DefaultMaxQueries = 3

	// maxPhraseWords keeps the exact-phrase unit focused; long event texts
	// over-constrain phrase search and return nothing
	maxPhraseWords = 10
)

// Prioritize turns a fact hierarchy into an ordered list of search queries,
// highest priority first, at most n of them. Tiers, in order: high-importance
// WHAT facts, high-importance claims, medium-importance WHAT facts. Lower
// tiers are never queried. Within a tier the hierarchy's insertion order is
// preserved exactly; there is no secondary sort, so output is reproducible.
func Prioritize(h model.FactHierarchy, n int) []string {
	if n <= 0 {
		n = DefaultMaxQueries
	}

	tiers := [][]model.Entity{
		withImportance(h.WhatFacts, model.LevelHigh),
		withImportance(h.Claims, model.LevelHigh),
		withImportance(h.WhatFacts, model.LevelMedium),
	}

	queries := make([]string, 0, n)
	for _, tier := range tiers {
		for _, e := range tier {
			if len(queries) >= n {
				return queries
			}
			queries = append(queries, Build(e))
		}
	}
	return queries
}

// Build constructs one query from an entity: the fact text as an exact-phrase
// unit, then the first related-who entity as a second exact-phrase unit when
// one exists. Quoting both sharply cuts unrelated-but-entity-sharing results;
// with no related-who the query degrades to the fact phrase alone.
func Build(e model.Entity) string {
	q := quote(truncateWords(e.Text, maxPhraseWords))
	if len(e.RelatedWho) > 0 && e.RelatedWho[0] != "" {
		q += " " + quote(e.RelatedWho[0])
	}
	return q
}

func withImportance(entities []model.Entity, level model.Level) []model.Entity {
	var out []model.Entity
	for _, e := range entities {
		if e.Importance == level {
			out = append(out, e)
		}
	}
	return out
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func quote(s string) string {
	return `"` + s + `"`
}
