// Package llm drives the language-model provider that extracts fact
// hierarchies from article text and compares them across sources.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

// Provider is the contract every model backend implements. ExtractFacts
// returns the raw hierarchy JSON for facts.Parse; CompareFacts judges one
// source hierarchy against the original article's.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractFacts pulls the fact hierarchy out of article text
	ExtractFacts(ctx context.Context, title, text string) ([]byte, error)

	// CompareFacts judges how a source's facts relate to the original's
	CompareFacts(ctx context.Context, original, source model.FactHierarchy) (*Comparison, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Comparison is one source's judgment against the original article.
// Relevance is nil when the model returned no usable score; callers apply
// the neutral default.
type Comparison struct {
	Relevance *float64
	Verdicts  []model.Verdict
}

// Config holds provider configuration
type Config struct {
	Provider  string // openai, anthropic
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

const extractionSystem = "You are a fact extraction engine. You respond only with valid JSON, no prose."

const comparisonSystem = "You are a fact comparison engine. You respond only with valid JSON, no prose."

func buildExtractionPrompt(title, text string) string {
	var b strings.Builder
	b.WriteString("Extract the factual content of the article below into a hierarchy.\n\n")
	b.WriteString("Identify WHAT happened as the primary axis. Distinguish:\n")
	b.WriteString("- what_facts: concrete events that occurred\n")
	b.WriteString("- claims: assertions or statements whose truth is at stake\n\n")
	b.WriteString("For each entry, attach the related WHO (people, organizations), WHERE\n")
	b.WriteString("(locations) and WHEN (dates, times) as string arrays. Rate importance and\n")
	b.WriteString("confidence as high, medium or low.\n\n")
	b.WriteString("Respond with exactly this JSON shape:\n")
	b.WriteString(`{"what_facts":[{"event":"...","related_who":[],"related_where":[],"related_when":[],"importance":"high","confidence":"high"}],` + "\n")
	b.WriteString(`"claims":[{"claim":"...","related_who":[],"related_where":[],"related_when":[],"importance":"medium","confidence":"medium"}]}` + "\n\n")
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", title)
	}
	b.WriteString("Article:\n")
	b.WriteString(text)
	return b.String()
}

func buildComparisonPrompt(original, source model.FactHierarchy) string {
	origJSON, _ := json.Marshal(original)
	srcJSON, _ := json.Marshal(source)

	var b strings.Builder
	b.WriteString("Compare the facts of a source document against the facts of an original article.\n\n")
	b.WriteString("For every fact and claim of the ORIGINAL, decide one of:\n")
	b.WriteString("- matching: the source confirms it\n")
	b.WriteString("- conflicting: the source contradicts it\n")
	b.WriteString("- absent: the source does not discuss it at all\n\n")
	b.WriteString("Also rate how relevant the source is to the original's topic, 0.0 to 1.0.\n\n")
	b.WriteString("Respond with exactly this JSON shape:\n")
	b.WriteString(`{"relevance_score":0.8,` + "\n")
	b.WriteString(`"matching_facts":[{"original":"<original text>","source":"<source text>","kind":"event","detail":"exact"}],` + "\n")
	b.WriteString(`"conflicting_facts":[{"original":"...","source":"...","kind":"claim","detail":"contradicts date"}],` + "\n")
	b.WriteString(`"absent_facts":[{"original":"...","kind":"event"}]}` + "\n\n")
	fmt.Fprintf(&b, "ORIGINAL:\n%s\n\nSOURCE:\n%s\n", origJSON, srcJSON)
	return b.String()
}

// StripFences removes a markdown code fence wrapper that models often add
// around JSON output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type comparisonPair struct {
	Original string `json:"original"`
	Source   string `json:"source"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`
}

type comparisonPayload struct {
	RelevanceScore *float64         `json:"relevance_score"`
	Matching       []comparisonPair `json:"matching_facts"`
	Conflicting    []comparisonPair `json:"conflicting_facts"`
	Absent         []comparisonPair `json:"absent_facts"`
}

// parseComparison turns the model's comparison JSON into verdicts. Pairs
// without an original reference are dropped; the aggregator cannot attribute
// them.
func parseComparison(raw string) (*Comparison, error) {
	var payload comparisonPayload
	if err := json.Unmarshal([]byte(StripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("decode comparison response: %w", err)
	}

	cmp := &Comparison{Relevance: payload.RelevanceScore}
	appendVerdicts := func(pairs []comparisonPair, outcome model.VerdictOutcome) {
		for _, p := range pairs {
			if p.Original == "" {
				continue
			}
			v := model.Verdict{
				OriginalRef: p.Original,
				Kind:        parseKind(p.Kind),
				Outcome:     outcome,
				Detail:      p.Detail,
			}
			if outcome != model.OutcomeAbsent {
				v.SourceRef = p.Source
			}
			cmp.Verdicts = append(cmp.Verdicts, v)
		}
	}
	appendVerdicts(payload.Matching, model.OutcomeMatch)
	appendVerdicts(payload.Conflicting, model.OutcomeConflict)
	appendVerdicts(payload.Absent, model.OutcomeAbsent)
	return cmp, nil
}

func parseKind(s string) model.EntityKind {
	if strings.EqualFold(s, string(model.KindEvent)) {
		return model.KindEvent
	}
	return model.KindClaim
}
