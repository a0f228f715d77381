package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/mkravets/factlens/internal/facts"
	"github.com/mkravets/factlens/internal/model"
)

func openaiStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIExtractFacts(t *testing.T) {
	payload := "```json\n" + `{"what_facts":[{"event":"Company X launched Product Y","importance":"high","confidence":"high"}],"claims":[]}` + "\n```"
	srv := openaiStub(t, payload)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}

	raw, err := p.ExtractFacts(context.Background(), "Launch", "Company X launched Product Y today.")
	if err != nil {
		t.Fatal(err)
	}

	h, err := facts.Parse(model.OriginalSourceID, raw)
	if err != nil {
		t.Fatalf("extraction output did not parse: %v", err)
	}
	if len(h.WhatFacts) != 1 || h.WhatFacts[0].Text != "Company X launched Product Y" {
		t.Errorf("unexpected hierarchy: %+v", h)
	}
}

func TestOpenAICompareFacts(t *testing.T) {
	payload := `{"relevance_score":0.7,"matching_facts":[{"original":"A","source":"A'","kind":"event"}]}`
	srv := openaiStub(t, payload)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}

	cmp, err := p.CompareFacts(context.Background(), model.FactHierarchy{}, model.FactHierarchy{})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Relevance == nil || *cmp.Relevance != 0.7 {
		t.Errorf("relevance = %v, want 0.7", cmp.Relevance)
	}
	if len(cmp.Verdicts) != 1 || cmp.Verdicts[0].Outcome != model.OutcomeMatch {
		t.Errorf("verdicts = %+v", cmp.Verdicts)
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestOpenAIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ExtractFacts(context.Background(), "", "text"); err == nil {
		t.Error("expected error from failing API")
	}
}
