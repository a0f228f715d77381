package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkravets/factlens/internal/model"
)

func anthropicStub(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}
		resp := map[string]any{
			"id":    "msg_1",
			"model": "claude-3-5-haiku-20241022",
			"content": []map[string]string{
				{"type": "text", "text": text},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnthropicCompareFacts(t *testing.T) {
	srv := anthropicStub(t, `{"relevance_score":0.9,"conflicting_facts":[{"original":"B","source":"not B","kind":"claim"}]}`)
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}

	cmp, err := p.CompareFacts(context.Background(), model.FactHierarchy{}, model.FactHierarchy{})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Relevance == nil || *cmp.Relevance != 0.9 {
		t.Errorf("relevance = %v, want 0.9", cmp.Relevance)
	}
	if len(cmp.Verdicts) != 1 || cmp.Verdicts[0].Outcome != model.OutcomeConflict {
		t.Errorf("verdicts = %+v", cmp.Verdicts)
	}
}

func TestAnthropicExtractFacts(t *testing.T) {
	srv := anthropicStub(t, `{"what_facts":[],"claims":[]}`)
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := p.ExtractFacts(context.Background(), "t", "body")
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"what_facts":[],"claims":[]}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestAnthropicAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]string{
				"type":    "authentication_error",
				"message": "invalid api key",
			},
		})
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "bad-key", BaseURL: srv.URL, Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ExtractFacts(context.Background(), "", "body"); err == nil {
		t.Error("expected authentication error")
	}
}

func TestAnthropicRequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}
