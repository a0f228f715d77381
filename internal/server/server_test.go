package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkravets/factlens/internal/model"
	"github.com/mkravets/factlens/internal/store"
)

type fakeAnalyzer struct {
	report *model.ScoredReport
	err    error
}

func (f *fakeAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.ScoredReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.report
	r.ArticleURL = url
	return &r, nil
}

type fakeReports struct {
	saved   []*model.ScoredReport
	entries []store.HistoryEntry
	byID    map[string]*model.ScoredReport
}

func (f *fakeReports) SaveReport(ctx context.Context, r *model.ScoredReport) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReports) ListRecent(ctx context.Context, limit int) ([]store.HistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeReports) GetByID(ctx context.Context, runID string) (*model.ScoredReport, error) {
	if r, ok := f.byID[runID]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

func sampleReport() *model.ScoredReport {
	score := 69.4
	return &model.ScoredReport{
		RunID:           "run-1",
		GeneratedAt:     time.Now().UTC(),
		OverallScore:    &score,
		ConfidenceLevel: model.LevelMedium,
	}
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := New(&fakeAnalyzer{report: sampleReport()}, &fakeReports{})
	w := doRequest(t, s, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAnalyzeReturnsAndPersistsReport(t *testing.T) {
	reports := &fakeReports{}
	s := New(&fakeAnalyzer{report: sampleReport()}, reports)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", map[string]string{"url": "https://example.com/article"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	var got model.ScoredReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ArticleURL != "https://example.com/article" {
		t.Errorf("article url = %q", got.ArticleURL)
	}
	if len(reports.saved) != 1 {
		t.Errorf("saved %d reports, want 1", len(reports.saved))
	}
}

func TestAnalyzeRejectsBadRequest(t *testing.T) {
	s := New(&fakeAnalyzer{report: sampleReport()}, &fakeReports{})

	for _, body := range []any{nil, map[string]string{}, map[string]string{"url": "not a url"}} {
		w := doRequest(t, s, http.MethodPost, "/api/analyze", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAnalyzeSurfacesEngineFailure(t *testing.T) {
	s := New(&fakeAnalyzer{err: errors.New("fetch article: boom")}, &fakeReports{})
	w := doRequest(t, s, http.MethodPost, "/api/analyze", map[string]string{"url": "https://example.com"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHistory(t *testing.T) {
	score := 80.0
	reports := &fakeReports{entries: []store.HistoryEntry{
		{RunID: "run-1", ArticleURL: "https://example.com", OverallScore: &score},
	}}
	s := New(&fakeAnalyzer{report: sampleReport()}, reports)

	w := doRequest(t, s, http.MethodGet, "/api/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var payload struct {
		Reports []store.HistoryEntry `json:"reports"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Reports) != 1 || payload.Reports[0].RunID != "run-1" {
		t.Errorf("reports = %+v", payload.Reports)
	}
}

func TestHistoryEmptyIsList(t *testing.T) {
	s := New(&fakeAnalyzer{report: sampleReport()}, &fakeReports{})
	w := doRequest(t, s, http.MethodGet, "/api/history", nil)
	if !bytes.Contains(w.Body.Bytes(), []byte(`"reports":[]`)) {
		t.Errorf("empty history should serialize as []: %s", w.Body)
	}
}

func TestReportByID(t *testing.T) {
	reports := &fakeReports{byID: map[string]*model.ScoredReport{"run-1": sampleReport()}}
	s := New(&fakeAnalyzer{report: sampleReport()}, reports)

	w := doRequest(t, s, http.MethodGet, "/api/report/run-1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	w = doRequest(t, s, http.MethodGet, "/api/report/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
