package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkravets/factlens/internal/model"
)

type stubAnalyzer struct {
	fail bool
}

func (a *stubAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.ScoredReport, error) {
	if a.fail {
		return nil, errors.New("analysis failed")
	}
	return &model.ScoredReport{ArticleURL: url}, nil
}

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchRunnerRunURLs(t *testing.T) {
	runner := NewBatchRunner(&stubAnalyzer{}, 2)
	urls := []string{"http://a.example/x", "http://b.example/y", "http://c.example/z"}

	results := runner.RunURLs(context.Background(), urls)
	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for _, res := range results {
		if res.Err() != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Err())
		}
		if res.Report == nil || res.Report.ArticleURL != res.URL {
			t.Errorf("report not attributed to %s", res.URL)
		}
	}
}

func TestBatchRunnerPropagatesErrors(t *testing.T) {
	runner := NewBatchRunner(&stubAnalyzer{fail: true}, 2)
	results := runner.RunURLs(context.Background(), []string{"http://a.example"})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err() == nil {
		t.Error("expected error")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on failure")
	}
}

func TestBatchRunnerEmptyInput(t *testing.T) {
	runner := NewBatchRunner(&stubAnalyzer{}, 2)
	if results := runner.RunURLs(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestReadURLFile(t *testing.T) {
	path := writeURLFile(t, `http://a.example/one
# skip me
http://b.example/two

http://a.example/one
  http://c.example/three  `)

	urls, err := ReadURLFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"http://a.example/one", "http://b.example/two", "http://c.example/three"}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLFileMissing(t *testing.T) {
	if _, err := ReadURLFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunFile(t *testing.T) {
	path := writeURLFile(t, "http://a.example\nhttp://b.example\n")
	runner := NewBatchRunner(&stubAnalyzer{}, 2)
	results, err := runner.RunFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
