package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

// Analyzer runs a full fact-check for one article URL
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*model.ScoredReport, error)
}

// AnalyzeJob fact-checks a single article
type AnalyzeJob struct {
	URL      string
	Analyzer Analyzer
}

// Execute runs the analysis and wraps its outcome
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeURL(ctx, j.URL)
	return &AnalyzeResult{URL: j.URL, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one article analysis
type AnalyzeResult struct {
	URL    string
	Report *model.ScoredReport
	Error  error
}

// Err implements Result
func (r *AnalyzeResult) Err() error { return r.Error }

// BatchRunner fact-checks many articles concurrently
type BatchRunner struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchRunner creates a batch runner with the given parallelism
func NewBatchRunner(analyzer Analyzer, concurrency int) *BatchRunner {
	return &BatchRunner{analyzer: analyzer, concurrency: concurrency}
}

// RunURLs analyzes each URL and returns one result per URL, in completion
// order.
func (b *BatchRunner) RunURLs(ctx context.Context, urls []string) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	for _, u := range urls {
		pool.Submit(&AnalyzeJob{URL: u, Analyzer: b.analyzer})
	}

	results := pool.Drain()
	out := make([]*AnalyzeResult, len(results))
	for i, res := range results {
		out[i] = res.(*AnalyzeResult)
	}
	return out
}

// RunFile reads article URLs from a file, one per line, and analyzes them
func (b *BatchRunner) RunFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLFile(path)
	if err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return b.RunURLs(ctx, urls), nil
}

// ReadURLFile parses a URL list file. Blank lines and #-comments are
// skipped; duplicate lines keep only the first occurrence.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return urls, nil
}
