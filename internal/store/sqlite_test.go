package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkravets/factlens/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "factlens.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleReport(runID string, score *float64, at time.Time) *model.ScoredReport {
	return &model.ScoredReport{
		RunID:           runID,
		ArticleURL:      "https://example.com/article",
		ArticleTitle:    "Launch Day",
		GeneratedAt:     at,
		OverallScore:    score,
		ConfidenceLevel: model.LevelMedium,
		Summary:         "Based on analysis of 3 source(s)...",
		Facts:           model.FactHierarchy{SourceID: model.OriginalSourceID, WhatFacts: []model.Entity{}, Claims: []model.Entity{}},
		Sources: []model.SourceBreakdown{
			{URL: "https://news.example.com/a", Type: model.SourceNews, Status: model.StatusAnalyzed, AgreementRatio: 0.5},
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	score := 69.4
	want := sampleReport("run-1", &score, time.Now().UTC().Truncate(time.Second))
	if err := s.SaveReport(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ArticleURL != want.ArticleURL || got.ArticleTitle != want.ArticleTitle {
		t.Errorf("got %q %q", got.ArticleURL, got.ArticleTitle)
	}
	if got.OverallScore == nil || *got.OverallScore != score {
		t.Errorf("score = %v, want %v", got.OverallScore, score)
	}
	if len(got.Sources) != 1 || got.Sources[0].AgreementRatio != 0.5 {
		t.Errorf("sources = %+v", got.Sources)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNilScoreSurvivesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveReport(ctx, sampleReport("run-nil", nil, time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(ctx, "run-nil")
	if err != nil {
		t.Fatal(err)
	}
	if got.OverallScore != nil {
		t.Errorf("score = %v, want nil for unverifiable run", *got.OverallScore)
	}

	entries, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].OverallScore != nil {
		t.Errorf("entries = %+v", entries)
	}
}

func TestListRecentOrdersAndLimits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		score := float64(50 + i)
		r := sampleReport(string(rune('a'+i)), &score, base.Add(time.Duration(i)*time.Minute))
		if err := s.SaveReport(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.ListRecent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].RunID != "e" || entries[2].RunID != "c" {
		t.Errorf("order wrong: %s %s %s", entries[0].RunID, entries[1].RunID, entries[2].RunID)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleReport("dup", nil, time.Now().UTC())
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveReport(ctx, r); err == nil {
		t.Error("expected primary key violation for duplicate run id")
	}
}
