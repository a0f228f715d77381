// Package store persists scored reports for the history and report APIs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkravets/factlens/internal/model"
)

// ErrNotFound is returned when no report exists for the requested run ID
var ErrNotFound = errors.New("report not found")

// HistoryEntry is the compact listing row for past runs
type HistoryEntry struct {
	RunID           string      `json:"run_id"`
	ArticleURL      string      `json:"article_url"`
	ArticleTitle    string      `json:"article_title,omitempty"`
	GeneratedAt     time.Time   `json:"generated_at"`
	OverallScore    *float64    `json:"overall_score"`
	ConfidenceLevel model.Level `json:"confidence_level"`
}

// Store wraps the sqlite report database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the report database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		run_id TEXT PRIMARY KEY,
		article_url TEXT NOT NULL,
		article_title TEXT,
		generated_at DATETIME NOT NULL,
		overall_score REAL,
		confidence_level TEXT NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport persists one scored report. The full report is stored as a JSON
// blob alongside the indexed listing columns.
func (s *Store) SaveReport(ctx context.Context, report *model.ScoredReport) error {
	detail, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (run_id, article_url, article_title, generated_at, overall_score, confidence_level, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.ArticleURL,
		report.ArticleTitle,
		report.GeneratedAt.UTC(),
		report.OverallScore,
		string(report.ConfidenceLevel),
		string(detail),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// ListRecent returns the most recent runs, newest first
func (s *Store) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, article_url, article_title, generated_at, overall_score, confidence_level
		FROM reports ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var title sql.NullString
		var score sql.NullFloat64
		var confidence string
		if err := rows.Scan(&e.RunID, &e.ArticleURL, &title, &e.GeneratedAt, &score, &confidence); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.ArticleTitle = title.String
		if score.Valid {
			v := score.Float64
			e.OverallScore = &v
		}
		e.ConfidenceLevel = model.Level(confidence)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID loads the full report for one run
func (s *Store) GetByID(ctx context.Context, runID string) (*model.ScoredReport, error) {
	var detail string
	err := s.db.QueryRowContext(ctx,
		`SELECT detail FROM reports WHERE run_id = ?`, runID).Scan(&detail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var report model.ScoredReport
	if err := json.Unmarshal([]byte(detail), &report); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}
	return &report, nil
}
