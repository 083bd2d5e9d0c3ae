// Package history persists one summary row per analysis call so the HTTP
// shell can serve aggregate statistics. The analysis engine itself stays a
// pure function; recording happens after a report is built and a recording
// failure never fails the request that produced it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed analysis-summary store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one recorded analysis summary.
type Entry struct {
	ID            int64     `json:"id"`
	Language      string    `json:"language"`
	Severity      string    `json:"severity"`
	TotalIssues   int       `json:"total_issues"`
	LinesAnalyzed int       `json:"lines_analyzed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats aggregates recorded analyses for the /stats endpoint.
type Stats struct {
	TotalAnalyses int64            `json:"total_analyses"`
	TotalIssues   int64            `json:"total_issues"`
	ByLanguage    map[string]int64 `json:"by_language"`
	BySeverity    map[string]int64 `json:"by_severity"`
}

// Open initializes the store at path, creating parent directories and the
// schema as needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		language TEXT NOT NULL,
		severity TEXT NOT NULL,
		total_issues INTEGER NOT NULL,
		lines_analyzed INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_language ON analyses(language);
	CREATE INDEX IF NOT EXISTS idx_analyses_severity ON analyses(severity);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one analysis summary.
func (s *Store) Record(language, severity string, totalIssues, linesAnalyzed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO analyses (language, severity, total_issues, lines_analyzed)
		 VALUES (?, ?, ?, ?)`,
		language, severity, totalIssues, linesAnalyzed,
	)
	return err
}

// Aggregate computes counters over every recorded analysis.
func (s *Store) Aggregate() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		ByLanguage: make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_issues), 0) FROM analyses`)
	if err := row.Scan(&stats.TotalAnalyses, &stats.TotalIssues); err != nil {
		return nil, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	if err := s.countBy("language", stats.ByLanguage); err != nil {
		return nil, err
	}
	if err := s.countBy("severity", stats.BySeverity); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) countBy(column string, into map[string]int64) error {
	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM analyses GROUP BY %s", column, column))
	if err != nil {
		return fmt.Errorf("failed to group by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			continue
		}
		into[key] = count
	}
	return rows.Err()
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, language, severity, total_issues, lines_analyzed, created_at
		 FROM analyses ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Language, &e.Severity, &e.TotalIssues, &e.LinesAnalyzed, &e.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
