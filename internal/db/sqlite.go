// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ schedule.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations. The parent
// directory is created when missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ListRows returns the roster rows stored for a day, in input order.
func (s *SQLite) ListRows(ctx context.Context, day string) ([]course.Row, error) {
	query := `
		SELECT code, time_range, student, level
		FROM roster_rows
		WHERE day = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("querying roster rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []course.Row
	for rows.Next() {
		var r course.Row
		if err := rows.Scan(&r.Code, &r.Time, &r.Student, &r.Level); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster rows: %w", err)
	}

	return result, nil
}

// ReplaceRows atomically replaces all roster rows for a day.
func (s *SQLite) ReplaceRows(ctx context.Context, day string, rows []course.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_rows WHERE day = ?`, day); err != nil {
		return fmt.Errorf("clearing roster rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roster_rows (day, position, code, time_range, student, level)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, day, i, r.Code, r.Time, r.Student, r.Level); err != nil {
			return fmt.Errorf("inserting roster row %d (%s): %w", i, r.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetLayout returns the saved layout for a day, or nil if none was saved.
func (s *SQLite) GetLayout(ctx context.Context, day string) (*schedule.Layout, error) {
	query := `
		SELECT instructor, codes
		FROM layout_columns
		WHERE day = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("querying layout: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var layout schedule.Layout
	for rows.Next() {
		var instructor, codes string
		if err := rows.Scan(&instructor, &codes); err != nil {
			return nil, fmt.Errorf("scanning layout column: %w", err)
		}
		layout.Instructors = append(layout.Instructors, instructor)
		layout.Codes = append(layout.Codes, codes)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layout: %w", err)
	}

	if len(layout.Codes) == 0 {
		return nil, nil
	}
	return &layout, nil
}

// SaveLayout atomically replaces the saved layout for a day.
func (s *SQLite) SaveLayout(ctx context.Context, day string, layout schedule.Layout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_columns WHERE day = ?`, day); err != nil {
		return fmt.Errorf("clearing layout: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO layout_columns (day, position, instructor, codes)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, codes := range layout.Codes {
		instructor := ""
		if i < len(layout.Instructors) {
			instructor = layout.Instructors[i]
		}
		if _, err := stmt.ExecContext(ctx, day, i, instructor, codes); err != nil {
			return fmt.Errorf("inserting layout column %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteLayout removes the saved layout for a day.
func (s *SQLite) DeleteLayout(ctx context.Context, day string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM layout_columns WHERE day = ?`, day); err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	return nil
}

// ListDays returns every day key with stored rows or a layout.
func (s *SQLite) ListDays(ctx context.Context) ([]string, error) {
	query := `
		SELECT day FROM roster_rows
		UNION
		SELECT day FROM layout_columns
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}

	return days, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
