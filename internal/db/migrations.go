package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS roster_rows (
			day        TEXT NOT NULL,
			position   INTEGER NOT NULL,
			code       TEXT NOT NULL,
			time_range TEXT NOT NULL,
			student    TEXT NOT NULL DEFAULT '',
			level      TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (day, position)
		);

		CREATE TABLE IF NOT EXISTS layout_columns (
			day        TEXT NOT NULL,
			position   INTEGER NOT NULL,
			instructor TEXT NOT NULL DEFAULT '',
			codes      TEXT NOT NULL,
			saved_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (day, position)
		);

		CREATE INDEX IF NOT EXISTS idx_roster_rows_code ON roster_rows(day, code);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
