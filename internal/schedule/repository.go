package schedule

import (
	"context"

	"github.com/javiermolinar/deckhand/internal/course"
)

// Repository defines per-day storage for roster rows and saved layouts.
type Repository interface {
	// ListRows returns the roster rows stored for a day, in input order.
	ListRows(ctx context.Context, day string) ([]course.Row, error)

	// ReplaceRows replaces all roster rows for a day.
	ReplaceRows(ctx context.Context, day string, rows []course.Row) error

	// GetLayout returns the saved layout for a day, or nil if none was saved.
	GetLayout(ctx context.Context, day string) (*Layout, error)

	// SaveLayout stores the layout for a day, replacing any previous one.
	SaveLayout(ctx context.Context, day string, layout Layout) error

	// DeleteLayout removes the saved layout for a day.
	DeleteLayout(ctx context.Context, day string) error

	// ListDays returns every day key with stored rows or a layout.
	ListDays(ctx context.Context) ([]string, error)

	// Close releases any resources held by the repository.
	Close() error
}
