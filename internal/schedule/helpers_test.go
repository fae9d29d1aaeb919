package schedule

import (
	"context"
	"slices"
	"sort"
	"testing"

	"github.com/javiermolinar/deckhand/internal/course"
)

// c builds a course with the given code and minute interval.
func c(code string, start, end int) course.Course {
	return course.Course{Code: code, Start: start, End: end, Students: 1}
}

// codesOf returns the codes of each column, for readable comparisons.
func codesOf(cols Columns) [][]string {
	result := make([][]string, len(cols))
	for i, col := range cols {
		result[i] = col.Codes()
	}
	return result
}

func assertCodes(t *testing.T, cols Columns, want [][]string) {
	t.Helper()
	got := codesOf(cols)
	if len(got) != len(want) {
		t.Fatalf("got %d columns %v, want %d columns %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("column %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func assertValid(t *testing.T, cols Columns) {
	t.Helper()
	if err := cols.Valid(); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
	for i, col := range cols {
		if len(col) == 0 {
			t.Fatalf("column %d is empty", i)
		}
		if !slices.IsSortedFunc(col, course.Compare) {
			t.Fatalf("column %d not sorted: %v", i, col.Codes())
		}
	}
}

func sortedCodes(cols Columns) []string {
	codes := cols.Codes()
	sort.Strings(codes)
	return codes
}

// memRepo is an in-memory Repository for board tests.
type memRepo struct {
	rows    map[string][]course.Row
	layouts map[string]Layout
	saves   int
	err     error
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows:    make(map[string][]course.Row),
		layouts: make(map[string]Layout),
	}
}

func (m *memRepo) ListRows(_ context.Context, day string) ([]course.Row, error) {
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.rows[day]), nil
}

func (m *memRepo) ReplaceRows(_ context.Context, day string, rows []course.Row) error {
	m.rows[day] = slices.Clone(rows)
	return nil
}

func (m *memRepo) GetLayout(_ context.Context, day string) (*Layout, error) {
	if m.err != nil {
		return nil, m.err
	}
	l, ok := m.layouts[day]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memRepo) SaveLayout(_ context.Context, day string, layout Layout) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.layouts[day] = layout
	return nil
}

func (m *memRepo) DeleteLayout(_ context.Context, day string) error {
	delete(m.layouts, day)
	return nil
}

func (m *memRepo) ListDays(_ context.Context) ([]string, error) {
	var days []string
	for d := range m.rows {
		days = append(days, d)
	}
	sort.Strings(days)
	return days, nil
}

func (m *memRepo) Close() error { return nil }
