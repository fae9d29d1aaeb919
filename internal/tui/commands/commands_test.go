package commands

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

type fakeRepo struct {
	rows map[string][]course.Row
	err  error
}

func (f fakeRepo) ListRows(ctx context.Context, day string) ([]course.Row, error) {
	return f.rows[day], f.err
}

func (f fakeRepo) ReplaceRows(ctx context.Context, day string, rows []course.Row) error {
	return errors.New("not implemented")
}

func (f fakeRepo) GetLayout(ctx context.Context, day string) (*schedule.Layout, error) {
	return nil, f.err
}

func (f fakeRepo) SaveLayout(ctx context.Context, day string, layout schedule.Layout) error {
	return errors.New("not implemented")
}

func (f fakeRepo) DeleteLayout(ctx context.Context, day string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) ListDays(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var days []string
	for day := range f.rows {
		days = append(days, day)
	}
	slices.Sort(days)
	return days, nil
}

func (f fakeRepo) Close() error { return nil }

func TestCopy(t *testing.T) {
	var got string
	layout := schedule.Layout{Instructors: []string{"Ana"}, Codes: []string{"A,B"}}

	msg := Copy(func(s string) error { got = s; return nil }, layout)()

	copied, ok := msg.(CopiedMsg)
	if !ok {
		t.Fatalf("expected CopiedMsg, got %T", msg)
	}
	if copied.Columns != 1 {
		t.Errorf("Columns = %d, want 1", copied.Columns)
	}
	if got != "Ana: A, B\n" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestCopy_Error(t *testing.T) {
	boom := errors.New("no clipboard")
	msg := Copy(func(string) error { return boom }, schedule.Layout{})()

	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, boom) {
		t.Fatalf("expected wrapped ErrMsg, got %#v", msg)
	}
}

func TestListDays(t *testing.T) {
	repo := fakeRepo{rows: map[string][]course.Row{"We": nil, "Mo": nil}}

	msg := ListDays(context.Background(), repo)()

	days, ok := msg.(DaysLoadedMsg)
	if !ok {
		t.Fatalf("expected DaysLoadedMsg, got %T", msg)
	}
	if !slices.Equal(days.Days, []string{"Mo", "We"}) {
		t.Errorf("Days = %v", days.Days)
	}
}

func TestOpenDay(t *testing.T) {
	repo := fakeRepo{rows: map[string][]course.Row{
		"Tu": {{Code: "A", Time: "9:00 AM - 9:30 AM"}},
	}}

	msg := OpenDay(context.Background(), repo, "Tu", nil)()

	loaded, ok := msg.(BoardLoadedMsg)
	if !ok {
		t.Fatalf("expected BoardLoadedMsg, got %T", msg)
	}
	if loaded.Board.Day() != "Tu" || loaded.Board.Columns().Len() != 1 {
		t.Errorf("unexpected board for %s with %d courses", loaded.Board.Day(), loaded.Board.Columns().Len())
	}
}

func TestOpenDay_Error(t *testing.T) {
	repo := fakeRepo{err: errors.New("locked")}

	if _, ok := OpenDay(context.Background(), repo, "Tu", nil)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg")
	}
}

func TestStatus(t *testing.T) {
	msg := Status("saved", LevelSuccess)()
	status, ok := msg.(StatusMsg)
	if !ok || status.Text != "saved" || status.Level != LevelSuccess {
		t.Fatalf("unexpected message %#v", msg)
	}
}
