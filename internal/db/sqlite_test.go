package db

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

func TestReplaceRows_ListRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []course.Row{
		{Code: "B", Time: "9:30 AM - 10:00 AM", Student: "Bob", Level: "Beginner"},
		{Code: "A", Time: "9:00 AM - 9:30 AM", Student: "Ann", Level: "Beginner"},
		{Code: "A", Time: "9:00 AM - 9:30 AM", Student: "Abe", Level: "Beginner"},
	}
	if err := repo.ReplaceRows(ctx, "Mo", rows); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}

	got, err := repo.ListRows(ctx, "Mo")
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if !slices.Equal(got, rows) {
		t.Errorf("ListRows = %+v, want input order %+v", got, rows)
	}
}

func TestReplaceRows_Replaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceRows(ctx, "Mo", []course.Row{{Code: "A", Time: "9:00 AM"}, {Code: "B", Time: "10:00 AM"}}); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}
	if err := repo.ReplaceRows(ctx, "Mo", []course.Row{{Code: "C", Time: "11:00 AM"}}); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}

	got, err := repo.ListRows(ctx, "Mo")
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(got) != 1 || got[0].Code != "C" {
		t.Errorf("expected only C after replace, got %+v", got)
	}
}

func TestListRows_OtherDayIsolated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceRows(ctx, "Mo", []course.Row{{Code: "A", Time: "9:00 AM"}}); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}

	got, err := repo.ListRows(ctx, "Tu")
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows for Tu, got %+v", got)
	}
}

func TestGetLayout_None(t *testing.T) {
	repo := newTestRepo(t)

	layout, err := repo.GetLayout(context.Background(), "Mo")
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	if layout != nil {
		t.Errorf("expected nil layout, got %+v", layout)
	}
}

func TestSaveLayout_GetLayout(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved := schedule.Layout{
		Instructors: []string{"Ana", ""},
		Codes:       []string{"A,B", "C"},
	}
	if err := repo.SaveLayout(ctx, "Mo", saved); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	got, err := repo.GetLayout(ctx, "Mo")
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected layout, got nil")
	}
	if !slices.Equal(got.Codes, saved.Codes) || !slices.Equal(got.Instructors, saved.Instructors) {
		t.Errorf("GetLayout = %+v, want %+v", *got, saved)
	}

	// A shorter layout replaces the old one completely.
	if err := repo.SaveLayout(ctx, "Mo", schedule.Layout{Codes: []string{"C,A,B"}}); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}
	got, err = repo.GetLayout(ctx, "Mo")
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	if !slices.Equal(got.Codes, []string{"C,A,B"}) || !slices.Equal(got.Instructors, []string{""}) {
		t.Errorf("GetLayout after resave = %+v", *got)
	}
}

func TestDeleteLayout(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveLayout(ctx, "Mo", schedule.Layout{Codes: []string{"A"}}); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}
	if err := repo.DeleteLayout(ctx, "Mo"); err != nil {
		t.Fatalf("DeleteLayout failed: %v", err)
	}

	layout, err := repo.GetLayout(ctx, "Mo")
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	if layout != nil {
		t.Errorf("expected layout deleted, got %+v", layout)
	}
}

func TestListDays(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceRows(ctx, "We", []course.Row{{Code: "A", Time: "9:00 AM"}}); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}
	if err := repo.ReplaceRows(ctx, "Mo", []course.Row{{Code: "B", Time: "9:00 AM"}}); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}
	if err := repo.SaveLayout(ctx, "Mo", schedule.Layout{Codes: []string{"B"}}); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}
	if err := repo.SaveLayout(ctx, "Fr", schedule.Layout{Codes: []string{"X"}}); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	days, err := repo.ListDays(ctx)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if want := []string{"Fr", "Mo", "We"}; !slices.Equal(days, want) {
		t.Errorf("ListDays = %v, want %v", days, want)
	}
}

func TestBoardOverSQLite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []course.Row{
		{Code: "A", Time: "9:00 AM - 9:30 AM", Student: "Ann"},
		{Code: "B", Time: "9:30 AM - 10:00 AM", Student: "Bob"},
		{Code: "C", Time: "9:00 AM - 10:00 AM", Student: "Cid"},
	}
	if err := repo.ReplaceRows(ctx, "Mo", rows); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}

	board, err := schedule.Open(ctx, repo, "Mo")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := board.Move("C", 1, 0, ""); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := board.SetInstructor(1, "Ben"); err != nil {
		t.Fatalf("SetInstructor failed: %v", err)
	}
	if err := board.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := schedule.Open(ctx, repo, "Mo")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !reopened.Restored() {
		t.Fatal("expected the saved layout to be restored")
	}
	if got := reopened.Layout().Codes; !slices.Equal(got, []string{"C", "A,B"}) {
		t.Errorf("restored codes = %v", got)
	}
	if got := reopened.Instructors(); !slices.Equal(got, []string{"", "Ben"}) {
		t.Errorf("restored instructors = %q", got)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "deckhand.db")

	repo, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_ = repo.Close()
}

// Helper functions

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
