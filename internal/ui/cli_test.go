package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/deckhand/internal/config"
	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/db"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

// sunday is the fixed clock for --day today/tomorrow.
var sunday = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	repo *db.SQLite
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deckhand.db")
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = path
	return &testEnv{repo: repo, cfg: cfg}
}

// seed stores rows that pack into [[A, B], [C]].
func (e *testEnv) seed(t *testing.T, day string) {
	t.Helper()
	rows := []course.Row{
		{Code: "A", Time: "9:00 AM - 9:30 AM", Student: "Ann", Level: "Beginner"},
		{Code: "B", Time: "9:30 AM - 10:00 AM", Student: "Bob", Level: "Beginner"},
		{Code: "C", Time: "9:00 AM - 10:00 AM", Student: "Cid", Level: "Advanced"},
	}
	if err := e.repo.ReplaceRows(context.Background(), day, rows); err != nil {
		t.Fatalf("ReplaceRows failed: %v", err)
	}
}

// run executes one command line on a fresh App sharing the env's repo.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	app := NewApp(e.repo, e.cfg)
	app.now = func() time.Time { return sunday }

	var out bytes.Buffer
	app.root.SetArgs(args)
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	app.root.SetIn(strings.NewReader(input))
	err := app.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "deckhand dev (commit: none)\n" {
		t.Errorf("output = %q", out)
	}
}

func TestResolveDay(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    string
		wantErr bool
	}{
		{name: "config default", flag: "", want: "We"},
		{name: "key", flag: "Fr", want: "Fr"},
		{name: "full name", flag: "thursday", want: "Th"},
		{name: "list", flag: "mon,wed", want: "Mo,We"},
		{name: "today", flag: "today", want: "Su"},
		{name: "tomorrow", flag: "tomorrow", want: "Mo"},
		{name: "invalid", flag: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Board.Day = "We"
			app := NewApp(nil, cfg)
			app.now = func() time.Time { return sunday }
			app.day = tt.flag

			got, err := app.resolveDay()
			if tt.wantErr {
				if !errors.Is(err, dayutil.ErrInvalidDay) {
					t.Errorf("expected ErrInvalidDay, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveDay failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "days")
	if err != nil {
		t.Fatalf("days failed: %v", err)
	}
	if !strings.Contains(out, "no days stored") {
		t.Errorf("expected empty message, got %q", out)
	}

	env.seed(t, "Fr")
	env.seed(t, "Mo")
	out, err = env.run(t, "days")
	if err != nil {
		t.Fatalf("days failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "Mo") || !strings.Contains(lines[0], "Monday") {
		t.Errorf("first line = %q, want Monday", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Fr") {
		t.Errorf("second line = %q, want Friday", lines[1])
	}
}

func TestLazyRepository(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "nested", "deckhand.db")
	app := NewApp(nil, cfg)

	var out bytes.Buffer
	app.root.SetArgs([]string{"days"})
	app.root.SetOut(&out)
	if err := app.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("days failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := os.Stat(cfg.Storage.DBPath); err != nil {
		t.Errorf("expected database file to be created: %v", err)
	}
}

func TestServe_InvalidAddress(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "serve", "--debug", "--listen", "127.0.0.1:-1")
	if err == nil || !strings.Contains(err.Error(), "serving HTTP") {
		t.Errorf("expected listen error, got %v", err)
	}
}
