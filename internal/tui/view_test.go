package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/tui/theme"
)

func useTrueColor(t *testing.T) {
	t.Helper()
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})
}

// bgSeq is the truecolor background escape for a "#rrggbb" color.
func bgSeq(t *testing.T, c lipgloss.Color) string {
	t.Helper()
	var r, g, b int
	if _, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil {
		t.Fatalf("bad color %q: %v", c, err)
	}
	return fmt.Sprintf("48;2;%d;%d;%d", r, g, b)
}

// lineWith returns the first view line whose plain text contains s.
func lineWith(t *testing.T, out, s string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(ansi.Strip(line), s) {
			return line
		}
	}
	t.Fatalf("no line contains %q", s)
	return ""
}

func TestView_CursorAndDragShading(t *testing.T) {
	useTrueColor(t)
	th, _ := theme.Load("mocha")
	palette := theme.NewPalette(th)

	m := newTestModel(t, newMemRepo(), WithTheme(th))
	out := m.View()
	if line := lineWith(t, out, "A Beginner"); !strings.Contains(line, bgSeq(t, palette.BgSelection)) {
		t.Errorf("cursor course not highlighted: %q", line)
	}

	m, _ = press(t, m, "j", " ", "l")
	out = m.View()
	line := lineWith(t, out, "B Beginner")
	if !strings.Contains(line, bgSeq(t, palette.DragBg)) {
		t.Errorf("dragged course not shaded: %q", line)
	}
}

func TestView_ScrollsToCursor(t *testing.T) {
	repo := newMemRepo()
	repo.rows["Mo"] = []course.Row{
		{Code: "EARLY", Time: "8:00 AM - 9:00 AM", Student: "Eve"},
		{Code: "LATE", Time: "4:00 PM - 5:00 PM", Student: "Lou"},
	}
	m := newTestModel(t, repo)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})
	m = updated.(Model)

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "EARLY") || strings.Contains(out, "LATE") {
		t.Fatalf("expected only the morning in view:\n%s", out)
	}

	m, _ = press(t, m, "j")
	out = ansi.Strip(m.View())
	if !strings.Contains(out, "LATE") {
		t.Errorf("cursor course should be scrolled into view:\n%s", out)
	}
	if !strings.Contains(out, "04:45 PM") {
		t.Errorf("the whole course should be visible:\n%s", out)
	}
}

func TestView_ScrollsColumns(t *testing.T) {
	repo := newMemRepo()
	var rows []course.Row
	for i := 0; i < 8; i++ {
		rows = append(rows, course.Row{
			Code:    fmt.Sprintf("K%d", i+1),
			Time:    "9:00 AM - 10:00 AM",
			Student: "Kid",
		})
	}
	repo.rows["Mo"] = rows
	m := newTestModel(t, repo)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = updated.(Model)

	if got := m.visibleColumns(); got != 3 {
		t.Fatalf("visibleColumns = %d, want 3", got)
	}
	if out := ansi.Strip(m.View()); strings.Contains(out, "K8") {
		t.Fatalf("last column should be off screen:\n%s", out)
	}

	m, _ = press(t, m, "l", "l", "l", "l", "l", "l", "l")
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "K8") || strings.Contains(out, "K1 ") {
		t.Errorf("expected the view to follow the cursor to the last column:\n%s", out)
	}
	if !strings.Contains(out, "#8") {
		t.Errorf("header should number columns from the start:\n%s", out)
	}
}

func TestCourseLines(t *testing.T) {
	c := course.Course{Code: "S12", Level: "Level 2", Start: 540, End: 585, Students: 1}
	lines := courseLines(c)
	want := []string{"S12 Level 2", "09:00-09:45", "1 student · 45m"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("courseLines = %q, want %q", lines, want)
	}

	c.Level = ""
	if got := courseLines(c)[0]; got != "S12" {
		t.Errorf("head without level = %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "column"); got != "1 column" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(0, "column"); got != "0 columns" {
		t.Errorf("pluralize(0) = %q", got)
	}
}
