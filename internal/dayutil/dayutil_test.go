package dayutil

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mo", "Mo"},
		{"monday", "Mo"},
		{"  Tuesday ", "Tu"},
		{"THU", "Th"},
		{"sat", "Sa"},
		{"Su", "Su"},
		{"Mo Tu We Th Fr", "Mo,Tu,We,Th,Fr"},
		{"Fr,Mo", "Mo,Fr"},
		{"we, we", "We"},
		{"Sa/Su", "Sa,Su"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "M", "funday", "Mo,xx"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Normalize(input); !errors.Is(err, ErrInvalidDay) {
				t.Errorf("Normalize(%q) error = %v, want %v", input, err, ErrInvalidDay)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	// 2025-01-15 is a Wednesday.
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  string
	}{
		{"today", "We"},
		{"Tomorrow", "Th"},
		{"friday", "Fr"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Resolve(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	sunday := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)
	if got, _ := Resolve("tomorrow", sunday); got != "Mo" {
		t.Errorf("tomorrow after Sunday = %q, want Mo", got)
	}
}

func TestName(t *testing.T) {
	if got := Name("Mo"); got != "Monday" {
		t.Errorf("Name(Mo) = %q", got)
	}
	if got := Name("Mo,We"); got != "Monday, Wednesday" {
		t.Errorf("Name(Mo,We) = %q", got)
	}
	if got := Name("custom"); got != "custom" {
		t.Errorf("Name(custom) = %q", got)
	}
}

func TestCompare(t *testing.T) {
	days := []string{"custom", "Su", "Mo,We", "Fr", "Mo", "Tu"}
	slices.SortFunc(days, Compare)

	want := []string{"Mo", "Mo,We", "Tu", "Fr", "Su", "custom"}
	if !slices.Equal(days, want) {
		t.Errorf("sorted = %v, want %v", days, want)
	}
}
