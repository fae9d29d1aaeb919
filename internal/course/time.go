package course

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidTime    = errors.New("time must look like 9:30 AM or 17:30")
	ErrEndBeforeStart = errors.New("end time must not be before start time")
)

const (
	// SlotMinutes is the size of one time label row.
	SlotMinutes = 15

	// NoTime marks an absent time bound.
	NoTime = -1

	minutesPerDay = 24 * 60
)

// clockLayouts are tried in order after the token is upper-cased and
// stripped of spaces and dots.
var clockLayouts = []string{"3:04PM", "3PM", "15:04"}

// ParseClock converts a single clock token into minutes since midnight.
// It accepts 12-hour input with a meridiem ("9:05 AM", "9am", "12:30 p.m.")
// and 24-hour input ("17:30", "9:05").
func ParseClock(token string) (int, error) {
	normalized := strings.ToUpper(token)
	normalized = strings.NewReplacer(" ", "", ".", "", "\u00a0", "").Replace(normalized)
	if normalized == "" {
		return 0, ErrInvalidTime
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, token)
}

// ParseTimeRange splits a range such as "9:00 AM - 9:45 AM" into start and
// end minutes. A missing end token is treated as equal to the start.
func ParseTimeRange(text string) (start, end int, err error) {
	normalized := strings.NewReplacer("–", "-", "—", "-").Replace(text)
	normalized = replaceWordTo(normalized)

	parts := strings.SplitN(normalized, "-", 2)
	startToken := strings.TrimSpace(parts[0])
	if startToken == "" {
		return 0, 0, fmt.Errorf("%w: empty range", ErrInvalidTime)
	}

	start, err = ParseClock(startToken)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}

	end = start
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		end, err = ParseClock(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("end time: %w", err)
		}
	}

	if end < start {
		return 0, 0, ErrEndBeforeStart
	}
	return start, end, nil
}

// replaceWordTo turns "9:00 to 10:00" into "9:00 - 10:00".
func replaceWordTo(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if strings.EqualFold(f, "to") {
			fields[i] = "-"
		}
	}
	return strings.Join(fields, " ")
}

// FormatClock converts minutes since midnight to "HH:MM" format.
func FormatClock(m int) string {
	m = clampMinutes(m)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatLabel converts minutes since midnight to a 12-hour label like "09:15 AM".
func FormatLabel(m int) string {
	m = clampMinutes(m)
	return time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("03:04 PM")
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m >= minutesPerDay {
		return minutesPerDay - 1
	}
	return m
}

// FloorSlot rounds minutes down to the previous slot boundary.
func FloorSlot(m int) int {
	return m - m%SlotMinutes
}

// CeilSlot rounds minutes up to the next slot boundary.
func CeilSlot(m int) int {
	if r := m % SlotMinutes; r != 0 {
		return m + SlotMinutes - r
	}
	return m
}

// BuildTimeLabels returns one label per slot from the floor-aligned start up
// to the ceiling-aligned end. Either bound set to NoTime yields no labels.
func BuildTimeLabels(start, end int) []string {
	if start == NoTime || end == NoTime {
		return []string{}
	}
	from := FloorSlot(start)
	to := CeilSlot(end)

	labels := make([]string, 0, max(0, (to-from)/SlotMinutes))
	for m := from; m < to; m += SlotMinutes {
		labels = append(labels, FormatLabel(m))
	}
	return labels
}

// Bounds returns the earliest start and latest end across courses, or
// NoTime for both when there are none.
func Bounds(courses []Course) (start, end int) {
	if len(courses) == 0 {
		return NoTime, NoTime
	}
	start, end = courses[0].Start, courses[0].End
	for _, c := range courses[1:] {
		start = min(start, c.Start)
		end = max(end, c.End)
	}
	return start, end
}

// Labels builds the time rail for a course set.
func Labels(courses []Course) []string {
	return BuildTimeLabels(Bounds(courses))
}
