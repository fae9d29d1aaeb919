// Package course defines the course record and the time helpers used to
// build it from attendance rows.
package course

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrEmptyCode is reported for rows without a course code.
var ErrEmptyCode = errors.New("course code cannot be empty")

// Row is one attendance record from the day's roster.
type Row struct {
	Code    string
	Time    string // e.g. "9:00 AM - 9:30 AM"
	Student string
	Level   string
}

// Course is a single session with a fixed interval and an aggregate
// student count. Start and End are minutes since midnight.
type Course struct {
	Code     string
	Level    string
	Start    int
	End      int
	Students int
}

// Duration returns the course length in minutes.
func (c Course) Duration() int {
	return c.End - c.Start
}

// StartTime returns the start as "HH:MM".
func (c Course) StartTime() string {
	return FormatClock(c.Start)
}

// EndTime returns the end as "HH:MM".
func (c Course) EndTime() string {
	return FormatClock(c.End)
}

// Overlaps returns true if the half-open intervals of both courses intersect.
func (c Course) Overlaps(other Course) bool {
	return c.Start < other.End && other.Start < c.End
}

// SameTime returns true if both courses start and end together.
func (c Course) SameTime(other Course) bool {
	return c.Start == other.Start && c.End == other.End
}

// Offset returns the minutes between the slot-aligned schedule start and
// this course's start.
func (c Course) Offset(scheduleStart int) int {
	return c.Start - FloorSlot(scheduleStart)
}

// Slots returns how many time label rows the course covers, at least one.
func (c Course) Slots() int {
	first := FloorSlot(c.Start)
	last := CeilSlot(c.End)
	return max(1, (last-first)/SlotMinutes)
}

func (c Course) String() string {
	return fmt.Sprintf("%s %s-%s", c.Code, c.StartTime(), c.EndTime())
}

// Compare orders courses by start, then end.
func Compare(a, b Course) int {
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.End - b.End
}

// Sort orders courses by start then end, keeping equal courses in place.
func Sort(courses []Course) {
	slices.SortStableFunc(courses, Compare)
}

// RowError describes a roster row that could not be used as given.
type RowError struct {
	Row  int // index in the input slice
	Code string
	Err  error
}

func (e RowError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Code, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ErrTimeMismatch is reported when a later row for a known code carries a
// different time range than the first one.
var ErrTimeMismatch = errors.New("time differs from first row for this code")

// Result is the outcome of Build.
type Result struct {
	Courses   []Course
	Skipped   []RowError // rows that produced no course
	Conflicts []RowError // rows counted, but whose time was ignored
}

// Build aggregates rows into one course per distinct code. The first row of
// a code fixes its level and time; later rows only add a student.
func Build(rows []Row) Result {
	var res Result
	index := make(map[string]int)

	for i, r := range rows {
		code := strings.TrimSpace(r.Code)
		if code == "" {
			res.Skipped = append(res.Skipped, RowError{Row: i, Err: ErrEmptyCode})
			continue
		}

		if pos, ok := index[code]; ok {
			existing := &res.Courses[pos]
			existing.Students++
			if start, end, err := ParseTimeRange(r.Time); err != nil || start != existing.Start || end != existing.End {
				res.Conflicts = append(res.Conflicts, RowError{Row: i, Code: code, Err: ErrTimeMismatch})
			}
			continue
		}

		start, end, err := ParseTimeRange(r.Time)
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: i, Code: code, Err: err})
			continue
		}

		index[code] = len(res.Courses)
		res.Courses = append(res.Courses, Course{
			Code:     code,
			Level:    strings.TrimSpace(r.Level),
			Start:    start,
			End:      end,
			Students: 1,
		})
	}

	Sort(res.Courses)
	return res
}

// ByCode indexes courses by their code.
func ByCode(courses []Course) map[string]Course {
	m := make(map[string]Course, len(courses))
	for _, c := range courses {
		m[c.Code] = c
	}
	return m
}
