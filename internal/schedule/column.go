// Package schedule arranges a day's courses into non-overlapping columns and
// applies drag-driven relocations between them.
package schedule

import (
	"errors"
	"fmt"
	"slices"

	"github.com/javiermolinar/deckhand/internal/course"
)

// Domain errors.
var (
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrOverlap          = errors.New("courses overlap within a column")
)

// Column is one instructor track, sorted by start time.
type Column []course.Course

// Columns is the full left-to-right arrangement for a day.
type Columns []Column

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	return slices.Clone(c)
}

// Sort orders the column by start time.
func (c Column) Sort() {
	course.Sort(c)
}

// Index returns the position of code in the column, or -1.
func (c Column) Index(code string) int {
	return slices.IndexFunc(c, func(x course.Course) bool { return x.Code == code })
}

// Overlapping returns the courses in the column that overlap with x, sorted by start.
func (c Column) Overlapping(x course.Course) []course.Course {
	var result []course.Course
	for _, entry := range c {
		if entry.Overlaps(x) {
			result = append(result, entry)
		}
	}
	course.Sort(result)
	return result
}

// HasOverlap returns true if any course in the column overlaps with x.
func (c Column) HasOverlap(x course.Course) bool {
	return slices.ContainsFunc(c, x.Overlaps)
}

// Without returns a copy of the column with the given codes removed.
func (c Column) Without(codes ...string) Column {
	result := make(Column, 0, len(c))
	for _, entry := range c {
		if !slices.Contains(codes, entry.Code) {
			result = append(result, entry)
		}
	}
	return result
}

// With returns a sorted copy of the column with the given courses added.
func (c Column) With(courses ...course.Course) Column {
	result := make(Column, 0, len(c)+len(courses))
	result = append(result, c...)
	result = append(result, courses...)
	result.Sort()
	return result
}

// Codes returns the course codes in column order.
func (c Column) Codes() []string {
	codes := make([]string, len(c))
	for i, entry := range c {
		codes[i] = entry.Code
	}
	return codes
}

// Valid returns ErrOverlap if any two courses in the column overlap.
func (c Column) Valid() error {
	for i := range c {
		for j := i + 1; j < len(c); j++ {
			if c[i].Overlaps(c[j]) {
				return fmt.Errorf("%w: %s and %s", ErrOverlap, c[i], c[j])
			}
		}
	}
	return nil
}

// CanPlace returns true if every course can join the column without overlap.
func CanPlace(column Column, courses []course.Course) bool {
	for _, x := range courses {
		if column.HasOverlap(x) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of all columns.
func (cols Columns) Clone() Columns {
	if cols == nil {
		return nil
	}
	result := make(Columns, len(cols))
	for i, c := range cols {
		result[i] = c.Clone()
	}
	return result
}

// Valid checks the non-overlap invariant for every column.
func (cols Columns) Valid() error {
	for i, c := range cols {
		if err := c.Valid(); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// Find returns the column and row of code, or -1, -1.
func (cols Columns) Find(code string) (column, row int) {
	for i, c := range cols {
		if j := c.Index(code); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// Codes returns every course code across all columns, left to right.
func (cols Columns) Codes() []string {
	var codes []string
	for _, c := range cols {
		codes = append(codes, c.Codes()...)
	}
	return codes
}

// Len returns the total number of courses.
func (cols Columns) Len() int {
	n := 0
	for _, c := range cols {
		n += len(c)
	}
	return n
}

// prune drops empty columns and returns the removed indices.
func (cols Columns) prune() (Columns, []int) {
	var pruned []int
	result := make(Columns, 0, len(cols))
	for i, c := range cols {
		if len(c) == 0 {
			pruned = append(pruned, i)
			continue
		}
		result = append(result, c)
	}
	return result, pruned
}

func (cols Columns) checkIndex(i int) error {
	if i < 0 || i >= len(cols) {
		return fmt.Errorf("%w: %d (have %d columns)", ErrColumnOutOfRange, i, len(cols))
	}
	return nil
}
