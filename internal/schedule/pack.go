package schedule

import (
	"slices"

	"github.com/javiermolinar/deckhand/internal/course"
)

// Pack assigns courses to the fewest columns without overlap. Courses are
// taken in start order and each goes to the first column whose last course
// has ended by its start; otherwise a new column is opened.
func Pack(courses []course.Course) Columns {
	sorted := slices.Clone(courses)
	course.Sort(sorted)

	var cols Columns
	for _, c := range sorted {
		cols = firstFit(cols, c)
	}
	return cols
}

// firstFit appends c to the first column it can follow, or opens a column.
func firstFit(cols Columns, c course.Course) Columns {
	for i, col := range cols {
		last := col[len(col)-1]
		if last.End <= c.Start {
			cols[i] = append(col, c)
			return cols
		}
	}
	return append(cols, Column{c})
}

// MaxConcurrent returns the largest number of courses active at one
// instant, which is the number of columns Pack produces.
func MaxConcurrent(courses []course.Course) int {
	peak := 0
	for i, c := range courses {
		active := 1
		for j, d := range courses {
			if i != j && activeAt(d, c) {
				active++
			}
		}
		peak = max(peak, active)
	}
	return peak
}

// activeAt reports whether d is running just after c starts. A zero-width
// c is only inside intervals that strictly contain its instant.
func activeAt(d, c course.Course) bool {
	if c.Duration() == 0 {
		return d.Start < c.Start && c.Start < d.End
	}
	return d.Duration() > 0 && d.Start <= c.Start && c.Start < d.End
}
