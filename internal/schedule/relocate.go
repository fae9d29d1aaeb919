package schedule

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/deckhand/internal/course"
)

// DragState identifies the course being dragged and the column it left.
type DragState struct {
	Code   string
	Source int
}

// Target is where a dragged course is dropped. An empty Code means the drop
// landed on free space in the column rather than on a course.
type Target struct {
	Column int
	Code   string
}

// Outcome describes what a relocation did.
type Outcome int

const (
	OutcomeNoop      Outcome = iota // drag source or target not found
	OutcomeRejected                 // move would overlap and no swap applies
	OutcomeReordered                // dropped back into its own column
	OutcomePlaced                   // moved into free space
	OutcomeSwapped                  // exchanged for a contiguous block
	OutcomeReplaced                 // exchanged for a single course
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeRejected:
		return "rejected"
	case OutcomeReordered:
		return "reordered"
	case OutcomePlaced:
		return "placed"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Committed returns true if the outcome changed the arrangement.
func (o Outcome) Committed() bool {
	return o >= OutcomeReordered
}

// Result is the arrangement after a relocation.
type Result struct {
	Columns   Columns
	Outcome   Outcome
	Pruned    []int    // indices of columns removed because they became empty
	Displaced []string // codes moved into the source column by a swap
}

// Describe returns a one-line account of the relocation of code.
func (r Result) Describe(code string) string {
	switch r.Outcome {
	case OutcomeNoop:
		return "nothing to move"
	case OutcomeRejected:
		return fmt.Sprintf("move rejected: %s overlaps courses in that column", code)
	case OutcomeReordered:
		return fmt.Sprintf("%s stays in its column", code)
	case OutcomePlaced:
		return fmt.Sprintf("moved %s", code)
	case OutcomeSwapped:
		if len(r.Displaced) == 1 {
			return fmt.Sprintf("swapped %s with %s", code, r.Displaced[0])
		}
		return fmt.Sprintf("swapped %s with %d courses (%s)", code, len(r.Displaced), strings.Join(r.Displaced, ", "))
	case OutcomeReplaced:
		return fmt.Sprintf("replaced %s with %s", strings.Join(r.Displaced, ", "), code)
	default:
		return r.Outcome.String()
	}
}

// Relocate moves drag.Code from its source column to target. The input is
// never modified: on rejection or no-op the returned Columns is cols itself,
// otherwise a new arrangement that keeps every column free of overlaps.
// Out-of-range column indices are caller errors.
func Relocate(cols Columns, drag DragState, target Target) (Result, error) {
	if err := cols.checkIndex(drag.Source); err != nil {
		return Result{}, err
	}
	if err := cols.checkIndex(target.Column); err != nil {
		return Result{}, err
	}

	unchanged := func(o Outcome) (Result, error) {
		return Result{Columns: cols, Outcome: o}, nil
	}

	source := cols[drag.Source]
	idx := source.Index(drag.Code)
	if idx < 0 {
		return unchanged(OutcomeNoop)
	}
	moved := source[idx]

	dest := cols[target.Column]
	if target.Code != "" {
		if target.Code == moved.Code || dest.Index(target.Code) < 0 {
			return unchanged(OutcomeNoop)
		}
	}

	if drag.Source == target.Column {
		next := cols.Clone()
		next[drag.Source] = source.Without(moved.Code).With(moved)
		return Result{Columns: next, Outcome: OutcomeReordered}, nil
	}

	remaining := source.Without(moved.Code)

	if !dest.HasOverlap(moved) {
		return commit(cols, drag.Source, target.Column, remaining, dest.With(moved), nil, OutcomePlaced), nil
	}

	if block := contiguousBlock(dest, moved); len(block) > 0 && CanPlace(remaining, block) {
		codes := Column(block).Codes()
		next := commit(cols, drag.Source, target.Column,
			remaining.With(block...), dest.Without(codes...).With(moved), codes, OutcomeSwapped)
		return next, nil
	}

	if other, ok := replaceCandidate(dest, moved, target.Code); ok && CanPlace(remaining, []course.Course{other}) {
		next := commit(cols, drag.Source, target.Column,
			remaining.With(other), dest.Without(other.Code).With(moved), []string{other.Code}, OutcomeReplaced)
		return next, nil
	}

	return unchanged(OutcomeRejected)
}

// commit builds the new arrangement from the rewritten source and target
// columns and prunes any column left empty.
func commit(cols Columns, src, dst int, source, target Column, displaced []string, o Outcome) Result {
	next := cols.Clone()
	next[src] = source
	next[dst] = target
	next, pruned := next.prune()
	return Result{Columns: next, Outcome: o, Pruned: pruned, Displaced: displaced}
}

// contiguousBlock returns the courses in column that overlap moved when they
// tile its interval exactly: the first starts with it, each one starts where
// the previous ends, and the last ends with it. Otherwise it returns nil.
func contiguousBlock(column Column, moved course.Course) []course.Course {
	block := column.Overlapping(moved)
	if len(block) == 0 {
		return nil
	}
	if block[0].Start != moved.Start {
		return nil
	}
	for i := 1; i < len(block); i++ {
		if block[i-1].End != block[i].Start {
			return nil
		}
	}
	if block[len(block)-1].End != moved.End {
		return nil
	}
	return block
}

// replaceCandidate picks the single course moved can trade places with: the
// targeted course when one was given, otherwise the first course starting
// at the same minute. No other course in the column may overlap moved.
func replaceCandidate(column Column, moved course.Course, targetCode string) (course.Course, bool) {
	idx := -1
	if targetCode != "" {
		idx = column.Index(targetCode)
	} else {
		for i, c := range column {
			if c.Start == moved.Start {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return course.Course{}, false
	}

	candidate := column[idx]
	if candidate.Start != moved.Start {
		return course.Course{}, false
	}
	for i, c := range column {
		if i != idx && c.Overlaps(moved) {
			return course.Course{}, false
		}
	}
	return candidate, true
}
