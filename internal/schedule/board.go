package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/course"
)

// Board errors.
var (
	ErrNoDrag         = errors.New("no drag in progress")
	ErrCourseNotFound = errors.New("course not found in column")
)

// Board is the working schedule for one day: the course set, its columns,
// instructor labels and the active drag. It is not safe for concurrent use.
type Board struct {
	repo   Repository
	day    string
	logger *zap.Logger

	courses  []course.Course
	skipped  []course.RowError
	cols     Columns
	labels   []string
	drag     *DragState
	restored bool
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithLogger sets the logger used for load and drop decisions.
func WithLogger(logger *zap.Logger) BoardOption {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Open loads the day's rows and saved layout from repo.
func Open(ctx context.Context, repo Repository, day string, opts ...BoardOption) (*Board, error) {
	b := &Board{repo: repo, day: day, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(zap.String("day", day))

	if err := b.Reload(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Reload rebuilds the course set from stored rows and restores the saved
// layout, or packs a fresh one when none is usable.
func (b *Board) Reload(ctx context.Context) error {
	rows, err := b.repo.ListRows(ctx, b.day)
	if err != nil {
		return fmt.Errorf("loading rows: %w", err)
	}
	layout, err := b.repo.GetLayout(ctx, b.day)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}

	res := course.Build(rows)
	b.courses = res.Courses
	b.skipped = res.Skipped
	b.drag = nil
	for _, conflict := range res.Conflicts {
		b.logger.Debug("ignoring time of repeated course row", zap.Error(conflict))
	}
	for _, skipped := range res.Skipped {
		b.logger.Warn("skipping roster row", zap.Error(skipped))
	}

	b.restore(layout)
	return nil
}

func (b *Board) restore(layout *Layout) {
	b.restored = false
	if layout != nil && len(layout.Codes) > 0 {
		if cols, labels, ok := Decode(*layout, b.courses); ok {
			b.cols, b.labels, b.restored = cols, labels, true
			b.logger.Info("restored saved layout",
				zap.Int("columns", len(cols)),
				zap.Int("courses", cols.Len()),
			)
			return
		}
		b.logger.Warn("saved layout unusable, packing fresh",
			zap.Int("saved_columns", len(layout.Codes)),
		)
	}
	b.pack()
}

func (b *Board) pack() {
	b.cols = Pack(b.courses)
	b.labels = make([]string, len(b.cols))
	b.logger.Info("packed courses",
		zap.Int("columns", len(b.cols)),
		zap.Int("courses", len(b.courses)),
	)
}

// Day returns the day key.
func (b *Board) Day() string {
	return b.day
}

// Restored reports whether the columns came from a saved layout.
func (b *Board) Restored() bool {
	return b.restored
}

// Courses returns a copy of the course set.
func (b *Board) Courses() []course.Course {
	return slices.Clone(b.courses)
}

// Skipped returns the roster rows that produced no course.
func (b *Board) Skipped() []course.RowError {
	return slices.Clone(b.skipped)
}

// Columns returns a copy of the current arrangement.
func (b *Board) Columns() Columns {
	return b.cols.Clone()
}

// Instructors returns a copy of the labels, one per column.
func (b *Board) Instructors() []string {
	return slices.Clone(b.labels)
}

// TimeLabels returns the 15-minute time rail for the course set.
func (b *Board) TimeLabels() []string {
	return course.Labels(b.courses)
}

// ScheduleStart returns the slot-aligned start of the day, or 0 when empty.
func (b *Board) ScheduleStart() int {
	start, _ := course.Bounds(b.courses)
	if start == course.NoTime {
		return 0
	}
	return course.FloorSlot(start)
}

// DragStart begins dragging code out of column.
func (b *Board) DragStart(code string, column int) error {
	if err := b.cols.checkIndex(column); err != nil {
		return err
	}
	if b.cols[column].Index(code) < 0 {
		return fmt.Errorf("%w: %s in column %d", ErrCourseNotFound, code, column)
	}
	b.drag = &DragState{Code: code, Source: column}
	return nil
}

// Dragging returns the active drag, if any.
func (b *Board) Dragging() (DragState, bool) {
	if b.drag == nil {
		return DragState{}, false
	}
	return *b.drag, true
}

// CancelDrag clears the active drag without moving anything.
func (b *Board) CancelDrag() {
	b.drag = nil
}

// Drop drops the dragged course onto free space in column.
func (b *Board) Drop(column int) (Result, error) {
	return b.drop(Target{Column: column})
}

// DropOnCourse drops the dragged course onto the course code in column.
func (b *Board) DropOnCourse(code string, column int) (Result, error) {
	return b.drop(Target{Column: column, Code: code})
}

// Move runs a complete drag from one column to another. onto may be empty.
func (b *Board) Move(code string, from, to int, onto string) (Result, error) {
	if err := b.DragStart(code, from); err != nil {
		return Result{}, err
	}
	return b.drop(Target{Column: to, Code: onto})
}

func (b *Board) drop(target Target) (Result, error) {
	if b.drag == nil {
		return Result{}, ErrNoDrag
	}
	drag := *b.drag
	b.drag = nil

	res, err := Relocate(b.cols, drag, target)
	if err != nil {
		return Result{}, err
	}

	fields := []zap.Field{
		zap.String("code", drag.Code),
		zap.Int("source", drag.Source),
		zap.Int("target", target.Column),
		zap.Stringer("outcome", res.Outcome),
	}
	if target.Code != "" {
		fields = append(fields, zap.String("onto", target.Code))
	}
	if len(res.Displaced) > 0 {
		fields = append(fields, zap.Strings("displaced", res.Displaced))
	}
	b.logger.Debug("drop", fields...)

	if !res.Outcome.Committed() {
		return res, nil
	}

	b.cols = res.Columns
	for j := len(res.Pruned) - 1; j >= 0; j-- {
		i := res.Pruned[j]
		if i < len(b.labels) {
			b.labels = slices.Delete(b.labels, i, i+1)
		}
	}
	b.labels = alignLabels(b.labels, len(b.cols))
	return res, nil
}

// SetInstructor labels column i.
func (b *Board) SetInstructor(i int, name string) error {
	if err := b.cols.checkIndex(i); err != nil {
		return err
	}
	b.labels[i] = strings.TrimSpace(name)
	return nil
}

// Reset discards the arrangement and packs the courses from scratch.
func (b *Board) Reset() {
	b.drag = nil
	b.restored = false
	b.pack()
}

// Layout returns the persisted form of the current arrangement.
func (b *Board) Layout() Layout {
	return Encode(b.cols, b.labels)
}

// Save writes the current arrangement to the repository.
func (b *Board) Save(ctx context.Context) error {
	if err := b.repo.SaveLayout(ctx, b.day, b.Layout()); err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}
	b.restored = true
	b.logger.Info("saved layout", zap.Int("columns", len(b.cols)))
	return nil
}

// Assignment lists the courses taught by one labelled column.
type Assignment struct {
	Instructor string   `json:"instructor" yaml:"instructor" toml:"instructor"`
	Codes      []string `json:"codes" yaml:"codes" toml:"codes"`
}

// Assignments returns one entry per column with an instructor label.
func (b *Board) Assignments() []Assignment {
	var result []Assignment
	for i, c := range b.cols {
		if b.labels[i] == "" {
			continue
		}
		result = append(result, Assignment{Instructor: b.labels[i], Codes: c.Codes()})
	}
	return result
}
