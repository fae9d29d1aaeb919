package server

import (
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

type courseView struct {
	Code     string `json:"code"`
	Level    string `json:"level,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Students int    `json:"students"`
	Offset   int    `json:"offset"` // minutes from the schedule start
	Slots    int    `json:"slots"`  // time rail rows covered
}

type columnView struct {
	Index      int          `json:"index"`
	Instructor string       `json:"instructor"`
	Courses    []courseView `json:"courses"`
}

type dragView struct {
	Code   string `json:"code"`
	Source int    `json:"source"`
}

type scheduleView struct {
	Day           string       `json:"day"`
	DayName       string       `json:"day_name"`
	Restored      bool         `json:"restored"`
	ScheduleStart int          `json:"schedule_start"`
	TimeLabels    []string     `json:"time_labels"`
	Columns       []columnView `json:"columns"`
	Dragging      *dragView    `json:"dragging"`
	Skipped       int          `json:"skipped"`
}

type moveResponse struct {
	Outcome   string       `json:"outcome"`
	Message   string       `json:"message"`
	Displaced []string     `json:"displaced"`
	Pruned    []int        `json:"pruned"`
	Schedule  scheduleView `json:"schedule"`
}

func newScheduleView(b *schedule.Board) scheduleView {
	start := b.ScheduleStart()
	labels := b.Instructors()

	v := scheduleView{
		Day:           b.Day(),
		DayName:       dayutil.Name(b.Day()),
		Restored:      b.Restored(),
		ScheduleStart: start,
		TimeLabels:    b.TimeLabels(),
		Columns:       []columnView{},
		Skipped:       len(b.Skipped()),
	}
	for i, col := range b.Columns() {
		cv := columnView{Index: i, Instructor: labels[i], Courses: make([]courseView, 0, len(col))}
		for _, c := range col {
			cv.Courses = append(cv.Courses, courseView{
				Code:     c.Code,
				Level:    c.Level,
				Start:    c.StartTime(),
				End:      c.EndTime(),
				Students: c.Students,
				Offset:   c.Offset(start),
				Slots:    c.Slots(),
			})
		}
		v.Columns = append(v.Columns, cv)
	}
	if drag, ok := b.Dragging(); ok {
		v.Dragging = &dragView{Code: drag.Code, Source: drag.Source}
	}
	return v
}

func newMoveResponse(code string, res schedule.Result, b *schedule.Board) moveResponse {
	displaced := res.Displaced
	if displaced == nil {
		displaced = []string{}
	}
	pruned := res.Pruned
	if pruned == nil {
		pruned = []int{}
	}
	return moveResponse{
		Outcome:   res.Outcome.String(),
		Message:   res.Describe(code),
		Displaced: displaced,
		Pruned:    pruned,
		Schedule:  newScheduleView(b),
	}
}
