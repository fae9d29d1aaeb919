package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/roster"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

var errBadRequest = errors.New("bad request")

type rowRequest struct {
	Code    string `json:"code"`
	Time    string `json:"time"`
	Student string `json:"student"`
	Level   string `json:"level"`
}

type dragRequest struct {
	Code   string `json:"code" binding:"required"`
	Column *int   `json:"column" binding:"required"`
}

type dropRequest struct {
	Column *int   `json:"column" binding:"required"`
	Code   string `json:"code"`
}

type moveRequest struct {
	Code string `json:"code" binding:"required"`
	From *int   `json:"from" binding:"required"`
	To   *int   `json:"to" binding:"required"`
	Onto string `json:"onto"`
}

type instructorRequest struct {
	Name string `json:"name"`
}

func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   s.version,
	})
}

func (s *Server) handleListDays(c *gin.Context) {
	days, err := s.repo.ListDays(c.Request.Context())
	if err != nil {
		writeError(c, s.logger, fmt.Errorf("listing days: %w", err))
		return
	}
	slices.SortFunc(days, dayutil.Compare)
	if days == nil {
		days = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (s *Server) handleSchedule(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		c.JSON(http.StatusOK, newScheduleView(b))
		return nil
	})
}

// handleReplaceRoster replaces the day's rows with a CSV body, or a JSON
// array of rows when the content type is application/json. CSV lines for
// other days are ignored.
func (s *Server) handleReplaceRoster(c *gin.Context) {
	s.withBoard(c, func(day string, b *schedule.Board) error {
		var (
			rows    []course.Row
			skipped int
			ignored int
		)
		if c.ContentType() == gin.MIMEJSON {
			var req []rowRequest
			if err := bindJSON(c, &req); err != nil {
				return err
			}
			for _, r := range req {
				rows = append(rows, course.Row{Code: r.Code, Time: r.Time, Student: r.Student, Level: r.Level})
			}
		} else {
			res, err := roster.Read(c.Request.Body)
			if err != nil {
				return fmt.Errorf("%w: %v", errBadRequest, err)
			}
			byDay, err := roster.ByDay(res.Records, day)
			if err != nil {
				return fmt.Errorf("%w: %v", errBadRequest, err)
			}
			rows = byDay[day]
			skipped = res.Skipped
			ignored = len(res.Records) - len(rows)
		}

		ctx := c.Request.Context()
		if err := s.repo.ReplaceRows(ctx, day, rows); err != nil {
			return fmt.Errorf("storing rows: %w", err)
		}
		if err := b.Reload(ctx); err != nil {
			return err
		}
		s.logger.Info("replaced roster", zap.String("day", day), zap.Int("rows", len(rows)))

		c.JSON(http.StatusOK, gin.H{
			"rows":     len(rows),
			"skipped":  skipped,
			"ignored":  ignored,
			"schedule": newScheduleView(b),
		})
		return nil
	})
}

func (s *Server) handleDrag(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		var req dragRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		if err := b.DragStart(req.Code, *req.Column); err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"dragging": dragView{Code: req.Code, Source: *req.Column}})
		return nil
	})
}

func (s *Server) handleCancelDrag(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		b.CancelDrag()
		c.JSON(http.StatusOK, newScheduleView(b))
		return nil
	})
}

func (s *Server) handleDrop(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		var req dropRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		drag, ok := b.Dragging()
		if !ok {
			return schedule.ErrNoDrag
		}

		var (
			res schedule.Result
			err error
		)
		if req.Code == "" {
			res, err = b.Drop(*req.Column)
		} else {
			res, err = b.DropOnCourse(req.Code, *req.Column)
		}
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, newMoveResponse(drag.Code, res, b))
		return nil
	})
}

func (s *Server) handleMove(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		var req moveRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		res, err := b.Move(req.Code, *req.From, *req.To, req.Onto)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, newMoveResponse(req.Code, res, b))
		return nil
	})
}

func (s *Server) handleSetInstructor(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return fmt.Errorf("%w: column index %q", errBadRequest, c.Param("index"))
		}
		var req instructorRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		if err := b.SetInstructor(index, req.Name); err != nil {
			return err
		}
		c.JSON(http.StatusOK, newScheduleView(b))
		return nil
	})
}

func (s *Server) handleSave(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		if err := b.Save(c.Request.Context()); err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"saved": true, "layout": b.Layout()})
		return nil
	})
}

// handleReset repacks the board in memory; the saved layout is kept until
// the next save.
func (s *Server) handleReset(c *gin.Context) {
	s.withBoard(c, func(_ string, b *schedule.Board) error {
		b.Reset()
		c.JSON(http.StatusOK, newScheduleView(b))
		return nil
	})
}

// writeError maps domain errors to HTTP status codes.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, dayutil.ErrInvalidDay),
		errors.Is(err, schedule.ErrColumnOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, schedule.ErrCourseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schedule.ErrNoDrag):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
