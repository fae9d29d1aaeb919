// Package roster reads attendance exports into course rows.
//
// The input is CSV with a header row. Column names are matched
// case-insensitively with spaces and underscores ignored, so "Event Id",
// "event_id" and "EventID" all name the code column.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
)

// Roster errors.
var (
	ErrNoHeader      = errors.New("roster has no header row")
	ErrMissingColumn = errors.New("roster is missing a required column")
	ErrNoDay         = errors.New("row has no day and no fallback day was given")
)

// Header aliases, already normalized.
var (
	codeHeaders    = []string{"code", "eventid", "classcode"}
	timeHeaders    = []string{"time", "eventtime", "timerange"}
	studentHeaders = []string{"student", "attendeename", "name"}
	firstHeaders   = []string{"firstname"}
	lastHeaders    = []string{"lastname"}
	levelHeaders   = []string{"level", "servicename", "service"}
	dayHeaders     = []string{"day", "dayofweek"}
)

// Record is one usable roster line. Day is empty when the file has no day
// column or the value was blank or unrecognized.
type Record struct {
	Day string
	Row course.Row
}

// Result is the outcome of Read.
type Result struct {
	Records []Record
	Skipped int // lines without a code or student
}

type columns map[string]int

func (c columns) get(line []string, names []string) string {
	for _, name := range names {
		if idx, ok := c[name]; ok && idx < len(line) {
			if v := strings.TrimSpace(line[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (c columns) has(names []string) bool {
	for _, name := range names {
		if _, ok := c[name]; ok {
			return true
		}
	}
	return false
}

// Read parses a roster export. The code and time columns are required.
// When a student column exists, lines without a student are skipped.
func Read(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, ErrNoHeader
	}
	if err != nil {
		return Result{}, fmt.Errorf("reading header: %w", err)
	}

	cols := make(columns, len(headers))
	for i, h := range headers {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	for _, required := range [][]string{codeHeaders, timeHeaders} {
		if !cols.has(required) {
			return Result{}, fmt.Errorf("%w: one of %s", ErrMissingColumn, strings.Join(required, ", "))
		}
	}
	needStudent := cols.has(studentHeaders) || cols.has(firstHeaders) || cols.has(lastHeaders)

	var res Result
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("reading line: %w", err)
		}
		if isBlank(line) {
			continue
		}

		code := cols.get(line, codeHeaders)
		student := studentName(cols, line)
		if code == "" || (needStudent && student == "") {
			res.Skipped++
			continue
		}

		day := ""
		if raw := cols.get(line, dayHeaders); raw != "" {
			if key, err := dayutil.Normalize(raw); err == nil {
				day = key
			}
		}

		res.Records = append(res.Records, Record{
			Day: day,
			Row: course.Row{
				Code:    code,
				Time:    cols.get(line, timeHeaders),
				Student: student,
				Level:   cols.get(line, levelHeaders),
			},
		})
	}

	return res, nil
}

// ByDay groups records by day key, using fallback for records without one.
// Rows keep their file order within each day.
func ByDay(records []Record, fallback string) (map[string][]course.Row, error) {
	days := make(map[string][]course.Row)
	for i, rec := range records {
		day := rec.Day
		if day == "" {
			day = fallback
		}
		if day == "" {
			return nil, fmt.Errorf("%w (record %d, code %s)", ErrNoDay, i+1, rec.Row.Code)
		}
		days[day] = append(days[day], rec.Row)
	}
	return days, nil
}

// studentName prefers a full name column, turning "Last, First" into
// "First Last", and falls back to separate first and last name columns.
func studentName(cols columns, line []string) string {
	name := cols.get(line, studentHeaders)
	if last, first, ok := strings.Cut(name, ","); ok {
		name = strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	}
	if name != "" {
		return name
	}
	first := cols.get(line, firstHeaders)
	last := cols.get(line, lastHeaders)
	return strings.TrimSpace(first + " " + last)
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	h = strings.ToLower(h)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func isBlank(line []string) bool {
	for _, field := range line {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
