// Package dayutil normalizes operating day keys such as "Mo" or "Mo,We".
package dayutil

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrInvalidDay is returned for input that names no known weekday.
var ErrInvalidDay = errors.New("day must be a weekday name or key like Mo, Tu, We")

// Keys lists the day keys in week order, Monday first.
var Keys = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

var names = map[string]string{
	"Mo": "Monday",
	"Tu": "Tuesday",
	"We": "Wednesday",
	"Th": "Thursday",
	"Fr": "Friday",
	"Sa": "Saturday",
	"Su": "Sunday",
}

// weekdayKeys maps time.Weekday values to day keys.
var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "Mo",
	time.Tuesday:   "Tu",
	time.Wednesday: "We",
	time.Thursday:  "Th",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
	time.Sunday:    "Su",
}

// Normalize converts a weekday name, abbreviation or key to its day key.
// Lists separated by commas or spaces ("Mo Tu We Th Fr") normalize to a
// comma-joined key in week order with duplicates removed.
func Normalize(s string) (string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return "", ErrInvalidDay
	}

	var keys []string
	for _, f := range fields {
		key, ok := keyFor(f)
		if !ok {
			return "", ErrInvalidDay
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		return slices.Index(Keys, a) - slices.Index(Keys, b)
	})
	return strings.Join(keys, ","), nil
}

func keyFor(token string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(token))
	if len(lower) < 2 {
		return "", false
	}
	for _, key := range Keys {
		name := strings.ToLower(names[key])
		if strings.HasPrefix(name, lower) {
			return key, true
		}
	}
	return "", false
}

// Resolve is like Normalize but also accepts "today" and "tomorrow",
// evaluated against now.
func Resolve(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return FromTime(now), nil
	case "tomorrow":
		return FromTime(now.AddDate(0, 0, 1)), nil
	}
	return Normalize(s)
}

// FromTime returns the day key for t's weekday.
func FromTime(t time.Time) string {
	return weekdayKeys[t.Weekday()]
}

// Name returns the display name for a key, e.g. "Monday" or
// "Monday, Wednesday". Unknown keys are returned as is.
func Name(key string) string {
	parts := strings.Split(key, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		name, ok := names[p]
		if !ok {
			return key
		}
		out[i] = name
	}
	return strings.Join(out, ", ")
}

// Compare orders day keys by the week position of their first day. Unknown
// keys sort last, then alphabetically.
func Compare(a, b string) int {
	ia, ib := position(a), position(b)
	if ia != ib {
		return ia - ib
	}
	return strings.Compare(a, b)
}

func position(key string) int {
	first, _, _ := strings.Cut(key, ",")
	if i := slices.Index(Keys, first); i >= 0 {
		return i
	}
	return len(Keys)
}
