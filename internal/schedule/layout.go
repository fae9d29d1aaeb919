package schedule

import (
	"strings"

	"github.com/javiermolinar/deckhand/internal/course"
)

// CodeSeparator joins the course codes of one column in a Layout.
const CodeSeparator = ","

// Layout is the persisted form of a day's arrangement: one entry per column.
type Layout struct {
	Instructors []string `json:"instructors" yaml:"instructors" toml:"instructors"`
	Codes       []string `json:"codes" yaml:"codes" toml:"codes"`
}

// Encode converts columns and their instructor labels into a Layout. Labels
// are aligned to the number of columns.
func Encode(cols Columns, labels []string) Layout {
	layout := Layout{
		Instructors: alignLabels(labels, len(cols)),
		Codes:       make([]string, len(cols)),
	}
	for i, c := range cols {
		layout.Codes[i] = strings.Join(c.Codes(), CodeSeparator)
	}
	return layout
}

// Decode maps a saved Layout back onto the current course set. Codes no
// longer in the set are dropped and columns left empty are omitted with
// their label. Courses missing from the layout are fitted into the restored
// columns, opening new ones when needed. ok is false when nothing usable
// was restored or a restored column overlaps; callers should Pack instead.
func Decode(layout Layout, courses []course.Course) (cols Columns, labels []string, ok bool) {
	known := course.ByCode(courses)
	placed := make(map[string]bool, len(courses))

	for i, joined := range layout.Codes {
		var col Column
		for _, token := range strings.Split(joined, CodeSeparator) {
			code := strings.TrimSpace(token)
			if code == "" || placed[code] {
				continue
			}
			c, found := known[code]
			if !found {
				continue
			}
			placed[code] = true
			col = append(col, c)
		}
		if len(col) == 0 {
			continue
		}
		col.Sort()
		if col.Valid() != nil {
			return nil, nil, false
		}
		cols = append(cols, col)
		labels = append(labels, labelAt(layout.Instructors, i))
	}

	if len(cols) == 0 {
		return nil, nil, false
	}

	var missing []course.Course
	for _, c := range courses {
		if !placed[c.Code] {
			missing = append(missing, c)
		}
	}
	course.Sort(missing)
	for _, c := range missing {
		cols = fitAnywhere(cols, c)
	}
	labels = alignLabels(labels, len(cols))

	return cols, labels, true
}

// fitAnywhere inserts c into the first column where it does not overlap,
// or opens a new column.
func fitAnywhere(cols Columns, c course.Course) Columns {
	for i, col := range cols {
		if !col.HasOverlap(c) {
			cols[i] = col.With(c)
			return cols
		}
	}
	return append(cols, Column{c})
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func alignLabels(labels []string, n int) []string {
	aligned := make([]string, n)
	copy(aligned, labels)
	return aligned
}

// Text renders the layout as one line per column, for clipboards and logs.
func (l Layout) Text() string {
	var b strings.Builder
	for i, codes := range l.Codes {
		name := labelAt(l.Instructors, i)
		if name == "" {
			name = "-"
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(codes, CodeSeparator, ", "))
		b.WriteString("\n")
	}
	return b.String()
}
