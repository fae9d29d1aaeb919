package view

import "strconv"

// ColumnHeaders returns one header per column: the instructor label, or
// "#n" (1-based) for unlabelled columns.
func ColumnHeaders(labels []string) []string {
	headers := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			headers[i] = "#" + strconv.Itoa(i+1)
			continue
		}
		headers[i] = label
	}
	return headers
}
