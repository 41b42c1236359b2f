// Package catalog maps parsed feed rows onto study records and keeps
// them in an ordered, id-keyed collection that is replaced wholesale on
// every load.
package catalog

import "strings"

// Feed column layout. Positional and fixed; there is no schema
// negotiation with the spreadsheet export.
const (
	colID = iota
	colTag
	colTitle
	colDate
	colDescription
	colIncludes
)

// previewLimit is the longest description shown on a card before it is
// cut and marked with an ellipsis.
const previewLimit = 120

// Study is one catalog entry. ID doubles as the correlation key that
// links a rendered card back to the full record.
type Study struct {
	ID          string
	Tag         string
	Title       string
	Date        string
	Description string
	Includes    []string
}

// Preview returns the description capped at previewLimit runes, with
// an ellipsis marker when it was cut.
func (s Study) Preview() string {
	r := []rune(s.Description)
	if len(r) <= previewLimit {
		return s.Description
	}
	return string(r[:previewLimit]) + "..."
}

// FromRows maps parser output onto studies. Row zero is the header and
// is skipped; so is any row whose first column is empty after trimming,
// since a study without an id can never be looked up again. Missing
// trailing columns default to empty strings.
func FromRows(rows [][]string) []Study {
	if len(rows) < 2 {
		return nil
	}

	var studies []Study
	for _, row := range rows[1:] {
		id := strings.TrimSpace(column(row, colID))
		if id == "" {
			continue
		}
		studies = append(studies, Study{
			ID:          id,
			Tag:         column(row, colTag),
			Title:       column(row, colTitle),
			Date:        column(row, colDate),
			Description: column(row, colDescription),
			Includes:    splitIncludes(column(row, colIncludes)),
		})
	}
	return studies
}

func column(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// splitIncludes breaks the pipe-delimited inclusions column into its
// trimmed parts. An empty column means no inclusions, not one empty
// inclusion.
func splitIncludes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
