// Package feed retrieves and tokenizes the raw CSV study feed.
//
// The feed is a spreadsheet export: positional columns, double-quoted
// fields that may contain commas and raw newlines, and doubled quotes
// as the escape for a literal quote. Parse turns that text into rows of
// trimmed fields; Source implementations deliver the text from HTTP or
// a local file.
package feed

import "strings"

// Parse scans raw CSV text into an ordered list of rows, each an
// ordered list of trimmed field strings. It handles quoted fields
// ("a,b" stays one field), doubled-quote escapes ("" becomes "), and
// newlines embedded in quoted fields. Lines whose fields are all empty
// after trimming are skipped, so a trailing newline or a separator row
// of bare commas contributes no row.
//
// The scan is a single pass and never fails: an unterminated quote at
// end of input simply stops toggling and the accumulated text is
// flushed. Header handling is up to the caller; row zero is not
// special here.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if rowHasContent(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				// Escaped quote inside a quoted field.
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			endField()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	// Flush whatever the input left unterminated.
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

func rowHasContent(row []string) bool {
	for _, f := range row {
		if f != "" {
			return true
		}
	}
	return false
}
