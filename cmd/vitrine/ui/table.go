package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders tabular output for the CLI, sized to its content.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string

	// MaxCellWidth caps the rendered width of any single cell.
	// Zero means no cap.
	MaxCellWidth int
}

// NewTable creates a table with the given title and column headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
	}
}

// AddRow appends a data row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Headers) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// View renders the table. A table with no rows renders as nothing.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths()

	headerStyle := styles.Bold.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)

	var b strings.Builder

	if t.Title != "" {
		b.WriteString(styles.Title.Render(t.Title))
		b.WriteString("\n\n")
	}

	for i, h := range t.Headers {
		if i > 0 {
			b.WriteString(styles.Divider.Render("│"))
		}
		b.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
	}
	b.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	total += len(widths) - 1
	b.WriteString(styles.Divider.Render(strings.Repeat("─", total)))
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString(styles.Divider.Render("│"))
			}
			b.WriteString(cellStyle.Width(widths[i] + 2).Render(t.clip(cell)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// columnWidths measures every column against headers and rows,
// honoring the cell cap.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(t.clip(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// clip truncates a cell that exceeds the configured cap.
func (t *Table) clip(cell string) string {
	if t.MaxCellWidth <= 0 {
		return cell
	}
	runes := []rune(cell)
	if len(runes) <= t.MaxCellWidth {
		return cell
	}
	return string(runes[:t.MaxCellWidth-1]) + "…"
}
