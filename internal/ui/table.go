package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders findings as aligned rows with a muted header, sized to the
// display width.
type Table struct {
	display *DisplayContext
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(display *DisplayContext, headers ...string) *Table {
	if display == nil {
		display = NewDisplayContextWithWidth(DefaultTermWidth)
	}
	return &Table{display: display, headers: headers}
}

// AddRow adds a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// columnWidth is the widest a cell may be before it is truncated.
func (t *Table) columnWidth() int {
	if len(t.headers) == 0 {
		return 0
	}
	w := t.display.AvailableWidth(2*len(t.headers)) / len(t.headers)
	return max(w, 12)
}

// Render returns the table as a string, or "" when it has no rows.
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	limit := t.columnWidth()
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = TruncateWithEllipsis(cell, limit)
		}
	}

	tbl := table.New().
		Border(lipgloss.Border{Middle: "─", Top: "─", Bottom: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = Muted.Bold(true)
			}
			if col < len(t.headers)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(rows...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates a string to maxLen runes, adding ellipsis if needed.
// It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	truncated := string(r[:maxLen-3])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
