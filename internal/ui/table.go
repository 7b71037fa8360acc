package ui

import (
	"strings"
)

// Table provides minimal table rendering using simple spacing alignment
// without borders.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a new table with the specified number of columns
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.colWidths[i] {
			t.colWidths[i] = len(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table as a string
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			if i < len(row)-1 {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len(cell)))
			} else {
				sb.WriteString(cell)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
