package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshHitsTable rebuilds the table from the current query results.
// Result order is the tree's traversal order, which the table preserves.
func (m *Model) refreshHitsTable() {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "label", Width: 16},
		{Title: "x", Width: 12},
		{Title: "y", Width: 12},
	}
	rows := make([]table.Row, 0, len(m.found))
	for i, p := range m.found {
		label := p.Label
		if label == "" {
			label = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			label,
			fmt.Sprintf("%.6g", p.X),
			fmt.Sprintf("%.6g", p.Y),
		})
	}
	// Avoid transient column/row mismatch: clear rows, set columns, then rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
