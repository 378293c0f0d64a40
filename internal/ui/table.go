package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableStyle provides consistent styling for tables across the CLI.
type TableStyle struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTableStyle returns the default table styling.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Cell: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Bold(true),
		Border: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// ColumnWidths returns, per column, the larger of the header's display width
// and the widest cell in that column. With no rows each width is the header's.
// Rows shorter than the header contribute nothing to the missing columns.
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Columns pairs headers with their computed widths.
func Columns(headers []string, rows [][]string) []TableColumn {
	widths := ColumnWidths(headers, rows)
	cols := make([]TableColumn, len(headers))
	for i, h := range headers {
		cols[i] = TableColumn{Title: h, Width: widths[i]}
	}
	return cols
}

// NewTable creates a new Bubbles table with default styling, tall enough to
// show every row.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	return newStyledTable(columns, rows, len(rows)+1, false) // +1 for header
}

// NewSelectableTable creates a table of the given height (header included)
// whose cursor sits on selected. When hasSelection is false no row is
// highlighted and the table scrolls from the top.
func NewSelectableTable(columns []TableColumn, rows []table.Row, height, selected int, hasSelection bool) table.Model {
	if height < 2 {
		height = 2
	}
	t := newStyledTable(columns, rows, height, hasSelection)
	// WithHeight measured the unstyled one-line header; re-measure with the
	// bordered one so the view is exactly height lines.
	t.SetHeight(height)
	if hasSelection && len(rows) > 0 {
		if selected >= len(rows) {
			selected = len(rows) - 1
		}
		if selected < 0 {
			selected = 0
		}
		t.SetCursor(selected)
	}
	return t
}

func newStyledTable(columns []TableColumn, rows []table.Row, height int, highlight bool) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(highlight),
		table.WithHeight(height),
	)

	ts := DefaultTableStyle()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	if highlight {
		s.Selected = ts.Selected
	} else {
		s.Selected = lipgloss.NewStyle()
	}

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI). Column widths fit the content.
func RenderSimpleTable(headers []string, rows [][]string) string {
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(Columns(headers, rows), tableRows)
	return t.View()
}
