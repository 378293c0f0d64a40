package monitor

import (
	"sort"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ddstop/ddstop/internal/state"
	"github.com/ddstop/ddstop/internal/ui"
)

// placeholder is rendered for optional fields that do not apply.
const placeholder = "<none>"

// defaultTableHeight is used before the first window size arrives.
const defaultTableHeight = 20

// View is one tab's table: it navigates, refreshes from a snapshot and
// renders itself.
type View interface {
	Navigator
	Title() string
	Refresh(snap state.Snapshot)
	Render(width, height int) string
	Headers() []string
	Rows() [][]string
	SelectedRow() ([]string, bool)
	Selected() (int, bool)
	RowCount() int
}

// Column maps a record to one formatted cell.
type Column[T any] struct {
	Title string
	Cell  func(T) string
}

// TableView renders a collection of T as a bordered table with a cursor.
type TableView[T any] struct {
	*Cursor

	title   string
	columns []Column[T]
	extract func(state.Snapshot) []T
	less    func(a, b T) bool

	rows [][]string
}

// NewTableView creates a view whose rows come from extract, ordered by less.
func NewTableView[T any](title string, columns []Column[T], extract func(state.Snapshot) []T, less func(a, b T) bool, pageSize int) *TableView[T] {
	return &TableView[T]{
		Cursor:  NewCursor(pageSize),
		title:   title,
		columns: columns,
		extract: extract,
		less:    less,
	}
}

// Title returns the pane title.
func (v *TableView[T]) Title() string { return v.title }

// Refresh rebuilds the formatted rows from snap and re-clamps the cursor.
func (v *TableView[T]) Refresh(snap state.Snapshot) {
	items := v.extract(snap)
	if v.less != nil {
		sort.Slice(items, func(i, j int) bool { return v.less(items[i], items[j]) })
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(v.columns))
		for c, col := range v.columns {
			row[c] = col.Cell(item)
		}
		rows[i] = row
	}
	v.rows = rows
	v.SetRows(len(rows))
}

// Headers returns the column titles.
func (v *TableView[T]) Headers() []string {
	headers := make([]string, len(v.columns))
	for i, col := range v.columns {
		headers[i] = col.Title
	}
	return headers
}

// Rows returns the rows formatted by the last Refresh.
func (v *TableView[T]) Rows() [][]string { return v.rows }

// Widths returns the per-column widths for the current rows.
func (v *TableView[T]) Widths() []int {
	return ui.ColumnWidths(v.Headers(), v.rows)
}

// SelectedRow returns the cells of the selected row.
func (v *TableView[T]) SelectedRow() ([]string, bool) {
	idx, ok := v.Selected()
	if !ok || idx >= len(v.rows) {
		return nil, false
	}
	return v.rows[idx], true
}

// Render draws the titled, bordered table into a box of the given size.
// A zero height means the size is not known yet.
func (v *TableView[T]) Render(width, height int) string {
	tableHeight := defaultTableHeight
	if height > 0 {
		// border top/bottom + title line
		tableHeight = height - 3
	}

	tableRows := make([]table.Row, len(v.rows))
	for i, r := range v.rows {
		tableRows[i] = table.Row(r)
	}
	selected, ok := v.Selected()
	t := ui.NewSelectableTable(ui.Columns(v.Headers(), v.rows), tableRows, tableHeight, selected, ok)

	body := lipgloss.JoinVertical(lipgloss.Left,
		PaneTitleStyle.Render(v.title),
		t.View(),
	)

	style := PaneStyle
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(body)
}
