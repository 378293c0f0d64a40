package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTableStyle(t *testing.T) {
	style := DefaultTableStyle()

	testStr := "test"
	assert.NotPanics(t, func() {
		_ = style.Header.Render(testStr)
		_ = style.Cell.Render(testStr)
		_ = style.Selected.Render(testStr)
		_ = style.Border.Render(testStr)
	})
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		rows     [][]string
		expected []int
	}{
		{
			name:     "no rows uses header widths",
			headers:  []string{"when", "writer", "desc"},
			expected: []int{4, 6, 4},
		},
		{
			name:     "placeholder wider than header",
			headers:  []string{"topic"},
			rows:     [][]string{{"<none>"}},
			expected: []int{6},
		},
		{
			name:     "widest cell wins",
			headers:  []string{"name", "type"},
			rows:     [][]string{{"a", "std_msgs::String"}, {"chatter", "b"}},
			expected: []int{7, 16},
		},
		{
			name:     "wide glyphs count double",
			headers:  []string{"n"},
			rows:     [][]string{{"話題"}},
			expected: []int{4},
		},
		{
			name:     "short rows are tolerated",
			headers:  []string{"a", "b"},
			rows:     [][]string{{"xyz"}},
			expected: []int{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColumnWidths(tt.headers, tt.rows))
		})
	}
}

func TestColumns(t *testing.T) {
	cols := Columns([]string{"guid", "topic"}, [][]string{{"0102|03", "x"}})
	assert.Equal(t, []TableColumn{{Title: "guid", Width: 7}, {Title: "topic", Width: 5}}, cols)
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
	rows := []table.Row{
		{"item1", "ok"},
		{"item2", "error"},
	}

	tbl := NewTable(columns, rows)

	view := tbl.View()
	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestNewTable_EmptyRows(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
	}

	tbl := NewTable(columns, []table.Row{})
	view := tbl.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Name")
}

func TestNewSelectableTable(t *testing.T) {
	columns := []TableColumn{{Title: "name", Width: 6}}
	rows := []table.Row{{"alpha"}, {"beta"}, {"gamma"}}

	t.Run("cursor follows selection", func(t *testing.T) {
		tbl := NewSelectableTable(columns, rows, 10, 2, true)
		assert.Equal(t, 2, tbl.Cursor())
		assert.Equal(t, table.Row{"gamma"}, tbl.SelectedRow())
	})

	t.Run("selection past the end clamps", func(t *testing.T) {
		tbl := NewSelectableTable(columns, rows, 10, 9, true)
		assert.Equal(t, 2, tbl.Cursor())
	})

	t.Run("no selection leaves cursor at top", func(t *testing.T) {
		tbl := NewSelectableTable(columns, rows, 10, 2, false)
		assert.Equal(t, 0, tbl.Cursor())
		assert.False(t, tbl.Focused())
	})

	t.Run("empty rows", func(t *testing.T) {
		tbl := NewSelectableTable(columns, nil, 10, 0, false)
		assert.Contains(t, tbl.View(), "name")
	})

	t.Run("view is exactly the requested height", func(t *testing.T) {
		for _, height := range []int{3, 6, 10, 25} {
			tbl := NewSelectableTable(columns, rows, height, 0, true)
			assert.Equal(t, height, lipgloss.Height(tbl.View()), "height %d", height)
		}
	})

	t.Run("tiny height is raised", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_ = NewSelectableTable(columns, rows, 0, 0, true).View()
		})
	})
}

func TestRenderSimpleTable(t *testing.T) {
	headers := []string{"topic", "type"}
	rows := [][]string{
		{"chatter", "std_msgs::String"},
		{"rosout", "rcl_interfaces::Log"},
	}

	output := RenderSimpleTable(headers, rows)

	assert.Contains(t, output, "topic")
	assert.Contains(t, output, "type")
	assert.Contains(t, output, "chatter")
	assert.Contains(t, output, "rcl_interfaces::Log")
	// Content-fitted columns never truncate cells.
	assert.NotContains(t, output, "…")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	output := RenderSimpleTable([]string{"name"}, nil)
	assert.Contains(t, output, "name")
	assert.Equal(t, 1, strings.Count(output, "name"))
}
