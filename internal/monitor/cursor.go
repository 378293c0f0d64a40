package monitor

// DefaultPageSize is the row step used by PreviousPage and NextPage.
const DefaultPageSize = 30

// Navigator moves a selection through a list of rows.
// Every method is a no-op on an empty list and never panics.
type Navigator interface {
	PreviousItem()
	NextItem()
	PreviousPage()
	NextPage()
	FirstItem()
	LastItem()
}

// Cursor tracks the selected row of one view.
//
// When a selection exists it lies in [0, rows). With zero rows there is no
// selection. Moving an unset cursor selects the first row.
type Cursor struct {
	selected     int
	hasSelection bool
	rows         int
	pageSize     int
}

// NewCursor creates a cursor with no rows and no selection.
// A pageSize of zero or less falls back to DefaultPageSize.
func NewCursor(pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Cursor{pageSize: pageSize}
}

// Selected returns the selected index and whether a selection exists.
func (c *Cursor) Selected() (int, bool) {
	return c.selected, c.hasSelection
}

// RowCount returns the row count the cursor clamps against.
func (c *Cursor) RowCount() int {
	return c.rows
}

// PageSize returns the page step.
func (c *Cursor) PageSize() int {
	return c.pageSize
}

// SetRows updates the row count, clamping the selection to the last row or
// clearing it when n is zero.
func (c *Cursor) SetRows(n int) {
	if n < 0 {
		n = 0
	}
	c.rows = n
	if n == 0 {
		c.selected = 0
		c.hasSelection = false
		return
	}
	if c.hasSelection && c.selected >= n {
		c.selected = n - 1
	}
}

// PreviousItem moves the selection up one row, stopping at the first.
func (c *Cursor) PreviousItem() { c.step(-1) }

// NextItem moves the selection down one row, stopping at the last.
func (c *Cursor) NextItem() { c.step(1) }

// PreviousPage moves the selection up by the page size.
func (c *Cursor) PreviousPage() { c.step(-c.pageSize) }

// NextPage moves the selection down by the page size.
func (c *Cursor) NextPage() { c.step(c.pageSize) }

// FirstItem selects row 0.
func (c *Cursor) FirstItem() {
	if c.rows == 0 {
		return
	}
	c.selected = 0
	c.hasSelection = true
}

// LastItem selects the final row.
func (c *Cursor) LastItem() {
	if c.rows == 0 {
		return
	}
	c.selected = c.rows - 1
	c.hasSelection = true
}

// step moves the selection by delta, saturating at both ends.
func (c *Cursor) step(delta int) {
	if c.rows == 0 {
		c.hasSelection = false
		return
	}
	if !c.hasSelection {
		c.selected = 0
		c.hasSelection = true
		return
	}
	c.selected = clamp(c.selected+delta, 0, c.rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
