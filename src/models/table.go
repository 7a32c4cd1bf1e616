package models

// RawTable holds one worksheet exactly as it was read from the workbook:
// a header row and string cells, before any column mapping or coercion.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table is absent or has no data rows.
// A sheet that exists but only carries a header row counts as empty.
func (t *RawTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Cell returns the value at (row, col), or "" when the row is ragged
// and does not reach that column.
func (t *RawTable) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ColumnIndex returns the position of the named column, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
