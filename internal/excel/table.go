package excel

import (
	"fmt"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

// Table is the rows-by-named-columns structure callers exchange with the
// bridge: bulk writes consume one, range reads produce one.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Validate checks that every row has one value per column.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table must have at least one column")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Cleanse normalises values before they are written to the host, in place:
// nils become empty strings so the host does not print its NULL placeholder,
// and timestamps become spreadsheet serial dates.
func (t *Table) Cleanse() {
	for _, row := range t.Rows {
		for j, v := range row {
			row[j] = CleanseValue(v)
		}
	}
}

// CleanseValue normalises a single value the same way Cleanse does.
func CleanseValue(v any) any {
	if v == nil {
		return ""
	}
	if serial, err := ref.SerialOf(v); err == nil {
		return serial
	}
	return v
}

// CleanseRow normalises a row of values without a surrounding Table.
func CleanseRow(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = CleanseValue(v)
	}
	return out
}

// TableFromGrid builds a Table from a row-major grid as read from the host.
// When header is true the first row supplies the column names; otherwise
// columns are named by their letters starting at startCol.
func TableFromGrid(grid [][]string, header bool, startCol int) (Table, error) {
	if len(grid) == 0 {
		return Table{}, nil
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	var t Table
	dataRows := grid
	if header {
		t.Columns = make([]string, width)
		copy(t.Columns, grid[0])
		dataRows = grid[1:]
	} else {
		t.Columns = make([]string, width)
		for i := range t.Columns {
			letters, err := ref.IndexToLetters(startCol + i)
			if err != nil {
				return Table{}, err
			}
			t.Columns[i] = letters
		}
	}

	t.Rows = make([][]any, len(dataRows))
	for i, row := range dataRows {
		out := make([]any, width)
		for j := range out {
			if j < len(row) {
				out[j] = row[j]
			} else {
				out[j] = ""
			}
		}
		t.Rows[i] = out
	}
	return t, nil
}
