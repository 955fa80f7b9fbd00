package excel

import (
	"testing"
	"time"
)

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{
			name:    "valid table",
			table:   Table{Columns: []string{"a", "b"}, Rows: [][]any{{1, 2}, {3, 4}}},
			wantErr: false,
		},
		{
			name:    "no columns",
			table:   Table{Rows: [][]any{{1}}},
			wantErr: true,
		},
		{
			name:    "ragged row",
			table:   Table{Columns: []string{"a", "b"}, Rows: [][]any{{1, 2}, {3}}},
			wantErr: true,
		},
		{
			name:    "no rows is valid",
			table:   Table{Columns: []string{"a"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCleanseValue(t *testing.T) {
	stamp := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nil becomes empty string", nil, ""},
		{"string passes through", "hello", "hello"},
		{"int passes through", 42, 42},
		{"float passes through", 1.5, 1.5},
		{"bool passes through", true, true},
		{"time becomes serial", stamp, 2.0},
		{"time pointer becomes serial", &stamp, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanseValue(tt.value)
			if got != tt.want {
				t.Errorf("CleanseValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTableCleanse(t *testing.T) {
	stamp := time.Date(1900, time.January, 1, 12, 0, 0, 0, time.UTC)
	table := Table{
		Columns: []string{"a", "b", "c"},
		Rows: [][]any{
			{nil, "x", stamp},
			{1, nil, "y"},
		},
	}
	table.Cleanse()

	if table.Rows[0][0] != "" {
		t.Errorf("Rows[0][0] = %v, want empty string", table.Rows[0][0])
	}
	if table.Rows[0][2] != 2.5 {
		t.Errorf("Rows[0][2] = %v, want 2.5", table.Rows[0][2])
	}
	if table.Rows[1][1] != "" {
		t.Errorf("Rows[1][1] = %v, want empty string", table.Rows[1][1])
	}
	if table.Rows[1][0] != 1 {
		t.Errorf("Rows[1][0] = %v, want 1", table.Rows[1][0])
	}
}

func TestCleanseRow(t *testing.T) {
	in := []any{nil, "keep", 7}
	got := CleanseRow(in)

	if got[0] != "" || got[1] != "keep" || got[2] != 7 {
		t.Errorf("CleanseRow(%v) = %v", in, got)
	}
	if in[0] != nil {
		t.Errorf("CleanseRow modified its input: %v", in)
	}
}

func TestTableFromGrid(t *testing.T) {
	tests := []struct {
		name     string
		grid     [][]string
		header   bool
		startCol int
		wantCols []string
		wantRows [][]any
	}{
		{
			name:     "header row names columns",
			grid:     [][]string{{"id", "name"}, {"1", "alice"}, {"2", "bob"}},
			header:   true,
			startCol: 1,
			wantCols: []string{"id", "name"},
			wantRows: [][]any{{"1", "alice"}, {"2", "bob"}},
		},
		{
			name:     "no header names columns by letter",
			grid:     [][]string{{"x", "y"}},
			header:   false,
			startCol: 3,
			wantCols: []string{"C", "D"},
			wantRows: [][]any{{"x", "y"}},
		},
		{
			name:     "ragged rows padded to width",
			grid:     [][]string{{"a", "b", "c"}, {"1"}},
			header:   true,
			startCol: 1,
			wantCols: []string{"a", "b", "c"},
			wantRows: [][]any{{"1", "", ""}},
		},
		{
			name:     "empty grid",
			grid:     nil,
			header:   true,
			startCol: 1,
			wantCols: nil,
			wantRows: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TableFromGrid(tt.grid, tt.header, tt.startCol)
			if err != nil {
				t.Fatalf("TableFromGrid() error = %v", err)
			}
			if len(got.Columns) != len(tt.wantCols) {
				t.Fatalf("columns = %v, want %v", got.Columns, tt.wantCols)
			}
			for i := range got.Columns {
				if got.Columns[i] != tt.wantCols[i] {
					t.Errorf("columns[%d] = %q, want %q", i, got.Columns[i], tt.wantCols[i])
				}
			}
			if len(got.Rows) != len(tt.wantRows) {
				t.Fatalf("rows = %v, want %v", got.Rows, tt.wantRows)
			}
			for i := range got.Rows {
				for j := range got.Rows[i] {
					if got.Rows[i][j] != tt.wantRows[i][j] {
						t.Errorf("rows[%d][%d] = %v, want %v", i, j, got.Rows[i][j], tt.wantRows[i][j])
					}
				}
			}
		})
	}
}
