package ref

import (
	"errors"
	"testing"
)

func TestLettersToIndexBoundaries(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"ZZ", 702},
		{"AAA", 703},
		{"ZZZ", 18278},
		{"b", 2},
		{"ab", 28},
	}
	for _, tt := range tests {
		got, err := LettersToIndex(tt.input)
		if err != nil {
			t.Errorf("LettersToIndex(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LettersToIndex(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestLettersToIndexErrors(t *testing.T) {
	for _, input := range []string{"", "A1", "1A", "ZZZZ", "A B", "$A"} {
		_, err := LettersToIndex(input)
		if !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("LettersToIndex(%q) error = %v, want ErrInvalidColumn", input, err)
		}
	}
}

func TestIndexToLettersBoundaries(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{702, "ZZ"},
		{703, "AAA"},
		{18278, "ZZZ"},
	}
	for _, tt := range tests {
		got, err := IndexToLetters(tt.input)
		if err != nil {
			t.Errorf("IndexToLetters(%d) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("IndexToLetters(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}

	for _, input := range []int{0, -1, 18279} {
		if _, err := IndexToLetters(input); !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("IndexToLetters(%d) error = %v, want ErrInvalidColumn", input, err)
		}
	}
}

// The two conversions are mutual inverses over the full column space, so the
// round trip is checked for every representable index rather than a
// hand-picked sample.
func TestColumnRoundTrip(t *testing.T) {
	for n := 1; n <= MaxColumn; n++ {
		letters, err := IndexToLetters(n)
		if err != nil {
			t.Fatalf("IndexToLetters(%d) unexpected error: %v", n, err)
		}
		back, err := LettersToIndex(letters)
		if err != nil {
			t.Fatalf("LettersToIndex(%q) unexpected error: %v", letters, err)
		}
		if back != n {
			t.Fatalf("round trip %d -> %q -> %d", n, letters, back)
		}
	}
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		input     string
		want      int
		wantError bool
	}{
		{"A", 1, false},
		{"AB", 28, false},
		{"28", 28, false},
		{"702", 702, false},
		{"", 0, false},
		{"ABCD", 0, true},
		{"18278", 0, true}, // numeric form is also capped at 3 characters
		{"A-B", 0, true},
		{"0", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColumn(tt.input)
		if tt.wantError {
			if !errors.Is(err, ErrInvalidColumn) {
				t.Errorf("ParseColumn(%q) error = %v, want ErrInvalidColumn", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColumn(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColumn(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseRow(t *testing.T) {
	if got, err := ParseRow("12"); err != nil || got != 12 {
		t.Errorf("ParseRow(\"12\") = %d, %v, want 12, nil", got, err)
	}
	if got, err := ParseRow(""); err != nil || got != 0 {
		t.Errorf("ParseRow(\"\") = %d, %v, want 0, nil", got, err)
	}
	for _, input := range []string{"abc", "1.5", "0", "-3"} {
		if _, err := ParseRow(input); !errors.Is(err, ErrInvalidRow) {
			t.Errorf("ParseRow(%q) error = %v, want ErrInvalidRow", input, err)
		}
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		input     string
		want      Cell
		wantError bool
	}{
		{input: "A1", want: Cell{Row: 1, Col: 1}},
		{input: "B5", want: Cell{Row: 5, Col: 2}},
		{input: "b52", want: Cell{Row: 52, Col: 2}},
		{input: "Z100", want: Cell{Row: 100, Col: 26}},
		{input: "AA1", wantError: true}, // strict form allows one letter only
		{input: "A", wantError: true},
		{input: "5", wantError: true},
		{input: "5A", wantError: true},
		{input: "", wantError: true},
	}
	for _, tt := range tests {
		got, err := ParseCell(tt.input)
		if tt.wantError {
			if !errors.Is(err, ErrInvalidCellRef) {
				t.Errorf("ParseCell(%q) error = %v, want ErrInvalidCellRef", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCell(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCell(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestResolveCell(t *testing.T) {
	tests := []struct {
		name      string
		cellRef   string
		row       int
		col       string
		want      Cell
		wantError bool
	}{
		{name: "cell reference only", cellRef: "B5", want: Cell{Row: 5, Col: 2}},
		{name: "row and column", row: 5, col: "B", want: Cell{Row: 5, Col: 2}},
		{name: "numeric column", row: 3, col: "28", want: Cell{Row: 3, Col: 28}},
		{name: "nothing supplied", wantError: true},
		{name: "over-specified", cellRef: "B5", row: 5, col: "2", wantError: true},
		{name: "row without column", row: 5, wantError: true},
		{name: "column without row", col: "B", wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCell(tt.cellRef, tt.row, tt.col)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidCellRef) {
					t.Errorf("ResolveCell error = %v, want ErrInvalidCellRef", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ResolveCell unexpected error: %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("ResolveCell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Range
		wantError bool
	}{
		{
			name:  "bounded rectangle",
			input: "A1:B3",
			want:  Range{Start: Cell{Row: 1, Col: 1}, End: Cell{Row: 3, Col: 2}},
		},
		{
			name:  "lowercase input",
			input: "a1:b3",
			want:  Range{Start: Cell{Row: 1, Col: 1}, End: Cell{Row: 3, Col: 2}},
		},
		{
			name:  "multi-letter columns",
			input: "AA10:AZ20",
			want:  Range{Start: Cell{Row: 10, Col: 27}, End: Cell{Row: 20, Col: 52}},
		},
		{
			name:  "whole columns",
			input: "A:C",
			want:  Range{Start: Cell{Col: 1}, End: Cell{Col: 3}, Cols: true},
		},
		{
			// The whole-column form skips the ordering check; see ParseRange.
			name:  "inverted whole columns accepted",
			input: "C:A",
			want:  Range{Start: Cell{Col: 3}, End: Cell{Col: 1}, Cols: true},
		},
		{name: "inverted columns", input: "B1:A3", wantError: true},
		{name: "inverted rows", input: "A3:B1", wantError: true},
		{name: "single cell is not a range", input: "A1", wantError: true},
		{name: "four-letter column", input: "AAAA1:B3", wantError: true},
		{name: "empty", input: "", wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("ParseRange(%q) error = %v, want ErrInvalidRange", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseRange(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		startRow  int
		endRow    int
		startCol  string
		endCol    string
		want      string
		wantError bool
	}{
		{name: "from coordinates", startRow: 1, endRow: 3, startCol: "1", endCol: "2", want: "A1:B3"},
		{name: "from letter columns", startRow: 2, endRow: 10, startCol: "AA", endCol: "AB", want: "AA2:AB10"},
		{name: "from text", text: "A1:B3", want: "A1:B3"},
		{name: "whole columns from text", text: "A:A", want: "A:A"},
		{name: "inverted rows", startRow: 3, endRow: 1, startCol: "1", endCol: "2", wantError: true},
		{name: "inverted columns", startRow: 1, endRow: 3, startCol: "B", endCol: "A", wantError: true},
		{name: "partial coordinates", startRow: 1, endRow: 3, startCol: "A", wantError: true},
		{name: "text and coordinates", text: "A1:B3", startRow: 1, endRow: 3, startCol: "A", endCol: "B", wantError: true},
		{name: "nothing supplied", wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.text, tt.startRow, tt.endRow, tt.startCol, tt.endCol)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("ResolveRange error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ResolveRange unexpected error: %v", err)
				return
			}
			if got.String() != tt.want {
				t.Errorf("ResolveRange = %q, want %q", got.String(), tt.want)
			}
			// Re-parsing the canonical form must yield the identical value.
			reparsed, err := ParseRange(got.String())
			if err != nil {
				t.Errorf("ParseRange(%q) unexpected error: %v", got.String(), err)
				return
			}
			if reparsed != got {
				t.Errorf("ParseRange(%q) = %+v, want %+v", got.String(), reparsed, got)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	if got := (Cell{Row: 3, Col: 28}).String(); got != "AB3" {
		t.Errorf("Cell.String() = %q, want %q", got, "AB3")
	}
}
