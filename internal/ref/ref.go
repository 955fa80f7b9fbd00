// Package ref implements Excel-style address notation: conversion between
// column letters and 1-based indices, parsing and validation of cell and
// range references, and date-to-serial conversion. Everything here is a pure
// function over its arguments; no call ever reaches the spreadsheet host.
package ref

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxColumn is the widest column the validators accept ("ZZZ").
const MaxColumn = 18278

// Error kinds. Every error returned by this package wraps exactly one of
// these and can be matched with errors.Is.
var (
	ErrInvalidColumn   = errors.New("invalid column reference")
	ErrInvalidRow      = errors.New("invalid row reference")
	ErrInvalidCellRef  = errors.New("invalid cell reference")
	ErrInvalidRange    = errors.New("invalid range reference")
	ErrUnsupportedType = errors.New("unsupported type")
)

var (
	lettersRegexp   = regexp.MustCompile(`^[A-Za-z]{1,3}$`)
	alphanumRegexp  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	cellRegexp      = regexp.MustCompile(`^[A-Za-z]\d+$`)
	boundedRegexp   = regexp.MustCompile(`^([A-Za-z]{1,3})(\d+):([A-Za-z]{1,3})(\d+)$`)
	wholeColsRegexp = regexp.MustCompile(`^[A-Za-z]{1,3}:[A-Za-z]{1,3}$`)
)

// Cell is a single cell position. Row and Col are both 1-based.
type Cell struct {
	Row int
	Col int
}

// String returns the canonical text form, e.g. {Row: 3, Col: 2} -> "B3".
func (c Cell) String() string {
	letters, err := IndexToLetters(c.Col)
	if err != nil {
		return ""
	}
	return letters + strconv.Itoa(c.Row)
}

// Range is a rectangular cell selection. When Cols is true the range selects
// whole columns (e.g. "A:C") and the Row fields are zero.
type Range struct {
	Start Cell
	End   Cell
	Cols  bool
}

// String returns the canonical text form, e.g. "A1:B3" or "A:C".
func (r Range) String() string {
	if r.Cols {
		start, err := IndexToLetters(r.Start.Col)
		if err != nil {
			return ""
		}
		end, err := IndexToLetters(r.End.Col)
		if err != nil {
			return ""
		}
		return start + ":" + end
	}
	return r.Start.String() + ":" + r.End.String()
}

// LettersToIndex converts column letters to a 1-based index, treating the
// string as a bijective base-26 numeral: "A" = 1, "Z" = 26, "AA" = 27.
func LettersToIndex(s string) (int, error) {
	if !lettersRegexp.MatchString(s) {
		return 0, fmt.Errorf("%w: %q must be 1-3 letters", ErrInvalidColumn, s)
	}
	upper := strings.ToUpper(s)
	n := 0
	weight := 1
	for i := len(upper) - 1; i >= 0; i-- {
		n += int(upper[i]-'A'+1) * weight
		weight *= 26
	}
	if n > MaxColumn {
		return 0, fmt.Errorf("%w: %q exceeds maximum column %q", ErrInvalidColumn, s, "ZZZ")
	}
	return n, nil
}

// IndexToLetters converts a 1-based column index back to letters. It is the
// inverse of LettersToIndex over 1..MaxColumn. The -1 offset on each step is
// what makes the numeration bijective: there is no zero digit.
func IndexToLetters(n int) (string, error) {
	if n < 1 || n > MaxColumn {
		return "", fmt.Errorf("%w: index %d out of range 1..%d", ErrInvalidColumn, n, MaxColumn)
	}
	buf := make([]byte, 0, 3)
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// ParseColumn accepts a lenient column reference: either a 1-3 letter string
// such as "AB" or a decimal index such as "28". The empty string is the
// absent value and parses to 0.
func ParseColumn(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if !alphanumRegexp.MatchString(s) {
		return 0, fmt.Errorf("%w: %q must contain only alphanumeric characters", ErrInvalidColumn, s)
	}
	if len(s) > 3 {
		return 0, fmt.Errorf("%w: %q must be no more than 3 characters", ErrInvalidColumn, s)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > MaxColumn {
			return 0, fmt.Errorf("%w: index %d out of range 1..%d", ErrInvalidColumn, n, MaxColumn)
		}
		return n, nil
	}
	return LettersToIndex(s)
}

// ParseRow coerces a row reference to an integer. The empty string is the
// absent value and parses to 0.
func ParseRow(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q could not be coerced to integer", ErrInvalidRow, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: row numbers start at 1, got %d", ErrInvalidRow, n)
	}
	return n, nil
}

// ParseCell parses a strict cell reference: exactly one letter followed by
// one or more digits, e.g. "B5".
func ParseCell(s string) (Cell, error) {
	if !cellRegexp.MatchString(s) {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCellRef, s)
	}
	col := int(strings.ToUpper(s)[0]-'A') + 1
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCellRef, s)
	}
	return Cell{Row: row, Col: col}, nil
}

// ResolveCell produces a Cell from either a strict cell reference or a
// discrete row/column pair. Exactly one of the two forms must be supplied:
// passing both, or neither, is an error. Absent values are "" for cellRef
// and col, 0 for row.
func ResolveCell(cellRef string, row int, col string) (Cell, error) {
	hasRef := cellRef != ""
	hasCoords := row != 0 || col != ""
	switch {
	case !hasRef && !hasCoords:
		return Cell{}, fmt.Errorf("%w: supply either a cell reference or row and column values", ErrInvalidCellRef)
	case hasRef && hasCoords:
		return Cell{}, fmt.Errorf("%w: too many co-ordinates supplied, use a cell reference or row and column values, not both", ErrInvalidCellRef)
	case hasRef:
		return ParseCell(cellRef)
	}
	if row == 0 || col == "" {
		return Cell{}, fmt.Errorf("%w: both row and column values must be supplied", ErrInvalidCellRef)
	}
	r, err := validateRow(row)
	if err != nil {
		return Cell{}, err
	}
	c, err := ParseColumn(col)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Row: r, Col: c}, nil
}

// ParseRange parses a range reference. Two grammars are accepted: a bounded
// rectangle such as "A1:B3" with up to 3 column letters per corner, and a
// whole-column selection such as "A:C". The whole-column form is returned
// as-is with no start/end ordering check ("C:A" is accepted); the bounded
// form requires start column <= end column and start row <= end row.
func ParseRange(s string) (Range, error) {
	if wholeColsRegexp.MatchString(s) {
		parts := strings.SplitN(s, ":", 2)
		start, err := LettersToIndex(parts[0])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
		end, err := LettersToIndex(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
		return Range{Start: Cell{Col: start}, End: Cell{Col: end}, Cols: true}, nil
	}

	matches := boundedRegexp.FindStringSubmatch(s)
	if matches == nil {
		return Range{}, fmt.Errorf("%w: %q must be a valid range such as A1:B3 or A:A with column references of 3 characters max", ErrInvalidRange, s)
	}
	startCol, err := LettersToIndex(matches[1])
	if err != nil {
		return Range{}, err
	}
	startRow, err := ParseRow(matches[2])
	if err != nil {
		return Range{}, err
	}
	endCol, err := LettersToIndex(matches[3])
	if err != nil {
		return Range{}, err
	}
	endRow, err := ParseRow(matches[4])
	if err != nil {
		return Range{}, err
	}
	if startCol > endCol {
		return Range{}, fmt.Errorf("%w: starting column cannot be greater than the ending column", ErrInvalidRange)
	}
	if startRow > endRow {
		return Range{}, fmt.Errorf("%w: starting row cannot be greater than the ending row", ErrInvalidRange)
	}
	return Range{
		Start: Cell{Row: startRow, Col: startCol},
		End:   Cell{Row: endRow, Col: endCol},
	}, nil
}

// ResolveRange produces a Range from either a range reference string or a
// complete set of discrete start/end coordinates. Supplying both forms,
// a partial coordinate set, or nothing at all is an error. Absent values
// are "" for text and columns, 0 for rows.
func ResolveRange(text string, startRow, endRow int, startCol, endCol string) (Range, error) {
	coordsSupplied := 0
	if startRow != 0 {
		coordsSupplied++
	}
	if endRow != 0 {
		coordsSupplied++
	}
	if startCol != "" {
		coordsSupplied++
	}
	if endCol != "" {
		coordsSupplied++
	}

	if text != "" {
		if coordsSupplied > 0 {
			return Range{}, fmt.Errorf("%w: cannot supply both a range reference and start/end values, supply one or the other", ErrInvalidRange)
		}
		return ParseRange(text)
	}
	if coordsSupplied == 0 {
		return Range{}, fmt.Errorf("%w: supply either a range reference or start/end values", ErrInvalidRange)
	}
	if coordsSupplied < 4 {
		return Range{}, fmt.Errorf("%w: all start and end col/row values must be supplied, only partial values detected", ErrInvalidRange)
	}

	sCol, err := ParseColumn(startCol)
	if err != nil {
		return Range{}, err
	}
	eCol, err := ParseColumn(endCol)
	if err != nil {
		return Range{}, err
	}
	sRow, err := validateRow(startRow)
	if err != nil {
		return Range{}, err
	}
	eRow, err := validateRow(endRow)
	if err != nil {
		return Range{}, err
	}
	if sCol > eCol {
		return Range{}, fmt.Errorf("%w: starting column cannot be greater than the ending column", ErrInvalidRange)
	}
	if sRow > eRow {
		return Range{}, fmt.Errorf("%w: starting row cannot be greater than the ending row", ErrInvalidRange)
	}
	return Range{
		Start: Cell{Row: sRow, Col: sCol},
		End:   Cell{Row: eRow, Col: eCol},
	}, nil
}

func validateRow(row int) (int, error) {
	if row < 1 {
		return 0, fmt.Errorf("%w: row numbers start at 1, got %d", ErrInvalidRow, row)
	}
	return row, nil
}
