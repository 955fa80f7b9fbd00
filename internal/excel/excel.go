package excel

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

// Excel is an open workbook in one of the two backends.
type Excel interface {
	// GetBackendName returns the backend used to manipulate the workbook.
	GetBackendName() string
	// SheetNames returns the names of all worksheets in order.
	SheetNames() ([]string, error)
	// FindSheet finds a sheet by its name and returns a Worksheet.
	FindSheet(sheetName string) (Worksheet, error)
	// DeleteSheet deletes a sheet by its name.
	DeleteSheet(sheetName string) error
	// Protect protects the workbook structure, optionally with a password.
	Protect(password string) error
	// Unprotect removes workbook structure protection.
	Unprotect(password string) error
	// RefreshAll refreshes workbook connections and pivot tables.
	RefreshAll() error
	// ResetCursor selects the given cell on every visible, selectable sheet
	// and activates the named sheet, so the workbook opens tidily.
	ResetCursor(sheetName string, cell ref.Cell) error
	// SaveAs saves a copy of the workbook to the specified path.
	SaveAs(absolutePath string) error
	// ExportPDF exports the workbook, or a single sheet when sheetName is
	// non-empty, to a PDF file.
	ExportPDF(absolutePath string, sheetName string) error
	// Save saves the workbook in place.
	Save() error
}

// Worksheet is a single sheet of an open workbook.
type Worksheet interface {
	// Release releases the worksheet resources.
	Release()
	// Name returns the name of the worksheet.
	Name() (string, error)
	// Protected reports whether the sheet contents are protected.
	Protected() (bool, error)
	// Protect protects the sheet with the given options.
	Protect(password string, opts ProtectOptions) error
	// Unprotect removes sheet protection.
	Unprotect(password string) error
	// Visibility returns the sheet visibility state.
	Visibility() (Visibility, error)
	// SetVisibility sets the sheet visibility state.
	SetVisibility(v Visibility) error
	// WriteCell writes a single value to a cell.
	WriteCell(cell ref.Cell, value any) error
	// WriteRow writes values left-to-right starting at the given cell.
	WriteRow(start ref.Cell, values []any) error
	// WriteRows writes a grid of values starting at the given cell.
	WriteRows(start ref.Cell, rows [][]any) error
	// ReadCell reads the displayed value of a cell.
	ReadCell(cell ref.Cell) (string, error)
	// ReadRange reads a rectangular range into a row-major grid.
	ReadRange(rng ref.Range) ([][]string, error)
	// Dimension returns the used range of the sheet, e.g. "A1:D20".
	Dimension() (string, error)
	// FormatRange applies cell formatting to a range.
	FormatRange(rng ref.Range, format *CellFormat) error
	// AddConditionalFormat adds a conditional formatting rule to a range.
	AddConditionalFormat(rng ref.Range, cond Condition, format *CellFormat) error
	// GetPagingStrategy returns the paging strategy for the worksheet.
	// The pageSize parameter is the max cell count of each page.
	GetPagingStrategy(pageSize int) (PagingStrategy, error)
}

// ProtectOptions mirrors the host's sheet protection switches.
type ProtectOptions struct {
	DrawingObjects  bool
	Contents        bool
	Scenarios       bool
	AllowSort       bool
	AllowFilter     bool
	EnableSelection bool
}

// DefaultProtectOptions matches the host defaults: everything protected,
// sorting and filtering disallowed, selection allowed.
func DefaultProtectOptions() ProtectOptions {
	return ProtectOptions{
		DrawingObjects:  true,
		Contents:        true,
		Scenarios:       true,
		AllowSort:       false,
		AllowFilter:     false,
		EnableSelection: true,
	}
}

// Visibility is a worksheet visibility state. "very hidden" sheets can only
// be re-shown programmatically, not from the host UI.
type Visibility string

const (
	VisibilityVisible    Visibility = "visible"
	VisibilityHidden     Visibility = "hidden"
	VisibilityVeryHidden Visibility = "very hidden"
)

// ParseVisibility validates a visibility name.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityVisible, VisibilityHidden, VisibilityVeryHidden:
		return Visibility(s), nil
	}
	return "", fmt.Errorf("invalid visibility %q: must be one of \"visible\", \"hidden\", \"very hidden\"", s)
}

// oleValue returns the host's xlSheetVisibility constant.
func (v Visibility) oleValue() int {
	switch v {
	case VisibilityHidden:
		return xlSheetHidden
	case VisibilityVeryHidden:
		return xlSheetVeryHidden
	default:
		return xlSheetVisible
	}
}

// OpenFile opens a workbook and returns an Excel interface.
// It first tries to reach the workbook in a running host application through
// OLE automation, and falls back to the excelize library when no host is
// reachable. If the file does not exist, a new workbook is created using
// excelize.
func OpenFile(absoluteFilePath string) (Excel, func(), error) {
	ole, releaseFn, err := NewOleWorkbook(absoluteFilePath)
	if err == nil {
		return ole, releaseFn, nil
	}
	workbook, err := excelize.OpenFile(absoluteFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			workbook = excelize.NewFile()
			workbook.Path = absoluteFilePath
			e := NewExcelizeWorkbook(workbook)
			return e, func() {
				workbook.Close()
			}, nil
		}
		return nil, func() {}, err
	}
	e := NewExcelizeWorkbook(workbook)
	return e, func() {
		workbook.Close()
	}, nil
}
