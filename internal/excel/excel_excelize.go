package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

// ErrRequiresHost marks operations that only the live host application can
// perform; the excelize backend cannot serve them.
var ErrRequiresHost = fmt.Errorf("operation requires a running host application (OLE backend)")

// ExcelizeWorkbook manipulates a workbook file directly through the excelize
// library, without a running host application.
type ExcelizeWorkbook struct {
	file *excelize.File
}

// ExcelizeWorksheet is a single sheet of an ExcelizeWorkbook.
type ExcelizeWorksheet struct {
	file      *excelize.File
	sheetName string
}

func NewExcelizeWorkbook(file *excelize.File) Excel {
	return &ExcelizeWorkbook{file: file}
}

func (e *ExcelizeWorkbook) GetBackendName() string {
	return "excelize"
}

func (e *ExcelizeWorkbook) SheetNames() ([]string, error) {
	return e.file.GetSheetList(), nil
}

func (e *ExcelizeWorkbook) FindSheet(sheetName string) (Worksheet, error) {
	index, err := e.file.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet not found: %s: %w", sheetName, err)
	}
	if index < 0 {
		return nil, fmt.Errorf("sheet not found: %s", sheetName)
	}
	return &ExcelizeWorksheet{file: e.file, sheetName: sheetName}, nil
}

func (e *ExcelizeWorkbook) DeleteSheet(sheetName string) error {
	if _, err := e.FindSheet(sheetName); err != nil {
		return err
	}
	if err := e.file.DeleteSheet(sheetName); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}

func (e *ExcelizeWorkbook) Protect(password string) error {
	err := e.file.ProtectWorkbook(&excelize.WorkbookProtectionOptions{
		Password:      password,
		LockStructure: true,
	})
	if err != nil {
		return fmt.Errorf("failed to protect workbook: %w", err)
	}
	return nil
}

func (e *ExcelizeWorkbook) Unprotect(password string) error {
	var err error
	if password == "" {
		err = e.file.UnprotectWorkbook()
	} else {
		err = e.file.UnprotectWorkbook(password)
	}
	if err != nil {
		return fmt.Errorf("failed to unprotect workbook: %w", err)
	}
	return nil
}

func (e *ExcelizeWorkbook) RefreshAll() error {
	return fmt.Errorf("refresh: %w", ErrRequiresHost)
}

func (e *ExcelizeWorkbook) ResetCursor(sheetName string, cell ref.Cell) error {
	return fmt.Errorf("reset cursor: %w", ErrRequiresHost)
}

func (e *ExcelizeWorkbook) SaveAs(absolutePath string) error {
	if err := e.file.SaveAs(absolutePath); err != nil {
		return fmt.Errorf("failed to save workbook as %s: %w", absolutePath, err)
	}
	return nil
}

func (e *ExcelizeWorkbook) ExportPDF(absolutePath string, sheetName string) error {
	return fmt.Errorf("PDF export: %w", ErrRequiresHost)
}

// Save saves the workbook in place. Excelize's own Save method restricts the
// file path length to 207 characters; writing through os.OpenFile sidesteps
// the restriction.
func (e *ExcelizeWorkbook) Save() error {
	file, err := os.OpenFile(filepath.Clean(e.file.Path), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer file.Close()
	return e.file.Write(file)
}

func (w *ExcelizeWorksheet) Release() {
	// No resources to release in excelize
}

func (w *ExcelizeWorksheet) Name() (string, error) {
	return w.sheetName, nil
}

// Protected always reports false: excelize does not expose the protection
// state of a sheet, only the ability to set it.
func (w *ExcelizeWorksheet) Protected() (bool, error) {
	return false, nil
}

func (w *ExcelizeWorksheet) Protect(password string, opts ProtectOptions) error {
	err := w.file.ProtectSheet(w.sheetName, &excelize.SheetProtectionOptions{
		Password:            password,
		EditObjects:         !opts.DrawingObjects,
		EditScenarios:       !opts.Scenarios,
		Sort:                opts.AllowSort,
		AutoFilter:          opts.AllowFilter,
		SelectLockedCells:   opts.EnableSelection,
		SelectUnlockedCells: opts.EnableSelection,
	})
	if err != nil {
		return fmt.Errorf("failed to protect sheet: %w", err)
	}
	return nil
}

func (w *ExcelizeWorksheet) Unprotect(password string) error {
	var err error
	if password == "" {
		err = w.file.UnprotectSheet(w.sheetName)
	} else {
		err = w.file.UnprotectSheet(w.sheetName, password)
	}
	if err != nil {
		return fmt.Errorf("failed to unprotect sheet: %w", err)
	}
	return nil
}

// Visibility cannot distinguish hidden from very hidden through excelize;
// any non-visible sheet reports as hidden.
func (w *ExcelizeWorksheet) Visibility() (Visibility, error) {
	visible, err := w.file.GetSheetVisible(w.sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to get sheet visibility: %w", err)
	}
	if visible {
		return VisibilityVisible, nil
	}
	return VisibilityHidden, nil
}

func (w *ExcelizeWorksheet) SetVisibility(v Visibility) error {
	err := w.file.SetSheetVisible(w.sheetName, v == VisibilityVisible, v == VisibilityVeryHidden)
	if err != nil {
		return fmt.Errorf("failed to set sheet visibility: %w", err)
	}
	return nil
}

func (w *ExcelizeWorksheet) WriteCell(cell ref.Cell, value any) error {
	return w.setCellValue(cell.Row, cell.Col, CleanseValue(value))
}

func (w *ExcelizeWorksheet) WriteRow(start ref.Cell, values []any) error {
	for i, value := range CleanseRow(values) {
		if err := w.setCellValue(start.Row, start.Col+i, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelizeWorksheet) WriteRows(start ref.Cell, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			if err := w.setCellValue(start.Row+i, start.Col+j, CleanseValue(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ExcelizeWorksheet) setCellValue(row, col int, value any) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.file.SetCellValue(w.sheetName, cellName, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cellName, err)
	}
	return nil
}

func (w *ExcelizeWorksheet) ReadCell(cell ref.Cell) (string, error) {
	value, err := w.file.GetCellValue(w.sheetName, cell.String())
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return value, nil
}

func (w *ExcelizeWorksheet) ReadRange(rng ref.Range) ([][]string, error) {
	bounded, err := w.boundRange(rng)
	if err != nil {
		return nil, err
	}
	grid := make([][]string, 0, bounded.End.Row-bounded.Start.Row+1)
	for row := bounded.Start.Row; row <= bounded.End.Row; row++ {
		record := make([]string, 0, bounded.End.Col-bounded.Start.Col+1)
		for col := bounded.Start.Col; col <= bounded.End.Col; col++ {
			value, err := w.ReadCell(ref.Cell{Row: row, Col: col})
			if err != nil {
				return nil, err
			}
			record = append(record, value)
		}
		grid = append(grid, record)
	}
	return grid, nil
}

func (w *ExcelizeWorksheet) boundRange(rng ref.Range) (ref.Range, error) {
	if !rng.Cols {
		return rng, nil
	}
	dimension, err := w.Dimension()
	if err != nil {
		return ref.Range{}, err
	}
	used, err := ref.ParseRange(dimension)
	if err != nil {
		return ref.Range{}, err
	}
	startCol, endCol := rng.Start.Col, rng.End.Col
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	return ref.Range{
		Start: ref.Cell{Row: used.Start.Row, Col: startCol},
		End:   ref.Cell{Row: used.End.Row, Col: endCol},
	}, nil
}

// Dimension scans the sheet data instead of reading the dimension element:
// excelize does not keep that element up to date for cells set in memory.
func (w *ExcelizeWorksheet) Dimension() (string, error) {
	rows, err := w.file.GetRows(w.sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to scan sheet: %w", err)
	}
	maxRow, maxCol := 0, 0
	for i, row := range rows {
		if len(row) > 0 {
			maxRow = i + 1
		}
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	if maxRow == 0 || maxCol == 0 {
		return "A1:A1", nil
	}
	end, err := ref.IndexToLetters(maxCol)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("A1:%s%d", end, maxRow), nil
}

func (w *ExcelizeWorksheet) FormatRange(rng ref.Range, format *CellFormat) error {
	if format == nil {
		return nil
	}
	bounded, err := w.boundRange(rng)
	if err != nil {
		return err
	}

	style, err := excelizeStyle(format)
	if err != nil {
		return err
	}
	styleID, err := w.file.NewStyle(style)
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := w.file.SetCellStyle(w.sheetName, bounded.Start.String(), bounded.End.String(), styleID); err != nil {
		return fmt.Errorf("failed to apply style: %w", err)
	}

	if format.Merge != nil && *format.Merge {
		if err := w.file.MergeCell(w.sheetName, bounded.Start.String(), bounded.End.String()); err != nil {
			return fmt.Errorf("failed to merge cells: %w", err)
		}
	}
	return nil
}

func (w *ExcelizeWorksheet) AddConditionalFormat(rng ref.Range, cond Condition, format *CellFormat) error {
	bounded, err := w.boundRange(rng)
	if err != nil {
		return err
	}

	opts := excelize.ConditionalFormatOptions{
		Type: excelizeConditionTypes[cond.Type],
	}
	if opts.Type == "" {
		return fmt.Errorf("condition %q is not supported by the excelize backend", cond.Type)
	}
	if cond.Type == ConditionCellValue {
		opts.Criteria = excelizeCriteria[cond.Operator]
		if cond.Operator == OperatorBetween || cond.Operator == OperatorNotBetween {
			opts.MinValue = cond.Value
			opts.MaxValue = cond.Value2
		} else {
			opts.Value = cond.Value
		}
	}
	if format != nil {
		style, err := excelizeStyle(format)
		if err != nil {
			return err
		}
		styleID, err := w.file.NewConditionalStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create conditional style: %w", err)
		}
		opts.Format = &styleID
	}

	err = w.file.SetConditionalFormat(w.sheetName, bounded.String(), []excelize.ConditionalFormatOptions{opts})
	if err != nil {
		return fmt.Errorf("failed to set conditional format: %w", err)
	}
	return nil
}

func (w *ExcelizeWorksheet) GetPagingStrategy(pageSize int) (PagingStrategy, error) {
	return NewFixedSizePagingStrategy(pageSize, w)
}

var excelizeConditionTypes = map[ConditionType]string{
	ConditionCellValue:    "cell",
	ConditionExpression:   "formula",
	ConditionColorScale:   "2_color_scale",
	ConditionDataBar:      "data_bar",
	ConditionIconSet:      "icon_set",
	ConditionTop10:        "top",
	ConditionUnique:       "unique",
	ConditionText:         "text",
	ConditionBlanks:       "blanks",
	ConditionNoBlanks:     "no_blanks",
	ConditionErrors:       "errors",
	ConditionNoErrors:     "no_errors",
	ConditionTimePeriod:   "time_period",
	ConditionAboveAverage: "average",
}

var excelizeCriteria = map[Operator]string{
	OperatorBetween:      "between",
	OperatorNotBetween:   "not between",
	OperatorEqual:        "equal to",
	OperatorNotEqual:     "not equal to",
	OperatorGreater:      "greater than",
	OperatorLess:         "less than",
	OperatorGreaterEqual: "greater than or equal to",
	OperatorLessEqual:    "less than or equal to",
}

// excelizeStyle translates the friendly CellFormat options to an excelize
// style definition.
func excelizeStyle(format *CellFormat) (*excelize.Style, error) {
	style := &excelize.Style{}

	if format.InteriorColour != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{format.InteriorColour.Hex()},
		}
	}
	if format.NumberFormat != nil {
		style.CustomNumFmt = format.NumberFormat
	}

	if format.Bold != nil || format.FontColour != nil || format.FontSize != nil ||
		format.FontName != nil || format.Underline != nil {
		font := &excelize.Font{}
		if format.Bold != nil {
			font.Bold = *format.Bold
		}
		if format.FontColour != nil {
			font.Color = format.FontColour.Hex()
		}
		if format.FontSize != nil {
			font.Size = float64(*format.FontSize)
		}
		if format.FontName != nil {
			font.Family = *format.FontName
		}
		if format.Underline != nil && *format.Underline {
			font.Underline = "single"
		}
		style.Font = font
	}

	if format.WrapText != nil || format.HAlign != nil || format.VAlign != nil || format.Orientation != nil {
		alignment := &excelize.Alignment{}
		if format.WrapText != nil {
			alignment.WrapText = *format.WrapText
		}
		if format.HAlign != nil {
			if _, err := ParseHAlign(*format.HAlign); err != nil {
				return nil, err
			}
			alignment.Horizontal = *format.HAlign
		}
		if format.VAlign != nil {
			if _, err := ParseVAlign(*format.VAlign); err != nil {
				return nil, err
			}
			alignment.Vertical = *format.VAlign
		}
		if format.Orientation != nil {
			alignment.TextRotation = *format.Orientation
		}
		style.Alignment = alignment
	}

	borders := []struct {
		name   string
		format *BorderFormat
	}{
		{"left", format.BorderLeft},
		{"right", format.BorderRight},
		{"top", format.BorderTop},
		{"bottom", format.BorderBottom},
	}
	for _, b := range borders {
		if b.format == nil {
			continue
		}
		styleIndex, ok := excelizeBorderStyles[b.format.LineStyle]
		if b.format.LineStyle != "" && !ok {
			return nil, fmt.Errorf("invalid border line style %q", b.format.LineStyle)
		}
		border := excelize.Border{Type: b.name, Style: styleIndex}
		if b.format.Colour != nil {
			border.Color = b.format.Colour.Hex()
		}
		style.Border = append(style.Border, border)
	}
	// Inside borders have no direct excelize equivalent at the style level;
	// they apply only through the OLE backend.

	return style, nil
}
