package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

// OleWorkbook manipulates a workbook open in a running host application
// through OLE automation.
type OleWorkbook struct {
	application *ole.IDispatch
	workbook    *ole.IDispatch
}

// OleWorksheet is a single sheet of an OleWorkbook.
type OleWorksheet struct {
	application *ole.IDispatch
	worksheet   *ole.IDispatch
}

// NewOleWorkbook connects to the workbook with the given path in a running
// host application. It fails when no host is running or the workbook is not
// open in it; OpenFile then falls back to excelize.
func NewOleWorkbook(absolutePath string) (Excel, func(), error) {
	ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)

	unknown, err := oleutil.GetActiveObject("Excel.Application")
	if err != nil {
		return nil, func() {}, err
	}
	excel, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, func() {}, err
	}
	workbooks := oleutil.MustGetProperty(excel, "Workbooks").ToIDispatch()
	count := int(oleutil.MustGetProperty(workbooks, "Count").Val)
	for i := 1; i <= count; i++ {
		workbook := oleutil.MustGetProperty(workbooks, "Item", i).ToIDispatch()
		fullName := oleutil.MustGetProperty(workbook, "FullName").ToString()
		if normalizePath(fullName) == normalizePath(absolutePath) {
			wb := &OleWorkbook{application: excel, workbook: workbook}
			return wb, func() {
				workbook.Release()
				workbooks.Release()
				excel.Release()
				ole.CoUninitialize()
			}, nil
		}
		workbook.Release()
	}
	workbooks.Release()
	excel.Release()
	ole.CoUninitialize()
	return nil, func() {}, fmt.Errorf("workbook not found in running host: %s", absolutePath)
}

func (o *OleWorkbook) GetBackendName() string {
	return "ole"
}

func (o *OleWorkbook) SheetNames() ([]string, error) {
	sheets, err := oleutil.GetProperty(o.workbook, "Worksheets")
	if err != nil {
		return nil, fmt.Errorf("failed to get Worksheets: %w", err)
	}
	collection := sheets.ToIDispatch()
	defer collection.Release()

	count := int(oleutil.MustGetProperty(collection, "Count").Val)
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		sheet := oleutil.MustGetProperty(collection, "Item", i).ToIDispatch()
		names = append(names, oleutil.MustGetProperty(sheet, "Name").ToString())
		sheet.Release()
	}
	return names, nil
}

func (o *OleWorkbook) FindSheet(sheetName string) (Worksheet, error) {
	sheets, err := oleutil.GetProperty(o.workbook, "Worksheets")
	if err != nil {
		return nil, fmt.Errorf("failed to get Worksheets: %w", err)
	}
	collection := sheets.ToIDispatch()
	defer collection.Release()

	count := int(oleutil.MustGetProperty(collection, "Count").Val)
	for i := 1; i <= count; i++ {
		sheet := oleutil.MustGetProperty(collection, "Item", i).ToIDispatch()
		name := oleutil.MustGetProperty(sheet, "Name").ToString()
		if name == sheetName {
			return &OleWorksheet{application: o.application, worksheet: sheet}, nil
		}
		sheet.Release()
	}
	return nil, fmt.Errorf("sheet not found: %s", sheetName)
}

func (o *OleWorkbook) DeleteSheet(sheetName string) error {
	worksheet, err := o.FindSheet(sheetName)
	if err != nil {
		return err
	}
	sheet := worksheet.(*OleWorksheet)
	defer sheet.Release()

	// Suppress the host's delete confirmation dialog.
	if _, err := oleutil.PutProperty(o.application, "DisplayAlerts", false); err != nil {
		return fmt.Errorf("failed to set DisplayAlerts: %w", err)
	}
	defer oleutil.PutProperty(o.application, "DisplayAlerts", true)

	if _, err := oleutil.CallMethod(sheet.worksheet, "Delete"); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}

func (o *OleWorkbook) Protect(password string) error {
	_, err := oleutil.CallMethod(o.workbook, "Protect", password, true)
	if err != nil {
		return fmt.Errorf("failed to protect workbook: %w", err)
	}
	return nil
}

func (o *OleWorkbook) Unprotect(password string) error {
	var err error
	if password == "" {
		_, err = oleutil.CallMethod(o.workbook, "Unprotect")
	} else {
		_, err = oleutil.CallMethod(o.workbook, "Unprotect", password)
	}
	if err != nil {
		return fmt.Errorf("failed to unprotect workbook: %w", err)
	}
	return nil
}

func (o *OleWorkbook) RefreshAll() error {
	if _, err := oleutil.CallMethod(o.workbook, "RefreshAll"); err != nil {
		return fmt.Errorf("failed to refresh workbook: %w", err)
	}

	// RefreshAll covers connections; pivot tables are refreshed one by one,
	// which is lighter than a second full refresh.
	sheets, err := oleutil.GetProperty(o.workbook, "Worksheets")
	if err != nil {
		return fmt.Errorf("failed to get Worksheets: %w", err)
	}
	collection := sheets.ToIDispatch()
	defer collection.Release()

	count := int(oleutil.MustGetProperty(collection, "Count").Val)
	for i := 1; i <= count; i++ {
		sheet := oleutil.MustGetProperty(collection, "Item", i).ToIDispatch()
		pivots, err := oleutil.CallMethod(sheet, "PivotTables")
		if err != nil {
			sheet.Release()
			continue
		}
		pivotCollection := pivots.ToIDispatch()
		pivotCount := int(oleutil.MustGetProperty(pivotCollection, "Count").Val)
		for j := 1; j <= pivotCount; j++ {
			pivot := oleutil.MustGetProperty(pivotCollection, "Item", j).ToIDispatch()
			if _, err := oleutil.CallMethod(pivot, "RefreshTable"); err == nil {
				oleutil.CallMethod(pivot, "Update")
			}
			pivot.Release()
		}
		pivotCollection.Release()
		sheet.Release()
	}
	return nil
}

func (o *OleWorkbook) ResetCursor(sheetName string, cell ref.Cell) error {
	target, err := o.FindSheet(sheetName)
	if err != nil {
		return err
	}
	targetSheet := target.(*OleWorksheet)
	defer targetSheet.Release()

	// Suspend events so selection changes do not fire workbook macros.
	if _, err := oleutil.PutProperty(o.application, "EnableEvents", false); err != nil {
		return fmt.Errorf("failed to set EnableEvents: %w", err)
	}
	defer oleutil.PutProperty(o.application, "EnableEvents", true)

	sheets, err := oleutil.GetProperty(o.workbook, "Worksheets")
	if err != nil {
		return fmt.Errorf("failed to get Worksheets: %w", err)
	}
	collection := sheets.ToIDispatch()
	defer collection.Release()

	count := int(oleutil.MustGetProperty(collection, "Count").Val)
	for i := 1; i <= count; i++ {
		sheet := oleutil.MustGetProperty(collection, "Item", i).ToIDispatch()
		visible := int(oleutil.MustGetProperty(sheet, "Visible").Val)
		selection := int(oleutil.MustGetProperty(sheet, "EnableSelection").Val)
		if visible == xlSheetVisible && selection == xlNoRestrictions {
			oleutil.CallMethod(sheet, "Activate")
			cellRange := oleutil.MustGetProperty(sheet, "Range", cell.String()).ToIDispatch()
			oleutil.CallMethod(cellRange, "Select")
			oleutil.CallMethod(cellRange, "Activate")
			cellRange.Release()
			if window, err := oleutil.GetProperty(o.application, "ActiveWindow"); err == nil {
				w := window.ToIDispatch()
				oleutil.PutProperty(w, "ScrollRow", 1)
				oleutil.PutProperty(w, "ScrollColumn", 1)
				w.Release()
			}
		}
		sheet.Release()
	}

	if _, err := oleutil.CallMethod(targetSheet.worksheet, "Activate"); err != nil {
		return fmt.Errorf("failed to activate sheet: %w", err)
	}
	return nil
}

func (o *OleWorkbook) SaveAs(absolutePath string) error {
	if _, err := oleutil.CallMethod(o.workbook, "SaveAs", filepath.Clean(absolutePath)); err != nil {
		return fmt.Errorf("failed to save workbook as %s: %w", absolutePath, err)
	}
	if _, err := oleutil.PutProperty(o.workbook, "Saved", true); err != nil {
		return fmt.Errorf("failed to mark workbook saved: %w", err)
	}
	return nil
}

func (o *OleWorkbook) ExportPDF(absolutePath string, sheetName string) error {
	target := o.workbook
	if sheetName != "" {
		worksheet, err := o.FindSheet(sheetName)
		if err != nil {
			return err
		}
		sheet := worksheet.(*OleWorksheet)
		defer sheet.Release()
		target = sheet.worksheet
	}
	if _, err := oleutil.CallMethod(target, "ExportAsFixedFormat", xlTypePDF, filepath.Clean(absolutePath)); err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	return nil
}

func (o *OleWorkbook) Save() error {
	if _, err := oleutil.CallMethod(o.workbook, "Save"); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *OleWorksheet) Release() {
	if w.worksheet != nil {
		w.worksheet.Release()
		w.worksheet = nil
	}
}

func (w *OleWorksheet) Name() (string, error) {
	name, err := oleutil.GetProperty(w.worksheet, "Name")
	if err != nil {
		return "", fmt.Errorf("failed to get Name: %w", err)
	}
	return name.ToString(), nil
}

func (w *OleWorksheet) Protected() (bool, error) {
	prop, err := oleutil.GetProperty(w.worksheet, "ProtectContents")
	if err != nil {
		return false, fmt.Errorf("failed to get ProtectContents: %w", err)
	}
	return prop.Val != 0, nil
}

func (w *OleWorksheet) Protect(password string, opts ProtectOptions) error {
	if !opts.EnableSelection {
		if _, err := oleutil.PutProperty(w.worksheet, "EnableSelection", xlNoSelection); err != nil {
			return fmt.Errorf("failed to set EnableSelection: %w", err)
		}
	}
	// Positional args follow the host's Protect signature: password, drawing
	// objects, contents, scenarios, then the unimplemented allow-flags,
	// then sorting and filtering.
	_, err := oleutil.CallMethod(w.worksheet, "Protect",
		password, opts.DrawingObjects, opts.Contents, opts.Scenarios,
		false, false, false, false, false, false, false, false, false,
		opts.AllowSort, opts.AllowFilter, false,
	)
	if err != nil {
		return fmt.Errorf("failed to protect sheet: %w", err)
	}
	return nil
}

func (w *OleWorksheet) Unprotect(password string) error {
	var err error
	if password == "" {
		_, err = oleutil.CallMethod(w.worksheet, "Unprotect")
	} else {
		_, err = oleutil.CallMethod(w.worksheet, "Unprotect", password)
	}
	if err != nil {
		return fmt.Errorf("failed to unprotect sheet: %w", err)
	}
	return nil
}

func (w *OleWorksheet) Visibility() (Visibility, error) {
	prop, err := oleutil.GetProperty(w.worksheet, "Visible")
	if err != nil {
		return "", fmt.Errorf("failed to get Visible: %w", err)
	}
	switch int(prop.Val) {
	case xlSheetHidden:
		return VisibilityHidden, nil
	case xlSheetVeryHidden:
		return VisibilityVeryHidden, nil
	default:
		return VisibilityVisible, nil
	}
}

func (w *OleWorksheet) SetVisibility(v Visibility) error {
	if _, err := oleutil.PutProperty(w.worksheet, "Visible", v.oleValue()); err != nil {
		return fmt.Errorf("failed to set Visible: %w", err)
	}
	return nil
}

// guardWritable rejects writes to a protected sheet before touching any cell.
func (w *OleWorksheet) guardWritable() error {
	protected, err := w.Protected()
	if err != nil {
		return err
	}
	if protected {
		name, _ := w.Name()
		return fmt.Errorf("the sheet '%s' is protected, please unprotect before attempting to write to it", name)
	}
	return nil
}

func (w *OleWorksheet) WriteCell(cell ref.Cell, value any) error {
	if err := w.guardWritable(); err != nil {
		return err
	}
	return w.setCellValue(cell.Row, cell.Col, CleanseValue(value))
}

func (w *OleWorksheet) WriteRow(start ref.Cell, values []any) error {
	if err := w.guardWritable(); err != nil {
		return err
	}
	for i, value := range CleanseRow(values) {
		if err := w.setCellValue(start.Row, start.Col+i, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *OleWorksheet) WriteRows(start ref.Cell, rows [][]any) error {
	if err := w.guardWritable(); err != nil {
		return err
	}

	// Bulk writes run under manual calculation so the host does not
	// recalculate after every cell.
	if _, err := oleutil.PutProperty(w.application, "Calculation", xlCalculationManual); err != nil {
		return fmt.Errorf("failed to set manual calculation: %w", err)
	}
	defer func() {
		oleutil.CallMethod(w.application, "Calculate")
		oleutil.PutProperty(w.application, "Calculation", xlCalculationAutomatic)
	}()

	for i, row := range rows {
		for j, value := range row {
			if err := w.setCellValue(start.Row+i, start.Col+j, CleanseValue(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *OleWorksheet) setCellValue(row, col int, value any) error {
	cell, err := oleutil.GetProperty(w.worksheet, "Cells", row, col)
	if err != nil {
		return fmt.Errorf("failed to get cell (%d,%d): %w", row, col, err)
	}
	dispatch := cell.ToIDispatch()
	defer dispatch.Release()
	if _, err := oleutil.PutProperty(dispatch, "Value", value); err != nil {
		return fmt.Errorf("failed to write cell (%d,%d): %w", row, col, err)
	}
	return nil
}

func (w *OleWorksheet) ReadCell(cell ref.Cell) (string, error) {
	c, err := oleutil.GetProperty(w.worksheet, "Cells", cell.Row, cell.Col)
	if err != nil {
		return "", fmt.Errorf("failed to get cell %s: %w", cell, err)
	}
	dispatch := c.ToIDispatch()
	defer dispatch.Release()
	text, err := oleutil.GetProperty(dispatch, "Text")
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return text.ToString(), nil
}

func (w *OleWorksheet) ReadRange(rng ref.Range) ([][]string, error) {
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

// boundRange turns a whole-column range into a bounded rectangle using the
// sheet's used range for the row extent.
func (w *OleWorksheet) boundRange(rng ref.Range) (ref.Range, error) {
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

func (w *OleWorksheet) Dimension() (string, error) {
	used, err := oleutil.GetProperty(w.worksheet, "UsedRange")
	if err != nil {
		return "", fmt.Errorf("failed to get UsedRange: %w", err)
	}
	dispatch := used.ToIDispatch()
	defer dispatch.Release()
	address, err := oleutil.GetProperty(dispatch, "Address", false, false)
	if err != nil {
		return "", fmt.Errorf("failed to get Address: %w", err)
	}
	return address.ToString(), nil
}

func (w *OleWorksheet) FormatRange(rng ref.Range, format *CellFormat) error {
	target, err := oleutil.GetProperty(w.worksheet, "Range", rng.String())
	if err != nil {
		return fmt.Errorf("failed to get Range %s: %w", rng, err)
	}
	dispatch := target.ToIDispatch()
	defer dispatch.Release()
	return applyOleFormat(dispatch, format)
}

func (w *OleWorksheet) AddConditionalFormat(rng ref.Range, cond Condition, format *CellFormat) error {
	target, err := oleutil.GetProperty(w.worksheet, "Range", rng.String())
	if err != nil {
		return fmt.Errorf("failed to get Range %s: %w", rng, err)
	}
	rangeDispatch := target.ToIDispatch()
	defer rangeDispatch.Release()

	conditions, err := oleutil.GetProperty(rangeDispatch, "FormatConditions")
	if err != nil {
		return fmt.Errorf("failed to get FormatConditions: %w", err)
	}
	collection := conditions.ToIDispatch()
	defer collection.Release()

	args := []any{conditionTypeValues[cond.Type]}
	if cond.Type == ConditionCellValue {
		args = append(args, operatorValues[cond.Operator], cond.Value)
		if cond.Value2 != "" {
			args = append(args, cond.Value2)
		}
	}
	added, err := oleutil.CallMethod(collection, "Add", args...)
	if err != nil {
		return fmt.Errorf("failed to add format condition: %w", err)
	}
	condition := added.ToIDispatch()
	defer condition.Release()

	if format == nil {
		return nil
	}
	return applyOleFormat(condition, format)
}

func (w *OleWorksheet) GetPagingStrategy(pageSize int) (PagingStrategy, error) {
	return NewFixedSizePagingStrategy(pageSize, w)
}

// applyOleFormat writes each supplied CellFormat field to the matching
// property of an OLE Range or FormatCondition object.
func applyOleFormat(target *ole.IDispatch, format *CellFormat) error {
	if format == nil {
		return nil
	}
	if format.InteriorColour != nil {
		if err := putSubProperty(target, "Interior", "Color", format.InteriorColour.BGR()); err != nil {
			return err
		}
	}
	if format.NumberFormat != nil {
		if _, err := oleutil.PutProperty(target, "NumberFormat", *format.NumberFormat); err != nil {
			return fmt.Errorf("failed to set NumberFormat: %w", err)
		}
	}
	if format.Bold != nil {
		if err := putSubProperty(target, "Font", "Bold", *format.Bold); err != nil {
			return err
		}
	}
	if format.FontColour != nil {
		if err := putSubProperty(target, "Font", "Color", format.FontColour.BGR()); err != nil {
			return err
		}
	}
	if format.FontSize != nil {
		if err := putSubProperty(target, "Font", "Size", *format.FontSize); err != nil {
			return err
		}
	}
	if format.FontName != nil {
		if err := putSubProperty(target, "Font", "Name", *format.FontName); err != nil {
			return err
		}
	}
	if format.Orientation != nil {
		if _, err := oleutil.PutProperty(target, "Orientation", *format.Orientation); err != nil {
			return fmt.Errorf("failed to set Orientation: %w", err)
		}
	}
	if format.Underline != nil {
		if err := putSubProperty(target, "Font", "Underline", *format.Underline); err != nil {
			return err
		}
	}
	if format.Merge != nil {
		if _, err := oleutil.PutProperty(target, "MergeCells", *format.Merge); err != nil {
			return fmt.Errorf("failed to set MergeCells: %w", err)
		}
	}
	if format.WrapText != nil {
		if _, err := oleutil.PutProperty(target, "WrapText", *format.WrapText); err != nil {
			return fmt.Errorf("failed to set WrapText: %w", err)
		}
	}
	if format.HAlign != nil {
		value, err := ParseHAlign(*format.HAlign)
		if err != nil {
			return err
		}
		if _, err := oleutil.PutProperty(target, "HorizontalAlignment", value); err != nil {
			return fmt.Errorf("failed to set HorizontalAlignment: %w", err)
		}
	}
	if format.VAlign != nil {
		value, err := ParseVAlign(*format.VAlign)
		if err != nil {
			return err
		}
		if _, err := oleutil.PutProperty(target, "VerticalAlignment", value); err != nil {
			return fmt.Errorf("failed to set VerticalAlignment: %w", err)
		}
	}

	borders := []struct {
		edge   int
		format *BorderFormat
	}{
		{xlEdgeLeft, format.BorderLeft},
		{xlEdgeRight, format.BorderRight},
		{xlEdgeTop, format.BorderTop},
		{xlEdgeBottom, format.BorderBottom},
		{xlInsideHorizontal, format.BorderInsideH},
		{xlInsideVertical, format.BorderInsideV},
	}
	for _, b := range borders {
		if b.format == nil {
			continue
		}
		if err := applyOleBorder(target, b.edge, b.format); err != nil {
			return err
		}
	}
	return nil
}

func applyOleBorder(target *ole.IDispatch, edge int, format *BorderFormat) error {
	border, err := oleutil.GetProperty(target, "Borders", edge)
	if err != nil {
		return fmt.Errorf("failed to get Borders(%d): %w", edge, err)
	}
	dispatch := border.ToIDispatch()
	defer dispatch.Release()

	if format.LineStyle != "" {
		style, ok := lineStyleValues[format.LineStyle]
		if !ok {
			return fmt.Errorf("invalid border line style %q", format.LineStyle)
		}
		if _, err := oleutil.PutProperty(dispatch, "LineStyle", style); err != nil {
			return fmt.Errorf("failed to set LineStyle: %w", err)
		}
	}
	if format.Weight != "" {
		weight, ok := borderWeightValues[format.Weight]
		if !ok {
			return fmt.Errorf("invalid border weight %q", format.Weight)
		}
		if _, err := oleutil.PutProperty(dispatch, "Weight", weight); err != nil {
			return fmt.Errorf("failed to set Weight: %w", err)
		}
	}
	if format.Colour != nil {
		if _, err := oleutil.PutProperty(dispatch, "Color", format.Colour.BGR()); err != nil {
			return fmt.Errorf("failed to set border Color: %w", err)
		}
	}
	return nil
}

func putSubProperty(target *ole.IDispatch, object, property string, value any) error {
	sub, err := oleutil.GetProperty(target, object)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", object, err)
	}
	dispatch := sub.ToIDispatch()
	defer dispatch.Release()
	if _, err := oleutil.PutProperty(dispatch, property, value); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", object, property, err)
	}
	return nil
}

// normalizePath upper-cases the volume name so paths reported by the host
// compare equal to caller-supplied ones.
func normalizePath(path string) string {
	vol := filepath.VolumeName(path)
	if vol == "" {
		return path
	}
	rest := path[len(vol):]
	return filepath.Clean(strings.ToUpper(vol) + rest)
}
