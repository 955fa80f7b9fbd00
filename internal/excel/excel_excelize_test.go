package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

func newTestWorkbook(t *testing.T) (Excel, Worksheet) {
	t.Helper()
	file := excelize.NewFile()
	file.Path = filepath.Join(t.TempDir(), "test.xlsx")
	t.Cleanup(func() { file.Close() })

	wb := NewExcelizeWorkbook(file)
	ws, err := wb.FindSheet("Sheet1")
	require.NoError(t, err)
	return wb, ws
}

func TestExcelizeWriteReadCell(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteCell(ref.Cell{Row: 2, Col: 3}, "hello"))

	got, err := ws.ReadCell(ref.Cell{Row: 2, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	// unwritten cell reads back empty
	got, err = ws.ReadCell(ref.Cell{Row: 50, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestExcelizeWriteRowAndRange(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteRow(ref.Cell{Row: 1, Col: 1}, []any{"a", "b", "c"}))
	require.NoError(t, ws.WriteRows(ref.Cell{Row: 2, Col: 1}, [][]any{
		{1, 2, 3},
		{4, nil, 6},
	}))

	rng, err := ref.ParseRange("A1:C3")
	require.NoError(t, err)
	grid, err := ws.ReadRange(rng)
	require.NoError(t, err)

	want := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "", "6"},
	}
	assert.Equal(t, want, grid)
}

func TestExcelizeWholeColumnRange(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteRows(ref.Cell{Row: 1, Col: 1}, [][]any{
		{"x", "y"},
		{"1", "2"},
	}))

	// inverted column order is bounded and swapped against the used range
	rng, err := ref.ParseRange("B:A")
	require.NoError(t, err)
	grid, err := ws.ReadRange(rng)
	require.NoError(t, err)

	want := [][]string{
		{"x", "y"},
		{"1", "2"},
	}
	assert.Equal(t, want, grid)
}

func TestExcelizeDimension(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteCell(ref.Cell{Row: 3, Col: 2}, 1))
	require.NoError(t, ws.WriteCell(ref.Cell{Row: 5, Col: 4}, 2))

	dim, err := ws.Dimension()
	require.NoError(t, err)
	assert.Equal(t, "A1:D5", dim)
}

func TestExcelizeDimensionEmptySheet(t *testing.T) {
	_, ws := newTestWorkbook(t)

	dim, err := ws.Dimension()
	require.NoError(t, err)
	assert.Equal(t, "A1:A1", dim)
}

func TestExcelizeVisibility(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	// a second sheet so Sheet1 can be hidden
	file := wb.(*ExcelizeWorkbook).file
	_, err := file.NewSheet("Other")
	require.NoError(t, err)

	ws, err := wb.FindSheet("Sheet1")
	require.NoError(t, err)

	v, err := ws.Visibility()
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, v)

	require.NoError(t, ws.SetVisibility(VisibilityHidden))
	v, err = ws.Visibility()
	require.NoError(t, err)
	assert.Equal(t, VisibilityHidden, v)

	require.NoError(t, ws.SetVisibility(VisibilityVisible))
	v, err = ws.Visibility()
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, v)
}

func TestExcelizeDeleteSheet(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	file := wb.(*ExcelizeWorkbook).file
	_, err := file.NewSheet("Doomed")
	require.NoError(t, err)

	require.NoError(t, wb.DeleteSheet("Doomed"))

	names, err := wb.SheetNames()
	require.NoError(t, err)
	assert.NotContains(t, names, "Doomed")

	assert.Error(t, wb.DeleteSheet("NoSuchSheet"))
}

func TestExcelizeProtect(t *testing.T) {
	wb, ws := newTestWorkbook(t)

	require.NoError(t, ws.Protect("secret", DefaultProtectOptions()))
	require.NoError(t, ws.Unprotect("secret"))

	require.NoError(t, wb.Protect("secret"))
	require.NoError(t, wb.Unprotect("secret"))
}

func TestExcelizeHostOnlyOperations(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	assert.ErrorIs(t, wb.RefreshAll(), ErrRequiresHost)
	assert.ErrorIs(t, wb.ResetCursor("Sheet1", ref.Cell{Row: 1, Col: 1}), ErrRequiresHost)
	assert.ErrorIs(t, wb.ExportPDF("/tmp/out.pdf", ""), ErrRequiresHost)
}

func TestExcelizeFormatRange(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteRow(ref.Cell{Row: 1, Col: 1}, []any{"h1", "h2"}))

	bold := true
	colour := RGB{255, 0, 0}
	rng, err := ref.ParseRange("A1:B1")
	require.NoError(t, err)
	err = ws.FormatRange(rng, &CellFormat{
		Bold:           &bold,
		InteriorColour: &colour,
	})
	require.NoError(t, err)

	// nil format is a no-op
	require.NoError(t, ws.FormatRange(rng, nil))
}

func TestExcelizeConditionalFormat(t *testing.T) {
	_, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteRows(ref.Cell{Row: 1, Col: 1}, [][]any{{1}, {5}, {10}}))

	rng, err := ref.ParseRange("A1:A3")
	require.NoError(t, err)
	colour := RGB{0, 255, 0}
	err = ws.AddConditionalFormat(rng, Condition{
		Type:     ConditionCellValue,
		Operator: OperatorGreater,
		Value:    "4",
	}, &CellFormat{InteriorColour: &colour})
	require.NoError(t, err)

	err = ws.AddConditionalFormat(rng, Condition{
		Type:     ConditionCellValue,
		Operator: OperatorBetween,
		Value:    "2",
		Value2:   "8",
	}, nil)
	require.NoError(t, err)
}

func TestExcelizeSaveRoundTrip(t *testing.T) {
	wb, ws := newTestWorkbook(t)

	require.NoError(t, ws.WriteCell(ref.Cell{Row: 1, Col: 1}, "persisted"))
	require.NoError(t, wb.Save())

	path := wb.(*ExcelizeWorkbook).file.Path
	reopened, release, err := OpenFile(path)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, "excelize", reopened.GetBackendName())
	ws2, err := reopened.FindSheet("Sheet1")
	require.NoError(t, err)
	got, err := ws2.ReadCell(ref.Cell{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}
