package tools

import (
	"context"
	"fmt"
	"html"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
	"github.com/daniel-flint-26/exceltools/internal/ref"
)

type ExcelWriteTableArguments struct {
	FileAbsolutePath string     `zog:"fileAbsolutePath"`
	SheetName        string     `zog:"sheetName"`
	CellRef          string     `zog:"cellRef"`
	Row              int        `zog:"row"`
	Column           string     `zog:"column"`
	Columns          []string   `zog:"columns"`
	Rows             [][]string `zog:"rows"`
	WriteHeader      bool       `zog:"writeHeader"`
}

var excelWriteTableArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cellRef":          z.String(),
	"row":              z.Int(),
	"column":           z.String(),
	"columns":          z.Slice(z.String()).Required(),
	"rows":             z.Slice(z.Slice(z.String())).Required(),
	"writeHeader":      z.Bool().Default(true),
})

func AddExcelWriteTableTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_write_table",
		mcp.WithDescription("Write a table of rows and named columns starting at a cell"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("cellRef",
			mcp.Description("Top-left cell reference (e.g., \"A1\"). Use either this or row+column"),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based row number of the top-left cell, combined with column"),
		),
		mcp.WithString("column",
			mcp.Description("Column letters or 1-based number of the top-left cell, combined with row"),
		),
		mcp.WithArray("columns",
			mcp.Required(),
			mcp.Description("Column names; every row must have one value per column"),
			mcp.Items(map[string]any{
				"type": "string",
			}),
		),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Table rows, each an array of values"),
			mcp.Items(map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
			}),
		),
		mcp.WithBoolean("writeHeader",
			mcp.Description("Write the column names as the first row (default true)"),
		),
	), WithRecovery(handleWriteTable))
}

func handleWriteTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelWriteTableArguments{}
	if issues := excelWriteTableArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return writeTable(args)
}

func writeTable(args ExcelWriteTableArguments) (*mcp.CallToolResult, error) {
	start, err := ref.ResolveCell(args.CellRef, args.Row, args.Column)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	table := excel.Table{Columns: args.Columns}
	table.Rows = make([][]any, len(args.Rows))
	for i, row := range args.Rows {
		table.Rows[i] = make([]any, len(row))
		for j, v := range row {
			table.Rows[i][j] = v
		}
	}
	if err := table.Validate(); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	table.Cleanse()

	workbook, release, err := excel.OpenFile(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	defer worksheet.Release()

	dataStart := start
	if args.WriteHeader {
		header := make([]any, len(table.Columns))
		for i, name := range table.Columns {
			header[i] = name
		}
		if err := worksheet.WriteRow(start, header); err != nil {
			return nil, err
		}
		dataStart = ref.Cell{Row: start.Row + 1, Col: start.Col}
	}
	if err := worksheet.WriteRows(dataStart, table.Rows); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Table of %d row(s) x %d column(s) written at %s in sheet [%s].\n",
		len(table.Rows), len(table.Columns), start, html.EscapeString(args.SheetName))
	return mcp.NewToolResultText(result), nil
}
