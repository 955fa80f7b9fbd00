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

type ExcelWriteCellArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	CellRef          string `zog:"cellRef"`
	Row              int    `zog:"row"`
	Column           string `zog:"column"`
	Value            string `zog:"value"`
}

var excelWriteCellArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cellRef":          z.String(),
	"row":              z.Int(),
	"column":           z.String(),
	"value":            z.String().Required(),
})

func AddExcelWriteCellTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_write_cell",
		mcp.WithDescription("Write a value to a single cell"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("cellRef",
			mcp.Description("Cell reference (e.g., \"B12\"). Use either this or row+column"),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based row number, combined with column"),
		),
		mcp.WithString("column",
			mcp.Description("Column letters or 1-based number, combined with row"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Value to write. Formulas start with \"=\""),
		),
	), WithRecovery(handleWriteCell))
}

func handleWriteCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelWriteCellArguments{}
	if issues := excelWriteCellArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return writeCell(args.FileAbsolutePath, args.SheetName, args.CellRef, args.Row, args.Column, args.Value)
}

func writeCell(fileAbsolutePath string, sheetName string, cellRef string, row int, column string, value string) (*mcp.CallToolResult, error) {
	cell, err := ref.ResolveCell(cellRef, row, column)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	defer worksheet.Release()

	if err := worksheet.WriteCell(cell, value); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Value written to cell %s in sheet [%s].\n", cell, html.EscapeString(sheetName))
	return mcp.NewToolResultText(result), nil
}
