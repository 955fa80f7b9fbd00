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

type ExcelReadCellArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	CellRef          string `zog:"cellRef"`
	Row              int    `zog:"row"`
	Column           string `zog:"column"`
}

var excelReadCellArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cellRef":          z.String(),
	"row":              z.Int(),
	"column":           z.String(),
})

func AddExcelReadCellTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_read_cell",
		mcp.WithDescription("Read the displayed value of a single cell"),
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
	), WithRecovery(handleReadCell))
}

func handleReadCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelReadCellArguments{}
	if issues := excelReadCellArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return readCell(args.FileAbsolutePath, args.SheetName, args.CellRef, args.Row, args.Column)
}

func readCell(fileAbsolutePath string, sheetName string, cellRef string, row int, column string) (*mcp.CallToolResult, error) {
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

	value, err := worksheet.ReadCell(cell)
	if err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Sheet [%s] cell %s:\n", html.EscapeString(sheetName), cell)
	result += value + "\n"
	return mcp.NewToolResultText(result), nil
}
