package tools

import (
	"context"
	"errors"
	"fmt"
	"html"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
	"github.com/daniel-flint-26/exceltools/internal/ref"
)

type ExcelResetCursorArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	CellRef          string `zog:"cellRef"`
	Row              int    `zog:"row"`
	Column           string `zog:"column"`
}

var excelResetCursorArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cellRef":          z.String(),
	"row":              z.Int(),
	"column":           z.String(),
})

func AddExcelResetCursorTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_reset_cursor",
		mcp.WithDescription("Select a cell on every visible sheet and activate the named sheet, so the workbook opens tidily. Requires a running Excel instance"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet to leave active"),
		),
		mcp.WithString("cellRef",
			mcp.Description("Cell to select (default \"A1\"). Use either this or row+column"),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based row number, combined with column"),
		),
		mcp.WithString("column",
			mcp.Description("Column letters or 1-based number, combined with row"),
		),
	), WithRecovery(handleResetCursor))
}

func handleResetCursor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelResetCursorArguments{}
	if issues := excelResetCursorArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return resetCursor(args.FileAbsolutePath, args.SheetName, args.CellRef, args.Row, args.Column)
}

func resetCursor(fileAbsolutePath string, sheetName string, cellRef string, row int, column string) (*mcp.CallToolResult, error) {
	cell := ref.Cell{Row: 1, Col: 1}
	if cellRef != "" || row != 0 || column != "" {
		var err error
		cell, err = ref.ResolveCell(cellRef, row, column)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
	}

	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.ResetCursor(sheetName, cell); err != nil {
		if errors.Is(err, excel.ErrRequiresHost) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Cursor reset to %s on all visible sheets; sheet [%s] active.\n", cell, html.EscapeString(sheetName))
	return mcp.NewToolResultText(result), nil
}
