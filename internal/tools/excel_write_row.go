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

type ExcelWriteRowArguments struct {
	FileAbsolutePath string   `zog:"fileAbsolutePath"`
	SheetName        string   `zog:"sheetName"`
	CellRef          string   `zog:"cellRef"`
	Row              int      `zog:"row"`
	Column           string   `zog:"column"`
	EndColumn        string   `zog:"endColumn"`
	Values           []string `zog:"values"`
}

var excelWriteRowArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cellRef":          z.String(),
	"row":              z.Int(),
	"column":           z.String(),
	"endColumn":        z.String(),
	"values":           z.Slice(z.String()).Required(),
})

func AddExcelWriteRowTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_write_row",
		mcp.WithDescription("Write a row of values left to right starting at a cell"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("cellRef",
			mcp.Description("Start cell reference (e.g., \"B2\"). Use either this or row+column"),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based row number, combined with column"),
		),
		mcp.WithString("column",
			mcp.Description("Start column letters or 1-based number, combined with row"),
		),
		mcp.WithString("endColumn",
			mcp.Description("Optional last column; values past it are dropped with a warning"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("Values to write, one per column"),
			mcp.Items(map[string]any{
				"type": "string",
			}),
		),
	), WithRecovery(handleWriteRow))
}

func handleWriteRow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelWriteRowArguments{}
	if issues := excelWriteRowArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return writeRow(args)
}

func writeRow(args ExcelWriteRowArguments) (*mcp.CallToolResult, error) {
	start, err := ref.ResolveCell(args.CellRef, args.Row, args.Column)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	values := make([]any, len(args.Values))
	for i, v := range args.Values {
		values[i] = v
	}

	truncated := 0
	if args.EndColumn != "" {
		endCol, err := ref.ParseColumn(args.EndColumn)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		if endCol < start.Col {
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("endColumn %s is before the start column", args.EndColumn)), nil
		}
		width := endCol - start.Col + 1
		if len(values) > width {
			truncated = len(values) - width
			values = values[:width]
		}
	}

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

	if err := worksheet.WriteRow(start, values); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("%d value(s) written from %s in sheet [%s].\n", len(values), start, html.EscapeString(args.SheetName))
	if truncated > 0 {
		result += fmt.Sprintf("Warning: %d value(s) past endColumn %s were dropped.\n", truncated, args.EndColumn)
	}
	return mcp.NewToolResultText(result), nil
}
