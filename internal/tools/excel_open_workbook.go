package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
)

type ExcelOpenWorkbookArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
}

var excelOpenWorkbookArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddExcelOpenWorkbookTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_open_workbook",
		mcp.WithDescription("Open a workbook in the running Excel instance, creating the file if it does not exist (Windows only)"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
	), WithRecovery(handleOpenWorkbook))
}

func handleOpenWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelOpenWorkbookArguments{}
	if issues := excelOpenWorkbookArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return openWorkbook(args.FileAbsolutePath)
}

func openWorkbook(fileAbsolutePath string) (*mcp.CallToolResult, error) {
	app, err := excel.NewExcelApp()
	if err != nil {
		return nil, err
	}
	defer app.Release()

	if err := app.OpenWorkbook(fileAbsolutePath); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("Workbook %s opened in Excel.\n", fileAbsolutePath)
	return mcp.NewToolResultText(result), nil
}
