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

type ExcelUnprotectWorkbookArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Password         string `zog:"password"`
}

var excelUnprotectWorkbookArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"password":         z.String(),
})

func AddExcelUnprotectWorkbookTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_unprotect_workbook",
		mcp.WithDescription("Remove workbook structure protection"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("password",
			mcp.Description("Protection password, if one was set"),
		),
	), WithRecovery(handleUnprotectWorkbook))
}

func handleUnprotectWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelUnprotectWorkbookArguments{}
	if issues := excelUnprotectWorkbookArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return unprotectWorkbook(args.FileAbsolutePath, args.Password)
}

func unprotectWorkbook(fileAbsolutePath string, password string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.Unprotect(password); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += "Workbook structure unprotected.\n"
	return mcp.NewToolResultText(result), nil
}
